package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) MapsToString() map[string]string {
	m := make(map[string]string)
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// BindAndValid 绑定并验证 HTTP 请求参数，验证错误使用请求语言翻译
func BindAndValid(c *gin.Context, v any) (bool, ValidErrors) {
	var errs ValidErrors
	if err := c.ShouldBind(v); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
			return false, errs
		}

		trans := c.Value("trans").(ut.Translator)
		for _, verr := range verrs {
			errs = append(errs, &ValidError{
				Key:     verr.Field(),
				Message: verr.Translate(trans),
			})
		}
		return false, errs
	}

	return true, nil
}
