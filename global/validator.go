package global

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// ValidatorEntity 全局验证器，HTTP 与 WebSocket 共用
// 复用 gin binding 的验证引擎，统一使用 binding 标签
type ValidatorEntity struct {
	Validate *validator.Validate
	Uni      *ut.UniversalTranslator
}

var Validator *ValidatorEntity

// SetupValidator 初始化验证器及 en/zh 翻译器
func SetupValidator() error {
	enLocale := en.New()
	zhLocale := zh.New()
	uni := ut.New(enLocale, enLocale, zhLocale)

	validate, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		validate = validator.New()
		validate.SetTagName("binding")
	}

	// 验证错误里使用 json 字段名
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if trans, ok := uni.GetTranslator("en"); ok {
		if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
			return err
		}
	}
	if trans, ok := uni.GetTranslator("zh"); ok {
		if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
			return err
		}
	}

	Validator = &ValidatorEntity{
		Validate: validate,
		Uni:      uni,
	}
	return nil
}
