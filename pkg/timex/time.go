// Package timex provides a JSON/yaml-friendly time type for model fields.
// Package timex 提供用于模型字段的 JSON/yaml 友好时间类型。
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const layout = "2006-01-02 15:04:05"

// Time wraps time.Time with a fixed serialization layout.
// Time 包装 time.Time，使用固定的序列化格式。
type Time time.Time

// Now 获取当前时间
func Now() Time {
	return Time(time.Now())
}

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) String() string {
	return time.Time(t).Format(layout)
}

// MarshalJSON 按固定格式输出
func (t Time) MarshalJSON() ([]byte, error) {
	if time.Time(t).IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf(`"%s"`, time.Time(t).Format(layout))), nil
}

// UnmarshalJSON 解析固定格式时间
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `""` || s == "null" {
		*t = Time(time.Time{})
		return nil
	}
	parsed, err := time.ParseInLocation(`"`+layout+`"`, s, time.Local)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

// Value implements driver.Valuer so gorm can persist the wrapped time.
// Value 实现 driver.Valuer，便于 gorm 持久化。
func (t Time) Value() (driver.Value, error) {
	if time.Time(t).IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan implements sql.Scanner.
// Scan 实现 sql.Scanner。
func (t *Time) Scan(v interface{}) error {
	switch value := v.(type) {
	case time.Time:
		*t = Time(value)
		return nil
	case nil:
		*t = Time(time.Time{})
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timex.Time", v)
	}
}
