package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Date 不带时区的日历日期，数据库中以 "YYYY-MM-DD" 文本保存
// swagger:strfmt date
type Date struct {
	civil.Date
}

func NewDate(d civil.Date) Date {
	return Date{Date: d}
}

// Value 实现 driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid date %v", d.Date)
	}
	return d.String(), nil
}

// Scan 实现 sql.Scanner。格式不对时直接返回错误，不做修正。
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case time.Time:
		// DATE 列经驱动解析后得到 time.Time，日期字段即存储值本身
		d.Date = civil.Date{Year: v.Year(), Month: v.Month(), Day: v.Day()}
		return nil
	case nil:
		return fmt.Errorf("cannot scan NULL into model.Date")
	default:
		return fmt.Errorf("cannot scan %T into model.Date", src)
	}
}

func (d *Date) parse(s string) error {
	parsed, err := civil.ParseDate(s)
	if err != nil {
		return fmt.Errorf("malformed stored date %q: %w", s, err)
	}
	d.Date = parsed
	return nil
}

// DatePtr 辅助构造可空日期字段
func DatePtr(d civil.Date) *Date {
	v := NewDate(d)
	return &v
}
