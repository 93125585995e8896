package analytics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"cloud.google.com/go/civil"
)

// DefaultOffsetMinutes IST (+05:30)
const DefaultOffsetMinutes = 330

var ErrInvalidDate = errors.New("invalid date")

// Clock 以固定时区偏移把时间点换算为日历日期
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock 创建使用固定偏移（分钟）的时钟
func NewClock(offsetMinutes int) *Clock {
	return &Clock{
		loc: fixedZone(offsetMinutes),
		now: time.Now,
	}
}

// NewFixedClock 返回始终停留在给定时间点的时钟，用于脚本回放与测试
func NewFixedClock(offsetMinutes int, at time.Time) *Clock {
	return &Clock{
		loc: fixedZone(offsetMinutes),
		now: func() time.Time { return at },
	}
}

func fixedZone(offsetMinutes int) *time.Location {
	sign := "+"
	abs := offsetMinutes
	if abs < 0 {
		sign = "-"
		abs = -abs
	}
	name := fmt.Sprintf("UTC%s%02d:%02d", sign, abs/60, abs%60)
	return time.FixedZone(name, offsetMinutes*60)
}

// Location 返回时钟使用的固定时区
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now 当前时间（已换算到固定时区）
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Normalize 把任意时间点换算到固定时区后取日期
func (c *Clock) Normalize(t time.Time) civil.Date {
	return civil.DateOf(t.In(c.loc))
}

// ParseDate 解析 "YYYY-MM-DD" 或 RFC3339 时间戳。
// 已经是日历日期的字符串原样返回；格式错误直接报错，不做任何猜测。
func (c *Clock) ParseDate(s string) (civil.Date, error) {
	if len(s) == len("2006-01-02") {
		d, err := civil.ParseDate(s)
		if err != nil || !d.IsValid() {
			return civil.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		return d, nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return c.Normalize(t), nil
}

// Today 固定时区下的今天
func (c *Clock) Today() civil.Date {
	return c.Normalize(c.now())
}

// DaysAgo 今天往前 n 天
func (c *Clock) DaysAgo(n int) civil.Date {
	return c.Today().AddDays(-n)
}

// MinuteOfDay 固定时区下当天已过去的分钟数
func (c *Clock) MinuteOfDay() int {
	return MinuteOf(c.Now())
}

// MinuteOf t 所在时区下当天已过去的分钟数。日期和分钟需要一致时先取一次 Now 再分别换算。
func MinuteOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// AreConsecutive 仅当 d2 恰好是 d1 的后一天时返回 true，参数顺序敏感
func AreConsecutive(d1, d2 civil.Date) bool {
	return d1.AddDays(1) == d2
}

// DaysInclusive from 到 to（含两端）的天数，to 早于 from 时为 0
func DaysInclusive(from, to civil.Date) int {
	if to.Before(from) {
		return 0
	}
	return to.DaysSince(from) + 1
}

// MonthRange 返回 "YYYY-MM" 所在月份的首日与末日
func MonthRange(month string) (civil.Date, civil.Date, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return civil.Date{}, civil.Date{}, fmt.Errorf("%w: month %q", ErrInvalidDate, month)
	}
	first := civil.Date{Year: t.Year(), Month: t.Month(), Day: 1}
	last := civil.DateOf(first.In(time.UTC).AddDate(0, 1, -1))
	return first, last, nil
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return roundHalfUp(float64(part) * 100 / float64(whole))
}

// roundHalfUp 与前端 Math.round 一致（.5 向上取整）
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
