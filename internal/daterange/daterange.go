// Package daterange 处理命令行中的紧凑 ISO 日期以及文件修改时间窗口。
package daterange

import (
	"fmt"
	"strings"
	"time"
)

// Layout 是 YYYYMMDD 形式的紧凑 ISO 8601 日期。
const Layout = "20060102"

const secondsPerDay = 24 * 60 * 60

// Parse 把 YYYYMMDD 解析为当天 UTC 零点。
func Parse(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	t, err := time.ParseInLocation(Layout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q (want YYYYMMDD): %w", value, err)
	}
	return t, nil
}

// Window 表示 (From, To) 开区间。
// From 不强制早于 To；From >= To 时任何时间都不在窗口内。
type Window struct {
	From time.Time
	To   time.Time
}

// NewWindow 解析两端日期并构造窗口。
func NewWindow(from string, to string) (Window, error) {
	fromTime, err := Parse(from)
	if err != nil {
		return Window{}, err
	}
	toTime, err := Parse(to)
	if err != nil {
		return Window{}, err
	}
	return Window{From: fromTime, To: toTime}, nil
}

// Contains 两端都是严格比较，恰好落在边界上的时间不计入。
func (w Window) Contains(t time.Time) bool {
	return w.From.Before(t) && w.To.After(t)
}

// Days 返回 From 到 To 之间的整日数。
// 同一天为 0，To 早于 From 时为负数。
// 按 Unix 秒计算，time.Duration 在约 292 年处会溢出。
func (w Window) Days() int64 {
	return (w.To.Unix() - w.From.Unix()) / secondsPerDay
}
