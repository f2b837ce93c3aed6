package utils

import "time"

// Clock 可注入的时钟，测试时用固定时钟替换
type Clock func() time.Time

// NowMillis 返回当前毫秒时间戳
func NowMillis(clock Clock) int64 {
	if clock == nil {
		return time.Now().UnixMilli()
	}
	return clock().UnixMilli()
}
