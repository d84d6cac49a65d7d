package util

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses durations with an additional "d" (day) unit.
// ParseDuration 解析时间段，额外支持 "d"（天）单位。
// Supported formats: 7d, 24h, 30m, 10s
// 支持的格式：7d、24h、30m、10s
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, err
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}
