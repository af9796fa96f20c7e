package utils

import (
	"fmt"
	"time"
)

// ValidateShiftTimes 检查班次的开始和结束时间是否都是合法的 15:04:05 格式。
// 注意：结束时间允许在数值上早于开始时间，这表示一个跨越午夜的夜班，
// 所以这里不做先后关系的检查。
func ValidateShiftTimes(startTime, endTime string) error {
	if _, err := time.Parse("15:04:05", startTime); err != nil {
		return fmt.Errorf("开始时间格式错误，应为 15:04:05 格式")
	}
	if _, err := time.Parse("15:04:05", endTime); err != nil {
		return fmt.Errorf("结束时间格式错误，应为 15:04:05 格式")
	}

	return nil
}

// ParseDateParam 解析 YYYY-MM-DD 格式的日期参数
func ParseDateParam(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("日期格式错误，应为 YYYY-MM-DD 格式")
	}

	return date, nil
}
