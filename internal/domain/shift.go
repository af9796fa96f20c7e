package domain

import (
	"fmt"
	"time"
)

type ShiftType string

const (
	ShiftTypeMorning   ShiftType = "MORNING"
	ShiftTypeAfternoon ShiftType = "AFTERNOON"
	ShiftTypeNight     ShiftType = "NIGHT"
)

type Shift struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"` // 格式为 15:04:05
	EndTime   string    `json:"endTime"`
	Type      ShiftType `json:"shiftType"`
	CreatedAt time.Time `json:"createdAt"`
}

// EffectiveWindow 计算班次的有效时间窗口。
// 当结束时间在数值上不晚于开始时间时，表示该班次跨越了午夜，
// 实际的结束时刻应该算到次日，例如夜班 22:00-06:00 的窗口为
// 当天 22:00 到次日 06:00。所有需要比较两个班次时间的地方都
// 必须先经过这一步归一化。
func (s *Shift) EffectiveWindow() (time.Time, time.Time, error) {
	start, err := time.Parse("15:04:05", s.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("班次 %d 的开始时间格式错误: %w", s.ID, err)
	}
	end, err := time.Parse("15:04:05", s.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("班次 %d 的结束时间格式错误: %w", s.ID, err)
	}

	day := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, time.UTC)
	startAt := day.Add(clockDuration(start))
	endAt := day.Add(clockDuration(end))
	if !endAt.After(startAt) {
		endAt = endAt.Add(24 * time.Hour)
	}

	return startAt, endAt, nil
}

func clockDuration(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

// WindowsOverlap 判断两个时间窗口是否重叠。
// 窗口为半开区间，首尾刚好相接的两个班次不算冲突。
func WindowsOverlap(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}
