package domain

import (
	"testing"
	"time"
)

func TestEffectiveWindow(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		startTime string
		endTime   string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "普通班次",
			startTime: "06:00:00",
			endTime:   "14:00:00",
			wantStart: time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
		},
		{
			name:      "跨夜班次结束时间算到次日",
			startTime: "22:00:00",
			endTime:   "06:00:00",
			wantStart: time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 11, 6, 0, 0, 0, time.UTC),
		},
		{
			name:      "开始与结束相同视为跨夜的 24 小时班次",
			startTime: "08:00:00",
			endTime:   "08:00:00",
			wantStart: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift := &Shift{ID: 1, Date: date, StartTime: tt.startTime, EndTime: tt.endTime}

			start, end, err := shift.EffectiveWindow()
			if err != nil {
				t.Fatalf("EffectiveWindow() error = %v", err)
			}
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestEffectiveWindowInvalidTime(t *testing.T) {
	shift := &Shift{ID: 1, Date: time.Now(), StartTime: "25:00:00", EndTime: "06:00:00"}
	if _, _, err := shift.EffectiveWindow(); err == nil {
		t.Fatal("EffectiveWindow() 对非法时间应返回错误")
	}
}

func TestWindowsOverlap(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(d int, hour int) time.Time {
		return day.AddDate(0, 0, d).Add(time.Duration(hour) * time.Hour)
	}

	tests := []struct {
		name   string
		start1 time.Time
		end1   time.Time
		start2 time.Time
		end2   time.Time
		want   bool
	}{
		{
			name:   "部分重叠",
			start1: at(0, 6), end1: at(0, 14),
			start2: at(0, 10), end2: at(0, 18),
			want: true,
		},
		{
			name:   "首尾相接不算冲突",
			start1: at(0, 6), end1: at(0, 14),
			start2: at(0, 14), end2: at(0, 22),
			want: false,
		},
		{
			name:   "完全包含",
			start1: at(0, 6), end1: at(0, 22),
			start2: at(0, 10), end2: at(0, 14),
			want: true,
		},
		{
			name:   "完全错开",
			start1: at(0, 6), end1: at(0, 10),
			start2: at(0, 14), end2: at(0, 18),
			want: false,
		},
		{
			name:   "夜班与次日早班首尾相接不算冲突",
			start1: at(0, 22), end1: at(1, 6),
			start2: at(1, 6), end2: at(1, 14),
			want: false,
		},
		{
			name:   "夜班与次日凌晨的班次重叠",
			start1: at(0, 22), end1: at(1, 6),
			start2: at(1, 4), end2: at(1, 12),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WindowsOverlap(tt.start1, tt.end1, tt.start2, tt.end2); got != tt.want {
				t.Errorf("WindowsOverlap() = %v, want %v", got, tt.want)
			}
			// 重叠关系是对称的
			if got := WindowsOverlap(tt.start2, tt.end2, tt.start1, tt.end1); got != tt.want {
				t.Errorf("WindowsOverlap() 交换参数后 = %v, want %v", got, tt.want)
			}
		})
	}
}
