package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

func TestMatchShiftWindow(t *testing.T) {
	shifts := []*domain.Shift{
		newShift(1, 0, "06:00:00", "14:00:00"),
		newShift(2, 0, "14:00:00", "22:00:00"),
		newShift(3, 0, "22:00:00", "06:00:00"), // 跨夜班次
	}
	s := mustSnapshot(t, []*domain.Employee{newEmployee(1)}, shifts, nil)

	at := func(d, hour, min, sec int) time.Time {
		return testDate.AddDate(0, 0, d).Add(
			time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute + time.Duration(sec)*time.Second)
	}

	tests := []struct {
		name     string
		newStart time.Time
		newEnd   time.Time
		wantID   int64
		wantErr  error
	}{
		{
			name:     "精确匹配",
			newStart: at(0, 14, 0, 0),
			newEnd:   at(0, 22, 0, 0),
			wantID:   2,
		},
		{
			name:     "边界偏差在容差以内",
			newStart: at(0, 6, 0, 30),
			newEnd:   at(0, 13, 59, 30),
			wantID:   1,
		},
		{
			name:     "边界偏差刚好等于容差",
			newStart: at(0, 6, 1, 0),
			newEnd:   at(0, 13, 59, 0),
			wantID:   1,
		},
		{
			name:     "跨夜班次按归一化后的窗口匹配",
			newStart: at(0, 22, 0, 0),
			newEnd:   at(1, 6, 0, 0),
			wantID:   3,
		},
		{
			name:     "开始偏差超出容差",
			newStart: at(0, 6, 2, 0),
			newEnd:   at(0, 14, 0, 0),
			wantErr:  domain.ErrNoMatchingShift,
		},
		{
			name:     "只有一个边界匹配",
			newStart: at(0, 6, 0, 0),
			newEnd:   at(0, 18, 0, 0),
			wantErr:  domain.ErrNoMatchingShift,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift, err := s.MatchShiftWindow(tt.newStart, tt.newEnd)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("MatchShiftWindow() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("MatchShiftWindow() error = %v", err)
			}
			if shift.ID != tt.wantID {
				t.Errorf("MatchShiftWindow() = 班次 %d, want 班次 %d", shift.ID, tt.wantID)
			}
		})
	}
}

func TestMatchShiftWindowNoShifts(t *testing.T) {
	s := mustSnapshot(t, []*domain.Employee{newEmployee(1)}, nil, nil)

	_, err := s.MatchShiftWindow(testDate, testDate.Add(8*time.Hour))
	if !errors.Is(err, domain.ErrNoMatchingShift) {
		t.Errorf("MatchShiftWindow(没有班次) = %v, want ErrNoMatchingShift", err)
	}
}
