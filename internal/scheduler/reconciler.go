package scheduler

import (
	"time"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

// WindowMatchTolerance 是日历上报的时间窗口与班次有效窗口匹配时，
// 每个边界允许的最大偏差。日历组件会对显示时间做归一化取整，
// 精确相等会误杀合法的拖拽，60 秒又远小于任何现实的班次粒度。
const WindowMatchTolerance = 60 * time.Second

// MatchShiftWindow 把日历拖拽上报的 (newStart, newEnd) 解析成一个具体的
// 班次：找到有效时间窗口（跨夜归一化后）与上报窗口在两个边界上偏差都
// 不超过 WindowMatchTolerance 的班次。没有任何班次匹配时返回
// domain.ErrNoMatchingShift。班次按 (开始时间, ID) 的固定顺序扫描，
// 理论上最多只会有一个匹配。
func (s *Snapshot) MatchShiftWindow(newStart, newEnd time.Time) (*domain.Shift, error) {
	for _, shift := range s.shifts {
		w := s.windows[shift.ID]
		if absDuration(w.start.Sub(newStart)) <= WindowMatchTolerance &&
			absDuration(w.end.Sub(newEnd)) <= WindowMatchTolerance {
			return shift, nil
		}
	}

	return nil, domain.ErrNoMatchingShift
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
