package scheduler

import (
	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

// CanAssign 判断能否把员工安排到某个班次上，按顺序检查：
//  1. 员工和班次必须存在，否则返回对应的 NotFound 错误
//  2. 班次不能已经被其他人覆盖（domain.ErrShiftAlreadyCovered）；
//     对已经排给同一个员工的班次重新校验视为幂等通过
//  3. 员工已持有的班次的有效时间窗口不能与目标班次重叠
//     （domain.ErrTimeConflict）；窗口为半开区间，首尾相接不算冲突
//
// ignoreAssignmentID 用于重新校验一条已存在的排班记录，例如日历移动时
// 需要忽略被移动的记录本身，传 0 表示不忽略任何记录。
// 本方法是纯读检查，不产生任何副作用。
func (s *Snapshot) CanAssign(employeeID, shiftID, ignoreAssignmentID int64) error {
	if _, exists := s.employeeByID[employeeID]; !exists {
		return domain.ErrEmployeeNotFound
	}
	target, exists := s.shiftByID[shiftID]
	if !exists {
		return domain.ErrShiftNotFound
	}

	if covering, exists := s.assignmentByShift[target.ID]; exists {
		if covering.ID != 0 && covering.ID == ignoreAssignmentID {
			// 被忽略的记录不参与覆盖判断
		} else if covering.EmployeeID == employeeID {
			// 同一个 (员工, 班次) 组合的重复校验是幂等的
			return nil
		} else {
			return domain.ErrShiftAlreadyCovered
		}
	}

	targetWindow := s.windows[target.ID]
	for _, held := range s.employeeWorkload[employeeID] {
		if held.ID != 0 && held.ID == ignoreAssignmentID {
			continue
		}
		if held.ShiftID == target.ID {
			continue
		}
		w := s.windows[held.ShiftID]
		if domain.WindowsOverlap(w.start, w.end, targetWindow.start, targetWindow.end) {
			return domain.ErrTimeConflict
		}
	}

	return nil
}
