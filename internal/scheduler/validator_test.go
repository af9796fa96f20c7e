package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newShift(id int64, day int, startTime, endTime string) *domain.Shift {
	return &domain.Shift{
		ID:        id,
		Name:      "测试班次",
		Date:      testDate.AddDate(0, 0, day),
		StartTime: startTime,
		EndTime:   endTime,
		Type:      domain.ShiftTypeMorning,
	}
}

func newEmployee(id int64) *domain.Employee {
	return &domain.Employee{ID: id, FirstName: "三", LastName: "张"}
}

func mustSnapshot(t *testing.T, employees []*domain.Employee, shifts []*domain.Shift, assignments []*domain.Assignment) *Snapshot {
	t.Helper()
	s, err := NewSnapshot(employees, shifts, assignments)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	return s
}

func TestCanAssignNotFound(t *testing.T) {
	s := mustSnapshot(t,
		[]*domain.Employee{newEmployee(1)},
		[]*domain.Shift{newShift(1, 0, "06:00:00", "14:00:00")},
		nil,
	)

	if err := s.CanAssign(99, 1, 0); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("CanAssign(不存在的员工) = %v, want ErrEmployeeNotFound", err)
	}
	if err := s.CanAssign(1, 99, 0); !errors.Is(err, domain.ErrShiftNotFound) {
		t.Errorf("CanAssign(不存在的班次) = %v, want ErrShiftNotFound", err)
	}
}

func TestCanAssignShiftAlreadyCovered(t *testing.T) {
	s := mustSnapshot(t,
		[]*domain.Employee{newEmployee(1), newEmployee(2)},
		[]*domain.Shift{newShift(1, 0, "06:00:00", "14:00:00")},
		[]*domain.Assignment{{ID: 10, EmployeeID: 1, ShiftID: 1}},
	)

	if err := s.CanAssign(2, 1, 0); !errors.Is(err, domain.ErrShiftAlreadyCovered) {
		t.Errorf("CanAssign(已有人的班次) = %v, want ErrShiftAlreadyCovered", err)
	}

	// 同一个 (员工, 班次) 组合重复校验是幂等的
	if err := s.CanAssign(1, 1, 0); err != nil {
		t.Errorf("CanAssign(已持有该班次的员工) = %v, want nil", err)
	}
}

func TestCanAssignTimeConflict(t *testing.T) {
	shifts := []*domain.Shift{
		newShift(1, 0, "06:00:00", "14:00:00"),
		newShift(2, 0, "10:00:00", "18:00:00"),
		newShift(3, 0, "14:00:00", "22:00:00"),
	}
	s := mustSnapshot(t,
		[]*domain.Employee{newEmployee(1)},
		shifts,
		[]*domain.Assignment{{ID: 10, EmployeeID: 1, ShiftID: 1}},
	)

	if err := s.CanAssign(1, 2, 0); !errors.Is(err, domain.ErrTimeConflict) {
		t.Errorf("CanAssign(时间重叠的班次) = %v, want ErrTimeConflict", err)
	}

	// 首尾相接的班次不算冲突
	if err := s.CanAssign(1, 3, 0); err != nil {
		t.Errorf("CanAssign(首尾相接的班次) = %v, want nil", err)
	}
}

func TestCanAssignOvernightConflict(t *testing.T) {
	shifts := []*domain.Shift{
		newShift(1, 0, "22:00:00", "06:00:00"), // 当天夜班，结束于次日 06:00
		newShift(2, 1, "04:00:00", "12:00:00"), // 次日凌晨班，与夜班重叠
		newShift(3, 1, "06:00:00", "14:00:00"), // 次日早班，与夜班首尾相接
	}
	s := mustSnapshot(t,
		[]*domain.Employee{newEmployee(1)},
		shifts,
		[]*domain.Assignment{{ID: 10, EmployeeID: 1, ShiftID: 1}},
	)

	if err := s.CanAssign(1, 2, 0); !errors.Is(err, domain.ErrTimeConflict) {
		t.Errorf("CanAssign(与夜班重叠的次日班次) = %v, want ErrTimeConflict", err)
	}
	if err := s.CanAssign(1, 3, 0); err != nil {
		t.Errorf("CanAssign(夜班后的次日早班) = %v, want nil", err)
	}
}

func TestCanAssignIgnoreAssignment(t *testing.T) {
	shifts := []*domain.Shift{
		newShift(1, 0, "06:00:00", "14:00:00"),
		newShift(2, 0, "10:00:00", "18:00:00"),
	}
	s := mustSnapshot(t,
		[]*domain.Employee{newEmployee(1)},
		shifts,
		[]*domain.Assignment{{ID: 10, EmployeeID: 1, ShiftID: 1}},
	)

	// 不忽略时，持有的班次 1 与班次 2 时间冲突
	if err := s.CanAssign(1, 2, 0); !errors.Is(err, domain.ErrTimeConflict) {
		t.Fatalf("CanAssign(不忽略) = %v, want ErrTimeConflict", err)
	}

	// 移动记录 10 到班次 2 时需要忽略它本身，忽略后不再冲突
	if err := s.CanAssign(1, 2, 10); err != nil {
		t.Errorf("CanAssign(忽略被移动的记录) = %v, want nil", err)
	}
}

func TestCanAssignIgnoredCoveringAssignment(t *testing.T) {
	shifts := []*domain.Shift{
		newShift(1, 0, "06:00:00", "14:00:00"),
		newShift(2, 0, "14:00:00", "22:00:00"),
	}
	s := mustSnapshot(t,
		[]*domain.Employee{newEmployee(1), newEmployee(2)},
		shifts,
		[]*domain.Assignment{{ID: 10, EmployeeID: 1, ShiftID: 2}},
	)

	// 记录 10 被忽略后，班次 2 视为未覆盖，其他员工可以排上去
	if err := s.CanAssign(2, 2, 10); err != nil {
		t.Errorf("CanAssign(忽略覆盖记录后) = %v, want nil", err)
	}
}
