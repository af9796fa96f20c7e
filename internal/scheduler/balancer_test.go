package scheduler

import (
	"reflect"
	"testing"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

func TestAutoBalanceEmptyInput(t *testing.T) {
	s := mustSnapshot(t, nil, []*domain.Shift{newShift(1, 0, "06:00:00", "14:00:00")}, nil)
	if got := s.AutoBalance(); got != nil {
		t.Errorf("AutoBalance(没有员工) = %v, want nil", got)
	}

	s = mustSnapshot(t, []*domain.Employee{newEmployee(1)}, nil, nil)
	if got := s.AutoBalance(); got != nil {
		t.Errorf("AutoBalance(没有班次) = %v, want nil", got)
	}
}

func TestAutoBalancePrefersLowestLoad(t *testing.T) {
	// 员工 1 已有两条排班，员工 2 有一条，员工 3 没有。
	// 班次 4 应该排给负载最低的员工 3；此后员工 2 和 3 的负载
	// 打平，班次 5 排给 ID 较小的员工 2。
	shifts := []*domain.Shift{
		newShift(1, 0, "06:00:00", "14:00:00"),
		newShift(2, 0, "14:00:00", "22:00:00"),
		newShift(3, 1, "06:00:00", "14:00:00"),
		newShift(4, 1, "14:00:00", "22:00:00"),
		newShift(5, 2, "06:00:00", "14:00:00"),
	}
	assignments := []*domain.Assignment{
		{ID: 10, EmployeeID: 1, ShiftID: 1},
		{ID: 11, EmployeeID: 1, ShiftID: 2},
		{ID: 12, EmployeeID: 2, ShiftID: 3},
	}
	s := mustSnapshot(t,
		[]*domain.Employee{newEmployee(1), newEmployee(2), newEmployee(3)},
		shifts, assignments,
	)

	got := s.AutoBalance()
	want := []Proposal{
		{EmployeeID: 3, ShiftID: 4},
		{EmployeeID: 2, ShiftID: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AutoBalance() = %v, want %v", got, want)
	}
}

func TestAutoBalanceTieBreaksOnLowerID(t *testing.T) {
	// 所有员工负载相同，应该选 ID 最小的
	shifts := []*domain.Shift{newShift(1, 0, "06:00:00", "14:00:00")}
	s := mustSnapshot(t,
		[]*domain.Employee{newEmployee(3), newEmployee(1), newEmployee(2)},
		shifts, nil,
	)

	got := s.AutoBalance()
	want := []Proposal{{EmployeeID: 1, ShiftID: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AutoBalance() = %v, want %v", got, want)
	}
}

func TestAutoBalanceSeesEarlierProposals(t *testing.T) {
	// 两个时间重叠的未覆盖班次不能排给同一个员工：
	// 员工 1 排上班次 1 之后与班次 2 冲突，班次 2 只能落到员工 2 头上。
	shifts := []*domain.Shift{
		newShift(1, 0, "06:00:00", "14:00:00"),
		newShift(2, 0, "10:00:00", "18:00:00"),
	}
	s := mustSnapshot(t,
		[]*domain.Employee{newEmployee(1), newEmployee(2)},
		shifts, nil,
	)

	got := s.AutoBalance()
	want := []Proposal{
		{EmployeeID: 1, ShiftID: 1},
		{EmployeeID: 2, ShiftID: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AutoBalance() = %v, want %v", got, want)
	}
}

func TestAutoBalanceSkipsShiftWithNoCandidate(t *testing.T) {
	// 唯一的员工已经持有与班次 2 时间冲突的班次 1，
	// 班次 2 排不出人，只能跳过，不算错误。
	shifts := []*domain.Shift{
		newShift(1, 0, "06:00:00", "14:00:00"),
		newShift(2, 0, "10:00:00", "18:00:00"),
		newShift(3, 0, "14:00:00", "22:00:00"),
	}
	assignments := []*domain.Assignment{
		{ID: 10, EmployeeID: 1, ShiftID: 1},
	}
	s := mustSnapshot(t, []*domain.Employee{newEmployee(1)}, shifts, assignments)

	got := s.AutoBalance()
	want := []Proposal{{EmployeeID: 1, ShiftID: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AutoBalance() = %v, want %v", got, want)
	}
}

func TestAutoBalanceDeterministicOrder(t *testing.T) {
	// 班次乱序传入，提议应该按 (日期, 开始时间, ID) 的顺序产生
	shifts := []*domain.Shift{
		newShift(3, 1, "06:00:00", "14:00:00"),
		newShift(1, 0, "14:00:00", "22:00:00"),
		newShift(2, 0, "06:00:00", "14:00:00"),
	}
	s := mustSnapshot(t,
		[]*domain.Employee{newEmployee(1), newEmployee(2), newEmployee(3)},
		shifts, nil,
	)

	got := s.AutoBalance()
	want := []Proposal{
		{EmployeeID: 1, ShiftID: 2},
		{EmployeeID: 2, ShiftID: 1},
		{EmployeeID: 3, ShiftID: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AutoBalance() = %v, want %v", got, want)
	}
}

func TestAutoBalanceFullyCoveredIsNoop(t *testing.T) {
	shifts := []*domain.Shift{newShift(1, 0, "06:00:00", "14:00:00")}
	assignments := []*domain.Assignment{{ID: 10, EmployeeID: 1, ShiftID: 1}}
	s := mustSnapshot(t, []*domain.Employee{newEmployee(1), newEmployee(2)}, shifts, assignments)

	if got := s.AutoBalance(); len(got) != 0 {
		t.Errorf("AutoBalance(全部已覆盖) = %v, want 空", got)
	}
}
