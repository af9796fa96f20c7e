package scheduler

import (
	"sort"
	"time"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

// window 是某个班次经过跨夜归一化之后的有效时间窗口
type window struct {
	start time.Time
	end   time.Time
}

// Snapshot 是一次调度操作所需全部数据的内存快照。
// 快照必须在同一个事务内读取，保证员工、班次和排班记录之间的一致性。
// Snapshot 上的方法只做内存计算，不产生任何副作用，真正的写入由
// repository 在同一个事务中完成。
type Snapshot struct {
	employees   []*domain.Employee
	shifts      []*domain.Shift
	assignments []*domain.Assignment

	employeeByID      map[int64]*domain.Employee
	shiftByID         map[int64]*domain.Shift
	assignmentByShift map[int64]*domain.Assignment
	employeeWorkload  map[int64][]*domain.Assignment // 员工当前持有的所有排班记录
	windows           map[int64]window
}

func NewSnapshot(employees []*domain.Employee, shifts []*domain.Shift, assignments []*domain.Assignment) (*Snapshot, error) {
	s := &Snapshot{
		employees:         make([]*domain.Employee, len(employees)),
		shifts:            make([]*domain.Shift, len(shifts)),
		assignments:       assignments,
		employeeByID:      make(map[int64]*domain.Employee),
		shiftByID:         make(map[int64]*domain.Shift),
		assignmentByShift: make(map[int64]*domain.Assignment),
		employeeWorkload:  make(map[int64][]*domain.Assignment),
		windows:           make(map[int64]window),
	}

	copy(s.employees, employees)
	copy(s.shifts, shifts)

	// 预先算好每个班次的有效时间窗口，后续的所有比较都基于这份归一化结果
	for _, shift := range s.shifts {
		startAt, endAt, err := shift.EffectiveWindow()
		if err != nil {
			return nil, err
		}
		s.windows[shift.ID] = window{start: startAt, end: endAt}
		s.shiftByID[shift.ID] = shift
	}

	for _, employee := range s.employees {
		s.employeeByID[employee.ID] = employee
	}

	for _, assignment := range assignments {
		s.assignmentByShift[assignment.ShiftID] = assignment
		s.employeeWorkload[assignment.EmployeeID] = append(s.employeeWorkload[assignment.EmployeeID], assignment)
	}

	// 固定遍历顺序，保证同样的输入产生同样的输出
	sort.Slice(s.employees, func(i, j int) bool {
		return s.employees[i].ID < s.employees[j].ID
	})
	sort.Slice(s.shifts, func(i, j int) bool {
		wi, wj := s.windows[s.shifts[i].ID], s.windows[s.shifts[j].ID]
		if !wi.start.Equal(wj.start) {
			return wi.start.Before(wj.start)
		}
		return s.shifts[i].ID < s.shifts[j].ID
	})

	return s, nil
}

// apply 把一条新产生的排班记录并入快照的工作集，
// 使同一次运行中后续的校验能够看到它。
func (s *Snapshot) apply(employeeID, shiftID int64) {
	assignment := &domain.Assignment{EmployeeID: employeeID, ShiftID: shiftID}
	s.assignmentByShift[shiftID] = assignment
	s.employeeWorkload[employeeID] = append(s.employeeWorkload[employeeID], assignment)
}
