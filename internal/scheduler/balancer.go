package scheduler

// Proposal 是 AutoBalance 提议创建的一条排班
type Proposal struct {
	EmployeeID int64
	ShiftID    int64
}

// AutoBalance 扫描所有没有排班记录的班次，用最小负载优先的贪心策略为
// 它们安排员工：
//  1. 未覆盖的班次按 (日期, 开始时间, 班次 ID) 升序处理，保证对同样的
//     状态重复运行产生同样的结果
//  2. 每个班次在 CanAssign 通过的员工中选出当前负载最低的一个，
//     负载相同时选员工 ID 较小的
//  3. 没有任何候选人的班次直接跳过，这不是错误
//  4. 每排出一条记录就更新内存中的负载和工作集，
//     同一次运行中后续的班次会看到最新的状态
//
// 返回的提议顺序与班次的处理顺序一致。贪心策略在人手充足且只有时间冲突
// 约束的情况下能把最大负载和最小负载的差距控制在 1 以内。
func (s *Snapshot) AutoBalance() []Proposal {
	if len(s.employees) == 0 || len(s.shifts) == 0 {
		return nil
	}

	// 统计每个员工当前的负载
	load := make(map[int64]int)
	for _, employee := range s.employees {
		load[employee.ID] = 0
	}
	for _, assignment := range s.assignments {
		load[assignment.EmployeeID]++
	}

	proposals := []Proposal{}

	// s.shifts 在构建快照时已经按 (开始时间, ID) 排好序
	for _, shift := range s.shifts {
		if _, covered := s.assignmentByShift[shift.ID]; covered {
			continue
		}

		var chosen *int64
		for _, employee := range s.employees {
			if err := s.CanAssign(employee.ID, shift.ID, 0); err != nil {
				continue
			}
			if chosen == nil || load[employee.ID] < load[*chosen] {
				id := employee.ID
				chosen = &id
			}
		}

		if chosen == nil {
			// 所有员工都冲突，留着这个班次不排
			continue
		}

		s.apply(*chosen, shift.ID)
		load[*chosen]++
		proposals = append(proposals, Proposal{EmployeeID: *chosen, ShiftID: shift.ID})
	}

	return proposals
}
