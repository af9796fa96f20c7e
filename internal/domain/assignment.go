package domain

import "time"

// Assignment 把一个员工绑定到一个班次上。
// 同一个 (员工, 班次) 组合最多只能有一条记录，且一个班次最多只能被一条记录覆盖。
type Assignment struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeID"`
	ShiftID    int64     `json:"shiftID"`
	CreatedAt  time.Time `json:"createdAt"`
}
