package domain

import "time"

// CalendarEvent 是排班日历上的一个事件，由排班记录、班次和员工在读取时
// 拼装而成。它只是一个派生视图，不会被持久化。
type CalendarEvent struct {
	AssignmentID int64     `json:"assignmentID"`
	ShiftID      int64     `json:"shiftID"`
	ShiftName    string    `json:"shiftName"`
	ShiftType    ShiftType `json:"shiftType"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
	Employee     *Employee `json:"employee"`
}
