package handler

type ContextKey string

var (
	RequestIDCtx    ContextKey = "requestID"
	EmployeeInfoCtx ContextKey = "employeeInfo"
	ShiftInfoCtx    ContextKey = "shiftInfo"
	AssignmentCtx   ContextKey = "assignment"
)
