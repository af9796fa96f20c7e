package domain

import "errors"

// 核心业务错误。handler 层根据这些错误向调用方返回对应的提示信息，
// 业务规则拒绝会被原样上报，不会被静默重试。
var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrShiftNotFound       = errors.New("shift not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrShiftAlreadyCovered = errors.New("shift already covered")
	ErrTimeConflict        = errors.New("time conflict")
	ErrNoMatchingShift     = errors.New("no matching shift")
)
