package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sysu-ecnc-dev/shift-roster/backend/internal/domain"
)

func TestBusinessErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: domain.ErrEmployeeNotFound, want: "员工不存在"},
		{err: domain.ErrShiftNotFound, want: "班次不存在"},
		{err: domain.ErrAssignmentNotFound, want: "排班记录不存在"},
		{err: domain.ErrShiftAlreadyCovered, want: "该班次已有人值班"},
		{err: domain.ErrTimeConflict, want: "与该员工已有班次的时间冲突"},
		{err: domain.ErrNoMatchingShift, want: "找不到与该时间窗口匹配的班次"},
		// 包装过的业务错误也能识别
		{err: fmt.Errorf("创建排班失败: %w", domain.ErrTimeConflict), want: "与该员工已有班次的时间冲突"},
		// 非业务错误返回空字符串，按内部错误处理
		{err: errors.New("connection refused"), want: ""},
	}

	for _, tt := range tests {
		if got := businessErrorMessage(tt.err); got != tt.want {
			t.Errorf("businessErrorMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestBusinessErrorReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: domain.ErrShiftAlreadyCovered, want: "shift_already_covered"},
		{err: domain.ErrTimeConflict, want: "time_conflict"},
		{err: domain.ErrNoMatchingShift, want: "no_matching_shift"},
		{err: domain.ErrEmployeeNotFound, want: "not_found"},
	}

	for _, tt := range tests {
		if got := businessErrorReason(tt.err); got != tt.want {
			t.Errorf("businessErrorReason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
