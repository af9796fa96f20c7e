package utils

import (
	"testing"
	"time"
)

func TestValidateShiftTimes(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   string
		wantErr   bool
	}{
		{name: "合法时间", startTime: "06:00:00", endTime: "14:00:00", wantErr: false},
		{name: "结束早于开始表示跨夜班次", startTime: "22:00:00", endTime: "06:00:00", wantErr: false},
		{name: "开始时间格式错误", startTime: "6:00", endTime: "14:00:00", wantErr: true},
		{name: "结束时间超出范围", startTime: "06:00:00", endTime: "24:00:00", wantErr: true},
		{name: "空字符串", startTime: "", endTime: "14:00:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShiftTimes(tt.startTime, tt.endTime)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateShiftTimes(%q, %q) error = %v, wantErr %v", tt.startTime, tt.endTime, err, tt.wantErr)
			}
		})
	}
}

func TestParseDateParam(t *testing.T) {
	date, err := ParseDateParam("2025-03-10")
	if err != nil {
		t.Fatalf("ParseDateParam() error = %v", err)
	}
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Errorf("ParseDateParam() = %v, want %v", date, want)
	}

	if _, err := ParseDateParam("2025/03/10"); err == nil {
		t.Error("ParseDateParam(非法格式) 应返回错误")
	}
	if _, err := ParseDateParam(""); err == nil {
		t.Error("ParseDateParam(空字符串) 应返回错误")
	}
}
