package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordAssignmentCreated("direct")
	c.RecordAssignmentCreated("direct")
	c.RecordAssignmentCreated("auto_balance")
	c.RecordRuleRejection("time_conflict")
	c.RecordAutoBalance(3)
	c.RecordReconcileMove()

	if got := testutil.ToFloat64(c.assignmentsCreated.WithLabelValues("direct")); got != 2 {
		t.Errorf("assignments_created{source=direct} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.assignmentsCreated.WithLabelValues("auto_balance")); got != 1 {
		t.Errorf("assignments_created{source=auto_balance} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.ruleRejections.WithLabelValues("time_conflict")); got != 1 {
		t.Errorf("rule_rejections{reason=time_conflict} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.autoBalanceRuns); got != 1 {
		t.Errorf("auto_balance_runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.autoBalanceCovered); got != 3 {
		t.Errorf("auto_balance_covered = %v, want 3", got)
	}
	if got := testutil.ToFloat64(c.reconcileMoves); got != 1 {
		t.Errorf("reconcile_moves = %v, want 1", got)
	}
}

func TestNewCollectorRegistersAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	families, err := reg.Gather()
	// 计数器在没有样本之前不会出现在 Gather 结果里，这里只确认注册不报错
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	_ = families

	// 重复注册同名指标会 panic
	defer func() {
		if recover() == nil {
			t.Error("重复注册应 panic")
		}
	}()
	NewCollector(reg)
}
