package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector 收集排班核心操作的 Prometheus 指标
type Collector struct {
	assignmentsCreated *prometheus.CounterVec
	ruleRejections     *prometheus.CounterVec
	autoBalanceRuns    prometheus.Counter
	autoBalanceCovered prometheus.Counter
	reconcileMoves     prometheus.Counter
}

// NewCollector 创建 Collector 并把所有指标注册到给定的注册表中
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		assignmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shift_roster_assignments_created_total",
			Help: "创建的排班记录总数（按来源区分）",
		}, []string{"source"}),
		ruleRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shift_roster_rule_rejections_total",
			Help: "被业务规则拒绝的排班操作总数（按原因区分）",
		}, []string{"reason"}),
		autoBalanceRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shift_roster_auto_balance_runs_total",
			Help: "自动平衡的运行总次数",
		}),
		autoBalanceCovered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shift_roster_auto_balance_covered_total",
			Help: "自动平衡覆盖的班次总数",
		}),
		reconcileMoves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shift_roster_reconcile_moves_total",
			Help: "日历拖拽成功移动排班的总次数",
		}),
	}

	reg.MustRegister(
		c.assignmentsCreated,
		c.ruleRejections,
		c.autoBalanceRuns,
		c.autoBalanceCovered,
		c.reconcileMoves,
	)

	return c
}

// RecordAssignmentCreated 记录一条新创建的排班，source 为 direct 或 auto_balance
func (c *Collector) RecordAssignmentCreated(source string) {
	c.assignmentsCreated.WithLabelValues(source).Inc()
}

// RecordRuleRejection 记录一次被业务规则拒绝的操作
func (c *Collector) RecordRuleRejection(reason string) {
	c.ruleRejections.WithLabelValues(reason).Inc()
}

// RecordAutoBalance 记录一次自动平衡运行及其覆盖的班次数
func (c *Collector) RecordAutoBalance(covered int) {
	c.autoBalanceRuns.Inc()
	c.autoBalanceCovered.Add(float64(covered))
}

// RecordReconcileMove 记录一次成功的日历移动
func (c *Collector) RecordReconcileMove() {
	c.reconcileMoves.Inc()
}

// Handler 返回 Prometheus 抓取用的 HTTP handler
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
