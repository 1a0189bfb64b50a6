package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var itemProcessDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "modbot_item_duration_sec",
	Help: "Total duration of filter-chain evaluation per item",
}, []string{"kind"})

var itemProcessCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "modbot_items_processed",
	Help: "Number of items evaluated",
}, []string{"kind"})

var ruleMatchCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "modbot_rule_matches",
	Help: "Number of items matched, by winning rule",
}, []string{"rule"})

var ruleErrorCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "modbot_rule_errors",
	Help: "Number of rule invocations which failed",
}, []string{"rule"})

var actionCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "modbot_actions",
	Help: "Number of remediation actions executed",
}, []string{"type"})

var actionErrorCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "modbot_action_errors",
	Help: "Number of remediation actions which failed",
}, []string{"type"})
