package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BacktestsRun = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gobt_backtests_total",
			Help: "Total number of backtest runs (by strategy type).",
		},
		[]string{"strategy"},
	)

	TradesExecuted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gobt_trades_total",
			Help: "Total number of executed trades (by trade type).",
		},
		[]string{"type"},
	)

	FinalEquity = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gobt_final_equity",
			Help: "Final equity of the most recent backtest run.",
		},
	)
)

func init() {
	prometheus.MustRegister(BacktestsRun, TradesExecuted, FinalEquity)
}
