// Package engine runs the day-by-day backtest: indicator annotation, risk
// overlay, signal evaluation, order execution and portfolio bookkeeping.
// One run is a single sequential pass; each day's decision depends on the
// portfolio state left by the prior day, so the loop is intentionally not
// parallelizable. Every run builds fresh state, so re-running is idempotent.
package engine

import (
	"errors"

	"github.com/evdnx/gobt/config"
	"github.com/evdnx/gobt/indicator"
	"github.com/evdnx/gobt/logger"
	"github.com/evdnx/gobt/metrics"
	"github.com/evdnx/gobt/risk"
	"github.com/evdnx/gobt/signal"
	"github.com/evdnx/gobt/text"
	"github.com/evdnx/gobt/types"
)

var (
	ErrEmptySeries    = errors.New("engine: empty price series")
	ErrInvalidCapital = errors.New("engine: initial capital must be positive")
)

// Engine runs backtests for one validated strategy configuration.
type Engine struct {
	cfg config.StrategyConfig
	log logger.Logger
}

// New validates the config (after applying family defaults) and returns a
// ready engine. A nil logger is replaced with a no-op one.
func New(cfg config.StrategyConfig, log logger.Logger) (*Engine, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{cfg: cfg, log: log}, nil
}

// Config returns the effective (defaulted) configuration.
func (e *Engine) Config() config.StrategyConfig { return e.cfg }

// Result is the immutable outcome of one run.
type Result struct {
	EquityCurve []types.EquityPoint `json:"equityCurve"`
	Trades      []types.Trade       `json:"trades"`
	Metrics     Metrics             `json:"metrics"`
}

// Run simulates the series from rangeStart onward. Indicators are computed
// over the full series first, so bars before rangeStart serve as lookback;
// the first bar inside the range is consumed only as the prior-day
// reference and produces no equity point. The series must be strictly
// ascending by date with positive closes; the caller guarantees that.
func (e *Engine) Run(series []types.Bar, initialCapital float64, rangeStart string, texts text.Provider) (*Result, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}
	if initialCapital <= 0 {
		return nil, ErrInvalidCapital
	}
	if texts == nil {
		texts = text.English()
	}

	var annotated []types.AnnotatedBar
	switch e.cfg.Type {
	case config.Bollinger:
		annotated = indicator.Bollinger(series, e.cfg.Period, e.cfg.Multiplier)
	case config.MACD:
		annotated = indicator.MACD(series, e.cfg.Short, e.cfg.Long, e.cfg.Signal)
	}
	if e.cfg.UseTrendFilter {
		annotated = indicator.SMA(annotated, TrendMAPeriod)
	}

	visible := annotated[:0:0]
	for _, b := range annotated {
		if b.Date >= rangeStart {
			visible = append(visible, b)
		}
	}

	e.log.Info("backtest_start",
		logger.String("strategy", string(e.cfg.Type)),
		logger.Int("bars", len(series)),
		logger.Int("visible_bars", len(visible)),
		logger.Float64("capital", initialCapital),
	)

	positionPct := e.cfg.PositionSizePct / 100
	stopLossPct := e.cfg.StopLossPct / 100
	takeProfitPct := e.cfg.TakeProfitPct / 100

	led := newLedger(initialCapital)
	trades := []types.Trade{}
	curve := []types.EquityPoint{}

	for i := 1; i < len(visible); i++ {
		prev, today := visible[i-1], visible[i]
		price := today.Close
		action := types.ActionNone

		// Risk overlay first: an exit on risk grounds preempts the
		// strategy signal, so a day never both risk-exits and re-enters.
		if led.shares > 0 {
			if typ, hit := risk.CheckExit(price, led.lastBuyPrice, stopLossPct, takeProfitPct); hit {
				tr := led.sellAll(today.Date, price, typ, texts.TypeLabel(typ), exitReason(typ, texts, price))
				trades = append(trades, tr)
				action = types.ActionSell
				e.logTrade(tr)
			}
		}

		if action == types.ActionNone {
			in := signal.Evaluate(prev, today, e.cfg.Type, texts)
			switch {
			case in.Sell && led.shares > 0:
				tr := led.sellAll(today.Date, price, types.Sell, texts.TypeLabel(types.Sell), in.Reason)
				trades = append(trades, tr)
				action = types.ActionSell
				e.logTrade(tr)
			case in.Buy && led.shares == 0:
				if e.cfg.UseTrendFilter && today.MA != nil && price < *today.MA {
					break // trend veto: the day stays action-less
				}
				if tr, ok := led.buy(today.Date, price, positionPct, texts.TypeLabel(types.Buy), in.Reason); ok {
					trades = append(trades, tr)
					action = types.ActionBuy
					e.logTrade(tr)
				}
			}
		}

		pt := types.EquityPoint{
			AnnotatedBar: today,
			Equity:       led.equity(price),
			Action:       action,
		}
		switch action {
		case types.ActionBuy:
			p := price
			pt.BuySignal = &p
		case types.ActionSell:
			p := price
			pt.SellSignal = &p
		}
		curve = append(curve, pt)
	}

	m := Summarize(initialCapital, curve, trades)

	metrics.BacktestsRun.WithLabelValues(string(e.cfg.Type)).Inc()
	metrics.FinalEquity.Set(m.FinalEquity)

	e.log.Info("backtest_complete",
		logger.Float64("final_equity", m.FinalEquity),
		logger.Float64("total_return_pct", m.TotalReturnPct),
		logger.Int("total_trades", m.TotalTrades),
	)

	return &Result{EquityCurve: curve, Trades: trades, Metrics: m}, nil
}

func (e *Engine) logTrade(tr types.Trade) {
	metrics.TradesExecuted.WithLabelValues(string(tr.Type)).Inc()
	e.log.Info("trade_executed",
		logger.String("date", tr.Date),
		logger.String("type", string(tr.Type)),
		logger.Float64("price", tr.Price),
		logger.Int("shares", tr.Shares),
		logger.Float64("fee", tr.Fee),
	)
}

func exitReason(typ types.TradeType, texts text.Provider, price float64) string {
	if typ == types.StopLoss {
		return texts.StopLoss(price)
	}
	return texts.TakeProfit(price)
}
