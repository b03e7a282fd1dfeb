package engine

import "github.com/evdnx/gobt/types"

// Metrics is the summary reduction over one run. Values are unrounded;
// presentation layers format to two decimals.
type Metrics struct {
	FinalEquity    float64 `json:"finalEquity"`
	TotalReturnPct float64 `json:"totalReturn"`
	MaxDrawdownPct float64 `json:"maxDrawdown"`
	WinRatePct     float64 `json:"winRate"`
	// TotalTrades counts completed exits (sells of any kind), matching the
	// win-rate denominator.
	TotalTrades int `json:"totalTrades"`
}

// Summarize reduces the equity curve and trade log to summary statistics in
// one pass. The drawdown uses the global-max minus global-min form over the
// whole curve, regardless of order; kept for compatibility with the
// consumers of these figures even though it can overstate the conventional
// peak-to-trough number. A sell wins only when its price strictly exceeds
// the cost basis of the position it closes.
func Summarize(initialCapital float64, curve []types.EquityPoint, trades []types.Trade) Metrics {
	m := Metrics{FinalEquity: initialCapital}
	if len(curve) > 0 {
		m.FinalEquity = curve[len(curve)-1].Equity
	}
	m.TotalReturnPct = (m.FinalEquity - initialCapital) / initialCapital * 100

	if len(curve) > 0 {
		maxEq, minEq := curve[0].Equity, curve[0].Equity
		for _, p := range curve[1:] {
			if p.Equity > maxEq {
				maxEq = p.Equity
			}
			if p.Equity < minEq {
				minEq = p.Equity
			}
		}
		if maxEq > 0 {
			m.MaxDrawdownPct = (maxEq - minEq) / maxEq * 100
		}
		if m.MaxDrawdownPct < 0 {
			m.MaxDrawdownPct = 0
		}
	}

	basis := 0.0
	wins := 0
	for _, tr := range trades {
		if tr.Type == types.Buy {
			basis = tr.Price
			continue
		}
		m.TotalTrades++
		if tr.Price > basis {
			wins++
		}
	}
	if m.TotalTrades > 0 {
		m.WinRatePct = float64(wins) / float64(m.TotalTrades) * 100
	}
	return m
}
