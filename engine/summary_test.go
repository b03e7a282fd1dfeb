package engine

import (
	"testing"

	"github.com/evdnx/gobt/types"
)

func curveOf(equities ...float64) []types.EquityPoint {
	out := make([]types.EquityPoint, len(equities))
	for i, e := range equities {
		out[i].Equity = e
	}
	return out
}

func TestSummarizeEmptyCurve(t *testing.T) {
	m := Summarize(100_000, nil, nil)
	if m.FinalEquity != 100_000 || m.TotalReturnPct != 0 {
		t.Fatalf("empty curve must fall back to initial capital: %+v", m)
	}
	if m.MaxDrawdownPct != 0 || m.WinRatePct != 0 || m.TotalTrades != 0 {
		t.Fatalf("empty run must have zeroed statistics: %+v", m)
	}
}

func TestSummarizeReturnAndDrawdown(t *testing.T) {
	m := Summarize(100, curveOf(100, 120, 90), nil)
	if m.FinalEquity != 90 {
		t.Fatalf("final equity: %v", m.FinalEquity)
	}
	if m.TotalReturnPct != -10 {
		t.Fatalf("total return: %v", m.TotalReturnPct)
	}
	// global max 120, global min 90 -> 25%
	if m.MaxDrawdownPct != 25 {
		t.Fatalf("drawdown: %v", m.MaxDrawdownPct)
	}
}

func TestSummarizeDrawdownIgnoresOrder(t *testing.T) {
	// The trough precedes the peak; the figure is still max-min over the
	// whole curve. Kept deliberately for compatibility.
	m := Summarize(100, curveOf(90, 100, 120), nil)
	if m.MaxDrawdownPct != 25 {
		t.Fatalf("drawdown: %v", m.MaxDrawdownPct)
	}
}

func TestSummarizeDrawdownBounds(t *testing.T) {
	for _, c := range [][]float64{{50}, {50, 50}, {1, 1000}, {1000, 1}} {
		m := Summarize(100, curveOf(c...), nil)
		if m.MaxDrawdownPct < 0 || m.MaxDrawdownPct > 100 {
			t.Fatalf("drawdown out of [0,100] for %v: %v", c, m.MaxDrawdownPct)
		}
	}
}

func TestSummarizeWinRate(t *testing.T) {
	trades := []types.Trade{
		{Type: types.Buy, Price: 100},
		{Type: types.Sell, Price: 110},
		{Type: types.Buy, Price: 100},
		{Type: types.StopLoss, Price: 90},
	}
	m := Summarize(100, curveOf(100), trades)
	if m.TotalTrades != 2 {
		t.Fatalf("sell count: %d", m.TotalTrades)
	}
	if m.WinRatePct != 50 {
		t.Fatalf("win rate: %v", m.WinRatePct)
	}
}

func TestSummarizeEqualPriceExitIsNotAWin(t *testing.T) {
	trades := []types.Trade{
		{Type: types.Buy, Price: 100},
		{Type: types.Sell, Price: 100},
	}
	m := Summarize(100, curveOf(100), trades)
	if m.WinRatePct != 0 {
		t.Fatalf("flat exit must not count as a win: %v", m.WinRatePct)
	}
}
