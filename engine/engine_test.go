package engine

import (
	"math"
	"testing"

	"github.com/evdnx/gobt/config"
	"github.com/evdnx/gobt/testutils"
	"github.com/evdnx/gobt/text"
	"github.com/evdnx/gobt/types"
)

func bollConfig() config.StrategyConfig {
	return config.StrategyConfig{Type: config.Bollinger, Period: 20, Multiplier: 2, PositionSizePct: 100}
}

func mustRun(t *testing.T, cfg config.StrategyConfig, closes []float64, capital float64) *Result {
	t.Helper()
	eng, err := New(cfg, testutils.NewMockLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := eng.Run(testutils.SeriesFromCloses(closes), capital, "", text.English())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return res
}

// dipSeries is the standard scenario: a flat stretch, a single dip below the
// lower band (entry), then a flat stretch long enough to flush the dip out
// of the window so the bands collapse onto the price again (exit).
func dipSeries() []float64 {
	closes := testutils.Repeat(nil, 30, 100)
	closes = append(closes, 80)
	return testutils.Repeat(closes, 20, 100)
}

func TestConstantSeriesProducesNoTrades(t *testing.T) {
	res := mustRun(t, bollConfig(), make80Fifties(), 500_000)

	if len(res.Trades) != 0 {
		t.Fatalf("expected zero trades on a constant series, got %d", len(res.Trades))
	}
	if res.Metrics.TotalTrades != 0 {
		t.Fatalf("expected zero completed trades, got %d", res.Metrics.TotalTrades)
	}
	if res.Metrics.FinalEquity != 500_000 {
		t.Fatalf("final equity must equal initial capital, got %v", res.Metrics.FinalEquity)
	}
	if len(res.EquityCurve) != 79 {
		t.Fatalf("curve must have len(series)-1 points, got %d", len(res.EquityCurve))
	}
}

func make80Fifties() []float64 {
	return testutils.Repeat(nil, 80, 50)
}

func TestBollingerRoundTrip(t *testing.T) {
	res := mustRun(t, bollConfig(), dipSeries(), 500_000)

	if len(res.Trades) != 2 {
		t.Fatalf("expected buy+sell, got %d trades: %+v", len(res.Trades), res.Trades)
	}
	buy, sell := res.Trades[0], res.Trades[1]
	if buy.Type != types.Buy || buy.Price != 80 {
		t.Fatalf("unexpected entry: %+v", buy)
	}
	if sell.Type != types.Sell || sell.Price != 100 {
		t.Fatalf("unexpected exit: %+v", sell)
	}
	if buy.Shares != 6200 || sell.Shares != 6200 {
		t.Fatalf("expected full 6200-share round trip, got %d/%d", buy.Shares, sell.Shares)
	}

	// cash accounting: 500000 - (496000 + 148.8) + (620000 - 186 - 620)
	want := 623_045.2
	if math.Abs(res.Metrics.FinalEquity-want) > 1e-6 {
		t.Fatalf("final equity %v, want %v", res.Metrics.FinalEquity, want)
	}
	if res.Metrics.WinRatePct != 100 {
		t.Fatalf("winning exit must give 100%% win rate, got %v", res.Metrics.WinRatePct)
	}
}

func TestStopLossExit(t *testing.T) {
	cfg := bollConfig()
	cfg.StopLossPct = 5
	closes := testutils.Repeat(nil, 30, 100)
	closes = append(closes, 80, 70)

	res := mustRun(t, cfg, closes, 500_000)

	if len(res.Trades) != 2 {
		t.Fatalf("expected buy then stop loss, got %+v", res.Trades)
	}
	stop := res.Trades[1]
	if stop.Type != types.StopLoss {
		t.Fatalf("expected STOP_LOSS, got %s", stop.Type)
	}
	if stop.Price != 70 {
		t.Fatalf("stop must fill at the close, got %v", stop.Price)
	}
	last := res.EquityCurve[len(res.EquityCurve)-1]
	if last.Action != types.ActionSell || last.SellSignal == nil {
		t.Fatalf("stop day must carry a sell marker: %+v", last)
	}
}

func TestTakeProfitExit(t *testing.T) {
	cfg := bollConfig()
	cfg.TakeProfitPct = 10
	closes := testutils.Repeat(nil, 30, 100)
	closes = append(closes, 80, 90)

	res := mustRun(t, cfg, closes, 500_000)

	if len(res.Trades) != 2 || res.Trades[1].Type != types.TakeProfit {
		t.Fatalf("expected take-profit exit, got %+v", res.Trades)
	}
}

func TestStopLossPreemptsSignal(t *testing.T) {
	// The stop fires on a day that is also below the lower band; the risk
	// overlay must win and the day records exactly one trade.
	cfg := bollConfig()
	cfg.StopLossPct = 5
	closes := testutils.Repeat(nil, 30, 100)
	closes = append(closes, 80, 60)

	res := mustRun(t, cfg, closes, 500_000)

	if len(res.Trades) != 2 {
		t.Fatalf("expected exactly two trades, got %+v", res.Trades)
	}
	if res.Trades[1].Type != types.StopLoss {
		t.Fatalf("risk exit must preempt the signal, got %s", res.Trades[1].Type)
	}
}

func TestWinRateFiftyPercent(t *testing.T) {
	cfg := bollConfig()
	cfg.StopLossPct = 5
	// first trip: buy 80, sell 100 (win); second: buy 80, stop at 70 (loss)
	closes := dipSeries()
	closes = append(closes, 80, 70)

	res := mustRun(t, cfg, closes, 500_000)

	if got := len(res.Trades); got != 4 {
		t.Fatalf("expected two round trips, got %d trades: %+v", got, res.Trades)
	}
	wantTypes := []types.TradeType{types.Buy, types.Sell, types.Buy, types.StopLoss}
	for i, w := range wantTypes {
		if res.Trades[i].Type != w {
			t.Fatalf("trade %d: got %s want %s", i, res.Trades[i].Type, w)
		}
	}
	if res.Metrics.TotalTrades != 2 {
		t.Fatalf("completed trades: got %d want 2", res.Metrics.TotalTrades)
	}
	if res.Metrics.WinRatePct != 50 {
		t.Fatalf("win rate: got %v want 50", res.Metrics.WinRatePct)
	}
}

func TestMACDGoldenCrossBuysOnce(t *testing.T) {
	cfg := config.StrategyConfig{Type: config.MACD, Short: 12, Long: 26, Signal: 9, PositionSizePct: 100}
	var closes []float64
	for i := 0; i < 20; i++ {
		closes = append(closes, 120-float64(i)) // 120..101
	}
	for i := 1; i <= 25; i++ {
		closes = append(closes, 101+2*float64(i)) // 103..151
	}

	res := mustRun(t, cfg, closes, 500_000)

	if len(res.Trades) != 1 {
		t.Fatalf("expected exactly one entry on the golden cross, got %+v", res.Trades)
	}
	tr := res.Trades[0]
	if tr.Type != types.Buy {
		t.Fatalf("expected BUY, got %s", tr.Type)
	}
	if tr.Shares <= 0 || tr.Shares%100 != 0 {
		t.Fatalf("shares must be a positive lot multiple, got %d", tr.Shares)
	}
}

func TestTrendFilterVetoesBuy(t *testing.T) {
	cfg := bollConfig()
	cfg.UseTrendFilter = true
	closes := testutils.Repeat(nil, 65, 100)
	closes = append(closes, 80) // below both the lower band and the MA60

	res := mustRun(t, cfg, closes, 500_000)

	if len(res.Trades) != 0 {
		t.Fatalf("trend filter must veto the buy, got %+v", res.Trades)
	}
	last := res.EquityCurve[len(res.EquityCurve)-1]
	if last.Action != types.ActionNone || last.BuySignal != nil {
		t.Fatalf("vetoed day must be action-less: %+v", last)
	}

	// same series without the filter takes the entry
	cfg.UseTrendFilter = false
	res = mustRun(t, cfg, closes, 500_000)
	if len(res.Trades) != 1 || res.Trades[0].Type != types.Buy {
		t.Fatalf("without filter the dip must be bought, got %+v", res.Trades)
	}
}

func TestRejectedBuyIsSilent(t *testing.T) {
	closes := testutils.Repeat(nil, 30, 100)
	closes = append(closes, 80)

	// 5000 cannot cover one lot at 80.
	res := mustRun(t, bollConfig(), closes, 5_000)

	if len(res.Trades) != 0 {
		t.Fatalf("unaffordable lot must be a silent no-op, got %+v", res.Trades)
	}
	last := res.EquityCurve[len(res.EquityCurve)-1]
	if last.Action != types.ActionNone || last.BuySignal != nil {
		t.Fatalf("rejected day must be action-less: %+v", last)
	}
	if res.Metrics.FinalEquity != 5_000 {
		t.Fatalf("no trade may change equity, got %v", res.Metrics.FinalEquity)
	}
}

func TestRangeStartFilterAndCurveLength(t *testing.T) {
	eng, err := New(bollConfig(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	bars := testutils.ConstantSeries(10, 50)
	// bars run 2024-01-02 .. 2024-01-11; start mid-series
	res, err := eng.Run(bars, 100_000, "2024-01-06", text.English())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.EquityCurve) != 5 {
		t.Fatalf("curve must be filtered-length minus one, got %d", len(res.EquityCurve))
	}
	if res.EquityCurve[0].Date != "2024-01-07" {
		t.Fatalf("first visible day is lookback only; curve starts at %s", res.EquityCurve[0].Date)
	}
}

func TestRunInputErrors(t *testing.T) {
	eng, err := New(bollConfig(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := eng.Run(nil, 100_000, "", text.English()); err != ErrEmptySeries {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
	bars := testutils.ConstantSeries(5, 50)
	if _, err := eng.Run(bars, 0, "", text.English()); err != ErrInvalidCapital {
		t.Fatalf("expected ErrInvalidCapital, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	if _, err := New(config.StrategyConfig{Type: "XYZ"}, nil); err == nil {
		t.Fatalf("unknown strategy type must fail")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	eng, err := New(bollConfig(), testutils.NewMockLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	bars := testutils.SeriesFromCloses(dipSeries())
	a, err := eng.Run(bars, 500_000, "", text.English())
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b, err := eng.Run(bars, 500_000, "", text.English())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if a.Metrics != b.Metrics || len(a.Trades) != len(b.Trades) {
		t.Fatalf("re-running must be deterministic: %+v vs %+v", a.Metrics, b.Metrics)
	}
}

func TestTradeTextIsOpaque(t *testing.T) {
	eng, err := New(bollConfig(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	bars := testutils.SeriesFromCloses(dipSeries())
	res, err := eng.Run(bars, 500_000, "", text.Chinese())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Trades[0].Label != "买入" {
		t.Fatalf("label must come from the provider, got %q", res.Trades[0].Label)
	}
	// behavior is identical either way
	resEn, err := eng.Run(bars, 500_000, "", text.English())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Metrics != resEn.Metrics {
		t.Fatalf("provider must not affect results: %+v vs %+v", res.Metrics, resEn.Metrics)
	}
}
