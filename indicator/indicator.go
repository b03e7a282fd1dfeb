// Package indicator computes the annotation passes the engine runs before
// simulating. All functions are pure: they return a new slice of the same
// length and never mutate their input.
package indicator

import (
	"math"

	"github.com/evdnx/gobt/types"
)

// Bollinger annotates each bar with the mid/upper/lower bands over a
// trailing window of exactly period bars. Bars without a full window keep
// nil band fields; a partial window is never extrapolated. The standard
// deviation is the population form (divide by period).
func Bollinger(series []types.Bar, period int, multiplier float64) []types.AnnotatedBar {
	out := make([]types.AnnotatedBar, len(series))
	for i, b := range series {
		out[i] = types.AnnotatedBar{Bar: b}
		if i < period-1 {
			continue
		}
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += series[j].Close
		}
		mean := sum / float64(period)
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := series[j].Close - mean
			variance += d * d
		}
		sd := math.Sqrt(variance / float64(period))
		mid := mean
		upper := mean + multiplier*sd
		lower := mean - multiplier*sd
		out[i].Mid, out[i].Upper, out[i].Lower = &mid, &upper, &lower
	}
	return out
}

// MACD annotates each bar with diff, dea (signal line) and the macd
// histogram. Both EMAs are seeded to the first close and dea to zero, so the
// first bar is defined but biased neutral (diff=dea=macd=0). The recurrence
// is stateful across the whole series and must run in date order.
func MACD(series []types.Bar, short, long, signalPeriod int) []types.AnnotatedBar {
	out := make([]types.AnnotatedBar, len(series))
	alphaShort := 2 / float64(short+1)
	alphaLong := 2 / float64(long+1)
	alphaSignal := 2 / float64(signalPeriod+1)

	var emaShort, emaLong, dea float64
	for i, b := range series {
		out[i] = types.AnnotatedBar{Bar: b}
		if i == 0 {
			emaShort, emaLong, dea = b.Close, b.Close, 0
			continue
		}
		emaShort = b.Close*alphaShort + emaShort*(1-alphaShort)
		emaLong = b.Close*alphaLong + emaLong*(1-alphaLong)
		diff := emaShort - emaLong
		dea = diff*alphaSignal + dea*(1-alphaSignal)
		out[i].Diff = diff
		out[i].DEA = dea
		out[i].MACD = (diff - dea) * 2
	}
	return out
}

// SMA writes the trailing mean of close over period bars into the MA field
// of an already-annotated series, nil until the window fills. The engine
// uses it as the optional trend filter on top of either indicator family.
func SMA(series []types.AnnotatedBar, period int) []types.AnnotatedBar {
	out := make([]types.AnnotatedBar, len(series))
	copy(out, series)
	sum := 0.0
	for i := range series {
		sum += series[i].Close
		if i >= period {
			sum -= series[i-period].Close
		}
		if i >= period-1 {
			ma := sum / float64(period)
			out[i].MA = &ma
		}
	}
	return out
}
