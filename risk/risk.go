// Package risk holds the position-level risk rules: the stop-loss /
// take-profit overlay and lot-based entry sizing. Both are pure functions;
// the engine owns all state.
package risk

import (
	"math"

	"github.com/evdnx/gobt/types"
)

// CheckExit evaluates the risk overlay against an open position's cost
// basis. stopLossPct and takeProfitPct are fractional (0.05 = 5 %); zero
// disables the respective rule. Stop-loss is checked first and wins if both
// thresholds are satisfiable.
func CheckExit(price, costBasis, stopLossPct, takeProfitPct float64) (types.TradeType, bool) {
	if stopLossPct > 0 && price <= costBasis*(1-stopLossPct) {
		return types.StopLoss, true
	}
	if takeProfitPct > 0 && price >= costBasis*(1+takeProfitPct) {
		return types.TakeProfit, true
	}
	return "", false
}

// LotShares sizes an entry: min(cash, cash*positionPct) is investable, and
// the result is the largest whole-lot share count whose cost including
// commission fits inside it. Returns 0 when even one lot is unaffordable.
// positionPct is fractional (1 = full position).
func LotShares(cash, positionPct, price, commissionRate float64, lotSize int) int {
	investable := math.Min(cash, cash*positionPct)
	if investable <= price*float64(lotSize) {
		return 0
	}
	lots := math.Floor(investable / (price * float64(lotSize) * (1 + commissionRate)))
	return int(lots) * lotSize
}
