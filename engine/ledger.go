package engine

import (
	"math"

	"github.com/evdnx/gobt/risk"
	"github.com/evdnx/gobt/types"
)

// Cost model and market conventions. Commission applies on both sides with
// a floor; the transfer tax applies on exit only.
const (
	CommissionRate  = 0.0003
	MinCommission   = 5.0
	TransferTaxRate = 0.001
	LotSize         = 100
	TrendMAPeriod   = 60
)

// ledger is the portfolio state machine: Flat (shares==0) or Long
// (shares>0), at most one open position, full liquidation on every exit.
// Monetary values stay unrounded while accumulating; only the reported fee
// is rounded.
type ledger struct {
	cash         float64
	shares       int
	lastBuyPrice float64
}

func newLedger(initialCapital float64) *ledger {
	return &ledger{cash: initialCapital}
}

func (l *ledger) equity(price float64) float64 {
	return l.cash + float64(l.shares)*price
}

// buy attempts to open a position. positionPct is fractional. It returns
// false without mutating anything when no whole lot fits the investable
// cash, or when the rounded cost still exceeds cash.
func (l *ledger) buy(date string, price, positionPct float64, label, reason string) (types.Trade, bool) {
	shares := risk.LotShares(l.cash, positionPct, price, CommissionRate, LotSize)
	if shares == 0 {
		return types.Trade{}, false
	}
	tradeValue := float64(shares) * price
	fee := commission(tradeValue)
	totalCost := tradeValue + fee
	if totalCost > l.cash {
		return types.Trade{}, false
	}
	l.cash -= totalCost
	l.shares += shares
	l.lastBuyPrice = price
	return types.Trade{
		Date:   date,
		Type:   types.Buy,
		Label:  label,
		Price:  price,
		Shares: shares,
		Reason: reason,
		Fee:    round2(fee),
	}, true
}

// sellAll liquidates the whole position. The caller guarantees shares>0.
func (l *ledger) sellAll(date string, price float64, typ types.TradeType, label, reason string) types.Trade {
	sold := l.shares
	tradeValue := float64(sold) * price
	fee := commission(tradeValue)
	tax := tradeValue * TransferTaxRate
	l.cash += tradeValue - fee - tax
	l.shares = 0
	return types.Trade{
		Date:   date,
		Type:   typ,
		Label:  label,
		Price:  price,
		Shares: sold,
		Reason: reason,
		Fee:    round2(fee + tax),
	}
}

func commission(tradeValue float64) float64 {
	c := tradeValue * CommissionRate
	if c < MinCommission {
		c = MinCommission
	}
	return c
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
