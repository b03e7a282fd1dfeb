// Package signal derives per-day trading intent from indicator state. It is
// a pure function of the prior and current annotated bars and never looks at
// portfolio state.
package signal

import (
	"github.com/evdnx/gobt/config"
	"github.com/evdnx/gobt/text"
	"github.com/evdnx/gobt/types"
)

// Intent is the strategy's view of one day. Buy and Sell are mutually
// exclusive: the sell condition is evaluated first, so on a degenerate day
// where both hold (collapsed bands equal to the close) the intent is sell.
type Intent struct {
	Buy    bool
	Sell   bool
	Reason string
}

// Evaluate computes the intent for today given yesterday's annotated bar.
//
// BOLL uses the touch-or-breach convention: boundary equality counts. MACD
// signals on the diff line crossing its signal line between the two bars.
func Evaluate(prev, today types.AnnotatedBar, typ config.StrategyType, texts text.Provider) Intent {
	price := today.Close
	switch typ {
	case config.Bollinger:
		if today.Upper == nil || today.Lower == nil {
			return Intent{}
		}
		if price >= *today.Upper {
			return Intent{Sell: true, Reason: texts.BollSell(price)}
		}
		if price <= *today.Lower {
			return Intent{Buy: true, Reason: texts.BollBuy(price)}
		}
	case config.MACD:
		if prev.Diff >= prev.DEA && today.Diff < today.DEA {
			return Intent{Sell: true, Reason: texts.MACDDeath()}
		}
		if prev.Diff <= prev.DEA && today.Diff > today.DEA {
			return Intent{Buy: true, Reason: texts.MACDGolden()}
		}
	}
	return Intent{}
}
