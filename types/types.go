package types

// TradeType classifies an executed trade for reporting.
type TradeType string

const (
	Buy        TradeType = "BUY"
	Sell       TradeType = "SELL"
	StopLoss   TradeType = "STOP_LOSS"
	TakeProfit TradeType = "TAKE_PROFIT"
)

// Action marks what happened on an equity-curve day. Risk exits collapse to
// ActionSell so chart consumers only deal with two marker kinds.
type Action string

const (
	ActionNone Action = ""
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// Bar is one trading day of OHLCV data. Dates are ISO "2006-01-02" strings,
// so lexical order equals chronological order. The series handed to the
// engine must be strictly ascending by date.
type Bar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// AnnotatedBar is a Bar plus indicator fields. Pointer fields stay nil until
// the rolling window has filled; the MACD family is defined from the first
// bar (seeded neutral).
type AnnotatedBar struct {
	Bar

	// Bollinger
	Mid   *float64 `json:"mb,omitempty"`
	Upper *float64 `json:"ub,omitempty"`
	Lower *float64 `json:"lb,omitempty"`

	// MACD
	Diff float64 `json:"diff"`
	DEA  float64 `json:"dea"`
	MACD float64 `json:"macd"`

	// Trend filter
	MA *float64 `json:"ma,omitempty"`
}

// Trade is one executed (non-rejected) action. Type is the canonical kind;
// Label and Reason come from the injected text provider and are opaque to
// the engine.
type Trade struct {
	Date   string    `json:"date"`
	Type   TradeType `json:"type"`
	Label  string    `json:"label"`
	Price  float64   `json:"price"`
	Shares int       `json:"shares"`
	Reason string    `json:"reason"`
	Fee    float64   `json:"fee"`
}

// EquityPoint is one day of the equity curve. BuySignal/SellSignal carry the
// fill price when an action happened, for chart markers.
type EquityPoint struct {
	AnnotatedBar

	Equity     float64  `json:"equity"`
	Action     Action   `json:"action,omitempty"`
	BuySignal  *float64 `json:"buySignal,omitempty"`
	SellSignal *float64 `json:"sellSignal,omitempty"`
}
