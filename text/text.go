// Package text supplies the human-readable trade reasons and type labels
// the engine attaches to trade records. The engine treats every string as
// opaque; swapping the provider never changes behavior.
package text

import (
	"fmt"

	"github.com/evdnx/gobt/types"
)

// Provider produces display strings for one language.
type Provider interface {
	TypeLabel(t types.TradeType) string
	BollBuy(price float64) string
	BollSell(price float64) string
	MACDGolden() string
	MACDDeath() string
	StopLoss(price float64) string
	TakeProfit(price float64) string
}

// ForLang maps a language tag to a provider, falling back to English.
func ForLang(lang string) Provider {
	if lang == "zh" {
		return Chinese()
	}
	return English()
}

type english struct{}

// English returns the en provider.
func English() Provider { return english{} }

func (english) TypeLabel(t types.TradeType) string {
	switch t {
	case types.Buy:
		return "Buy"
	case types.Sell:
		return "Sell"
	case types.StopLoss:
		return "Stop Loss"
	case types.TakeProfit:
		return "Take Profit"
	}
	return string(t)
}

func (english) BollBuy(price float64) string {
	return fmt.Sprintf("Close %.2f touched the lower band", price)
}

func (english) BollSell(price float64) string {
	return fmt.Sprintf("Close %.2f touched the upper band", price)
}

func (english) MACDGolden() string { return "MACD golden cross" }
func (english) MACDDeath() string  { return "MACD death cross" }

func (english) StopLoss(price float64) string {
	return fmt.Sprintf("Stop loss triggered at %.2f", price)
}

func (english) TakeProfit(price float64) string {
	return fmt.Sprintf("Take profit triggered at %.2f", price)
}

type chinese struct{}

// Chinese returns the zh provider.
func Chinese() Provider { return chinese{} }

func (chinese) TypeLabel(t types.TradeType) string {
	switch t {
	case types.Buy:
		return "买入"
	case types.Sell:
		return "卖出"
	case types.StopLoss:
		return "止损"
	case types.TakeProfit:
		return "止盈"
	}
	return string(t)
}

func (chinese) BollBuy(price float64) string {
	return fmt.Sprintf("收盘价 %.2f 触及布林下轨", price)
}

func (chinese) BollSell(price float64) string {
	return fmt.Sprintf("收盘价 %.2f 触及布林上轨", price)
}

func (chinese) MACDGolden() string { return "MACD 金叉" }
func (chinese) MACDDeath() string  { return "MACD 死叉" }

func (chinese) StopLoss(price float64) string {
	return fmt.Sprintf("触发止损，价格 %.2f", price)
}

func (chinese) TakeProfit(price float64) string {
	return fmt.Sprintf("触发止盈，价格 %.2f", price)
}
