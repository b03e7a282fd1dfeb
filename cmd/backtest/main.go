// Command backtest runs one strategy over a bar file and prints the trade
// log and summary metrics.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/evdnx/gobt/config"
	"github.com/evdnx/gobt/engine"
	"github.com/evdnx/gobt/logger"
	"github.com/evdnx/gobt/marketdata"
	"github.com/evdnx/gobt/text"
)

func main() {
	var (
		dataPath   = flag.String("data", "", "bar file (.csv or .json)")
		configPath = flag.String("config", "", "strategy config YAML")
		capital    = flag.Float64("capital", 100_000, "initial capital")
		start      = flag.String("start", "", "range start date (YYYY-MM-DD); earlier bars are lookback only")
		lang       = flag.String("lang", "en", "trade text language (en|zh)")
	)
	flag.Parse()

	if *dataPath == "" || *configPath == "" {
		fmt.Fprintln(os.Stderr, "usage: backtest -data bars.csv -config strategy.yaml [-capital N] [-start YYYY-MM-DD] [-lang en|zh]")
		os.Exit(2)
	}

	log, err := logger.NewZapLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(log, "config_load_failed", err)
	}
	bars, err := marketdata.FileSource{Path: *dataPath}.Bars()
	if err != nil {
		fatal(log, "bars_load_failed", err)
	}
	eng, err := engine.New(cfg, log)
	if err != nil {
		fatal(log, "engine_init_failed", err)
	}
	res, err := eng.Run(bars, *capital, *start, text.ForLang(*lang))
	if err != nil {
		fatal(log, "backtest_failed", err)
	}

	fmt.Printf("%-12s %-12s %10s %8s %10s  %s\n", "DATE", "TYPE", "PRICE", "SHARES", "FEE", "REASON")
	for _, tr := range res.Trades {
		fmt.Printf("%-12s %-12s %10.2f %8d %10.2f  %s\n",
			tr.Date, tr.Label, tr.Price, tr.Shares, tr.Fee, tr.Reason)
	}
	m := res.Metrics
	fmt.Printf("\nfinal equity: %.2f\n", m.FinalEquity)
	fmt.Printf("total return: %.2f%%\n", m.TotalReturnPct)
	fmt.Printf("max drawdown: %.2f%%\n", m.MaxDrawdownPct)
	fmt.Printf("win rate:     %.2f%% (%d trades)\n", m.WinRatePct, m.TotalTrades)
}

func fatal(log logger.Logger, msg string, err error) {
	log.Error(msg, logger.Err(err))
	os.Exit(1)
}
