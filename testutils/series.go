package testutils

import (
	"time"

	"github.com/evdnx/gobt/types"
)

// SeriesStart is the first date of every generated series.
const SeriesStart = "2024-01-02"

// SeriesFromCloses builds a daily bar series with consecutive dates and
// OHLC derived from the close, so tests only reason about closing prices.
func SeriesFromCloses(closes []float64) []types.Bar {
	start, _ := time.Parse("2006-01-02", SeriesStart)
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		bars[i] = types.Bar{
			Date:   start.AddDate(0, 0, i).Format("2006-01-02"),
			Open:   c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 10_000,
		}
	}
	return bars
}

// ConstantSeries builds n bars all closing at the same price.
func ConstantSeries(n int, close float64) []types.Bar {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = close
	}
	return SeriesFromCloses(closes)
}

// Repeat appends n copies of close to an existing close slice; handy for
// composing scenario series.
func Repeat(closes []float64, n int, close float64) []float64 {
	for i := 0; i < n; i++ {
		closes = append(closes, close)
	}
	return closes
}
