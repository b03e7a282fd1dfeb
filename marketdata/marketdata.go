// Package marketdata supplies historical bar series to the engine behind a
// single Source interface. The engine never validates its input, so shape
// validation (ascending unique dates, positive closes) happens here at the
// boundary.
package marketdata

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/evdnx/gobt/types"
)

// Source returns one ordered daily series for one instrument.
type Source interface {
	Bars() ([]types.Bar, error)
}

// FileSource reads bars from a .csv or .json file.
type FileSource struct {
	Path string
}

func (f FileSource) Bars() ([]types.Bar, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open bar file: %w", err)
	}
	defer file.Close()

	var bars []types.Bar
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".csv":
		bars, err = ParseCSV(file)
	case ".json":
		bars, err = ParseJSON(file)
	default:
		return nil, fmt.Errorf("unsupported bar file extension %q", filepath.Ext(f.Path))
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(bars); err != nil {
		return nil, err
	}
	return bars, nil
}

// ParseCSV reads bars from "date,open,high,low,close,volume" rows. A header
// row is detected and skipped.
func ParseCSV(r io.Reader) ([]types.Bar, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	bars := make([]types.Bar, 0, len(rows))
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("csv row %d: expected 6 columns, got %d", i+1, len(row))
		}
		if i == 0 && strings.EqualFold(row[0], "date") {
			continue
		}
		b := types.Bar{Date: row[0]}
		fields := []struct {
			name string
			dst  *float64
		}{
			{"open", &b.Open},
			{"high", &b.High},
			{"low", &b.Low},
			{"close", &b.Close},
			{"volume", &b.Volume},
		}
		for j, f := range fields {
			v, err := strconv.ParseFloat(row[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("csv row %d: bad %s %q", i+1, f.name, row[j+1])
			}
			*f.dst = v
		}
		bars = append(bars, b)
	}
	return bars, nil
}

// ParseJSON reads a JSON array of bar objects.
func ParseJSON(r io.Reader) ([]types.Bar, error) {
	var bars []types.Bar
	if err := json.NewDecoder(r).Decode(&bars); err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	return bars, nil
}

// Validate enforces the series contract the engine relies on: strictly
// ascending unique dates, positive closes, non-negative volume.
func Validate(bars []types.Bar) error {
	for i, b := range bars {
		if b.Date == "" {
			return fmt.Errorf("bar %d: missing date", i)
		}
		if b.Close <= 0 {
			return fmt.Errorf("bar %d (%s): close must be positive, got %v", i, b.Date, b.Close)
		}
		if b.Volume < 0 {
			return fmt.Errorf("bar %d (%s): negative volume %v", i, b.Date, b.Volume)
		}
		if i > 0 && bars[i-1].Date >= b.Date {
			return fmt.Errorf("bar %d (%s): dates must be strictly ascending, previous is %s", i, b.Date, bars[i-1].Date)
		}
	}
	return nil
}
