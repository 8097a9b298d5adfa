package report

import (
	"time"

	"github.com/c9s/mtcli/pkg/indicator"
	"github.com/c9s/mtcli/pkg/types"
)

// TimeFormat is the time layout of the console table and the csv file, always in UTC
const TimeFormat = "2006-01-02 15:04:05"

// Row is one bar with its MACD values
type Row struct {
	Time      time.Time `json:"time" db:"start_time"`
	Close     float64   `json:"close" db:"close"`
	MACD      float64   `json:"macd" db:"macd"`
	Signal    float64   `json:"signal" db:"signal"`
	Histogram float64   `json:"histogram" db:"histogram"`
}

// Rows zips the klines and the index-aligned series, the shorter one decides the length
func Rows(klines []types.KLine, series indicator.MACDSeries) []Row {
	n := len(klines)
	if l := series.Length(); l < n {
		n = l
	}

	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		rows[i] = Row{
			Time:      klines[i].StartTime.UTC(),
			Close:     klines[i].Close,
			MACD:      series.MACD[i],
			Signal:    series.Signal[i],
			Histogram: series.Histogram[i],
		}
	}
	return rows
}

// Tail returns the last n rows
func Tail(rows []Row, n int) []Row {
	if n <= 0 || len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}
