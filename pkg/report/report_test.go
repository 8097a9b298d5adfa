package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/mtcli/pkg/indicator"
	"github.com/c9s/mtcli/pkg/types"
)

func testKLines(closes ...float64) []types.KLine {
	start := time.Date(2025, 7, 4, 9, 0, 0, 0, time.UTC)
	var klines []types.KLine
	for i, c := range closes {
		klines = append(klines, types.KLine{
			StartTime: start.Add(time.Duration(i) * 5 * time.Minute),
			Period:    types.Period5m,
			Close:     c,
		})
	}
	return klines
}

func TestRows(t *testing.T) {
	klines := testKLines(10, 11, 12)
	series := indicator.CalculateMACD([]float64{10, 11, 12}, indicator.DefaultMACDConfig)

	rows := Rows(klines, series)
	require.Len(t, rows, 3)
	assert.Equal(t, klines[2].StartTime, rows[2].Time)
	assert.Equal(t, 12.0, rows[2].Close)
	assert.Equal(t, series.Histogram[1], rows[1].Histogram)
	assert.InDelta(t, rows[1].MACD-rows[1].Signal, rows[1].Histogram, 1e-12)

	assert.Len(t, Rows(klines, indicator.MACDSeries{}), 0)
}

func TestTail(t *testing.T) {
	rows := make([]Row, 15)
	assert.Len(t, Tail(rows, 10), 10)
	assert.Len(t, Tail(rows[:3], 10), 3)
	assert.Len(t, Tail(rows, 0), 15)
}

func TestCSVFileName(t *testing.T) {
	assert.Equal(t, "WINQ25macd5min.csv", CSVFileName("WINQ25", types.Period5m))
	assert.Equal(t, "BTCUSDTmacd60min.csv", CSVFileName("BTCUSDT", types.Period1h))
}

func TestWriteCSVFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	rows := []Row{
		{Time: time.Date(2025, 7, 4, 9, 0, 0, 0, time.UTC), Close: 136500, MACD: 0, Signal: 0, Histogram: 0},
		{Time: time.Date(2025, 7, 4, 9, 5, 0, 0, time.UTC), Close: 136655.5, MACD: 0.0797720797720789, Signal: 0.01595441595441578, Histogram: 0.06381766381766311},
	}

	filename, err := WriteCSVFile(dir, "WINQ25", types.Period5m, rows)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "WINQ25macd5min.csv"), filename)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "time,close,macd,signal,histogram", lines[0])
	assert.Equal(t, "2025-07-04 09:00:00,136500,0,0,0", lines[1])
	assert.Equal(t, "2025-07-04 09:05:00,136655.5,0.0797720797720789,0.01595441595441578,0.06381766381766311", lines[2])

	// overwritten
	filename, err = WriteCSVFile(dir, "WINQ25", types.Period5m, rows[:1])
	require.NoError(t, err)
	data, err = os.ReadFile(filename)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 2)
}

func TestPrintTable(t *testing.T) {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	klines := testKLines(closes...)
	rows := Rows(klines, indicator.CalculateMACD(closes, indicator.DefaultMACDConfig))

	var buf bytes.Buffer
	PrintTable(&buf, rows, DefaultTableRows, nil)

	out := buf.String()
	assert.Contains(t, out, "HISTOGRAM")
	assert.Contains(t, out, "2025-07-04 10:10:00")
	assert.Contains(t, out, "114.00")
	// the 5 oldest rows are not printed
	assert.NotContains(t, out, "2025-07-04 09:20:00")
	assert.Contains(t, out, "2025-07-04 09:25:00")
}
