package csvsource

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/c9s/mtcli/pkg/types"
)

var binanceCSVHeader = []string{"open_time", "open", "high", "low", "close", "volume"}

// KLinesFileName returns the file name the csv source globs for, e.g. BTCUSDT-5m-2025-07-01.csv
func KLinesFileName(symbol string, period types.Period, klines []types.KLine) string {
	name := symbol + "-" + period.Interval().String()
	if len(klines) > 0 {
		name += "-" + klines[0].StartTime.UTC().Format("2006-01-02")
	}
	return name + ".csv"
}

// WriteKLines writes the klines in the binance csv layout into dir and returns the file path.
// The written file can be read back by the csv source of dir.
func WriteKLines(dir, symbol string, period types.Period, klines []types.KLine) (file string, err error) {
	if len(klines) == 0 {
		return "", fmt.Errorf("no klines to write")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "unable to create directory %s", dir)
	}

	file = filepath.Join(dir, KLinesFileName(symbol, period, klines))
	f, err := os.Create(file)
	if err != nil {
		return "", errors.Wrap(err, "failed to open file")
	}

	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	w := csv.NewWriter(f)
	if err := w.Write(binanceCSVHeader); err != nil {
		return file, errors.Wrap(err, "writing header to file")
	}

	for _, k := range klines {
		row := []string{
			strconv.FormatInt(k.StartTime.UnixMilli(), 10),
			strconv.FormatFloat(k.Open, 'f', -1, 64),
			strconv.FormatFloat(k.High, 'f', -1, 64),
			strconv.FormatFloat(k.Low, 'f', -1, 64),
			strconv.FormatFloat(k.Close, 'f', -1, 64),
			strconv.FormatFloat(k.Volume, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return file, errors.Wrap(err, "writing record to file")
		}
	}

	w.Flush()
	return file, w.Error()
}
