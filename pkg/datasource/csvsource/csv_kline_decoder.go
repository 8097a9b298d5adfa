package csvsource

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/c9s/mtcli/pkg/types"
)

// MetaTraderTimeFormat is the time format expected by the MetaTrader decoder when cols [0] and [1] are used.
const MetaTraderTimeFormat = "02/01/2006 15:04"

// MetaTraderExportTimeFormat is the <DATE> <TIME> format of the MT5 "Export bars" files.
const MetaTraderExportTimeFormat = "2006.01.02 15:04:05"

var (
	// ErrNotEnoughColumns is returned when the CSV price record does not have enough columns.
	ErrNotEnoughColumns = errors.New("not enough columns")

	// ErrInvalidTimeFormat is returned when the CSV price record does not have a valid time format.
	ErrInvalidTimeFormat = errors.New("cannot parse time string")

	// ErrInvalidPriceFormat is returned when the CSV price record does not prices in expected format.
	ErrInvalidPriceFormat = errors.New("OHLC prices must be in valid decimal format")

	// ErrInvalidVolumeFormat is returned when the CSV price record does not have a valid volume format.
	ErrInvalidVolumeFormat = errors.New("volume must be in valid float format")

	// ErrHeaderRecord is returned for the column header line, readers skip it.
	ErrHeaderRecord = errors.New("header record")
)

// CSVKLineDecoder is an extension point for CSVKLineReader to support custom file formats.
type CSVKLineDecoder func(record []string, period types.Period) (types.KLine, error)

func parsePrices(k *types.KLine, fields []string) error {
	var prices [4]float64
	for i, s := range fields[:4] {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return ErrInvalidPriceFormat
		}
		prices[i] = f
	}

	k.Open, k.High, k.Low, k.Close = prices[0], prices[1], prices[2], prices[3]
	return nil
}

func parseVolume(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, ErrInvalidVolumeFormat
	}
	return v, nil
}

func newKLine(start time.Time, period types.Period) types.KLine {
	return types.KLine{
		StartTime: start,
		EndTime:   start.Add(period.Duration() - time.Millisecond),
		Period:    period,
		Closed:    true,
	}
}

// BinanceCSVKLineDecoder decodes a record of the Binance public kline dumps into a KLine.
// The open time is in milliseconds, or microseconds for the spot dumps since 2025.
// The volume column is optional.
func BinanceCSVKLineDecoder(record []string, period types.Period) (types.KLine, error) {
	var empty types.KLine

	if len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "open_time") {
		return empty, ErrHeaderRecord
	}

	if len(record) < 5 {
		return empty, ErrNotEnoughColumns
	}

	ts, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return empty, ErrInvalidTimeFormat
	}

	var start time.Time
	if ts > 1e14 {
		start = time.UnixMicro(ts).UTC()
	} else {
		start = time.UnixMilli(ts).UTC()
	}

	k := newKLine(start, period)
	if err := parsePrices(&k, record[1:5]); err != nil {
		return empty, err
	}

	if len(record) > 5 {
		if k.Volume, err = parseVolume(record[5]); err != nil {
			return empty, err
		}
	}

	return k, nil
}

// MetaTraderCSVKLineDecoder decodes a `02/01/2006;15:04;o;h;l;c;v` record into a KLine.
func MetaTraderCSVKLineDecoder(record []string, period types.Period) (types.KLine, error) {
	var empty types.KLine

	if len(record) < 6 {
		return empty, ErrNotEnoughColumns
	}

	t, err := time.Parse(MetaTraderTimeFormat, strings.TrimSpace(record[0])+" "+strings.TrimSpace(record[1]))
	if err != nil {
		return empty, ErrInvalidTimeFormat
	}

	k := newKLine(t, period)
	if err := parsePrices(&k, record[2:6]); err != nil {
		return empty, err
	}

	if len(record) > 6 {
		if k.Volume, err = parseVolume(record[6]); err != nil {
			return empty, err
		}
	}

	return k, nil
}

// MetaTraderExportKLineDecoder decodes the tab separated bars exported by the MT5 terminal:
//
//	<DATE>	<TIME>	<OPEN>	<HIGH>	<LOW>	<CLOSE>	<TICKVOL>	<VOL>	<SPREAD>
//
// The tick volume is used as the bar volume.
func MetaTraderExportKLineDecoder(record []string, period types.Period) (types.KLine, error) {
	var empty types.KLine

	if len(record) > 0 && strings.HasPrefix(strings.TrimPrefix(strings.TrimSpace(record[0]), "\ufeff"), "<") {
		return empty, ErrHeaderRecord
	}

	if len(record) < 6 {
		return empty, ErrNotEnoughColumns
	}

	t, err := time.Parse(MetaTraderExportTimeFormat, strings.TrimSpace(record[0])+" "+strings.TrimSpace(record[1]))
	if err != nil {
		return empty, ErrInvalidTimeFormat
	}

	k := newKLine(t, period)
	if err := parsePrices(&k, record[2:6]); err != nil {
		return empty, err
	}

	if len(record) > 6 {
		if k.Volume, err = parseVolume(record[6]); err != nil {
			return empty, err
		}
	}

	return k, nil
}
