package csvsource

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/c9s/mtcli/pkg/types"
)

// ReadKLinesFromCSV reads all the .csv files in a given directory or a single file into a slice of KLines.
// Wraps a default CSVKLineReader with Binance decoder for convenience.
// For finer grained memory management use the base kline reader.
func ReadKLinesFromCSV(path string, period types.Period) ([]types.KLine, error) {
	return ReadKLinesFromCSVWithDecoder(path, period, MakeCSVKLineReader(NewBinanceCSVKLineReader))
}

// ReadKLinesFromCSVWithDecoder permits using a custom CSVKLineReader.
func ReadKLinesFromCSVWithDecoder(path string, period types.Period, maker MakeCSVKLineReader) ([]types.KLine, error) {
	var klines []types.KLine

	err := filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".csv" {
			return nil
		}

		newKlines, err := readFile(path, period, func(_ io.Reader, r *csv.Reader) *CSVKLineReader {
			return maker(r)
		})
		if err != nil {
			return err
		}
		klines = append(klines, newKlines...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return types.SortKLines(klines), nil
}

// SniffCSVKLineReader picks the decoder from the first line of the data:
// tab separated lines are MT5 exports, semicolon separated lines are MetaTrader history files,
// anything else is a Binance kline dump.
func SniffCSVKLineReader(reader io.Reader) *CSVKLineReader {
	buffered := bufio.NewReader(reader)
	first, _ := buffered.Peek(512)
	line := string(first)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	r := csv.NewReader(buffered)
	switch {
	case strings.Contains(line, "\t"):
		return NewMetaTraderExportKLineReader(r)
	case strings.Contains(line, ";"):
		return NewMetaTraderCSVKLineReader(r)
	default:
		return NewBinanceCSVKLineReader(r)
	}
}

func readFile(path string, period types.Period, maker func(io.Reader, *csv.Reader) *CSVKLineReader) ([]types.KLine, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Read ops only so safe to ignore err return
	defer file.Close()

	klines, err := maker(file, csv.NewReader(file)).ReadAll(period)
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			decodeErr.File = path
		}
		return nil, err
	}

	return klines, nil
}

func sniffFile(path string, period types.Period) ([]types.KLine, error) {
	return readFile(path, period, func(r io.Reader, _ *csv.Reader) *CSVKLineReader {
		return SniffCSVKLineReader(r)
	})
}
