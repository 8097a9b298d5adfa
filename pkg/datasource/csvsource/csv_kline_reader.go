package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/c9s/mtcli/pkg/types"
)

var _ KLineReader = (*CSVKLineReader)(nil)

// KLineReader is an interface for reading candlesticks.
type KLineReader interface {
	Read(period types.Period) (types.KLine, error)
	ReadAll(period types.Period) ([]types.KLine, error)
}

// CSVKLineReader is a KLineReader that reads from a CSV file.
type CSVKLineReader struct {
	csv     *csv.Reader
	decoder CSVKLineDecoder
}

// MakeCSVKLineReader is a factory method type that creates a new CSVKLineReader.
type MakeCSVKLineReader func(csv *csv.Reader) *CSVKLineReader

// NewCSVKLineReader creates a new CSVKLineReader with the default Binance decoder.
func NewCSVKLineReader(csv *csv.Reader) *CSVKLineReader {
	return NewCSVKLineReaderWithDecoder(csv, BinanceCSVKLineDecoder)
}

// NewCSVKLineReaderWithDecoder creates a new CSVKLineReader with the given decoder.
func NewCSVKLineReaderWithDecoder(csv *csv.Reader, decoder CSVKLineDecoder) *CSVKLineReader {
	csv.FieldsPerRecord = -1
	csv.TrimLeadingSpace = true
	return &CSVKLineReader{
		csv:     csv,
		decoder: decoder,
	}
}

// NewBinanceCSVKLineReader creates a new CSVKLineReader for Binance CSV files.
func NewBinanceCSVKLineReader(csv *csv.Reader) *CSVKLineReader {
	return NewCSVKLineReaderWithDecoder(csv, BinanceCSVKLineDecoder)
}

// NewMetaTraderCSVKLineReader creates a new CSVKLineReader for MetaTrader CSV files.
func NewMetaTraderCSVKLineReader(csv *csv.Reader) *CSVKLineReader {
	csv.Comma = ';'
	return NewCSVKLineReaderWithDecoder(csv, MetaTraderCSVKLineDecoder)
}

// NewMetaTraderExportKLineReader creates a new CSVKLineReader for the MT5 tab separated exports.
func NewMetaTraderExportKLineReader(csv *csv.Reader) *CSVKLineReader {
	csv.Comma = '\t'
	csv.LazyQuotes = true
	return NewCSVKLineReaderWithDecoder(csv, MetaTraderExportKLineDecoder)
}

// Read reads the next KLine from the underlying CSV data, header records are skipped.
func (r *CSVKLineReader) Read(period types.Period) (types.KLine, error) {
	for {
		rec, err := r.csv.Read()
		if err != nil {
			return types.KLine{}, err
		}

		k, err := r.decoder(rec, period)
		if errors.Is(err, ErrHeaderRecord) {
			continue
		}
		return k, err
	}
}

// ReadAll reads all the KLines from the underlying CSV data.
func (r *CSVKLineReader) ReadAll(period types.Period) ([]types.KLine, error) {
	var ks []types.KLine
	for {
		k, err := r.Read(period)
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, err
			}

			line, _ := r.csv.FieldPos(0)
			return nil, &DecodeError{Line: line, Err: err}
		}
		ks = append(ks, k)
	}

	return ks, nil
}

// DecodeError reports the line of the record that can not be decoded
type DecodeError struct {
	File string
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: line %d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
