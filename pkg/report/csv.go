package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/c9s/mtcli/pkg/types"
)

var csvHeader = []string{"time", "close", "macd", "signal", "histogram"}

// CSVFileName returns {symbol}macd{period}min.csv
func CSVFileName(symbol string, period types.Period) string {
	return fmt.Sprintf("%smacd%dmin.csv", symbol, period.Minutes())
}

// Writer is a csv writer that owns the underlying file
type Writer struct {
	file io.WriteCloser

	*csv.Writer
}

func NewWriterFile(filename string) (*Writer, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	return NewWriter(f), nil
}

func NewWriter(file io.WriteCloser) *Writer {
	return &Writer{
		Writer: csv.NewWriter(file),
		file:   file,
	}
}

// WriteHeader writes the column names
func (w *Writer) WriteHeader() error {
	return w.Write(csvHeader)
}

// WriteRow writes the row with the full float precision
func (w *Writer) WriteRow(row Row) error {
	return w.Write([]string{
		row.Time.UTC().Format(TimeFormat),
		strconv.FormatFloat(row.Close, 'f', -1, 64),
		strconv.FormatFloat(row.MACD, 'f', -1, 64),
		strconv.FormatFloat(row.Signal, 'f', -1, 64),
		strconv.FormatFloat(row.Histogram, 'f', -1, 64),
	})
}

func (w *Writer) Close() error {
	w.Writer.Flush()
	return multierr.Append(w.Writer.Error(), w.file.Close())
}

// WriteCSVFile writes the header and the rows into dir/{symbol}macd{period}min.csv,
// an existing file is overwritten. It returns the path of the written file.
func WriteCSVFile(dir, symbol string, period types.Period, rows []Row) (_ string, err error) {
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "unable to create the output directory %s", dir)
	}

	filename := filepath.Join(dir, CSVFileName(symbol, period))
	w, err := NewWriterFile(filename)
	if err != nil {
		return "", errors.Wrapf(err, "unable to create %s", filename)
	}

	defer func() {
		err = multierr.Append(err, w.Close())
	}()

	if err := w.WriteHeader(); err != nil {
		return "", err
	}

	for _, row := range rows {
		if err := w.WriteRow(row); err != nil {
			return "", err
		}
	}

	return filename, nil
}
