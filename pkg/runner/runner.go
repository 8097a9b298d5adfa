package runner

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/c9s/mtcli/pkg/datasource/csvsource"
	"github.com/c9s/mtcli/pkg/exchange/batch"
	"github.com/c9s/mtcli/pkg/indicator"
	"github.com/c9s/mtcli/pkg/report"
	"github.com/c9s/mtcli/pkg/service"
	"github.com/c9s/mtcli/pkg/types"
)

var log = logrus.WithField("component", "runner")

// ErrNoDataReceived is returned when the source has no bars of the symbol
var ErrNoDataReceived = errors.New("no data received")

type Options struct {
	Symbol    string
	Days      int
	Period    int
	Save      bool
	OutputDir string

	// SaveKLines dumps the queried klines under OutputDir/klines in the binance csv layout
	SaveKLines bool

	MACD indicator.MACDConfig

	// TableRows is the number of the latest rows printed, report.DefaultTableRows when zero
	TableRows int
}

// Recorder persists the computed rows, service.MACDService is the database one
type Recorder interface {
	BatchInsert(ctx context.Context, records []service.MACDRecord) error
}

// Runner executes one MACD invocation over a querier it does not own.
type Runner struct {
	Options

	Querier types.KLineQuerier

	// Exchange labels the recorded rows, the querier's Name() is used when it's empty
	Exchange types.ExchangeName

	Stdout     io.Writer
	TableStyle *table.Style

	Recorder Recorder

	Limiter   *rate.Limiter
	PageLimit int

	// EndTime is the end of the queried history, nil means now
	EndTime *time.Time
}

type Result struct {
	Symbol string
	Period types.Period
	KLines []types.KLine
	Series indicator.MACDSeries
	Rows   []report.Row

	// File is the written csv file, empty when saving is not requested
	File string

	KLinesFile string
}

func (r *Runner) exchangeName() types.ExchangeName {
	if r.Exchange != "" {
		return r.Exchange
	}

	if named, ok := r.Querier.(interface{ Name() types.ExchangeName }); ok {
		return named.Name()
	}

	return ""
}

func (r *Runner) Run(ctx context.Context) (*Result, error) {
	period, err := types.ValidPeriod(r.Period)
	if err != nil {
		return nil, err
	}

	count, err := types.BarCount(r.Days, period)
	if err != nil {
		return nil, err
	}

	log.Infof("querying %d %s klines of %s", count, period, r.Symbol)

	query := &batch.KLineBatchQuery{
		KLineQuerier: r.Querier,
		PageLimit:    r.PageLimit,
		Limiter:      r.Limiter,
	}

	klines, err := query.QueryRecent(ctx, r.Symbol, period, count, r.EndTime)
	if err != nil {
		if isNoDataError(err) {
			log.WithError(err).Warnf("no data received for %s", r.Symbol)
			return nil, errors.Wrapf(ErrNoDataReceived, "%s: %v", r.Symbol, err)
		}

		return nil, err
	}

	if len(klines) == 0 {
		return nil, errors.Wrap(ErrNoDataReceived, r.Symbol)
	}

	if len(klines) < count {
		log.Warnf("%s: only %d of %d %s klines are available", r.Symbol, len(klines), count, period)
	}

	closes := types.KLineWindow(klines).Closes()
	series := indicator.CalculateMACD(closes, r.MACD)
	rows := report.Rows(klines, series)

	result := &Result{
		Symbol: r.Symbol,
		Period: period,
		KLines: klines,
		Series: series,
		Rows:   rows,
	}

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	tableRows := r.TableRows
	if tableRows <= 0 {
		tableRows = report.DefaultTableRows
	}
	report.PrintTable(stdout, rows, tableRows, r.TableStyle)

	if r.Save {
		file, err := report.WriteCSVFile(r.OutputDir, r.Symbol, period, rows)
		if err != nil {
			return result, err
		}

		result.File = file
		log.Infof("MACD saved to %s", file)
	}

	if r.SaveKLines {
		file, err := csvsource.WriteKLines(filepath.Join(r.OutputDir, "klines"), r.Symbol, period, klines)
		if err != nil {
			return result, err
		}

		result.KLinesFile = file
		log.Infof("klines saved to %s", file)
	}

	if r.Recorder != nil {
		if err := r.Recorder.BatchInsert(ctx, r.records(period, rows)); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (r *Runner) records(period types.Period, rows []report.Row) []service.MACDRecord {
	exchangeName := r.exchangeName()
	records := make([]service.MACDRecord, len(rows))
	for i, row := range rows {
		records[i] = service.MACDRecord{
			Exchange:  exchangeName,
			Symbol:    r.Symbol,
			Period:    period,
			StartTime: row.Time,
			Close:     row.Close,
			MACD:      row.MACD,
			Signal:    row.Signal,
			Histogram: row.Histogram,
		}
	}
	return records
}

// isNoDataError reports the source errors that mean the symbol yields no bars:
// an unknown symbol or an unreachable source. Cancellations are not included.
func isNoDataError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if errors.Is(err, types.ErrSymbolNotFound) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
