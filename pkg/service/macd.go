package service

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/c9s/mtcli/pkg/types"
)

const MACDTableName = "macd_values"

// DefaultBatchInsertSize is the max number of records of one insert statement
const DefaultBatchInsertSize = 500

var macdUniqueColumns = []string{"exchange", "symbol", "period", "start_time"}
var macdValueColumns = []string{"close", "macd", "signal", "histogram"}

// MACDRecord is one computed row of a bar
type MACDRecord struct {
	GID       uint64             `json:"gid,omitempty" db:"gid"`
	Exchange  types.ExchangeName `json:"exchange" db:"exchange"`
	Symbol    string             `json:"symbol" db:"symbol"`
	Period    types.Period       `json:"period" db:"period"`
	StartTime time.Time          `json:"startTime" db:"start_time"`
	Close     float64            `json:"close" db:"close"`
	MACD      float64            `json:"macd" db:"macd"`
	Signal    float64            `json:"signal" db:"signal"`
	Histogram float64            `json:"histogram" db:"histogram"`
}

type MACDService struct {
	DB *sqlx.DB

	// BatchSize overrides DefaultBatchInsertSize
	BatchSize int
}

func NewMACDService(db *sqlx.DB) *MACDService {
	return &MACDService{DB: db}
}

func (s *MACDService) dialect() DatabaseDialect {
	return GetDialect(s.DB.DriverName())
}

func (s *MACDService) columns() []string {
	return escapeColumns(s.dialect(), append(append([]string{}, macdUniqueColumns...), macdValueColumns...))
}

// BatchInsert upserts the records in chunks, a record of an existing bar updates the stored values.
func (s *MACDService) BatchInsert(ctx context.Context, records []MACDRecord) (err error) {
	if len(records) == 0 {
		return nil
	}

	size := s.BatchSize
	if size <= 0 {
		size = DefaultBatchInsertSize
	}

	dialect := s.dialect()
	suffix := dialect.UpsertSuffix(macdUniqueColumns, macdValueColumns)

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "unable to begin the transaction")
	}

	defer func() {
		if err != nil {
			err = multierr.Append(err, tx.Rollback())
		}
	}()

	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}

		builder := sq.Insert(dialect.EscapeTableName(MACDTableName)).Columns(s.columns()...)
		for _, r := range records[start:end] {
			builder = builder.Values(
				r.Exchange.String(), r.Symbol, int(r.Period), r.StartTime.UTC(),
				r.Close, r.MACD, r.Signal, r.Histogram,
			)
		}

		sql, args, err := builder.Suffix(suffix).ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, sql, args...); err != nil {
			return errors.Wrapf(err, "unable to insert %d macd records", end-start)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "unable to commit the macd records")
	}

	log.Debugf("inserted %d macd records", len(records))
	return nil
}

// QueryLatest returns the newest limit records of the bar series, oldest first
func (s *MACDService) QueryLatest(ctx context.Context, ex types.ExchangeName, symbol string, period types.Period, limit uint64) ([]MACDRecord, error) {
	dialect := s.dialect()
	sql, args, err := sq.Select(append([]string{dialect.EscapeColumnName("gid")}, s.columns()...)...).
		From(dialect.EscapeTableName(MACDTableName)).
		Where(sq.Eq{
			dialect.EscapeColumnName("exchange"): ex.String(),
			dialect.EscapeColumnName("symbol"):   symbol,
			dialect.EscapeColumnName("period"):   int(period),
		}).
		OrderBy(dialect.EscapeColumnName("start_time") + " DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, err
	}

	var records []MACDRecord
	if err := s.DB.SelectContext(ctx, &records, sql, args...); err != nil {
		return nil, errors.Wrap(err, "unable to query the macd records")
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	return records, nil
}
