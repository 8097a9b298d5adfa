package service

import (
	"context"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	// drivers
	_ "github.com/mattn/go-sqlite3"
)

var log = logrus.WithField("component", "database")

type DatabaseService struct {
	Driver string
	DSN    string
	DB     *sqlx.DB
}

func NewDatabaseService(driver, dsn string) (*DatabaseService, error) {
	if driver == "mysql" {
		var err error
		dsn, err = ReformatMysqlDSN(dsn)
		if err != nil {
			return nil, errors.Wrap(err, "incorrect mysql dsn")
		}
	}

	return &DatabaseService{
		Driver: driver,
		DSN:    dsn,
	}, nil
}

// NewDatabaseServiceWithDB wraps an opened connection, e.g. the sqlmock one
func NewDatabaseServiceWithDB(db *sqlx.DB) *DatabaseService {
	return &DatabaseService{
		Driver: db.DriverName(),
		DB:     db,
	}
}

// Connect opens and pings the database, sqlite databases are switched to WAL
func (s *DatabaseService) Connect(ctx context.Context) error {
	db, err := sqlx.ConnectContext(ctx, s.Driver, s.DSN)
	if err != nil {
		return errors.Wrapf(err, "unable to connect to the %s database", s.Driver)
	}

	s.DB = db

	if s.Driver == "sqlite3" {
		for _, pragma := range []string{"PRAGMA journal_mode = WAL", "PRAGMA synchronous = NORMAL"} {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				log.WithError(err).Warnf("unable to apply %q", pragma)
			}
		}
	}

	return nil
}

func (s *DatabaseService) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Migrate creates the tables when they do not exist
func (s *DatabaseService) Migrate(ctx context.Context) error {
	dialect := GetDialect(s.DB.DriverName())
	if _, err := s.DB.ExecContext(ctx, dialect.CreateMACDTableSQL()); err != nil {
		return errors.Wrapf(err, "unable to create table %s", MACDTableName)
	}

	return nil
}

func ReformatMysqlDSN(dsn string) (string, error) {
	config, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}

	config.ParseTime = true
	dsn = config.FormatDSN()
	return dsn, nil
}
