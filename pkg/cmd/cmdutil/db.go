package cmdutil

import (
	"context"

	"go.uber.org/multierr"

	"github.com/c9s/mtcli/pkg/service"
)

// ConnectDatabase connects and migrates the database of the macd values
func ConnectDatabase(ctx context.Context, driver, dsn string) (*service.DatabaseService, error) {
	db, err := service.NewDatabaseService(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Connect(ctx); err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		return nil, multierr.Append(err, db.Close())
	}

	return db, nil
}
