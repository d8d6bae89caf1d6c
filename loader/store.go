package loader

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sflanaga/csvtolite/loader/common"
)

// OpenStore opens the store for the named dialect. With memory set the store
// is ephemeral and disappears when the handle is closed.
func OpenStore(ctx context.Context, dialectName, location string, memory bool) (*sql.DB, common.Dialect, error) {
	logger := zerolog.Ctx(ctx)

	d, err := Lookup(dialectName)
	if err != nil {
		return nil, nil, err
	}
	dsn, err := d.DSN(location, memory)
	if err != nil {
		return nil, nil, err
	}

	if memory {
		logger.Warn().Msg("opening in memory only")
	} else {
		logger.Trace().Str("dialect", dialectName).Msg("opening DB")
	}

	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: loads are sequential and an in-memory store lives on
	// a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := d.Configure(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to configure database: %w", err)
	}
	return db, d, nil
}
