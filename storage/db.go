// Package storage implements the catalog's entity store boundary on top of
// bun: one narrow store per entity kind with selective relation loading,
// plus edge stores that own the relation mutations.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/gastromap/catalog/model"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects the backing database.
type Config struct {
	Driver string
	DSN    string
}

// Open connects to the configured database and returns a bun handle with
// the catalog's join models registered.
func Open(cfg Config) (*bun.DB, error) {
	var db *bun.DB
	switch cfg.Driver {
	case DriverSQLite, "sqlite3":
		sqldb, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		db = bun.NewDB(sqldb, sqlitedialect.New())
	case DriverPostgres:
		sqldb, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	RegisterModels(db)
	return db, nil
}

// RegisterModels registers the many-to-many join models. bun needs them
// before any query that traverses those relations.
func RegisterModels(db *bun.DB) {
	db.RegisterModel((*model.CultureCountry)(nil))
	db.RegisterModel((*model.CultureRestaurant)(nil))
}

// schemaModels lists every table in dependency order: entities first, join
// tables last.
func schemaModels() []any {
	return []any{
		(*model.Culture)(nil),
		(*model.Country)(nil),
		(*model.Category)(nil),
		(*model.Product)(nil),
		(*model.Recipe)(nil),
		(*model.Restaurant)(nil),
		(*model.Star)(nil),
		(*model.CultureCountry)(nil),
		(*model.CultureRestaurant)(nil),
	}
}

// ResetSchema drops and recreates every catalog table. Meant for local
// bootstrap and tests; production schemas are managed out of band.
func ResetSchema(ctx context.Context, db *bun.DB) error {
	models := schemaModels()
	for i := len(models) - 1; i >= 0; i-- {
		if _, err := db.NewDropTable().Model(models[i]).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	for _, m := range models {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().WithForeignKeys().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
