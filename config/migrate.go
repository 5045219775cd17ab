package config

import (
	"fmt"

	"github.com/pressly/goose/v3"

	"truckshop-platform/migrations"
)

// RunMigrations applies the embedded goose migrations against the connected
// database. Must be called after InitDB.
func RunMigrations() error {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	if err := goose.Up(DB.DB, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
