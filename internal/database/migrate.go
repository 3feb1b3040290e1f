package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"inkwell/internal/observability"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFS embed.FS

// MigrationStatus describes one migration and whether it has been applied.
type MigrationStatus struct {
	Version int64
	Path    string
	Applied bool
}

func (s MigrationStatus) String() string {
	state := "pending"
	if s.Applied {
		state = "applied"
	}
	return fmt.Sprintf("%05d %s (%s)", s.Version, s.Path, state)
}

func gooseDialect(driver string) (goose.Dialect, string, error) {
	switch driver {
	case DriverPostgres:
		return goose.DialectPostgres, "migrations/postgres", nil
	case DriverSQLite:
		return goose.DialectSQLite3, "migrations/sqlite", nil
	default:
		return "", "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

// NewMigrationProvider returns a goose provider over the embedded SQL files
// for driver, bound to the pool behind db.
func NewMigrationProvider(db *gorm.DB, driver string) (*goose.Provider, error) {
	dialect, dir, err := gooseDialect(driver)
	if err != nil {
		return nil, err
	}
	fsys, err := fs.Sub(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	provider, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return nil, fmt.Errorf("migration provider: %w", err)
	}
	return provider, nil
}

// RunMigrations applies all pending migrations.
func RunMigrations(ctx context.Context, db *gorm.DB, driver string) error {
	provider, err := NewMigrationProvider(db, driver)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	for _, r := range results {
		observability.Logger.InfoContext(ctx, "Migration applied",
			slog.Int64("version", r.Source.Version),
			slog.String("path", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}
	return nil
}

// RollbackMigration reverts the most recently applied migration.
func RollbackMigration(ctx context.Context, db *gorm.DB, driver string) error {
	provider, err := NewMigrationProvider(db, driver)
	if err != nil {
		return err
	}

	result, err := provider.Down(ctx)
	if err != nil {
		if errors.Is(err, goose.ErrNoNextVersion) {
			return errors.New("no applied migrations to roll back")
		}
		return fmt.Errorf("rollback error: %w", err)
	}
	observability.Logger.InfoContext(ctx, "Migration rolled back",
		slog.Int64("version", result.Source.Version),
		slog.String("path", result.Source.Path),
	)
	return nil
}

// MigrationStatuses lists every embedded migration for driver in version order.
func MigrationStatuses(ctx context.Context, db *gorm.DB, driver string) ([]MigrationStatus, error) {
	provider, err := NewMigrationProvider(db, driver)
	if err != nil {
		return nil, err
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration status: %w", err)
	}
	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationStatus{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
