package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/adminpanel/internal/client/migrations"
	"github.com/dmitrijs2005/adminpanel/internal/client/repositories/session"
	"github.com/dmitrijs2005/adminpanel/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

type Repositories struct {
	DB      *sql.DB
	Session session.Repository
}

// Close releases the database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		DB:      db,
		Session: session.NewSQLiteRepository(db),
	}, nil
}
