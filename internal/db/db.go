package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SocialApp/social-service/migrations"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pingTimeout = 5 * time.Second

// Open connects a pgx pool and verifies the connection.
func Open(ctx context.Context, uri string) (*pgxpool.Pool, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, errors.New("postgres uri is required")
	}

	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// Migrate applies the embedded migrations against the given database.
func Migrate(uri string) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}

	// migrate's pgx driver registers under the pgx5 scheme
	migrateURI := uri
	if strings.HasPrefix(migrateURI, "postgresql://") {
		migrateURI = "pgx5://" + strings.TrimPrefix(migrateURI, "postgresql://")
	} else if strings.HasPrefix(migrateURI, "postgres://") {
		migrateURI = "pgx5://" + strings.TrimPrefix(migrateURI, "postgres://")
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", source, migrateURI)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
