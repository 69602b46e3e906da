package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/jobdeck-dev/jobdeck/internal/config"
	"github.com/jobdeck-dev/jobdeck/internal/logger"
)

type Storage struct {
	db  *sql.DB
	cfg *config.Config
}

// Querier lets core logic run against either the pool or a transaction.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func New(cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Private.Pg.Host)
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}

	storage := &Storage{db, cfg}
	if err := storage.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return storage, nil
}

func Connect(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Private.Pg.Host, cfg.Private.Pg.Port, cfg.Private.Pg.User, cfg.Private.Pg.Password, cfg.Private.Pg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// withTx runs fn inside a transaction, rolling back on error.
func (s *Storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func (s *Storage) createTables() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			organization_name TEXT NOT NULL DEFAULT '',
			website TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL UNIQUE,
			slug TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS tags (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			slug TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id BIGSERIAL PRIMARY KEY,
			organization_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL,
			location TEXT NOT NULL,
			salary NUMERIC(10,2),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS job_tags (
			job_id BIGINT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
			tag_id BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			PRIMARY KEY (job_id, tag_id)
		)`,
		`CREATE TABLE IF NOT EXISTS job_applications (
			job_id BIGINT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			message TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (job_id, user_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_org_created ON jobs (organization_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_slug ON jobs (slug)`,
	}

	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
