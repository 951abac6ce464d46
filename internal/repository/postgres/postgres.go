package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"

	"shoeshop/configs"
	"shoeshop/internal/domain"
)

//go:embed schema.sql
var schema string

type Store struct {
	db  *sql.DB
	log *slog.Logger
}

func NewStore(ctx context.Context, cfg *configs.Config, log *slog.Logger) (*Store, error) {
	store := &Store{log: log}

	err := store.Connect(ctx, *cfg)
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}
	return store, nil
}

// NewStoreWithDB wraps an already opened handle.
func NewStoreWithDB(db *sql.DB, log *slog.Logger) *Store {
	return &Store{db: db, log: log}
}

func (s *Store) Connect(ctx context.Context, cfg configs.Config) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before connection: %w", err)
	}

	connConfig, err := pgx.ParseConfig(fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&connect_timeout=%d",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Name,
		int(cfg.DB.ConnectTimeout.Seconds()),
	))
	if err != nil {
		return fmt.Errorf("failed to parse connection config: %w", err)
	}

	var db *sql.DB

	retries := cfg.DB.Retries
	retryDelay := 5 * time.Second

	for i := 0; i < retries; i++ {
		if err = ctx.Err(); err != nil {
			return fmt.Errorf("%w: context cancelled during retries", err)
		}

		db, err = openConnection(ctx, connConfig)
		if err == nil {
			break
		}

		s.log.Warn("failed to connect to database",
			"retry", i+1,
			"retries", retries,
			"error", err,
		)

		if i == retries-1 {
			break
		}
		select {
		case <-time.After(retryDelay):

		case <-ctx.Done():
			return fmt.Errorf("connection cancelled during retry delay: %w", ctx.Err())
		}
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database after %d retries: %w", retries, err)
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.db = db
	s.log.Info("connected to database", "host", cfg.DB.Host, "db", cfg.DB.Name)

	return nil
}

func openConnection(ctx context.Context, config *pgx.ConnConfig) (*sql.DB, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	connStr := stdlib.RegisterConnConfig(config)
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping failed: %w", err)
	}

	return db, nil
}

// Migrate creates the tables if they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}
	s.log.Info("database schema is up to date")
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Disconnect(ctx context.Context) error {
	if s.db == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- s.db.Close()
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to close connection: %w", err)
		}
		return nil
	}
}

type scanner interface {
	Scan(dest ...any) error
}

const uniqueViolation = "23505"

// wrapWriteErr turns unique violations into domain.ErrDuplicate.
func wrapWriteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, domain.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
