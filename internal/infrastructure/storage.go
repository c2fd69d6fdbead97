package infrastructure

import (
	"fmt"

	"github.com/architeacher/svc-web-analyzer/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Storage owns the process-wide Postgres connection pool for one service's
// schema (domain table + outbox table).
type Storage struct {
	db  *sqlx.DB
	cfg config.StorageConfig
}

func NewStorage(cfg config.StorageConfig) (*Storage, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s connect_timeout=%d",
		cfg.Host, cfg.Port, cfg.Database, cfg.Username, cfg.Password, cfg.SSLMode,
		int(cfg.ConnectTimeout.Seconds()),
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return &Storage{db: db, cfg: cfg}, nil
}

func (s *Storage) GetDB() (*sqlx.DB, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not connected")
	}

	return s.db, nil
}

func (s *Storage) Ping() error {
	if s.db == nil {
		return fmt.Errorf("storage not connected")
	}

	return s.db.Ping()
}

func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}
