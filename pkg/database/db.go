// Package database opens the relational store and scopes work to transactions.
//
// A *Store is built once at startup and passed to every service; nothing in
// this package is global.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options configures Open.
type Options struct {
	Driver string
	DSN    string
	// Retries is how many extra connection attempts network drivers make.
	Retries int
	// LogLevel is gorm's log threshold. Zero means warnings and errors only.
	LogLevel gormlogger.LogLevel
}

// Store is the injected database handle.
type Store struct {
	db     *gorm.DB
	driver string
}

// Open connects, configures the pool, installs query metrics and pings.
func Open(ctx context.Context, opts Options) (*Store, error) {
	dialector, err := buildDialector(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("database: build dialector: %w", err)
	}

	level := opts.LogLevel
	if level == 0 {
		level = gormlogger.Warn
	}
	cfg := &gorm.Config{Logger: newSlogLogger(level, 200*time.Millisecond)}

	var db *gorm.DB
	b := backoff{delay: 500 * time.Millisecond, maxDelay: 5 * time.Second}
	for attempt := 0; ; attempt++ {
		db, err = gorm.Open(dialector, cfg)
		if err == nil {
			break
		}
		if opts.Driver == "sqlite" || attempt >= opts.Retries {
			return nil, fmt.Errorf("database: open: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("database: open canceled: %w", ctx.Err())
		case <-time.After(b.next(attempt)):
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: get sql.DB: %w", err)
	}
	configurePool(sqlDB, opts.Driver)

	if err := registerMetrics(db); err != nil {
		return nil, fmt.Errorf("database: register callbacks: %w", err)
	}

	store := &Store{db: db, driver: opts.Driver}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return store, nil
}

// NewStore wraps an already opened gorm handle.
func NewStore(db *gorm.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

// DB returns the handle bound to ctx, for work that needs no transaction
// (migrations, seeders).
func (s *Store) DB(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Driver names the dialect, e.g. "sqlite".
func (s *Store) Driver() string { return s.driver }

// WithinTx runs fn in one transaction. A returned error or a panic rolls
// everything back; otherwise the transaction commits.
func (s *Store) WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func configurePool(sqlDB *sql.DB, driver string) {
	if driver == "sqlite" {
		// SQLite allows one writer; a single connection serialises access
		// instead of surfacing SQLITE_BUSY to requests.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}

type backoff struct {
	delay    time.Duration
	maxDelay time.Duration
}

func (b backoff) next(attempt int) time.Duration {
	d := b.delay << attempt
	if d > b.maxDelay {
		return b.maxDelay
	}
	return d
}
