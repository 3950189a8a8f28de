// Package database opens the backing store selected by STORE_DRIVER.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iliyamo/menuq/internal/config"
	"github.com/iliyamo/menuq/internal/store"
	"github.com/iliyamo/menuq/internal/store/memory"
	"github.com/iliyamo/menuq/internal/store/pgstore"
	"github.com/iliyamo/menuq/internal/store/sqlstore"
)

// OpenMySQL connects to MySQL and verifies the connection.
func OpenMySQL(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// clientFoundRows: an UPDATE that rewrites a row with identical
	// content still reports one affected row, so 0 means "no such id".
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenPostgres creates a pgx pool for url and pings it.
func OpenPostgres(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	pcfg.MaxConns = 25
	pcfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// OpenStore returns the store configured in cfg with its schema in place,
// plus a function that releases it.
func OpenStore(ctx context.Context, cfg config.Config) (store.Store, func() error, error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		db, err := OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		s := sqlstore.New(db)
		if err := s.EnsureSchema(ctx); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("mysql schema: %w", err)
		}
		return s, s.Close, nil
	case config.DriverPostgres:
		pool, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		s := pgstore.New(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("postgres schema: %w", err)
		}
		return s, s.Close, nil
	default:
		return memory.New(), func() error { return nil }, nil
	}
}
