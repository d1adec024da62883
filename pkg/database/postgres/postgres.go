package postgres

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

type ConnectionInfo struct {
	Host     string
	Port     int
	Username string
	DBName   string
	SSLMode  string
	Password string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (info ConnectionInfo) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s sslmode=%s password=%s",
		info.Host,
		info.Port,
		info.Username,
		info.DBName,
		info.SSLMode,
		info.Password,
	)
}

// NewPostgresConnection opens a pgx-backed pool and pings it.
func NewPostgresConnection(ctx context.Context, info ConnectionInfo) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", info.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect postgres %s:%d/%s: %w", info.Host, info.Port, info.DBName, err)
	}

	if info.MaxOpenConns > 0 {
		db.SetMaxOpenConns(info.MaxOpenConns)
	}
	if info.MaxIdleConns > 0 {
		db.SetMaxIdleConns(info.MaxIdleConns)
	}
	if info.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(info.ConnMaxLifetime)
	}

	return db, nil
}

func Close(db *sqlx.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Printf("Postgres close error: %s", err)
	}
}
