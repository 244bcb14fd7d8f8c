package db

import (
	"context"
	"database/sql"
	"time"

	"cardio_recommend/config"

	_ "github.com/go-sql-driver/mysql"
)

var (
	DB *sql.DB // database connection
)

// InitMySQL opens a connection with the given DSN and verifies it.
func InitMySQL(dsn string) error {
	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	return DB.Ping()
}

// InitMySQLWithConfig opens a pooled connection from configuration.
// The ping is bounded so an unreachable server fails the startup probe
// instead of hanging it.
func InitMySQLWithConfig(cfg *config.Config) error {
	var err error
	DB, err = sql.Open("mysql", cfg.DB.DSN)
	if err != nil {
		return err
	}

	maxOpenConns := cfg.DB.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 50
	}

	maxIdleConns := cfg.DB.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = 10
	}

	connMaxLifetime := cfg.DB.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = 60 // minutes
	}

	DB.SetMaxOpenConns(maxOpenConns)
	DB.SetMaxIdleConns(maxIdleConns)
	DB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Knowledge.ConnectTimeoutSec)*time.Second)
	defer cancel()

	return DB.PingContext(ctx)
}

// Close releases the connection pool. Safe to call when InitMySQL never ran.
func Close() error {
	if DB == nil {
		return nil
	}
	return DB.Close()
}
