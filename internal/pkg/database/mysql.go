package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/tickerwire/tickerwire/internal/config"
	"github.com/tickerwire/tickerwire/internal/pkg/logger"
)

// MySQLDB wraps a pooled MySQL connection
type MySQLDB struct {
	DB     *sqlx.DB
	Schema string
}

// NewMySQL creates a new MySQL connection pool against the news schema
func NewMySQL(ctx context.Context, cfg config.MySQLConfig) (*MySQLDB, error) {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Database
	mc.Timeout = cfg.ConnectTimeout
	mc.ReadTimeout = cfg.ReadTimeout
	mc.WriteTimeout = cfg.ReadTimeout
	mc.ParseTime = true

	db, err := sqlx.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql pool: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	// Test connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}

	logger.Info("connected to MySQL",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
	)

	return &MySQLDB{DB: db, Schema: cfg.Database}, nil
}

// Ping verifies the connection is alive
func (db *MySQLDB) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

// Close closes the connection pool
func (db *MySQLDB) Close() error {
	if db.DB != nil {
		return db.DB.Close()
	}
	return nil
}
