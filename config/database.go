package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database holds the two handles on the ecommerce database: gorm for the
// pending order ledger, pgx for the login audit table.
type Database struct {
	Gorm *gorm.DB
	Pool *pgxpool.Pool
}

// InitDB connects both handles. It returns (nil, nil) when ECOMMERCE_DB_URL
// is unset; the service then runs without pending orders or login audit.
func InitDB(cfg *Config, log *logrus.Logger) (*Database, error) {
	if cfg.EcommerceDBURL == "" {
		log.Warn("⚠️  ECOMMERCE_DB_URL not set, pending orders and login audit disabled")
		return nil, nil
	}

	ctx, cancel := WithTimeout()
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.EcommerceDBURL)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to ecommerce database: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ecommerce database ping failed: %w", err)
	}
	log.Info("✅ Ecommerce database connected (pgx)")

	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.EcommerceDBURL), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to ecommerce database with GORM: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	log.Info("✅ Ecommerce database connected (GORM)")

	return &Database{Gorm: db, Pool: pool}, nil
}

func (d *Database) Close(log *logrus.Logger) {
	if d == nil {
		return
	}
	if d.Pool != nil {
		d.Pool.Close()
		log.Info("✅ Ecommerce database connection closed (pgx)")
	}
	if d.Gorm != nil {
		if sqlDB, _ := d.Gorm.DB(); sqlDB != nil {
			sqlDB.Close()
			log.Info("✅ Ecommerce database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout (bumped from 5s for Neon cold starts)
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
