package main

import (
	"github.com/sirupsen/logrus"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

const createLoginEvents = `
	CREATE TABLE IF NOT EXISTS login_events (
		id           UUID PRIMARY KEY,
		customer_id  VARCHAR(255) NOT NULL,
		provider     VARCHAR(32)  NOT NULL,
		logged_in_at TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		ip_address   VARCHAR(64),
		user_agent   TEXT,
		device_type  VARCHAR(32),
		browser      VARCHAR(64),
		os           VARCHAR(64)
	);
	CREATE INDEX IF NOT EXISTS idx_login_events_customer ON login_events (customer_id, logged_in_at DESC);
`

// main creates the pending order ledger and the login audit table.
// Usage: go run ./cmd/migrate
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("❌ Invalid configuration")
	}
	log := config.NewLogger(cfg)

	db, err := config.InitDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("❌ Database connection failed")
	}
	if db == nil {
		log.Fatal("❌ ECOMMERCE_DB_URL is required to run migrations")
	}
	defer db.Close(log)

	if err := db.Gorm.AutoMigrate(&models.PendingOrder{}); err != nil {
		log.WithError(err).Fatal("❌ pending_orders migration failed")
	}
	log.Info("✓ pending_orders ready")

	ctx, cancel := config.WithTimeout()
	defer cancel()
	if _, err := db.Pool.Exec(ctx, createLoginEvents); err != nil {
		log.WithError(err).Fatal("❌ login_events migration failed")
	}
	log.Info("✓ login_events ready")
}
