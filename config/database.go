package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"jmt-archery-backend/store"
	"jmt-archery-backend/store/mongostore"
	"jmt-archery-backend/store/sqlstore"
)

// ConnectDB membuka store sesuai DATABASE_URL: gorm untuk postgres dan
// mysql, mongo-driver untuk mongodb. Tabel SQL dimigrasi saat start.
func ConnectDB(cfg *AppConfig) (store.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	driver, dsn, err := store.ResolveURL(cfg.DatabaseURL, cfg.DBDriver)
	if err != nil {
		return nil, err
	}

	switch driver {
	case store.DriverMongo:
		s, err := mongostore.Open(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case store.DriverPostgres, store.DriverMySQL:
		s, err := sqlstore.Open(driver, dsn)
		if err != nil {
			return nil, err
		}
		if err := s.Ping(ctx); err != nil {
			_ = s.Close(context.Background())
			return nil, fmt.Errorf("error pinging %s: %w", driver, err)
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close(context.Background())
			return nil, fmt.Errorf("migrate %s: %w", driver, err)
		}
		log.Printf("🗄️  Successfully connected to %s", driver)
		return s, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}
