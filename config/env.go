package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig menampung semua variabel konfigurasi aplikasi.
type AppConfig struct {
	Port        string
	Env         string
	DatabaseURL string
	DBDriver    string

	PasetoSecretKey []byte

	CloudinaryURL    string
	CloudinaryFolder string
	MaxUploadBytes   int64
	UploadTimeout    time.Duration

	CORSOrigins  []string
	StoreTimeout time.Duration

	PaymentTTL           time.Duration
	PaymentSweepInterval time.Duration

	AdminEmail    string
	AdminPassword string
}

// IsProduction melaporkan apakah aplikasi berjalan di production.
func (c *AppConfig) IsProduction() bool { return c.Env == "production" }

// Load memuat konfigurasi dari file .env atau environment variables.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &AppConfig{
		Port:             getEnv("PORT", "5000"),
		Env:              getEnv("ENVIRONMENT", "development"),
		DatabaseURL:      strings.TrimSpace(getEnv("DATABASE_URL", "")),
		DBDriver:         strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", ""))),
		CloudinaryURL:    getEnv("CLOUDINARY_URL", ""),
		CloudinaryFolder: getEnv("CLOUDINARY_FOLDER", "jmt-archery"),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "")),
		AdminEmail:       getEnv("ADMIN_EMAIL", ""),
		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}

	// Tanpa DATABASE_URL aplikasi tidak dijalankan sama sekali.
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	// Atur Kunci Paseto
	key := getEnv("PASETO_SECRET_KEY", "")
	if len(key) != 32 {
		return nil, errors.New("PASETO_SECRET_KEY must be 32 characters long")
	}
	cfg.PasetoSecretKey = []byte(key)

	var err error
	if cfg.StoreTimeout, err = getDuration("STORE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.UploadTimeout, err = getDuration("UPLOAD_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.PaymentTTL, err = getDuration("PAYMENT_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.PaymentSweepInterval, err = getDuration("PAYMENT_SWEEP_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.MaxUploadBytes, err = getInt64("MAX_UPLOAD_BYTES", 2*1024*1024); err != nil {
		return nil, err
	}
	if cfg.StoreTimeout <= 0 || cfg.UploadTimeout <= 0 || cfg.PaymentTTL <= 0 {
		return nil, errors.New("STORE_TIMEOUT, UPLOAD_TIMEOUT and PAYMENT_TTL must be positive")
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return nil, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getInt64(key string, def int64) (int64, error) {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
