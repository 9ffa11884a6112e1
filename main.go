package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"jmt-archery-backend/auth"
	"jmt-archery-backend/config"
	"jmt-archery-backend/controllers"
	"jmt-archery-backend/media"
	"jmt-archery-backend/notify"
	"jmt-archery-backend/routes"
	"jmt-archery-backend/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// Connect to the database
	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	// Media host is optional; uploads answer 503 without it
	var host media.Host
	if cfg.CloudinaryURL != "" {
		cld, err := media.NewCloudinary(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Cloudinary: %v", err)
		}
		host = cld
		log.Println("☁️  Cloudinary initialized")
	} else {
		log.Println("⚠️  CLOUDINARY_URL not set, uploads are disabled")
	}

	tokens, err := auth.NewTokenMaker(cfg.PasetoSecretKey, auth.TokenTTL)
	if err != nil {
		log.Fatalf("❌ Invalid PASETO key: %v", err)
	}
	hub := notify.NewHub(cfg.CORSOrigins)

	ctrl := &controllers.Controller{
		Catalog:   services.NewCatalogService(db, cfg.StoreTimeout),
		Inventory: services.NewInventoryService(db, cfg.StoreTimeout),
		Orders:    services.NewOrderService(db, cfg.StoreTimeout, hub),
		Payments: services.NewPaymentService(db, services.PaymentConfig{
			Timeout: cfg.StoreTimeout,
			TTL:     cfg.PaymentTTL,
		}, hub),
		Reviews: services.NewReviewService(db, cfg.StoreTimeout),
		Media: services.NewMediaService(host, services.MediaConfig{
			MaxBytes: cfg.MaxUploadBytes,
			Timeout:  cfg.UploadTimeout,
		}),
		Users:        services.NewUserService(db, cfg.StoreTimeout),
		Stats:        services.NewStatsService(db, cfg.StoreTimeout),
		Tokens:       tokens,
		Hub:          hub,
		SecureCookie: cfg.IsProduction(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Seed admin account
	if cfg.AdminEmail != "" {
		admin, err := ctrl.Users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			log.Fatalf("❌ Failed to seed admin: %v", err)
		}
		log.Printf("👤 Admin account ready: %s", admin.Email)
	}

	// Expire stale payments in the background
	go ctrl.Payments.RunExpiry(ctx, cfg.PaymentSweepInterval)

	r := routes.Setup(ctrl, cfg.Env, cfg.CORSOrigins)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Println("🚀 JMT Archery Backend Starting...")
	fmt.Printf("🌐 Server will run on: http://localhost:%s\n", cfg.Port)
	fmt.Printf("🔐 CORS enabled for: %v\n", cfg.CORSOrigins)
	fmt.Println("💡 Test health check: http://localhost:" + cfg.Port + "/api/health")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Server shutdown: %v", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Printf("⚠️ Database close: %v", err)
	}
	log.Println("👋 Server stopped")
}
