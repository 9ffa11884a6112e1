package controllers

import (
	"jmt-archery-backend/auth"
	"jmt-archery-backend/notify"
	"jmt-archery-backend/services"
)

// Controller menampung dependensi yang akan digunakan oleh semua handler.
type Controller struct {
	Catalog   *services.CatalogService
	Inventory *services.InventoryService
	Orders    *services.OrderService
	Payments  *services.PaymentService
	Reviews   *services.ReviewService
	Media     *services.MediaService
	Users     *services.UserService
	Stats     *services.StatsService

	Tokens *auth.TokenMaker
	Hub    *notify.Hub

	// SecureCookie mengaktifkan flag Secure pada cookie sesi (production).
	SecureCookie bool
}
