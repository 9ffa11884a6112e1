package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jmt-archery-backend/controllers"
	"jmt-archery-backend/middleware"
)

// Setup mengonfigurasi dan mengembalikan Gin engine.
func Setup(ctrl *controllers.Controller, env string, origins []string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = origins
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = true
	r.Use(cors.New(config))

	authed := middleware.RequireAuth()
	admin := middleware.RequireAdmin(ctrl.Users)

	api := r.Group("/api", middleware.Authenticate(ctrl.Tokens))
	{
		// Rute utilitas
		api.GET("/health", ctrl.HealthCheck)
		api.GET("/stats", admin, ctrl.GetStats)

		// Rute otentikasi
		api.POST("/auth/register", ctrl.Register)
		api.POST("/auth/login", ctrl.Login)
		api.POST("/auth/logout", ctrl.Logout)
		api.GET("/auth/me", authed, ctrl.Me)

		// Rute produk
		api.GET("/product", ctrl.GetProducts)
		api.POST("/product", admin, ctrl.CreateProduct)
		api.GET("/product/:id", ctrl.GetProduct)
		api.PUT("/product/:id", admin, ctrl.UpdateProduct)
		api.DELETE("/product/:id", admin, ctrl.DeleteProduct)
		api.POST("/product/:id/add-stock", admin, ctrl.AddStock)
		api.POST("/product/:id/reduce-stock", authed, ctrl.ReduceStock)

		// Rute order
		api.GET("/order", admin, ctrl.GetOrders)
		api.GET("/order/mine", authed, ctrl.GetMyOrders)
		api.GET("/order/:id", authed, ctrl.GetOrder)
		api.POST("/order", authed, ctrl.CreateOrder)

		// Rute pembayaran
		api.POST("/payment", authed, ctrl.CreatePayment)
		api.GET("/payment/all", admin, ctrl.GetPayments)
		api.GET("/payment/export", admin, ctrl.ExportPayments)
		api.GET("/payment/ws", admin, ctrl.PaymentFeed)
		api.POST("/payment/:id/status", admin, ctrl.UpdatePaymentStatus)

		// Rute review
		api.GET("/review", ctrl.GetReviews)
		api.POST("/review", ctrl.CreateReview)
		api.GET("/review/latest", ctrl.GetLatestReviews)

		// Upload gambar
		api.POST("/upload", ctrl.UploadImage)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
	return r
}
