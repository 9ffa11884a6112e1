package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"jmt-archery-backend/services"
)

// GetReviews mengembalikan review. Query productId membatasi ke satu produk;
// kosong atau "null" berarti semua review.
func (ctrl *Controller) GetReviews(c *gin.Context) {
	var productID *int64
	if raw := strings.TrimSpace(c.Query("productId")); raw != "" && raw != "null" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			badRequest(c, "Invalid productId")
			return
		}
		productID = &id
	}

	reviews, err := ctrl.Reviews.ListReviews(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": reviews})
}

// CreateReview menyimpan review baru.
func (ctrl *Controller) CreateReview(c *gin.Context) {
	var in services.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid review data: "+err.Error())
		return
	}

	review, err := ctrl.Reviews.CreateReview(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "review": review})
}

// GetLatestReviews mengembalikan review terbaru untuk halaman depan.
func (ctrl *Controller) GetLatestReviews(c *gin.Context) {
	limit := services.DefaultLatestLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 50 {
			badRequest(c, "limit must be between 1 and 50")
			return
		}
		limit = n
	}

	reviews, err := ctrl.Reviews.LatestReviews(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": reviews})
}
