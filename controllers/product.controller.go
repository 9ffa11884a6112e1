package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jmt-archery-backend/models"
)

func paramID(c *gin.Context, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "Invalid "+what+" ID")
		return 0, false
	}
	return id, true
}

// GetProducts menangani pengambilan semua produk.
func (ctrl *Controller) GetProducts(c *gin.Context) {
	products, err := ctrl.Catalog.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct menangani pembuatan produk baru.
func (ctrl *Controller) CreateProduct(c *gin.Context) {
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid product data: "+err.Error())
		return
	}

	product, err := ctrl.Catalog.CreateProduct(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

// GetProduct menangani pengambilan satu produk berdasarkan ID.
func (ctrl *Controller) GetProduct(c *gin.Context) {
	id, ok := paramID(c, "product")
	if !ok {
		return
	}
	product, err := ctrl.Catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// UpdateProduct menangani pembaruan data produk.
func (ctrl *Controller) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "product")
	if !ok {
		return
	}
	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid product data: "+err.Error())
		return
	}

	product, err := ctrl.Catalog.UpdateProduct(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// DeleteProduct menangani penghapusan produk.
func (ctrl *Controller) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c, "product")
	if !ok {
		return
	}
	if err := ctrl.Catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
}

type addStockRequest struct {
	AddStock *int `json:"addStock"`
}

// AddStock menambah stok produk.
func (ctrl *Controller) AddStock(c *gin.Context) {
	id, ok := paramID(c, "product")
	if !ok {
		return
	}
	var req addStockRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AddStock == nil {
		badRequest(c, "addStock must be a whole number")
		return
	}

	stock, err := ctrl.Inventory.IncreaseStock(c.Request.Context(), id, *req.AddStock)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stock": stock})
}

type reduceStockRequest struct {
	Quantity *int `json:"quantity"`
}

// ReduceStock mengurangi stok produk jika stok masih cukup.
func (ctrl *Controller) ReduceStock(c *gin.Context) {
	id, ok := paramID(c, "product")
	if !ok {
		return
	}
	var req reduceStockRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		badRequest(c, "quantity must be a whole number")
		return
	}

	product, err := ctrl.Inventory.DecreaseStock(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
