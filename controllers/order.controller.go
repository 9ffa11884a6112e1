package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jmt-archery-backend/middleware"
	"jmt-archery-backend/models"
	"jmt-archery-backend/services"
)

type createOrderRequest struct {
	Items []models.OrderLine `json:"items"`
}

// CreateOrder membuat order untuk pengguna yang sedang login.
func (ctrl *Controller) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid order data: "+err.Error())
		return
	}

	p := middleware.CurrentPrincipal(c)
	order, err := ctrl.Orders.CreateOrder(c.Request.Context(), p.UserID, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

// GetOrders mengembalikan semua order (admin).
func (ctrl *Controller) GetOrders(c *gin.Context) {
	orders, err := ctrl.Orders.ListAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// GetMyOrders mengembalikan order milik pengguna yang sedang login.
func (ctrl *Controller) GetMyOrders(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	orders, err := ctrl.Orders.ListOrdersForUser(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// GetOrder mengembalikan satu order milik pengguna, atau order apa pun
// untuk admin.
func (ctrl *Controller) GetOrder(c *gin.Context) {
	id, ok := paramID(c, "order")
	if !ok {
		return
	}
	order, err := ctrl.ownedOrder(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (ctrl *Controller) ownedOrder(c *gin.Context, id int64) (*models.Order, error) {
	order, err := ctrl.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	p := middleware.CurrentPrincipal(c)
	if !p.IsAdmin && order.UserID != p.UserID {
		return nil, services.ErrForbidden
	}
	return order, nil
}
