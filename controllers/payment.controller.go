package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jmt-archery-backend/models"
	"jmt-archery-backend/reports"
)

type createPaymentRequest struct {
	OrderID int64   `json:"orderId"`
	Method  string  `json:"method"`
	Bank    *string `json:"bank"`
}

// CreatePayment memulai percobaan pembayaran untuk order milik pengguna.
func (ctrl *Controller) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid payment data: "+err.Error())
		return
	}
	if req.OrderID <= 0 {
		badRequest(c, "orderId is required")
		return
	}
	if _, err := ctrl.ownedOrder(c, req.OrderID); err != nil {
		respondError(c, err)
		return
	}

	payment, err := ctrl.Payments.RecordPayment(c.Request.Context(), req.OrderID, models.PaymentAttempt{
		Method: req.Method,
		Bank:   req.Bank,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "payment": payment})
}

type paymentStatusRequest struct {
	Status models.PaymentStatus `json:"status"`
	models.PaymentMeta
}

// UpdatePaymentStatus memindahkan status pembayaran (admin atau callback
// gateway).
func (ctrl *Controller) UpdatePaymentStatus(c *gin.Context) {
	id, ok := paramID(c, "payment")
	if !ok {
		return
	}
	var req paymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid payment status data: "+err.Error())
		return
	}

	payment, err := ctrl.Payments.TransitionPayment(c.Request.Context(), id, req.Status, req.PaymentMeta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payment": payment})
}

// GetPayments mengembalikan semua pembayaran beserta order dan pengguna.
func (ctrl *Controller) GetPayments(c *gin.Context) {
	payments, err := ctrl.Payments.ListAllPayments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payments": payments})
}

// ExportPayments mengunduh semua pembayaran sebagai file Excel.
func (ctrl *Controller) ExportPayments(c *gin.Context) {
	payments, err := ctrl.Payments.ListAllPayments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := reports.WritePayments(&buf, payments); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("payments-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Expires", "0")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// PaymentFeed membuka websocket event order dan pembayaran.
func (ctrl *Controller) PaymentFeed(c *gin.Context) {
	ctrl.Hub.ServeHTTP(c.Writer, c.Request)
}
