// Package storetest berisi pengujian kontrak yang harus lolos untuk setiap
// implementasi store.Store.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store"
)

// Run menjalankan semua pengujian kontrak terhadap s. Data dibuat dengan
// nama unik sehingga aman dijalankan di database yang sudah berisi data.
func Run(t *testing.T, s store.Store) {
	t.Run("Products", func(t *testing.T) { testProducts(t, s) })
	t.Run("Users", func(t *testing.T) { testUsers(t, s) })
	t.Run("OrdersAndPayments", func(t *testing.T) { testOrdersAndPayments(t, s) })
	t.Run("Reviews", func(t *testing.T) { testReviews(t, s) })
}

func unique(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func newProduct(t *testing.T, s store.Store, price string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:  unique("product"),
		Price: decimal.RequireFromString(price),
		Stock: stock,
		Image: "https://img.example.com/p.png",
	}
	if err := s.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	return p
}

func newUser(t *testing.T, s store.Store) *models.User {
	t.Helper()
	u := &models.User{Name: unique("user"), Password: "hash", IsActive: true}
	u.Email = u.Name + "@example.com"
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func testProducts(t *testing.T, s store.Store) {
	ctx := context.Background()
	p := newProduct(t, s, "1500000.50", 5)
	if p.ID == 0 {
		t.Fatal("CreateProduct should assign an id")
	}

	got, err := s.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Name != p.Name || !got.Price.Equal(p.Price) || got.Stock != 5 {
		t.Fatalf("GetProduct = %+v", got)
	}

	dup := &models.Product{Name: p.Name, Price: decimal.NewFromInt(1), Image: "x"}
	if err := s.CreateProduct(ctx, dup); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("duplicate name: err = %v", err)
	}

	if _, err := s.DecrementStock(ctx, p.ID, 6); !errors.Is(err, store.ErrInsufficientStock) {
		t.Fatalf("over-decrement: err = %v", err)
	}
	dec, err := s.DecrementStock(ctx, p.ID, 5)
	if err != nil || dec.Stock != 0 {
		t.Fatalf("DecrementStock: %+v, %v", dec, err)
	}
	inc, err := s.IncrementStock(ctx, p.ID, 4)
	if err != nil || inc.Stock != 4 {
		t.Fatalf("IncrementStock: %+v, %v", inc, err)
	}
	if _, err := s.DecrementStock(ctx, -1, 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("decrement unknown: err = %v", err)
	}
	if _, err := s.IncrementStock(ctx, p.ID, models.MaxStock); !errors.Is(err, store.ErrStockLimit) {
		t.Fatalf("increment past limit: err = %v", err)
	}
	if _, err := s.IncrementStock(ctx, -1, 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("increment unknown: err = %v", err)
	}
	if got, _ := s.GetProduct(ctx, p.ID); got.Stock != 4 {
		t.Fatalf("stock after refused increment = %d, want 4", got.Stock)
	}

	p.Stock = 9
	p.Description = "updated"
	if err := s.UpdateProduct(ctx, p); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if p.Stock != 9 || p.Description != "updated" {
		t.Fatalf("UpdateProduct = %+v", p)
	}

	if err := s.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := s.GetProduct(ctx, p.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("get deleted: err = %v", err)
	}
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := newUser(t, s)

	byEmail, err := s.GetUserByEmail(ctx, u.Email)
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("GetUserByEmail: %+v, %v", byEmail, err)
	}
	dup := &models.User{Name: "dup", Email: u.Email, Password: "x"}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("duplicate email: err = %v", err)
	}

	u.IsAdmin = true
	if err := s.UpdateUser(ctx, u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	got, err := s.GetUser(ctx, u.ID)
	if err != nil || !got.IsAdmin {
		t.Fatalf("GetUser after update: %+v, %v", got, err)
	}
	if _, err := s.GetUserByEmail(ctx, unique("nobody")+"@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("unknown email: err = %v", err)
	}
}

func testOrdersAndPayments(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := newUser(t, s)
	p := newProduct(t, s, "125000.25", 10)

	order := &models.Order{
		UserID:      u.ID,
		Status:      models.OrderStatusPending,
		TotalAmount: decimal.RequireFromString("250000.50"),
		Items: []models.OrderItem{
			{ProductID: p.ID, Quantity: 2, Price: p.Price},
		},
	}
	if err := s.CreateOrder(ctx, order); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	got, err := s.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got.User == nil || got.User.Email != u.Email {
		t.Fatalf("order user = %+v", got.User)
	}
	if len(got.Items) != 1 || got.Items[0].Product == nil || got.Items[0].Product.ID != p.ID {
		t.Fatalf("order items = %+v", got.Items)
	}
	if !got.TotalAmount.Equal(order.TotalAmount) {
		t.Fatalf("total = %s", got.TotalAmount)
	}

	mine, err := s.ListOrders(ctx, &u.ID)
	if err != nil || len(mine) != 1 || mine[0].ID != order.ID {
		t.Fatalf("ListOrders: %d orders, %v", len(mine), err)
	}

	past := time.Now().Add(-time.Minute).UTC().Truncate(time.Millisecond)
	tx := unique("JMT")
	pay := &models.Payment{
		OrderID:       order.ID,
		Amount:        order.TotalAmount,
		Method:        "bank_transfer",
		Status:        models.PaymentStatusPending,
		TransactionID: &tx,
		ExpiresAt:     &past,
	}
	if err := s.CreatePayment(ctx, pay); err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	second := &models.Payment{OrderID: order.ID, Amount: order.TotalAmount, Method: "ewallet", Status: models.PaymentStatusPending}
	if err := s.CreatePayment(ctx, second); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("second active payment: err = %v", err)
	}
	orphan := &models.Payment{OrderID: -1, Amount: order.TotalAmount, Method: "ewallet", Status: models.PaymentStatusPending}
	if err := s.CreatePayment(ctx, orphan); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("payment for unknown order: err = %v", err)
	}

	expired, err := s.ListExpiredPayments(ctx, time.Now())
	if err != nil {
		t.Fatalf("ListExpiredPayments: %v", err)
	}
	found := false
	for _, e := range expired {
		found = found || e.ID == pay.ID
	}
	if !found {
		t.Fatal("stale pending payment not listed as expired")
	}

	_, err = s.TransitionPayment(ctx, store.PaymentTransition{
		PaymentID: pay.ID, From: models.PaymentStatusProcessing, To: models.PaymentStatusSuccess,
	})
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("stale from-status: err = %v", err)
	}

	if _, err := s.TransitionPayment(ctx, store.PaymentTransition{
		PaymentID: pay.ID, From: models.PaymentStatusPending, To: models.PaymentStatusProcessing,
	}); err != nil {
		t.Fatalf("to processing: %v", err)
	}
	paidAt := time.Now().UTC().Truncate(time.Millisecond)
	done, err := s.TransitionPayment(ctx, store.PaymentTransition{
		PaymentID:       pay.ID,
		From:            models.PaymentStatusProcessing,
		To:              models.PaymentStatusSuccess,
		PaidAt:          &paidAt,
		GatewayResponse: models.GatewayPayload{"code": "00"},
		OrderStatus:     models.OrderStatusPaid,
	})
	if err != nil {
		t.Fatalf("to success: %v", err)
	}
	if done.Status != models.PaymentStatusSuccess || done.PaidAt == nil || done.GatewayResponse["code"] != "00" {
		t.Fatalf("payment after success = %+v", done)
	}

	paid, err := s.GetOrder(ctx, order.ID)
	if err != nil || paid.Status != models.OrderStatusPaid {
		t.Fatalf("order after success: %+v, %v", paid, err)
	}
	if len(paid.Payments) != 1 {
		t.Fatalf("order payments = %d, want 1", len(paid.Payments))
	}
	late := &models.Payment{OrderID: order.ID, Amount: order.TotalAmount, Method: "ewallet", Status: models.PaymentStatusPending}
	if err := s.CreatePayment(ctx, late); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("payment for paid order: err = %v", err)
	}

	all, err := s.ListPayments(ctx)
	if err != nil {
		t.Fatalf("ListPayments: %v", err)
	}
	for _, listed := range all {
		if listed.ID != pay.ID {
			continue
		}
		if listed.Order == nil || listed.Order.User == nil || len(listed.Order.Items) != 1 {
			t.Fatalf("listed payment relations = %+v", listed.Order)
		}
		if listed.GatewayResponse["code"] != "00" {
			t.Fatalf("gatewayResponse = %v", listed.GatewayResponse)
		}
		return
	}
	t.Fatal("payment missing from ListPayments")
}

func testReviews(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := newUser(t, s)
	p := newProduct(t, s, "99000", 1)

	for i := 0; i < 3; i++ {
		r := &models.Review{UserID: u.ID, ProductID: &p.ID, Rating: 5, Comment: "Solid and accurate bow"}
		if err := s.CreateReview(ctx, r); err != nil {
			t.Fatalf("CreateReview: %v", err)
		}
		if r.User == nil || r.User.ID != u.ID {
			t.Fatalf("review user = %+v", r.User)
		}
	}

	reviews, err := s.ListReviews(ctx, models.ReviewFilter{ProductID: &p.ID, Limit: 2})
	if err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("reviews = %d, want 2", len(reviews))
	}
	if reviews[0].ID < reviews[1].ID {
		t.Fatal("reviews should be newest first")
	}
	if reviews[0].User == nil || reviews[0].User.Email != u.Email {
		t.Fatalf("review user = %+v", reviews[0].User)
	}
}
