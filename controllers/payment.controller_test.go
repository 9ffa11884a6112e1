package controllers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

type paymentResponse struct {
	Payment struct {
		ID     int64   `json:"id"`
		Status string  `json:"status"`
		PaidAt *string `json:"paidAt"`
	} `json:"payment"`
}

func TestOrderPaymentFlow(t *testing.T) {
	app := newApp(t)
	_, buyerToken := app.user("buyer", false)
	_, otherToken := app.user("other", false)
	_, adminToken := app.user("admin", true)
	p := app.product("arrow-set", 125000.5, 50)

	expectStatus(t, app.do(http.MethodPost, "/api/order", buyerToken, map[string]any{"items": []any{}}), http.StatusBadRequest)

	w := app.do(http.MethodPost, "/api/order", buyerToken, map[string]any{
		"items":       []map[string]any{{"productId": p.ID, "quantity": 2}},
		"totalAmount": 1,
	})
	expectStatus(t, w, http.StatusCreated)
	var created struct {
		Order struct {
			ID          int64   `json:"id"`
			TotalAmount float64 `json:"totalAmount"`
			Status      string  `json:"status"`
		} `json:"order"`
	}
	decode(t, w, &created)
	if created.Order.TotalAmount != 250001 || created.Order.Status != "pending" {
		t.Fatalf("order = %s", w.Body.String())
	}
	orderPath := fmt.Sprintf("/api/order/%d", created.Order.ID)

	expectStatus(t, app.do(http.MethodGet, orderPath, buyerToken, nil), http.StatusOK)
	expectStatus(t, app.do(http.MethodGet, orderPath, adminToken, nil), http.StatusOK)
	expectStatus(t, app.do(http.MethodGet, orderPath, otherToken, nil), http.StatusForbidden)
	expectStatus(t, app.do(http.MethodGet, "/api/order", buyerToken, nil), http.StatusForbidden)
	expectStatus(t, app.do(http.MethodGet, "/api/order", adminToken, nil), http.StatusOK)

	w = app.do(http.MethodGet, "/api/order/mine", otherToken, nil)
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"orders":[]`) {
		t.Fatalf("other user sees orders: %s", w.Body.String())
	}

	attempt := map[string]any{"orderId": created.Order.ID, "method": "bank_transfer", "bank": "BRI"}
	expectStatus(t, app.do(http.MethodPost, "/api/payment", otherToken, attempt), http.StatusForbidden)
	w = app.do(http.MethodPost, "/api/payment", buyerToken, attempt)
	expectStatus(t, w, http.StatusCreated)
	var pay paymentResponse
	decode(t, w, &pay)
	if pay.Payment.Status != "pending" {
		t.Fatalf("payment = %s", w.Body.String())
	}
	statusPath := fmt.Sprintf("/api/payment/%d/status", pay.Payment.ID)

	expectStatus(t, app.do(http.MethodPost, statusPath, buyerToken, map[string]any{"status": "success"}), http.StatusForbidden)
	expectStatus(t, app.do(http.MethodPost, statusPath, adminToken, map[string]any{"status": "success"}), http.StatusConflict)
	expectStatus(t, app.do(http.MethodPost, statusPath, adminToken, map[string]any{"status": "bogus"}), http.StatusBadRequest)
	expectStatus(t, app.do(http.MethodPost, statusPath, adminToken, map[string]any{"status": "processing"}), http.StatusOK)

	w = app.do(http.MethodPost, statusPath, adminToken, map[string]any{
		"status":          "success",
		"gatewayResponse": map[string]any{"va_number": "8808123"},
	})
	expectStatus(t, w, http.StatusOK)
	decode(t, w, &pay)
	if pay.Payment.Status != "success" || pay.Payment.PaidAt == nil {
		t.Fatalf("payment after success = %s", w.Body.String())
	}

	w = app.do(http.MethodGet, orderPath, buyerToken, nil)
	if !strings.Contains(w.Body.String(), `"status":"paid"`) {
		t.Fatalf("order not paid: %s", w.Body.String())
	}
	expectStatus(t, app.do(http.MethodPost, "/api/payment", buyerToken, attempt), http.StatusConflict)

	w = app.do(http.MethodGet, "/api/payment/all", adminToken, nil)
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"gatewayResponse":{"va_number":"8808123"}`) {
		t.Fatalf("gatewayResponse should be structured: %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("password leaked: %s", w.Body.String())
	}

	w = app.do(http.MethodGet, "/api/payment/export", adminToken, nil)
	expectStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("export content type = %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Fatal("export is empty")
	}

	w = app.do(http.MethodGet, "/api/stats", adminToken, nil)
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"success":1`) || !strings.Contains(w.Body.String(), `"totalOrders":1`) {
		t.Fatalf("stats = %s", w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	app := newApp(t)
	w := app.do(http.MethodGet, "/api/health", "", nil)
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"database":"connected"`) {
		t.Fatalf("health = %s", w.Body.String())
	}
}
