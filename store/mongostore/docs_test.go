package mongostore

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"jmt-archery-backend/models"
)

func TestToDecimal128(t *testing.T) {
	v, err := toDecimal128(decimal.RequireFromString("2900003.50"))
	if err != nil {
		t.Fatalf("toDecimal128: %v", err)
	}
	if got := fromDecimal128(v); !got.Equal(decimal.RequireFromString("2900003.5")) {
		t.Fatalf("round trip = %s", got)
	}

	if _, err := toDecimal128(decimal.RequireFromString("12345678901234567890123456789012345.67")); err == nil {
		t.Fatal("expected error for a value wider than 34 digits")
	}
}

func TestDocsRejectOutOfRangeAmounts(t *testing.T) {
	huge := decimal.RequireFromString("12345678901234567890123456789012345.67")

	if _, err := newProductDoc(&models.Product{Name: "bow", Price: huge}); err == nil {
		t.Fatal("newProductDoc accepted an out-of-range price")
	}
	if _, err := newPaymentDoc(&models.Payment{Amount: huge, Status: models.PaymentStatusPending}); err == nil {
		t.Fatal("newPaymentDoc accepted an out-of-range amount")
	}
	// Nilai diperiksa sebelum transaksi dimulai, jadi store tanpa koneksi cukup.
	if err := (&Store{}).CreateOrder(context.Background(), &models.Order{TotalAmount: huge}); err == nil {
		t.Fatal("CreateOrder accepted an out-of-range total")
	}
}
