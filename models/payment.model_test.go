package models

import (
	"testing"
)

func TestPaymentTransitions(t *testing.T) {
	cases := []struct {
		from, to PaymentStatus
		want     bool
	}{
		{PaymentStatusPending, PaymentStatusProcessing, true},
		{PaymentStatusPending, PaymentStatusExpired, true},
		{PaymentStatusProcessing, PaymentStatusSuccess, true},
		{PaymentStatusProcessing, PaymentStatusFailed, true},
		{PaymentStatusPending, PaymentStatusSuccess, false},
		{PaymentStatusPending, PaymentStatusFailed, false},
		{PaymentStatusSuccess, PaymentStatusPending, false},
		{PaymentStatusFailed, PaymentStatusProcessing, false},
		{PaymentStatusExpired, PaymentStatusPending, false},
		{PaymentStatusProcessing, PaymentStatusPending, false},
		{PaymentStatusPending, PaymentStatusPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestPaymentStatusValid(t *testing.T) {
	for _, s := range PaymentStatuses {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if PaymentStatus("paid").Valid() {
		t.Error("paid is an order status, not a payment status")
	}
}

func TestGatewayPayloadRoundTrip(t *testing.T) {
	p := GatewayPayload{"code": "00", "amount": 150000.0}
	v, err := p.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	var back GatewayPayload
	if err := back.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if back["code"] != "00" || back["amount"] != 150000.0 {
		t.Errorf("unexpected payload %v", back)
	}
}

func TestGatewayPayloadNil(t *testing.T) {
	var p GatewayPayload
	v, err := p.Value()
	if err != nil || v != nil {
		t.Fatalf("nil payload should store NULL, got %v, %v", v, err)
	}
	if err := p.Scan(nil); err != nil || p != nil {
		t.Fatalf("NULL should scan to nil payload, got %v, %v", p, err)
	}
	if err := p.Scan(""); err != nil || p != nil {
		t.Fatalf("empty text should scan to nil payload, got %v, %v", p, err)
	}
}

func TestGatewayPayloadRejectsGarbage(t *testing.T) {
	var p GatewayPayload
	if err := p.Scan("{not json"); err == nil {
		t.Fatal("expected decode error")
	}
	if err := p.Scan(42); err == nil {
		t.Fatal("expected unsupported type error")
	}
}
