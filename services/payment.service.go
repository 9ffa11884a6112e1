package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store"
)

const (
	EventPaymentUpdated = "payment.updated"

	DefaultPaymentTTL = 24 * time.Hour
)

type PaymentConfig struct {
	Timeout time.Duration
	// TTL menentukan expiresAt untuk pembayaran baru.
	TTL time.Duration
}

// PaymentService mencatat percobaan pembayaran dan memindahkan statusnya.
// Setiap perpindahan status adalah compare-and-set di store: dari dua
// request yang berebut, yang kalah menerima ErrInvalidTransition.
type PaymentService struct {
	base
	ttl    time.Duration
	notify Notifier
	now    func() time.Time
}

func NewPaymentService(s store.Store, cfg PaymentConfig, n Notifier) *PaymentService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultPaymentTTL
	}
	return &PaymentService{
		base:   newBase(s, cfg.Timeout),
		ttl:    ttl,
		notify: notifierOrNop(n),
		now:    time.Now,
	}
}

// RecordPayment membuat percobaan pembayaran baru berstatus pending untuk
// order. Status order tidak berubah.
func (p *PaymentService) RecordPayment(ctx context.Context, orderID int64, attempt models.PaymentAttempt) (*models.Payment, error) {
	if orderID <= 0 {
		return nil, invalid("order id must be a positive integer")
	}
	method := strings.TrimSpace(attempt.Method)
	if method == "" {
		return nil, invalid("method is required")
	}
	var bank *string
	if attempt.Bank != nil {
		if b := strings.TrimSpace(*attempt.Bank); b != "" {
			bank = &b
		}
	}

	ctx, cancel := p.writeCtx(ctx)
	defer cancel()

	order, err := p.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, storeError(err, "order")
	}
	if order.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("%w: order is already %s", ErrInvalidTransition, order.Status)
	}
	for _, existing := range order.Payments {
		if existing.Status == models.PaymentStatusPending || existing.Status == models.PaymentStatusProcessing {
			return nil, fmt.Errorf("%w: order already has an active payment (#%d)", ErrInvalidTransition, existing.ID)
		}
	}

	now := p.now().UTC()
	expires := now.Add(p.ttl)
	txID := "JMT-" + uuid.NewString()
	payment := &models.Payment{
		OrderID:       order.ID,
		Amount:        order.TotalAmount,
		Method:        method,
		Bank:          bank,
		Status:        models.PaymentStatusPending,
		TransactionID: &txID,
		ExpiresAt:     &expires,
	}
	if err := p.store.CreatePayment(ctx, payment); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, fmt.Errorf("%w: order already has an active payment or is no longer pending", ErrInvalidTransition)
		}
		return nil, storeError(err, "payment")
	}
	p.notify.Publish(EventPaymentUpdated, payment)
	return payment, nil
}

// TransitionPayment memindahkan status pembayaran. Status success mengisi
// paidAt dan menandai order sebagai paid dalam transaksi yang sama.
func (p *PaymentService) TransitionPayment(ctx context.Context, paymentID int64, next models.PaymentStatus, meta models.PaymentMeta) (*models.Payment, error) {
	if paymentID <= 0 {
		return nil, invalid("payment id must be a positive integer")
	}
	if !next.Valid() {
		return nil, invalid("unknown payment status %q", next)
	}

	ctx, cancel := p.writeCtx(ctx)
	defer cancel()

	cur, err := p.store.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, storeError(err, "payment")
	}
	if !cur.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: payment cannot move from %s to %s", ErrInvalidTransition, cur.Status, next)
	}

	t := store.PaymentTransition{
		PaymentID:        cur.ID,
		From:             cur.Status,
		To:               next,
		TransactionID:    trimmed(meta.TransactionID),
		VerificationCode: trimmed(meta.VerificationCode),
		GatewayResponse:  meta.GatewayResponse,
	}
	if next == models.PaymentStatusSuccess {
		paidAt := p.now().UTC()
		t.PaidAt = &paidAt
		t.OrderStatus = models.OrderStatusPaid
	}

	updated, err := p.store.TransitionPayment(ctx, t)
	if err != nil {
		return nil, storeError(err, "payment")
	}
	p.notify.Publish(EventPaymentUpdated, updated)
	return updated, nil
}

func (p *PaymentService) ListAllPayments(ctx context.Context) ([]models.Payment, error) {
	ctx, cancel := p.readCtx(ctx)
	defer cancel()

	payments, err := p.store.ListPayments(ctx)
	if err != nil {
		return nil, storeError(err, "payment")
	}
	return payments, nil
}

// ExpireStale memindahkan pembayaran pending yang sudah lewat expiresAt ke
// status expired dan mengembalikan jumlahnya. Pembayaran yang sudah
// berpindah status oleh request lain dilewati.
func (p *PaymentService) ExpireStale(ctx context.Context) (int, error) {
	readCtx, cancel := p.readCtx(ctx)
	stale, err := p.store.ListExpiredPayments(readCtx, p.now().UTC())
	cancel()
	if err != nil {
		return 0, storeError(err, "payment")
	}

	expired := 0
	for _, pay := range stale {
		_, err := p.TransitionPayment(ctx, pay.ID, models.PaymentStatusExpired, models.PaymentMeta{})
		switch {
		case err == nil:
			expired++
		case errors.Is(err, ErrInvalidTransition):
		default:
			return expired, err
		}
	}
	return expired, nil
}

// RunExpiry menjalankan ExpireStale setiap interval sampai ctx selesai.
func (p *PaymentService) RunExpiry(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.ExpireStale(ctx)
			if err != nil {
				log.Printf("⚠️ Payment expiry sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("⏰ Expired %d stale payment(s)", n)
			}
		}
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
