package sqlstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store"
)

// activeStatuses adalah status pembayaran yang memblokir percobaan baru.
var activeStatuses = []string{
	string(models.PaymentStatusPending),
	string(models.PaymentStatusProcessing),
}

func (s *Store) CreatePayment(ctx context.Context, p *models.Payment) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Baris order dikunci agar dua percobaan untuk order yang sama berjalan berurutan.
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, p.OrderID).Error; err != nil {
			return err
		}
		if order.Status != models.OrderStatusPending {
			return store.ErrConflict
		}
		var active int64
		err := tx.Model(&models.Payment{}).
			Where("order_id = ? AND status IN ?", p.OrderID, activeStatuses).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return store.ErrConflict
		}
		return tx.Omit(clause.Associations).Create(p).Error
	})
	return translate(err)
}

func (s *Store) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	var p models.Payment
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) TransitionPayment(ctx context.Context, t store.PaymentTransition) (*models.Payment, error) {
	var out models.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]any{
			"status":     string(t.To),
			"updated_at": now,
		}
		if t.PaidAt != nil {
			updates["paid_at"] = *t.PaidAt
		}
		if t.TransactionID != nil {
			updates["transaction_id"] = *t.TransactionID
		}
		if t.VerificationCode != nil {
			updates["verification_code"] = *t.VerificationCode
		}
		if t.GatewayResponse != nil {
			updates["gateway_response"] = t.GatewayResponse
		}

		res := tx.Model(&models.Payment{}).
			Where("id = ? AND status = ?", t.PaymentID, string(t.From)).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&models.Payment{}).Where("id = ?", t.PaymentID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return store.ErrNotFound
			}
			return store.ErrConflict
		}

		if err := tx.First(&out, t.PaymentID).Error; err != nil {
			return err
		}
		if t.OrderStatus != "" {
			err := tx.Model(&models.Order{}).
				Where("id = ?", out.OrderID).
				Updates(map[string]any{"status": string(t.OrderStatus), "updated_at": now}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := newestFirst(s.db.WithContext(ctx)).
		Preload("Order").
		Preload("Order.User").
		Preload("Order.Items", itemsByID).
		Preload("Order.Items.Product").
		Find(&payments).Error
	if err != nil {
		return nil, translate(err)
	}
	return payments, nil
}

func (s *Store) ListExpiredPayments(ctx context.Context, now time.Time) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", string(models.PaymentStatusPending), now).
		Order("id asc").
		Find(&payments).Error
	if err != nil {
		return nil, translate(err)
	}
	return payments, nil
}
