package sqlstore

import (
	"context"

	"github.com/shopspring/decimal"

	"jmt-archery-backend/models"
)

func (s *Store) Stats(ctx context.Context) (*models.Stats, error) {
	db := s.db.WithContext(ctx)
	st := &models.Stats{PaymentsByStatus: make(map[models.PaymentStatus]int64)}

	if err := db.Model(&models.Product{}).Count(&st.TotalProducts).Error; err != nil {
		return nil, translate(err)
	}
	if err := db.Model(&models.User{}).Count(&st.TotalUsers).Error; err != nil {
		return nil, translate(err)
	}
	if err := db.Model(&models.Order{}).Count(&st.TotalOrders).Error; err != nil {
		return nil, translate(err)
	}

	var value decimal.Decimal
	row := db.Model(&models.Product{}).Select("COALESCE(SUM(price * stock), 0)").Row()
	if err := row.Scan(&value); err != nil {
		return nil, translate(err)
	}
	st.InventoryValue = value

	var byStatus []struct {
		Status string
		Total  int64
	}
	err := db.Model(&models.Payment{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, r := range byStatus {
		st.PaymentsByStatus[models.PaymentStatus(r.Status)] = r.Total
	}
	return st, nil
}
