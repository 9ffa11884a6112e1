package sqlstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jmt-archery-backend/models"
)

func itemsByID(db *gorm.DB) *gorm.DB { return db.Order("id asc") }

func newestFirst(db *gorm.DB) *gorm.DB { return db.Order("created_at desc, id desc") }

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(o).Error; err != nil {
			return err
		}
		if len(o.Items) == 0 {
			return nil
		}
		for i := range o.Items {
			o.Items[i].OrderID = o.ID
			o.Items[i].Product = nil
		}
		return tx.Omit(clause.Associations).Create(&o.Items).Error
	})
	return translate(err)
}

func (s *Store) orderQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("User").
		Preload("Items", itemsByID).
		Preload("Items.Product").
		Preload("Payments", newestFirst)
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	if err := s.orderQuery(ctx).First(&o, id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (s *Store) ListOrders(ctx context.Context, userID *int64) ([]models.Order, error) {
	q := s.orderQuery(ctx)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var orders []models.Order
	if err := newestFirst(q).Find(&orders).Error; err != nil {
		return nil, translate(err)
	}
	return orders, nil
}
