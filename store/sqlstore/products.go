package sqlstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store"
)

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("id asc").Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur models.Product
		if err := tx.First(&cur, p.ID).Error; err != nil {
			return err
		}
		err := tx.Model(&cur).Updates(map[string]any{
			"name":        p.Name,
			"price":       p.Price,
			"stock":       p.Stock,
			"image":       p.Image,
			"description": p.Description,
			"updated_at":  time.Now(),
		}).Error
		if err != nil {
			return err
		}
		return tx.First(p, p.ID).Error
	})
	return translate(err)
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) IncrementStock(ctx context.Context, id int64, amount int) (*models.Product, error) {
	db := s.db.WithContext(ctx)
	res := db.Model(&models.Product{}).
		Where("id = ? AND stock <= ?", id, models.MaxStock-amount).
		Updates(map[string]any{
			"stock":      gorm.Expr("stock + ?", amount),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, s.missedStockUpdate(ctx, id, store.ErrStockLimit)
	}
	return s.GetProduct(ctx, id)
}

func (s *Store) DecrementStock(ctx context.Context, id int64, amount int) (*models.Product, error) {
	db := s.db.WithContext(ctx)
	res := db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, amount).
		Updates(map[string]any{
			"stock":      gorm.Expr("stock - ?", amount),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, s.missedStockUpdate(ctx, id, store.ErrInsufficientStock)
	}
	return s.GetProduct(ctx, id)
}

// missedStockUpdate tells a missing product apart from a failed stock
// condition after a conditional update touched no row.
func (s *Store) missedStockUpdate(ctx context.Context, id int64, condErr error) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return translate(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return condErr
}
