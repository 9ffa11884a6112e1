package sqlstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jmt-archery-backend/models"
)

func (s *Store) CreateReview(ctx context.Context, r *models.Review) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(r).Error; err != nil {
			return err
		}
		return tx.Preload("User").First(r, r.ID).Error
	})
	return translate(err)
}

func (s *Store) ListReviews(ctx context.Context, f models.ReviewFilter) ([]models.Review, error) {
	q := newestFirst(s.db.WithContext(ctx)).Preload("User")
	if f.ProductID != nil {
		q = q.Where("product_id = ?", *f.ProductID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var reviews []models.Review
	if err := q.Find(&reviews).Error; err != nil {
		return nil, translate(err)
	}
	return reviews, nil
}
