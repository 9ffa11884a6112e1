package sqlstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"jmt-archery-backend/models"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur models.User
		if err := tx.First(&cur, u.ID).Error; err != nil {
			return err
		}
		err := tx.Model(&cur).Updates(map[string]any{
			"email":           u.Email,
			"password":        u.Password,
			"name":            u.Name,
			"is_admin":        u.IsAdmin,
			"is_active":       u.IsActive,
			"profile_picture": u.ProfilePicture,
			"updated_at":      time.Now(),
		}).Error
		if err != nil {
			return err
		}
		return tx.First(u, u.ID).Error
	})
	return translate(err)
}
