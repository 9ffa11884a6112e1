package models

import "time"

// Review adalah ulasan pengguna. ProductID nil berarti ulasan untuk toko.
type Review struct {
	ID        int64       `json:"id" gorm:"primaryKey"`
	UserID    int64       `json:"userId" gorm:"index;not null"`
	User      *UserPublic `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ProductID *int64      `json:"productId" gorm:"index"`
	Rating    int         `json:"rating" gorm:"not null"`
	Comment   string      `json:"comment" gorm:"type:text;not null"`
	Image     *string     `json:"image" gorm:"size:512"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// ReviewFilter membatasi hasil daftar review.
type ReviewFilter struct {
	ProductID *int64
	Limit     int
}
