package models

import (
	"time"
)

// User mendefinisikan struktur untuk pengguna toko maupun admin.
type User struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"size:191;not null;uniqueIndex"`
	Password       string    `json:"-" gorm:"not null"`
	Name           string    `json:"name" gorm:"size:191"`
	IsAdmin        bool      `json:"isAdmin" gorm:"not null"`
	IsActive       bool      `json:"isActive" gorm:"not null"`
	ProfilePicture *string   `json:"profilePicture" gorm:"size:512"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Public mengembalikan proyeksi publik pengguna tanpa password.
func (u *User) Public() *UserPublic {
	return &UserPublic{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
	}
}

// UserPublic adalah proyeksi pengguna yang aman untuk dikirim ke klien.
// Tag gorm harus sama dengan User karena keduanya dimigrasi ke tabel users.
type UserPublic struct {
	ID             int64   `json:"id" gorm:"primaryKey"`
	Name           string  `json:"name" gorm:"size:191"`
	Email          string  `json:"email" gorm:"size:191;not null;uniqueIndex"`
	ProfilePicture *string `json:"profilePicture" gorm:"size:512"`
}

// TableName membuat UserPublic membaca tabel yang sama dengan User.
func (UserPublic) TableName() string { return "users" }

// LoginRequest mendefinisikan struktur untuk permintaan login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest mendefinisikan struktur untuk permintaan registrasi.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
