package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store"
)

const (
	MinCommentLength   = 10
	DefaultLatestLimit = 3
)

// ReviewInput adalah data review dari klien.
type ReviewInput struct {
	UserID    int64   `json:"userId"`
	Rating    int     `json:"rating"`
	Comment   string  `json:"comment"`
	ProductID *int64  `json:"productId"`
	Image     *string `json:"image"`
}

type ReviewService struct {
	base
}

func NewReviewService(s store.Store, timeout time.Duration) *ReviewService {
	return &ReviewService{base: newBase(s, timeout)}
}

// CreateReview memvalidasi lalu menyimpan review. Hasilnya sudah berisi
// proyeksi publik pengguna.
func (r *ReviewService) CreateReview(ctx context.Context, in ReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, invalid("rating must be between 1 and 5")
	}
	comment := strings.TrimSpace(in.Comment)
	if utf8.RuneCountInString(comment) < MinCommentLength {
		return nil, invalid("comment must be at least %d characters", MinCommentLength)
	}
	if in.UserID <= 0 {
		return nil, invalid("userId is required")
	}
	if in.ProductID != nil && *in.ProductID <= 0 {
		return nil, invalid("productId must be a positive integer")
	}

	ctx, cancel := r.writeCtx(ctx)
	defer cancel()

	if _, err := r.store.GetUser(ctx, in.UserID); err != nil {
		return nil, storeError(err, "user")
	}
	if in.ProductID != nil {
		if _, err := r.store.GetProduct(ctx, *in.ProductID); err != nil {
			return nil, storeError(err, "product")
		}
	}

	review := &models.Review{
		UserID:    in.UserID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   comment,
		Image:     trimmed(in.Image),
	}
	if err := r.store.CreateReview(ctx, review); err != nil {
		return nil, storeError(err, "review")
	}
	return review, nil
}

// ListReviews mengembalikan semua review, atau hanya review satu produk
// jika productID diisi.
func (r *ReviewService) ListReviews(ctx context.Context, productID *int64) ([]models.Review, error) {
	ctx, cancel := r.readCtx(ctx)
	defer cancel()

	reviews, err := r.store.ListReviews(ctx, models.ReviewFilter{ProductID: productID})
	if err != nil {
		return nil, storeError(err, "review")
	}
	return reviews, nil
}

// LatestReviews mengembalikan limit review terbaru dari semua produk.
func (r *ReviewService) LatestReviews(ctx context.Context, limit int) ([]models.Review, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	ctx, cancel := r.readCtx(ctx)
	defer cancel()

	reviews, err := r.store.ListReviews(ctx, models.ReviewFilter{Limit: limit})
	if err != nil {
		return nil, storeError(err, "review")
	}
	return reviews, nil
}
