// Package store defines the persistence gateway used by the services. The
// concrete backends live in sqlstore (gorm over postgres or mysql), mongostore
// and memstore (tests).
package store

import (
	"context"
	"errors"
	"time"

	"jmt-archery-backend/models"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("duplicate key")
	ErrConflict          = errors.New("concurrent update conflict")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStockLimit        = errors.New("stock limit exceeded")
	ErrUnavailable       = errors.New("store unavailable")
)

// PaymentTransition is a compare-and-set on a payment's status. The update
// applies only while the stored status still equals From. When OrderStatus is
// set, the owning order is updated in the same transaction.
type PaymentTransition struct {
	PaymentID        int64
	From             models.PaymentStatus
	To               models.PaymentStatus
	PaidAt           *time.Time
	TransactionID    *string
	VerificationCode *string
	GatewayResponse  models.GatewayPayload
	OrderStatus      models.OrderStatus
}

type Store interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error

	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	// IncrementStock adds amount to the product's stock and returns the
	// updated row. It applies only while stock + amount <= models.MaxStock
	// and returns ErrStockLimit otherwise.
	IncrementStock(ctx context.Context, id int64, amount int) (*models.Product, error)
	// DecrementStock subtracts amount only while stock >= amount, as one
	// conditional update. It returns ErrInsufficientStock otherwise.
	DecrementStock(ctx context.Context, id int64, amount int) (*models.Product, error)

	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error

	// CreateOrder writes the order and all of its items in one transaction.
	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	// ListOrders returns orders newest first with user, items (with product)
	// and payments loaded. A nil userID lists every order.
	ListOrders(ctx context.Context, userID *int64) ([]models.Order, error)

	// CreatePayment inserts a new attempt only while the order is pending and
	// has no pending or processing payment. The check and the insert are one
	// atomic step; a violation returns ErrConflict.
	CreatePayment(ctx context.Context, p *models.Payment) error
	GetPayment(ctx context.Context, id int64) (*models.Payment, error)
	TransitionPayment(ctx context.Context, t PaymentTransition) (*models.Payment, error)
	// ListPayments returns payments newest first with order, order user and
	// order items (with product) loaded.
	ListPayments(ctx context.Context) ([]models.Payment, error)
	ListExpiredPayments(ctx context.Context, now time.Time) ([]models.Payment, error)

	CreateReview(ctx context.Context, r *models.Review) error
	// ListReviews returns reviews newest first with the user projection.
	ListReviews(ctx context.Context, f models.ReviewFilter) ([]models.Review, error)

	Stats(ctx context.Context) (*models.Stats, error)
}
