package mongostore

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jmt-archery-backend/models"
)

type productDoc struct {
	ID          int64                `bson:"_id"`
	Name        string               `bson:"name"`
	Price       primitive.Decimal128 `bson:"price"`
	Stock       int                  `bson:"stock"`
	Image       string               `bson:"image"`
	Description string               `bson:"description"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

type userDoc struct {
	ID             int64     `bson:"_id"`
	Email          string    `bson:"email"`
	Password       string    `bson:"password"`
	Name           string    `bson:"name"`
	IsAdmin        bool      `bson:"is_admin"`
	IsActive       bool      `bson:"is_active"`
	ProfilePicture *string   `bson:"profile_picture,omitempty"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

type orderDoc struct {
	ID          int64                `bson:"_id"`
	UserID      int64                `bson:"user_id"`
	TotalAmount primitive.Decimal128 `bson:"total_amount"`
	Status      string               `bson:"status"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

type orderItemDoc struct {
	ID        int64                `bson:"_id"`
	OrderID   int64                `bson:"order_id"`
	ProductID int64                `bson:"product_id"`
	Quantity  int                  `bson:"quantity"`
	Price     primitive.Decimal128 `bson:"price"`
}

type paymentDoc struct {
	ID               int64                `bson:"_id"`
	OrderID          int64                `bson:"order_id"`
	Amount           primitive.Decimal128 `bson:"amount"`
	Method           string               `bson:"method"`
	Bank             *string              `bson:"bank,omitempty"`
	Status           string               `bson:"status"`
	TransactionID    *string              `bson:"transaction_id,omitempty"`
	VerificationCode *string              `bson:"verification_code,omitempty"`
	PaidAt           *time.Time           `bson:"paid_at,omitempty"`
	ExpiresAt        *time.Time           `bson:"expires_at,omitempty"`
	GatewayResponse  string               `bson:"gateway_response,omitempty"`
	CreatedAt        time.Time            `bson:"created_at"`
	UpdatedAt        time.Time            `bson:"updated_at"`
}

type reviewDoc struct {
	ID        int64     `bson:"_id"`
	UserID    int64     `bson:"user_id"`
	ProductID *int64    `bson:"product_id"`
	Rating    int       `bson:"rating"`
	Comment   string    `bson:"comment"`
	Image     *string   `bson:"image,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// toDecimal128 gagal untuk nilai yang tidak muat di Decimal128 (34 digit).
func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("mongostore: amount %s out of range: %w", d.String(), err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

func newProductDoc(p *models.Product) (productDoc, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return productDoc{}, err
	}
	return productDoc{
		ID:          p.ID,
		Name:        p.Name,
		Price:       price,
		Stock:       p.Stock,
		Image:       p.Image,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func (d productDoc) model() models.Product {
	return models.Product{
		ID:          d.ID,
		Name:        d.Name,
		Price:       fromDecimal128(d.Price),
		Stock:       d.Stock,
		Image:       d.Image,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func newUserDoc(u *models.User) userDoc {
	return userDoc{
		ID:             u.ID,
		Email:          u.Email,
		Password:       u.Password,
		Name:           u.Name,
		IsAdmin:        u.IsAdmin,
		IsActive:       u.IsActive,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (d userDoc) model() models.User {
	return models.User{
		ID:             d.ID,
		Email:          d.Email,
		Password:       d.Password,
		Name:           d.Name,
		IsAdmin:        d.IsAdmin,
		IsActive:       d.IsActive,
		ProfilePicture: d.ProfilePicture,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (d orderDoc) model() models.Order {
	return models.Order{
		ID:          d.ID,
		UserID:      d.UserID,
		TotalAmount: fromDecimal128(d.TotalAmount),
		Status:      models.OrderStatus(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (d orderItemDoc) model() models.OrderItem {
	return models.OrderItem{
		ID:        d.ID,
		OrderID:   d.OrderID,
		ProductID: d.ProductID,
		Quantity:  d.Quantity,
		Price:     fromDecimal128(d.Price),
	}
}

func newPaymentDoc(p *models.Payment) (paymentDoc, error) {
	raw, err := p.GatewayResponse.Encode()
	if err != nil {
		return paymentDoc{}, err
	}
	amount, err := toDecimal128(p.Amount)
	if err != nil {
		return paymentDoc{}, err
	}
	return paymentDoc{
		ID:               p.ID,
		OrderID:          p.OrderID,
		Amount:           amount,
		Method:           p.Method,
		Bank:             p.Bank,
		Status:           string(p.Status),
		TransactionID:    p.TransactionID,
		VerificationCode: p.VerificationCode,
		PaidAt:           p.PaidAt,
		ExpiresAt:        p.ExpiresAt,
		GatewayResponse:  raw,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}, nil
}

func (d paymentDoc) model() (models.Payment, error) {
	p := models.Payment{
		ID:               d.ID,
		OrderID:          d.OrderID,
		Amount:           fromDecimal128(d.Amount),
		Method:           d.Method,
		Bank:             d.Bank,
		Status:           models.PaymentStatus(d.Status),
		TransactionID:    d.TransactionID,
		VerificationCode: d.VerificationCode,
		PaidAt:           d.PaidAt,
		ExpiresAt:        d.ExpiresAt,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	if err := p.GatewayResponse.Decode(d.GatewayResponse); err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

func (d reviewDoc) model() models.Review {
	return models.Review{
		ID:        d.ID,
		UserID:    d.UserID,
		ProductID: d.ProductID,
		Rating:    d.Rating,
		Comment:   d.Comment,
		Image:     d.Image,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
