package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store"
)

const EventOrderCreated = "order.created"

// OrderService membuat dan membaca order. Harga item diambil dari produk
// saat order dibuat, total tidak pernah diterima dari klien.
type OrderService struct {
	base
	notify Notifier
}

func NewOrderService(s store.Store, timeout time.Duration, n Notifier) *OrderService {
	return &OrderService{base: newBase(s, timeout), notify: notifierOrNop(n)}
}

func (o *OrderService) CreateOrder(ctx context.Context, userID int64, lines []models.OrderLine) (*models.Order, error) {
	if userID <= 0 {
		return nil, invalid("user id must be a positive integer")
	}
	if len(lines) == 0 {
		return nil, invalid("order must contain at least one item")
	}
	for i, l := range lines {
		if l.ProductID <= 0 {
			return nil, invalid("item %d: productId must be a positive integer", i)
		}
		if l.Quantity <= 0 {
			return nil, invalid("item %d: quantity must be greater than 0", i)
		}
	}

	ctx, cancel := o.writeCtx(ctx)
	defer cancel()

	if _, err := o.store.GetUser(ctx, userID); err != nil {
		return nil, storeError(err, "user")
	}

	order := &models.Order{
		UserID: userID,
		Status: models.OrderStatusPending,
		Items:  make([]models.OrderItem, 0, len(lines)),
	}
	total := decimal.Zero
	for _, l := range lines {
		p, err := o.store.GetProduct(ctx, l.ProductID)
		if err != nil {
			return nil, storeError(err, "product")
		}
		item := models.OrderItem{
			ProductID: p.ID,
			Quantity:  l.Quantity,
			Price:     p.Price,
		}
		total = total.Add(item.Subtotal())
		order.Items = append(order.Items, item)
	}
	order.TotalAmount = total

	if err := o.store.CreateOrder(ctx, order); err != nil {
		return nil, storeError(err, "order")
	}

	created, err := o.store.GetOrder(ctx, order.ID)
	if err != nil {
		return nil, storeError(err, "order")
	}
	o.notify.Publish(EventOrderCreated, created)
	return created, nil
}

func (o *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	if id <= 0 {
		return nil, invalid("order id must be a positive integer")
	}
	ctx, cancel := o.readCtx(ctx)
	defer cancel()

	order, err := o.store.GetOrder(ctx, id)
	if err != nil {
		return nil, storeError(err, "order")
	}
	return order, nil
}

func (o *OrderService) ListOrdersForUser(ctx context.Context, userID int64) ([]models.Order, error) {
	ctx, cancel := o.readCtx(ctx)
	defer cancel()

	orders, err := o.store.ListOrders(ctx, &userID)
	if err != nil {
		return nil, storeError(err, "order")
	}
	return orders, nil
}

func (o *OrderService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	ctx, cancel := o.readCtx(ctx)
	defer cancel()

	orders, err := o.store.ListOrders(ctx, nil)
	if err != nil {
		return nil, storeError(err, "order")
	}
	return orders, nil
}
