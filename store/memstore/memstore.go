// Package memstore is an in-memory store.Store. A single mutex serialises
// every operation, which gives the same atomicity guarantees the SQL and
// mongo backends get from conditional updates and transactions.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store"
)

type Store struct {
	mu  sync.Mutex
	now func() time.Time

	seq        int64
	products   map[int64]models.Product
	users      map[int64]models.User
	orders     map[int64]models.Order
	orderItems map[int64]models.OrderItem
	payments   map[int64]models.Payment
	reviews    map[int64]models.Review
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		now:        time.Now,
		products:   make(map[int64]models.Product),
		users:      make(map[int64]models.User),
		orders:     make(map[int64]models.Order),
		orderItems: make(map[int64]models.OrderItem),
		payments:   make(map[int64]models.Payment),
		reviews:    make(map[int64]models.Review),
	}
}

// SetClock replaces the clock used for timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error  { return checkCtx(ctx) }
func (s *Store) Close(ctx context.Context) error { return nil }

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *Store) productNameTaken(name string, except int64) bool {
	for id, p := range s.products {
		if id != except && p.Name == name {
			return true
		}
	}
	return false
}

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.productNameTaken(p.Name, 0) {
		return store.ErrDuplicate
	}
	now := s.now()
	p.ID = s.nextID()
	p.CreatedAt, p.UpdatedAt = now, now
	s.products[p.ID] = *p
	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.products[p.ID]
	if !ok {
		return store.ErrNotFound
	}
	if s.productNameTaken(p.Name, p.ID) {
		return store.ErrDuplicate
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = s.now()
	s.products[p.ID] = *p
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *Store) IncrementStock(ctx context.Context, id int64, amount int) (*models.Product, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if p.Stock > models.MaxStock-amount {
		return nil, store.ErrStockLimit
	}
	p.Stock += amount
	p.UpdatedAt = s.now()
	s.products[id] = p
	return &p, nil
}

func (s *Store) DecrementStock(ctx context.Context, id int64, amount int) (*models.Product, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if p.Stock < amount {
		return nil, store.ErrInsufficientStock
	}
	p.Stock -= amount
	p.UpdatedAt = s.now()
	s.products[id] = p
	return &p, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	now := s.now()
	u.ID = s.nextID()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	return nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[u.ID]
	if !ok {
		return store.ErrNotFound
	}
	for id, existing := range s.users {
		if id != u.ID && existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = s.now()
	s.users[u.ID] = *u
	return nil
}

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[o.UserID]; !ok {
		return store.ErrNotFound
	}
	for _, it := range o.Items {
		if _, ok := s.products[it.ProductID]; !ok {
			return store.ErrNotFound
		}
	}

	now := s.now()
	o.ID = s.nextID()
	o.CreatedAt, o.UpdatedAt = now, now
	for i := range o.Items {
		o.Items[i].ID = s.nextID()
		o.Items[i].OrderID = o.ID
		o.Items[i].Product = nil
		s.orderItems[o.Items[i].ID] = o.Items[i]
	}
	stored := *o
	stored.Items = nil
	stored.User = nil
	stored.Payments = nil
	s.orders[o.ID] = stored
	return nil
}

// hydrateOrder fills the relations of a stored order. Caller holds s.mu.
func (s *Store) hydrateOrder(o models.Order, withPayments bool) models.Order {
	if u, ok := s.users[o.UserID]; ok {
		o.User = u.Public()
	}
	o.Items = []models.OrderItem{}
	for _, it := range s.orderItems {
		if it.OrderID != o.ID {
			continue
		}
		if p, ok := s.products[it.ProductID]; ok {
			it.Product = &p
		}
		o.Items = append(o.Items, it)
	}
	sort.Slice(o.Items, func(i, j int) bool { return o.Items[i].ID < o.Items[j].ID })

	if withPayments {
		o.Payments = []models.Payment{}
		for _, p := range s.payments {
			if p.OrderID == o.ID {
				o.Payments = append(o.Payments, p)
			}
		}
		sortPayments(o.Payments)
	}
	return o
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	o = s.hydrateOrder(o, true)
	return &o, nil
}

func (s *Store) ListOrders(ctx context.Context, userID *int64) ([]models.Order, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Order{}
	for _, o := range s.orders {
		if userID != nil && o.UserID != *userID {
			continue
		}
		out = append(out, s.hydrateOrder(o, true))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) CreatePayment(ctx context.Context, p *models.Payment) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[p.OrderID]
	if !ok {
		return store.ErrNotFound
	}
	if order.Status != models.OrderStatusPending {
		return store.ErrConflict
	}
	for _, existing := range s.payments {
		if existing.OrderID == p.OrderID &&
			(existing.Status == models.PaymentStatusPending || existing.Status == models.PaymentStatusProcessing) {
			return store.ErrConflict
		}
	}
	if p.TransactionID != nil {
		for _, existing := range s.payments {
			if existing.TransactionID != nil && *existing.TransactionID == *p.TransactionID {
				return store.ErrDuplicate
			}
		}
	}
	now := s.now()
	p.ID = s.nextID()
	p.CreatedAt, p.UpdatedAt = now, now
	stored := *p
	stored.Order = nil
	s.payments[p.ID] = stored
	return nil
}

func (s *Store) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *Store) TransitionPayment(ctx context.Context, t store.PaymentTransition) (*models.Payment, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[t.PaymentID]
	if !ok {
		return nil, store.ErrNotFound
	}
	if p.Status != t.From {
		return nil, store.ErrConflict
	}

	now := s.now()
	p.Status = t.To
	p.UpdatedAt = now
	if t.PaidAt != nil {
		p.PaidAt = t.PaidAt
	}
	if t.TransactionID != nil {
		p.TransactionID = t.TransactionID
	}
	if t.VerificationCode != nil {
		p.VerificationCode = t.VerificationCode
	}
	if t.GatewayResponse != nil {
		p.GatewayResponse = t.GatewayResponse
	}
	if t.OrderStatus != "" {
		if o, ok := s.orders[p.OrderID]; ok {
			o.Status = t.OrderStatus
			o.UpdatedAt = now
			s.orders[o.ID] = o
		}
	}
	s.payments[p.ID] = p
	return &p, nil
}

func sortPayments(ps []models.Payment) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.After(ps[j].CreatedAt)
		}
		return ps[i].ID > ps[j].ID
	})
}

func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		if o, ok := s.orders[p.OrderID]; ok {
			o = s.hydrateOrder(o, false)
			p.Order = &o
		}
		out = append(out, p)
	}
	sortPayments(out)
	return out, nil
}

func (s *Store) ListExpiredPayments(ctx context.Context, now time.Time) ([]models.Payment, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Payment{}
	for _, p := range s.payments {
		if p.Status == models.PaymentStatusPending && p.ExpiresAt != nil && !p.ExpiresAt.After(now) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CreateReview(ctx context.Context, r *models.Review) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[r.UserID]
	if !ok {
		return store.ErrNotFound
	}
	now := s.now()
	r.ID = s.nextID()
	r.CreatedAt, r.UpdatedAt = now, now
	stored := *r
	stored.User = nil
	s.reviews[r.ID] = stored
	r.User = u.Public()
	return nil
}

func (s *Store) ListReviews(ctx context.Context, f models.ReviewFilter) ([]models.Review, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Review{}
	for _, r := range s.reviews {
		if f.ProductID != nil && (r.ProductID == nil || *r.ProductID != *f.ProductID) {
			continue
		}
		if u, ok := s.users[r.UserID]; ok {
			r.User = u.Public()
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) Stats(ctx context.Context) (*models.Stats, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &models.Stats{
		TotalProducts:    int64(len(s.products)),
		TotalUsers:       int64(len(s.users)),
		TotalOrders:      int64(len(s.orders)),
		InventoryValue:   decimal.Zero,
		PaymentsByStatus: make(map[models.PaymentStatus]int64),
	}
	for _, p := range s.products {
		st.InventoryValue = st.InventoryValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	for _, p := range s.payments {
		st.PaymentsByStatus[p.Status]++
	}
	return st, nil
}
