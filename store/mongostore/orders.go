package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jmt-archery-backend/models"
)

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	total, err := toDecimal128(o.TotalAmount)
	if err != nil {
		return err
	}
	prices := make([]primitive.Decimal128, len(o.Items))
	for i := range o.Items {
		if prices[i], err = toDecimal128(o.Items[i].Price); err != nil {
			return err
		}
	}
	return s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		id, err := s.nextID(sc, colOrders)
		if err != nil {
			return err
		}
		ts := now()
		o.ID = id
		o.CreatedAt, o.UpdatedAt = ts, ts

		_, err = s.db.Collection(colOrders).InsertOne(sc, orderDoc{
			ID:          o.ID,
			UserID:      o.UserID,
			TotalAmount: total,
			Status:      string(o.Status),
			CreatedAt:   o.CreatedAt,
			UpdatedAt:   o.UpdatedAt,
		})
		if err != nil {
			return err
		}

		docs := make([]interface{}, 0, len(o.Items))
		for i := range o.Items {
			itemID, err := s.nextID(sc, colOrderItems)
			if err != nil {
				return err
			}
			o.Items[i].ID = itemID
			o.Items[i].OrderID = o.ID
			o.Items[i].Product = nil
			docs = append(docs, orderItemDoc{
				ID:        itemID,
				OrderID:   o.ID,
				ProductID: o.Items[i].ProductID,
				Quantity:  o.Items[i].Quantity,
				Price:     prices[i],
			})
		}
		if len(docs) == 0 {
			return nil
		}
		_, err = s.db.Collection(colOrderItems).InsertMany(sc, docs)
		return err
	})
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var d orderDoc
	if err := s.db.Collection(colOrders).FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, translate(err)
	}
	orders, err := s.hydrateOrders(ctx, []orderDoc{d}, true)
	if err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (s *Store) ListOrders(ctx context.Context, userID *int64) ([]models.Order, error) {
	filter := bson.M{}
	if userID != nil {
		filter["user_id"] = *userID
	}
	cursor, err := s.db.Collection(colOrders).Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate(err)
	}
	return s.hydrateOrders(ctx, docs, true)
}

// hydrateOrders loads user, items (with product) and optionally payments for
// each order, one query per relation.
func (s *Store) hydrateOrders(ctx context.Context, docs []orderDoc, withPayments bool) ([]models.Order, error) {
	orders := make([]models.Order, 0, len(docs))
	if len(docs) == 0 {
		return orders, nil
	}

	orderIDs := make([]int64, 0, len(docs))
	userIDs := make([]int64, 0, len(docs))
	for _, d := range docs {
		orderIDs = append(orderIDs, d.ID)
		userIDs = append(userIDs, d.UserID)
	}

	users, err := s.loadUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	items, err := s.loadOrderItems(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	var payments map[int64][]models.Payment
	if withPayments {
		if payments, err = s.loadPaymentsByOrder(ctx, orderIDs); err != nil {
			return nil, err
		}
	}

	for _, d := range docs {
		o := d.model()
		o.User = users[d.UserID]
		o.Items = items[d.ID]
		if o.Items == nil {
			o.Items = []models.OrderItem{}
		}
		if withPayments {
			o.Payments = payments[d.ID]
			if o.Payments == nil {
				o.Payments = []models.Payment{}
			}
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (s *Store) loadOrderItems(ctx context.Context, orderIDs []int64) (map[int64][]models.OrderItem, error) {
	cursor, err := s.db.Collection(colOrderItems).Find(
		ctx,
		bson.M{"order_id": bson.M{"$in": orderIDs}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var docs []orderItemDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate(err)
	}

	productIDs := make([]int64, 0, len(docs))
	for _, d := range docs {
		productIDs = append(productIDs, d.ProductID)
	}
	products, err := s.loadProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[int64][]models.OrderItem)
	for _, d := range docs {
		it := d.model()
		if p, ok := products[d.ProductID]; ok {
			it.Product = &p
		}
		out[d.OrderID] = append(out[d.OrderID], it)
	}
	return out, nil
}

func (s *Store) loadProducts(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	out := make(map[int64]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := s.db.Collection(colProducts).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate(err)
	}
	for _, d := range docs {
		out[d.ID] = d.model()
	}
	return out, nil
}
