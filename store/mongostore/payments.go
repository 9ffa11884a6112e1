package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store"
)

func (s *Store) CreatePayment(ctx context.Context, p *models.Payment) error {
	return s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		ts := now()
		// Menulis dokumen order membuat transaksi lain untuk order yang sama
		// mengalami write conflict dan diulang setelah transaksi ini selesai.
		claimed, err := s.db.Collection(colOrders).UpdateOne(
			sc,
			bson.M{"_id": p.OrderID, "status": string(models.OrderStatusPending)},
			bson.M{"$set": bson.M{"updated_at": ts}},
		)
		if err != nil {
			return err
		}
		if claimed.MatchedCount == 0 {
			n, err := s.db.Collection(colOrders).CountDocuments(sc, bson.M{"_id": p.OrderID})
			if err != nil {
				return err
			}
			if n == 0 {
				return store.ErrNotFound
			}
			return store.ErrConflict
		}

		activeStatuses := bson.A{string(models.PaymentStatusPending), string(models.PaymentStatusProcessing)}
		active, err := s.db.Collection(colPayments).CountDocuments(sc, bson.M{
			"order_id": p.OrderID,
			"status":   bson.M{"$in": activeStatuses},
		})
		if err != nil {
			return err
		}
		if active > 0 {
			return store.ErrConflict
		}

		id, err := s.nextID(sc, colPayments)
		if err != nil {
			return err
		}
		p.ID = id
		p.CreatedAt, p.UpdatedAt = ts, ts

		doc, err := newPaymentDoc(p)
		if err != nil {
			return err
		}
		_, err = s.db.Collection(colPayments).InsertOne(sc, doc)
		return err
	})
}

func (s *Store) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	var d paymentDoc
	if err := s.db.Collection(colPayments).FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, translate(err)
	}
	p, err := d.model()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) TransitionPayment(ctx context.Context, t store.PaymentTransition) (*models.Payment, error) {
	set := bson.M{
		"status":     string(t.To),
		"updated_at": now(),
	}
	if t.PaidAt != nil {
		set["paid_at"] = t.PaidAt.UTC()
	}
	if t.TransactionID != nil {
		set["transaction_id"] = *t.TransactionID
	}
	if t.VerificationCode != nil {
		set["verification_code"] = *t.VerificationCode
	}
	if t.GatewayResponse != nil {
		raw, err := t.GatewayResponse.Encode()
		if err != nil {
			return nil, err
		}
		set["gateway_response"] = raw
	}

	var out models.Payment
	apply := func(ctx context.Context) error {
		var d paymentDoc
		err := s.db.Collection(colPayments).FindOneAndUpdate(
			ctx,
			bson.M{"_id": t.PaymentID, "status": string(t.From)},
			bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&d)
		if errors.Is(err, mongo.ErrNoDocuments) {
			n, cerr := s.db.Collection(colPayments).CountDocuments(ctx, bson.M{"_id": t.PaymentID})
			if cerr != nil {
				return cerr
			}
			if n == 0 {
				return store.ErrNotFound
			}
			return store.ErrConflict
		}
		if err != nil {
			return err
		}
		if out, err = d.model(); err != nil {
			return err
		}
		if t.OrderStatus == "" {
			return nil
		}
		_, err = s.db.Collection(colOrders).UpdateOne(
			ctx,
			bson.M{"_id": out.OrderID},
			bson.M{"$set": bson.M{"status": string(t.OrderStatus), "updated_at": now()}},
		)
		return err
	}

	var err error
	if t.OrderStatus == "" {
		err = translate(apply(ctx))
	} else {
		err = s.withTransaction(ctx, func(sc mongo.SessionContext) error { return apply(sc) })
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) findPayments(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Payment, error) {
	cursor, err := s.db.Collection(colPayments).Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var docs []paymentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate(err)
	}
	payments := make([]models.Payment, 0, len(docs))
	for _, d := range docs {
		p, err := d.model()
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (s *Store) loadPaymentsByOrder(ctx context.Context, orderIDs []int64) (map[int64][]models.Payment, error) {
	payments, err := s.findPayments(ctx, bson.M{"order_id": bson.M{"$in": orderIDs}}, newestFirst())
	if err != nil {
		return nil, err
	}
	out := make(map[int64][]models.Payment)
	for _, p := range payments {
		out[p.OrderID] = append(out[p.OrderID], p)
	}
	return out, nil
}

func (s *Store) ListPayments(ctx context.Context) ([]models.Payment, error) {
	payments, err := s.findPayments(ctx, bson.M{}, newestFirst())
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return payments, nil
	}

	seen := make(map[int64]bool)
	var orderIDs []int64
	for _, p := range payments {
		if !seen[p.OrderID] {
			seen[p.OrderID] = true
			orderIDs = append(orderIDs, p.OrderID)
		}
	}
	cursor, err := s.db.Collection(colOrders).Find(ctx, bson.M{"_id": bson.M{"$in": orderIDs}})
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)
	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate(err)
	}
	orders, err := s.hydrateOrders(ctx, docs, false)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.Order, len(orders))
	for i := range orders {
		byID[orders[i].ID] = &orders[i]
	}
	for i := range payments {
		payments[i].Order = byID[payments[i].OrderID]
	}
	return payments, nil
}

func (s *Store) ListExpiredPayments(ctx context.Context, at time.Time) ([]models.Payment, error) {
	filter := bson.M{
		"status":     string(models.PaymentStatusPending),
		"expires_at": bson.M{"$lte": at.UTC()},
	}
	return s.findPayments(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}
