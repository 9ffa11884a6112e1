package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store"
)

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.db.Collection(colProducts).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, translate(err)
	}
	products := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.model())
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var d productDoc
	if err := s.db.Collection(colProducts).FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, translate(err)
	}
	p := d.model()
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	id, err := s.nextID(ctx, colProducts)
	if err != nil {
		return translate(err)
	}
	ts := now()
	p.ID = id
	p.CreatedAt, p.UpdatedAt = ts, ts

	doc, err := newProductDoc(p)
	if err != nil {
		return err
	}
	_, err = s.db.Collection(colProducts).InsertOne(ctx, doc)
	return translate(err)
}

func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return err
	}
	var d productDoc
	err = s.db.Collection(colProducts).FindOneAndUpdate(
		ctx,
		bson.M{"_id": p.ID},
		bson.M{"$set": bson.M{
			"name":        p.Name,
			"price":       price,
			"stock":       p.Stock,
			"image":       p.Image,
			"description": p.Description,
			"updated_at":  now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return translate(err)
	}
	*p = d.model()
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	result, err := s.db.Collection(colProducts).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) IncrementStock(ctx context.Context, id int64, amount int) (*models.Product, error) {
	p, err := s.adjustStock(ctx, bson.M{"_id": id, "stock": bson.M{"$lte": models.MaxStock - amount}}, amount)
	if !errors.Is(err, store.ErrNotFound) {
		return p, err
	}
	return nil, s.missedStockUpdate(ctx, id, store.ErrStockLimit)
}

func (s *Store) DecrementStock(ctx context.Context, id int64, amount int) (*models.Product, error) {
	p, err := s.adjustStock(ctx, bson.M{"_id": id, "stock": bson.M{"$gte": amount}}, -amount)
	if !errors.Is(err, store.ErrNotFound) {
		return p, err
	}
	return nil, s.missedStockUpdate(ctx, id, store.ErrInsufficientStock)
}

// missedStockUpdate tells a missing product apart from a failed stock
// condition after a filtered update matched nothing.
func (s *Store) missedStockUpdate(ctx context.Context, id int64, condErr error) error {
	n, err := s.db.Collection(colProducts).CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return condErr
}

func (s *Store) adjustStock(ctx context.Context, filter bson.M, delta int) (*models.Product, error) {
	var d productDoc
	err := s.db.Collection(colProducts).FindOneAndUpdate(
		ctx,
		filter,
		bson.M{
			"$inc": bson.M{"stock": delta},
			"$set": bson.M{"updated_at": now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	p := d.model()
	return &p, nil
}
