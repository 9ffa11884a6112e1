package mongostore

import (
	"context"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jmt-archery-backend/models"
)

func (s *Store) Stats(ctx context.Context) (*models.Stats, error) {
	st := &models.Stats{
		InventoryValue:   decimal.Zero,
		PaymentsByStatus: make(map[models.PaymentStatus]int64),
	}

	var err error
	if st.TotalProducts, err = s.db.Collection(colProducts).CountDocuments(ctx, bson.M{}); err != nil {
		return nil, translate(err)
	}
	if st.TotalUsers, err = s.db.Collection(colUsers).CountDocuments(ctx, bson.M{}); err != nil {
		return nil, translate(err)
	}
	if st.TotalOrders, err = s.db.Collection(colOrders).CountDocuments(ctx, bson.M{}); err != nil {
		return nil, translate(err)
	}

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": bson.M{"$multiply": []string{"$price", "$stock"}}},
		}},
	}
	cursor, err := s.db.Collection(colProducts).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err)
	}
	var totals []bson.M
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, translate(err)
	}
	if len(totals) > 0 {
		st.InventoryValue = numberToDecimal(totals[0]["total"])
	}

	statusPipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}
	cursor, err = s.db.Collection(colPayments).Aggregate(ctx, statusPipeline)
	if err != nil {
		return nil, translate(err)
	}
	var groups []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, translate(err)
	}
	for _, g := range groups {
		st.PaymentsByStatus[models.PaymentStatus(g.Status)] = g.Count
	}
	return st, nil
}

func numberToDecimal(v interface{}) decimal.Decimal {
	switch n := v.(type) {
	case primitive.Decimal128:
		return fromDecimal128(n)
	case float64:
		return decimal.NewFromFloat(n)
	case int32:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	default:
		return decimal.Zero
	}
}
