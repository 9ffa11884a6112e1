package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store"
)

func (s *Store) CreateReview(ctx context.Context, r *models.Review) error {
	users, err := s.loadUsers(ctx, []int64{r.UserID})
	if err != nil {
		return err
	}
	u, ok := users[r.UserID]
	if !ok {
		return store.ErrNotFound
	}

	id, err := s.nextID(ctx, colReviews)
	if err != nil {
		return translate(err)
	}
	ts := now()
	r.ID = id
	r.CreatedAt, r.UpdatedAt = ts, ts

	_, err = s.db.Collection(colReviews).InsertOne(ctx, reviewDoc{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Image:     r.Image,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	})
	if err != nil {
		return translate(err)
	}
	r.User = u
	return nil
}

func (s *Store) ListReviews(ctx context.Context, f models.ReviewFilter) ([]models.Review, error) {
	filter := bson.M{}
	if f.ProductID != nil {
		filter["product_id"] = *f.ProductID
	}
	opts := newestFirst()
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cursor, err := s.db.Collection(colReviews).Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var docs []reviewDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate(err)
	}

	userIDs := make([]int64, 0, len(docs))
	for _, d := range docs {
		userIDs = append(userIDs, d.UserID)
	}
	users, err := s.loadUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	reviews := make([]models.Review, 0, len(docs))
	for _, d := range docs {
		r := d.model()
		r.User = users[d.UserID]
		reviews = append(reviews, r)
	}
	return reviews, nil
}

