package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jmt-archery-backend/models"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	id, err := s.nextID(ctx, colUsers)
	if err != nil {
		return translate(err)
	}
	ts := now()
	u.ID = id
	u.CreatedAt, u.UpdatedAt = ts, ts

	_, err = s.db.Collection(colUsers).InsertOne(ctx, newUserDoc(u))
	return translate(err)
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var d userDoc
	if err := s.db.Collection(colUsers).FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, translate(err)
	}
	u := d.model()
	return &u, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	var d userDoc
	err := s.db.Collection(colUsers).FindOneAndUpdate(
		ctx,
		bson.M{"_id": u.ID},
		bson.M{"$set": bson.M{
			"email":           u.Email,
			"password":        u.Password,
			"name":            u.Name,
			"is_admin":        u.IsAdmin,
			"is_active":       u.IsActive,
			"profile_picture": u.ProfilePicture,
			"updated_at":      now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return translate(err)
	}
	*u = d.model()
	return nil
}

// loadUsers returns the public projection of the given users keyed by id.
func (s *Store) loadUsers(ctx context.Context, ids []int64) (map[int64]*models.UserPublic, error) {
	out := make(map[int64]*models.UserPublic, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1, "profile_picture": 1})
	cursor, err := s.db.Collection(colUsers).Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate(err)
	}
	for _, d := range docs {
		u := d.model()
		out[d.ID] = u.Public()
	}
	return out, nil
}
