package db

import (
	"context"
	"time"

	"rihla/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) InsertUser(ctx context.Context, user *models.User) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := s.Users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrUserExists
	}
	return err
}

func (s *Store) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"userid": userID})
}

// GetUserByLogin matches the login field against username or email.
func (s *Store) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"$or": []bson.M{
		{"username": login},
		{"email": login},
	}})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

// GetUserByResetToken only matches tokens that have not expired yet.
func (s *Store) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	return s.findUser(ctx, bson.M{
		"reset_token":  token,
		"reset_expiry": bson.M{"$gt": time.Now()},
	})
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var user models.User
	err := s.Users.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, userID string, fields bson.M) (*models.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res := s.Users.FindOneAndUpdate(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var user models.User
	if err := res.Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.Users.DeleteOne(ctx, bson.M{"userid": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListAdmins returns admin accounts without credential fields.
func (s *Store) ListAdmins(ctx context.Context) ([]models.User, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	cur, err := s.Users.Find(ctx,
		bson.M{"role": "admin"},
		options.Find().SetProjection(bson.M{"userid": 1, "username": 1, "email": 1, "role": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	admins := []models.User{}
	if err := cur.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}
