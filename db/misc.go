package db

import (
	"context"

	"rihla/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) InsertRequest(ctx context.Context, req *models.Request) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	_, err := s.Requests.InsertOne(ctx, req)
	return err
}

func (s *Store) ListRequests(ctx context.Context) ([]models.Request, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	cur, err := s.Requests.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	requests := []models.Request{}
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var setting models.Setting
	err := s.Settings.FindOne(ctx, bson.M{"key": key}).Decode(&setting)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	_, err := s.Settings.UpdateOne(ctx,
		bson.M{"key": key},
		bson.M{"$set": bson.M{"value": value}},
		options.Update().SetUpsert(true),
	)
	return err
}
