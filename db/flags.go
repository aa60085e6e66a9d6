package db

import (
	"context"
	"time"

	"rihla/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetFlag returns nil (no error) when the CIN has no registry entry;
// a missing entry just means "not flagged".
func (s *Store) GetFlag(ctx context.Context, cin string) (*models.FlagEntry, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var entry models.FlagEntry
	err := s.Flags.FindOne(ctx, bson.M{"cin": cin}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpsertFlag creates or overwrites the registry entry for a CIN.
func (s *Store) UpsertFlag(ctx context.Context, cin string, redFlag bool) (*models.FlagEntry, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res := s.Flags.FindOneAndUpdate(ctx,
		bson.M{"cin": cin},
		bson.M{"$set": bson.M{"redFlag": redFlag, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var entry models.FlagEntry
	if err := res.Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
