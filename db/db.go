package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Failure signals surfaced to handlers. Handlers map these to HTTP codes;
// anything else is a 500.
var (
	ErrTripNotFound    = errors.New("trip not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrNoSeats         = errors.New("no seats available")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
)

// Store is the process-wide data-access handle. It is constructed once in
// main and passed to the handlers that need it; nothing in this package
// keeps global connection state.
type Store struct {
	Client   *mongo.Client
	Trips    *mongo.Collection
	Bookings *mongo.Collection
	Flags    *mongo.Collection
	Users    *mongo.Collection
	Requests *mongo.Collection
	Settings *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	database := client.Database(dbName)
	s := &Store{
		Client:   client,
		Trips:    database.Collection("trips"),
		Bookings: database.Collection("bookings"),
		Flags:    database.Collection("flagged"),
		Users:    database.Collection("users"),
		Requests: database.Collection("requests"),
		Settings: database.Collection("settings"),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.Flags.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"cin": 1},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.Users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"username": 1}, Options: options.Index().SetUnique(true)},
		{Keys: bson.M{"email": 1}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}

	_, err = s.Bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"bookingid": 1}, Options: options.Index().SetUnique(true)},
		{Keys: bson.M{"cin": 1}},
		{Keys: bson.M{"tripid": 1}},
	})
	return err
}

func opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 5*time.Second)
}
