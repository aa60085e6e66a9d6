package db

import (
	"context"
	"time"

	"rihla/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) InsertTrip(ctx context.Context, trip *models.Trip) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	_, err := s.Trips.InsertOne(ctx, trip)
	return err
}

func (s *Store) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var trip models.Trip
	err := s.Trips.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&trip)
	if err == mongo.ErrNoDocuments {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// ListTrips returns all trips sorted by departure date ascending.
func (s *Store) ListTrips(ctx context.Context) ([]models.Trip, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	cur, err := s.Trips.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"date": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	trips := []models.Trip{}
	if err := cur.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (s *Store) UpdateTrip(ctx context.Context, tripID string, fields bson.M) (*models.Trip, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	fields["updatedAt"] = time.Now()
	res := s.Trips.FindOneAndUpdate(ctx,
		bson.M{"tripid": tripID},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var trip models.Trip
	if err := res.Decode(&trip); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (s *Store) DeleteTrip(ctx context.Context, tripID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.Trips.DeleteOne(ctx, bson.M{"tripid": tripID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrTripNotFound
	}
	return nil
}

// ConfirmSeat takes one seat off the trip as a single conditional update.
// The seats > 0 filter makes the check-and-decrement atomic at the storage
// layer, so two racing confirmations cannot drive the count negative; the
// loser sees MatchedCount == 0 and gets ErrNoSeats.
func (s *Store) ConfirmSeat(ctx context.Context, tripID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.Trips.UpdateOne(ctx,
		bson.M{"tripid": tripID, "seats": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"seats": -1},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Sold out or gone entirely; tell the caller which.
		if err := s.Trips.FindOne(ctx, bson.M{"tripid": tripID}).Err(); err == mongo.ErrNoDocuments {
			return ErrTripNotFound
		} else if err != nil {
			return err
		}
		return ErrNoSeats
	}
	return nil
}

// ReleaseSeat gives one seat back when a confirmed booking leaves the
// confirmed state.
func (s *Store) ReleaseSeat(ctx context.Context, tripID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.Trips.UpdateOne(ctx,
		bson.M{"tripid": tripID},
		bson.M{
			"$inc": bson.M{"seats": 1},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTripNotFound
	}
	return nil
}
