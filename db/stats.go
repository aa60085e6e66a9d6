package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// CountBookingsByStatus groups bookings by status.
func (s *Store) CountBookingsByStatus(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}
	cur, err := s.Bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := map[string]int64{}
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.Status] = row.Count
	}
	return counts, cur.Err()
}

// CountConfirmedByTrip groups confirmed bookings by trip.
func (s *Store) CountConfirmedByTrip(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"status": "confirmed"}},
		{"$group": bson.M{"_id": "$tripid", "count": bson.M{"$sum": 1}}},
	}
	cur, err := s.Bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := map[string]int64{}
	for cur.Next(ctx) {
		var row struct {
			TripID string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.TripID] = row.Count
	}
	return counts, cur.Err()
}

func (s *Store) CountFlagged(ctx context.Context) (int64, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	return s.Flags.CountDocuments(ctx, bson.M{"redFlag": true})
}

func (s *Store) CountTrips(ctx context.Context) (int64, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	return s.Trips.CountDocuments(ctx, bson.M{})
}
