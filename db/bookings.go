package db

import (
	"context"
	"time"

	"rihla/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) InsertBooking(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()
	_, err := s.Bookings.InsertOne(ctx, booking)
	return err
}

func (s *Store) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var booking models.Booking
	err := s.Bookings.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBookings returns bookings newest first, optionally filtered by CIN.
func (s *Store) ListBookings(ctx context.Context, cin string) ([]models.Booking, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{}
	if cin != "" {
		filter["cin"] = cin
	}

	cur, err := s.Bookings.Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// SetBookingStatus writes status, flag and comment in one update.
func (s *Store) SetBookingStatus(ctx context.Context, bookingID, status string, flag bool, comment string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.Bookings.UpdateOne(ctx,
		bson.M{"bookingid": bookingID},
		bson.M{"$set": bson.M{
			"status":    status,
			"flag":      flag,
			"comment":   comment,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (s *Store) SetBookingCheckedIn(ctx context.Context, bookingID string, checkedIn bool) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.Bookings.UpdateOne(ctx,
		bson.M{"bookingid": bookingID},
		bson.M{"$set": bson.M{"checkedIn": checkedIn, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (s *Store) DeleteBooking(ctx context.Context, bookingID string) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.Bookings.DeleteOne(ctx, bson.M{"bookingid": bookingID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// PropagateFlag rewrites the denormalized flag on every booking made under
// the given CIN and reports how many were touched. Only bookings whose flag
// actually differs match, so replaying the same update touches nothing.
func (s *Store) PropagateFlag(ctx context.Context, cin string, flag bool) (int64, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := s.Bookings.UpdateMany(ctx,
		bson.M{"cin": cin, "flag": bson.M{"$ne": flag}},
		bson.M{"$set": bson.M{"flag": flag, "updatedAt": time.Now()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
