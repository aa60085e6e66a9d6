package bookings

import (
	"context"
	"errors"
	"log"
	"time"

	"rihla/db"
	"rihla/models"
	"rihla/utils"
)

var ErrInvalidStatus = errors.New("invalid status")

// TripStore is the slice of the data layer the lifecycle needs for seat
// accounting. ConfirmSeat must be an atomic check-and-decrement: it either
// takes a seat or fails with db.ErrNoSeats, never both.
type TripStore interface {
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	ConfirmSeat(ctx context.Context, tripID string) error
	ReleaseSeat(ctx context.Context, tripID string) error
}

type BookingStore interface {
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	InsertBooking(ctx context.Context, booking *models.Booking) error
	SetBookingStatus(ctx context.Context, bookingID, status string, flag bool, comment string) error
	DeleteBooking(ctx context.Context, bookingID string) error
}

// FlagReader looks up the flag registry; nil entry means not flagged.
type FlagReader interface {
	GetFlag(ctx context.Context, cin string) (*models.FlagEntry, error)
}

// Service owns the booking lifecycle: the trip's seat count must reflect
// exactly the number of currently confirmed bookings against it.
type Service struct {
	trips    TripStore
	bookings BookingStore
	flags    FlagReader
}

func NewService(trips TripStore, bookings BookingStore, flags FlagReader) *Service {
	return &Service{trips: trips, bookings: bookings, flags: flags}
}

type CreateInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	CIN     string `json:"cin"`
	Gender  string `json:"gender"`
	Age     int    `json:"age"`
	TripID  string `json:"tripid"`
}

// Create stores a new pending booking against an existing trip. The flag is
// seeded from the registry by CIN; destination and date are snapshotted from
// the trip so the booking stays displayable if the trip changes later.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Booking, error) {
	trip, err := s.trips.GetTrip(ctx, in.TripID)
	if err != nil {
		return nil, err
	}

	flagged := false
	entry, err := s.flags.GetFlag(ctx, in.CIN)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		flagged = entry.RedFlag
	}

	now := time.Now()
	booking := &models.Booking{
		BookingID:   "b" + utils.GenerateRandomDigitString(14),
		Name:        in.Name,
		Phone:       in.Phone,
		Address:     in.Address,
		CIN:         in.CIN,
		Gender:      in.Gender,
		Age:         in.Age,
		Destination: trip.Destination,
		Date:        trip.Date,
		TripID:      trip.TripID,
		Status:      models.StatusPending,
		Flag:        flagged,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.bookings.InsertBooking(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// TransitionStatus moves a booking between pending, confirmed and rejected
// and keeps the trip's seat count in step. Moving into confirmed takes a
// seat (atomically, failing with db.ErrNoSeats when the trip is full);
// moving out of confirmed gives one back; every other transition, including
// a same-status no-op, leaves the count alone. The booking itself is only
// written after the seat adjustment succeeded, so a capacity failure leaves
// no partial mutation behind.
func (s *Service) TransitionStatus(ctx context.Context, bookingID, newStatus string, newFlag bool, newComment string) (*models.Booking, *models.Trip, error) {
	if !models.ValidStatus(newStatus) {
		return nil, nil, ErrInvalidStatus
	}

	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	// The referenced trip must exist before anything is touched.
	if _, err := s.trips.GetTrip(ctx, booking.TripID); err != nil {
		return nil, nil, err
	}

	oldStatus := booking.Status
	var seatTaken, seatReleased bool

	switch {
	case oldStatus != models.StatusConfirmed && newStatus == models.StatusConfirmed:
		if err := s.trips.ConfirmSeat(ctx, booking.TripID); err != nil {
			return nil, nil, err
		}
		seatTaken = true
	case oldStatus == models.StatusConfirmed && newStatus != models.StatusConfirmed:
		if err := s.trips.ReleaseSeat(ctx, booking.TripID); err != nil {
			return nil, nil, err
		}
		seatReleased = true
	}

	if err := s.bookings.SetBookingStatus(ctx, bookingID, newStatus, newFlag, newComment); err != nil {
		// Undo the seat move so the count stays consistent with the
		// booking that never changed.
		if seatTaken {
			if rbErr := s.trips.ReleaseSeat(ctx, booking.TripID); rbErr != nil {
				log.Printf("bookings: seat rollback failed for trip %s: %v", booking.TripID, rbErr)
			}
		}
		if seatReleased {
			if rbErr := s.trips.ConfirmSeat(ctx, booking.TripID); rbErr != nil {
				log.Printf("bookings: seat rollback failed for trip %s: %v", booking.TripID, rbErr)
			}
		}
		return nil, nil, err
	}

	updated, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	trip, err := s.trips.GetTrip(ctx, booking.TripID)
	if err != nil {
		return nil, nil, err
	}
	return updated, trip, nil
}

// Delete removes a booking. A confirmed booking gives its seat back before
// the record goes, so a failure between the two steps can never lose the
// seat; if the delete itself fails the seat is taken again.
func (s *Service) Delete(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	released := false
	if booking.Status == models.StatusConfirmed {
		err := s.trips.ReleaseSeat(ctx, booking.TripID)
		switch {
		case err == nil:
			released = true
		case errors.Is(err, db.ErrTripNotFound):
			// trip already deleted, nothing to give back
		default:
			return nil, err
		}
	}

	if err := s.bookings.DeleteBooking(ctx, bookingID); err != nil {
		if released {
			if rbErr := s.trips.ConfirmSeat(ctx, booking.TripID); rbErr != nil {
				log.Printf("bookings: seat rollback failed for trip %s: %v", booking.TripID, rbErr)
			}
		}
		return nil, err
	}
	return booking, nil
}
