package bookings

import (
	"context"
	"errors"
	"testing"

	"rihla/db"
	"rihla/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTripStore struct {
	trips map[string]*models.Trip
}

func (f *fakeTripStore) GetTrip(_ context.Context, tripID string) (*models.Trip, error) {
	t, ok := f.trips[tripID]
	if !ok {
		return nil, db.ErrTripNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTripStore) ConfirmSeat(_ context.Context, tripID string) error {
	t, ok := f.trips[tripID]
	if !ok {
		return db.ErrTripNotFound
	}
	if t.Seats <= 0 {
		return db.ErrNoSeats
	}
	t.Seats--
	return nil
}

func (f *fakeTripStore) ReleaseSeat(_ context.Context, tripID string) error {
	t, ok := f.trips[tripID]
	if !ok {
		return db.ErrTripNotFound
	}
	t.Seats++
	return nil
}

type fakeBookingStore struct {
	bookings  map[string]*models.Booking
	failWrite bool
}

func (f *fakeBookingStore) GetBooking(_ context.Context, bookingID string) (*models.Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, db.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingStore) InsertBooking(_ context.Context, booking *models.Booking) error {
	if f.failWrite {
		return errors.New("write failed")
	}
	cp := *booking
	f.bookings[booking.BookingID] = &cp
	return nil
}

func (f *fakeBookingStore) DeleteBooking(_ context.Context, bookingID string) error {
	if f.failWrite {
		return errors.New("write failed")
	}
	if _, ok := f.bookings[bookingID]; !ok {
		return db.ErrBookingNotFound
	}
	delete(f.bookings, bookingID)
	return nil
}

func (f *fakeBookingStore) SetBookingStatus(_ context.Context, bookingID, status string, flag bool, comment string) error {
	if f.failWrite {
		return errors.New("write failed")
	}
	b, ok := f.bookings[bookingID]
	if !ok {
		return db.ErrBookingNotFound
	}
	b.Status = status
	b.Flag = flag
	b.Comment = comment
	return nil
}

type fakeFlagStore struct {
	entries map[string]bool
}

func (f *fakeFlagStore) GetFlag(_ context.Context, cin string) (*models.FlagEntry, error) {
	v, ok := f.entries[cin]
	if !ok {
		return nil, nil
	}
	return &models.FlagEntry{CIN: cin, RedFlag: v}, nil
}

func newFixture(seats int) (*Service, *fakeTripStore, *fakeBookingStore, *fakeFlagStore) {
	trips := &fakeTripStore{trips: map[string]*models.Trip{
		"t1": {TripID: "t1", Destination: "Chefchaouen", Date: "2026-09-12", Seats: seats, Gender: models.GenderAll, Price: 450},
	}}
	bookings := &fakeBookingStore{bookings: map[string]*models.Booking{}}
	flags := &fakeFlagStore{entries: map[string]bool{}}
	return NewService(trips, bookings, flags), trips, bookings, flags
}

func addBooking(bs *fakeBookingStore, id, cin, status string) {
	bs.bookings[id] = &models.Booking{BookingID: id, CIN: cin, TripID: "t1", Status: status}
}

func TestCreateSeedsFlagFromRegistry(t *testing.T) {
	svc, _, _, flags := newFixture(5)
	flags.entries["AB123"] = true

	booking, err := svc.Create(context.Background(), CreateInput{
		Name: "Salma", Phone: "0600000000", Address: "Rabat", CIN: "AB123",
		Gender: "female", Age: 27, TripID: "t1",
	})
	require.NoError(t, err)

	assert.True(t, booking.Flag)
	assert.Equal(t, models.StatusPending, booking.Status)
	assert.Equal(t, "Chefchaouen", booking.Destination)
	assert.Equal(t, "2026-09-12", booking.Date)
}

func TestCreateWithoutRegistryEntryIsUnflagged(t *testing.T) {
	svc, _, _, _ := newFixture(5)

	booking, err := svc.Create(context.Background(), CreateInput{
		Name: "Omar", Phone: "0611111111", Address: "Fes", CIN: "AB123",
		Gender: "male", Age: 31, TripID: "t1",
	})
	require.NoError(t, err)
	assert.False(t, booking.Flag)
}

func TestCreateUnknownTrip(t *testing.T) {
	svc, _, _, _ := newFixture(5)

	_, err := svc.Create(context.Background(), CreateInput{
		Name: "Omar", Phone: "0611111111", Address: "Fes", CIN: "AB123",
		Gender: "male", Age: 31, TripID: "nope",
	})
	assert.ErrorIs(t, err, db.ErrTripNotFound)
}

func TestConfirmTakesOneSeat(t *testing.T) {
	svc, trips, bookings, _ := newFixture(3)
	addBooking(bookings, "b1", "X1", models.StatusPending)

	booking, trip, err := svc.TransitionStatus(context.Background(), "b1", models.StatusConfirmed, false, "ok")
	require.NoError(t, err)

	assert.Equal(t, models.StatusConfirmed, booking.Status)
	assert.Equal(t, "ok", booking.Comment)
	assert.Equal(t, 2, trip.Seats)
	assert.Equal(t, 2, trips.trips["t1"].Seats)
}

func TestConfirmFailsWhenFull(t *testing.T) {
	svc, trips, bookings, _ := newFixture(1)
	addBooking(bookings, "b1", "X1", models.StatusPending)
	addBooking(bookings, "b2", "X2", models.StatusPending)

	_, trip, err := svc.TransitionStatus(context.Background(), "b1", models.StatusConfirmed, false, "")
	require.NoError(t, err)
	assert.Equal(t, 0, trip.Seats)

	_, _, err = svc.TransitionStatus(context.Background(), "b2", models.StatusConfirmed, false, "")
	assert.ErrorIs(t, err, db.ErrNoSeats)

	// the loser must be left completely untouched
	assert.Equal(t, models.StatusPending, bookings.bookings["b2"].Status)
	assert.Equal(t, 0, trips.trips["t1"].Seats)
}

func TestRejectConfirmedGivesSeatBack(t *testing.T) {
	svc, trips, bookings, _ := newFixture(3)
	addBooking(bookings, "b1", "X1", models.StatusPending)

	_, _, err := svc.TransitionStatus(context.Background(), "b1", models.StatusConfirmed, false, "")
	require.NoError(t, err)
	assert.Equal(t, 2, trips.trips["t1"].Seats)

	_, trip, err := svc.TransitionStatus(context.Background(), "b1", models.StatusRejected, false, "no show")
	require.NoError(t, err)
	assert.Equal(t, 3, trip.Seats)
}

func TestSameStatusIsSeatNeutral(t *testing.T) {
	for _, status := range []string{models.StatusPending, models.StatusConfirmed, models.StatusRejected} {
		svc, trips, bookings, _ := newFixture(4)
		addBooking(bookings, "b1", "X1", status)

		_, trip, err := svc.TransitionStatus(context.Background(), "b1", status, true, "edited")
		require.NoError(t, err, status)

		assert.Equal(t, 4, trip.Seats, status)
		assert.Equal(t, 4, trips.trips["t1"].Seats, status)
		// flag and comment still get written on a no-op transition
		assert.True(t, bookings.bookings["b1"].Flag, status)
		assert.Equal(t, "edited", bookings.bookings["b1"].Comment, status)
	}
}

func TestPendingToRejectedIsSeatNeutral(t *testing.T) {
	svc, trips, bookings, _ := newFixture(2)
	addBooking(bookings, "b1", "X1", models.StatusPending)

	_, _, err := svc.TransitionStatus(context.Background(), "b1", models.StatusRejected, false, "")
	require.NoError(t, err)
	assert.Equal(t, 2, trips.trips["t1"].Seats)
}

func TestTransitionUnknownBooking(t *testing.T) {
	svc, _, _, _ := newFixture(2)

	_, _, err := svc.TransitionStatus(context.Background(), "nope", models.StatusConfirmed, false, "")
	assert.ErrorIs(t, err, db.ErrBookingNotFound)
}

func TestTransitionMissingTripLeavesBookingAlone(t *testing.T) {
	svc, _, bookings, _ := newFixture(2)
	bookings.bookings["b1"] = &models.Booking{BookingID: "b1", TripID: "gone", Status: models.StatusPending}

	_, _, err := svc.TransitionStatus(context.Background(), "b1", models.StatusConfirmed, true, "x")
	assert.ErrorIs(t, err, db.ErrTripNotFound)

	assert.Equal(t, models.StatusPending, bookings.bookings["b1"].Status)
	assert.False(t, bookings.bookings["b1"].Flag)
	assert.Empty(t, bookings.bookings["b1"].Comment)
}

func TestTransitionInvalidStatus(t *testing.T) {
	svc, _, bookings, _ := newFixture(2)
	addBooking(bookings, "b1", "X1", models.StatusPending)

	_, _, err := svc.TransitionStatus(context.Background(), "b1", "cancelled", false, "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteConfirmedGivesSeatBack(t *testing.T) {
	svc, trips, bookings, _ := newFixture(2)
	addBooking(bookings, "b1", "X1", models.StatusConfirmed)

	_, err := svc.Delete(context.Background(), "b1")
	require.NoError(t, err)

	assert.Equal(t, 3, trips.trips["t1"].Seats)
	assert.NotContains(t, bookings.bookings, "b1")
}

func TestDeletePendingIsSeatNeutral(t *testing.T) {
	svc, trips, bookings, _ := newFixture(2)
	addBooking(bookings, "b1", "X1", models.StatusPending)

	_, err := svc.Delete(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, 2, trips.trips["t1"].Seats)
}

func TestDeleteFailureRetakesSeat(t *testing.T) {
	svc, trips, bookings, _ := newFixture(2)
	addBooking(bookings, "b1", "X1", models.StatusConfirmed)
	bookings.failWrite = true

	_, err := svc.Delete(context.Background(), "b1")
	require.Error(t, err)

	// booking stayed, so the released seat must be taken again
	assert.Contains(t, bookings.bookings, "b1")
	assert.Equal(t, 2, trips.trips["t1"].Seats)
	assert.Equal(t, models.StatusConfirmed, bookings.bookings["b1"].Status)
}

func TestDeleteUnknownBooking(t *testing.T) {
	svc, _, _, _ := newFixture(2)

	_, err := svc.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, db.ErrBookingNotFound)
}

func TestBookingWriteFailureRollsSeatBack(t *testing.T) {
	svc, trips, bookings, _ := newFixture(2)
	addBooking(bookings, "b1", "X1", models.StatusPending)
	bookings.failWrite = true

	_, _, err := svc.TransitionStatus(context.Background(), "b1", models.StatusConfirmed, false, "")
	require.Error(t, err)

	assert.Equal(t, 2, trips.trips["t1"].Seats)
	assert.Equal(t, models.StatusPending, bookings.bookings["b1"].Status)
}
