package flags

import (
	"context"
	"testing"

	"rihla/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	entries  map[string]bool
	bookings []*models.Booking
}

func (f *fakeRegistry) GetFlag(_ context.Context, cin string) (*models.FlagEntry, error) {
	v, ok := f.entries[cin]
	if !ok {
		return nil, nil
	}
	return &models.FlagEntry{CIN: cin, RedFlag: v}, nil
}

func (f *fakeRegistry) UpsertFlag(_ context.Context, cin string, redFlag bool) (*models.FlagEntry, error) {
	f.entries[cin] = redFlag
	return &models.FlagEntry{CIN: cin, RedFlag: redFlag}, nil
}

func (f *fakeRegistry) PropagateFlag(_ context.Context, cin string, flag bool) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.CIN == cin && b.Flag != flag {
			b.Flag = flag
			n++
		}
	}
	return n, nil
}

func TestSetFlagPropagatesToAllBookings(t *testing.T) {
	reg := &fakeRegistry{
		entries: map[string]bool{},
		bookings: []*models.Booking{
			{BookingID: "b1", CIN: "AB123"},
			{BookingID: "b2", CIN: "AB123"},
			{BookingID: "b3", CIN: "AB123"},
			{BookingID: "b4", CIN: "CD456"},
		},
	}
	svc := NewService(reg)

	entry, affected, err := svc.SetFlag(context.Background(), "AB123", true)
	require.NoError(t, err)

	assert.True(t, entry.RedFlag)
	assert.Equal(t, int64(3), affected)
	for _, b := range reg.bookings[:3] {
		assert.True(t, b.Flag, b.BookingID)
	}
	assert.False(t, reg.bookings[3].Flag, "other traveler must not be touched")
}

func TestSetFlagUpsertsExistingEntry(t *testing.T) {
	reg := &fakeRegistry{entries: map[string]bool{"AB123": true}}
	svc := NewService(reg)

	entry, _, err := svc.SetFlag(context.Background(), "AB123", false)
	require.NoError(t, err)
	assert.False(t, entry.RedFlag)
	assert.False(t, reg.entries["AB123"])
}

func TestSetFlagIsIdempotent(t *testing.T) {
	reg := &fakeRegistry{
		entries:  map[string]bool{},
		bookings: []*models.Booking{{BookingID: "b1", CIN: "AB123"}},
	}
	svc := NewService(reg)

	_, _, err := svc.SetFlag(context.Background(), "AB123", true)
	require.NoError(t, err)

	// replaying the same update converges to the same state
	entry, affected, err := svc.SetFlag(context.Background(), "AB123", true)
	require.NoError(t, err)
	assert.True(t, entry.RedFlag)
	assert.Equal(t, int64(0), affected)
	assert.True(t, reg.bookings[0].Flag)
}

func TestGetFlagMissingEntryMeansNotFlagged(t *testing.T) {
	svc := NewService(&fakeRegistry{entries: map[string]bool{}})

	entry, err := svc.GetFlag(context.Background(), "AB123")
	require.NoError(t, err)
	assert.Nil(t, entry)
}
