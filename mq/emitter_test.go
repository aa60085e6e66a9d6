package mq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFanoutBroadcastsEveryEvent(t *testing.T) {
	var broadcasts []string
	fn := Fanout(func(e Event) { broadcasts = append(broadcasts, e.Name) }, func() {})

	fn(Event{Name: "booking-created"})
	fn(Event{Name: "booking-status"})
	fn(Event{Name: "flag-updated"})

	assert.Equal(t, []string{"booking-created", "booking-status", "flag-updated"}, broadcasts)
}

func TestFanoutInvalidatesOnSeatChangingEvents(t *testing.T) {
	invalidations := 0
	fn := Fanout(func(Event) {}, func() { invalidations++ })

	fn(Event{Name: "booking-created", BookingID: "b1", TripID: "t1"})
	assert.Equal(t, 1, invalidations)

	fn(Event{Name: "booking-status", BookingID: "b1", TripID: "t1", Status: "confirmed"})
	assert.Equal(t, 2, invalidations)

	// flag changes never touch seat counts
	fn(Event{Name: "flag-updated", CIN: "AB123"})
	assert.Equal(t, 2, invalidations)
}
