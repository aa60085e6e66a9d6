package mq

import (
	"context"
	"encoding/json"
	"log"

	"rihla/rdx"
)

const eventsChannel = "trip-events"

// Event is a domain notification fanned out over redis pub/sub.
type Event struct {
	Name      string `json:"name"`
	BookingID string `json:"bookingId,omitempty"`
	TripID    string `json:"tripId,omitempty"`
	CIN       string `json:"cin,omitempty"`
	Status    string `json:"status,omitempty"`
}

type Emitter struct {
	cache *rdx.Cache
}

func NewEmitter(cache *rdx.Cache) *Emitter {
	return &Emitter{cache: cache}
}

// Emit publishes the event; delivery is best effort and never blocks the
// request that triggered it.
func (e *Emitter) Emit(ctx context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("mq: failed to marshal event %q: %v", event.Name, err)
		return
	}
	if err := e.cache.Publish(ctx, eventsChannel, data); err != nil {
		log.Printf("mq: failed to publish event %q: %v", event.Name, err)
	}
}

// Fanout builds a worker callback that broadcasts every event and runs
// invalidate for events that change trip availability, so cached trip lists
// never outlive a seat change.
func Fanout(broadcast func(Event), invalidate func()) func(Event) {
	return func(event Event) {
		broadcast(event)
		if event.Name == "booking-created" || event.Name == "booking-status" {
			invalidate()
		}
	}
}

// StartWorker consumes trip events until ctx is cancelled, handing each one
// to fn. Malformed payloads are logged and skipped.
func StartWorker(ctx context.Context, cache *rdx.Cache, fn func(Event)) {
	sub := cache.Subscribe(ctx, eventsChannel)
	defer sub.Close()

	ch := sub.Channel()
	log.Println("mq: worker listening for trip events")

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("mq: failed to parse event: %v", err)
				continue
			}
			fn(event)
		}
	}
}
