package bookings

import (
	"encoding/json"
	"testing"
	"time"

	"rihla/mq"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 10)}
	hub.register <- client

	event := mq.Event{Name: "booking-created", BookingID: "b1", TripID: "t1"}
	data, _ := json.Marshal(event)
	hub.BroadcastJSON(event)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}
