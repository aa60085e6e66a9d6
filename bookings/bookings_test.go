package bookings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rihla/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingEndpoint(t *testing.T) {
	svc, _, _, _ := newFixture(5)
	h := &Handler{Svc: svc}

	body := `{"name":"Salma","phone":"0600000000","address":"Rabat","cin":"AB123","gender":"female","age":27,"tripid":"t1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateBooking(rec, req, nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.Booking
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, "Chefchaouen", got.Destination)
	assert.NotEmpty(t, got.BookingID)
}

func TestCreateBookingMissingFields(t *testing.T) {
	svc, _, _, _ := newFixture(5)
	h := &Handler{Svc: svc}

	body := `{"name":"Salma","tripid":"t1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateBooking(rec, req, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingUnknownTripIs404(t *testing.T) {
	svc, _, _, _ := newFixture(5)
	h := &Handler{Svc: svc}

	body := `{"name":"Salma","phone":"0600000000","address":"Rabat","cin":"AB123","gender":"female","age":27,"tripid":"nope"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateBooking(rec, req, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	svc, _, bookings, _ := newFixture(2)
	addBooking(bookings, "b1", "AB123", models.StatusPending)
	h := &Handler{Svc: svc}

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/b1/status",
		strings.NewReader(`{"status":"confirmed","flag":true,"comment":"paid"}`))
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req, httprouter.Params{{Key: "id", Value: "b1"}})

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Booking models.Booking `json:"booking"`
		Trip    models.Trip    `json:"trip"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, models.StatusConfirmed, got.Booking.Status)
	assert.True(t, got.Booking.Flag)
	assert.Equal(t, "paid", got.Booking.Comment)
	assert.Equal(t, 1, got.Trip.Seats)
}

func TestUpdateStatusCapacityErrorIs400(t *testing.T) {
	svc, _, bookings, _ := newFixture(0)
	addBooking(bookings, "b1", "AB123", models.StatusPending)
	h := &Handler{Svc: svc}

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/b1/status",
		strings.NewReader(`{"status":"confirmed"}`))
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req, httprouter.Params{{Key: "id", Value: "b1"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no seats available")
}

func TestUpdateStatusUnknownBookingIs404(t *testing.T) {
	svc, _, _, _ := newFixture(2)
	h := &Handler{Svc: svc}

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/nope/status",
		strings.NewReader(`{"status":"confirmed"}`))
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req, httprouter.Params{{Key: "id", Value: "nope"}})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
