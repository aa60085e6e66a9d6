package bookings

import (
	"encoding/json"
	"errors"
	"net/http"

	"rihla/db"
	"rihla/mq"
	"rihla/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	Svc     *Service
	Store   *db.Store
	Emitter *mq.Emitter
}

func NewHandler(svc *Service, store *db.Store, emitter *mq.Emitter) *Handler {
	return &Handler{Svc: svc, Store: store, Emitter: emitter}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrBookingNotFound), errors.Is(err, db.ErrTripNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, db.ErrNoSeats), errors.Is(err, ErrInvalidStatus):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// CreateBooking handles POST /api/bookings.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if in.Name == "" || in.Phone == "" || in.Address == "" || in.CIN == "" ||
		in.Gender == "" || in.TripID == "" || in.Age <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	booking, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	if h.Emitter != nil {
		h.Emitter.Emit(r.Context(), mq.Event{
			Name:      "booking-created",
			BookingID: booking.BookingID,
			TripID:    booking.TripID,
			CIN:       booking.CIN,
			Status:    booking.Status,
		})
	}

	utils.RespondWithJSON(w, http.StatusCreated, booking)
}

// GetBookings handles GET /api/bookings (admin). An optional ?cin= filter
// narrows the list to one traveler.
func (h *Handler) GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.Store.ListBookings(r.Context(), r.URL.Query().Get("cin"))
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bookings)
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.Store.GetBooking(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, booking)
}

// UpdateStatus handles PUT /api/bookings/:id/status (admin). The response
// carries both the updated booking and the updated trip so the dashboard can
// refresh its seat counter without a second round trip.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Status  string `json:"status"`
		Flag    bool   `json:"flag"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	booking, trip, err := h.Svc.TransitionStatus(r.Context(), ps.ByName("id"), body.Status, body.Flag, body.Comment)
	if err != nil {
		writeError(w, err)
		return
	}

	if h.Emitter != nil {
		h.Emitter.Emit(r.Context(), mq.Event{
			Name:      "booking-status",
			BookingID: booking.BookingID,
			TripID:    trip.TripID,
			Status:    booking.Status,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"booking": booking,
		"trip":    trip,
	})
}

// DeleteBooking handles DELETE /api/bookings/:id (admin). The service
// releases a confirmed booking's seat before removing the record.
func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if _, err := h.Svc.Delete(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Booking deleted"})
}
