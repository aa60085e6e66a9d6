package trips

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"rihla/db"
	"rihla/models"
	"rihla/rdx"
	"rihla/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const tripListCacheKey = "trips:all"
const tripListCacheTTL = 2 * time.Minute

type Handler struct {
	Store *db.Store
	Cache *rdx.Cache
}

func NewHandler(store *db.Store, cache *rdx.Cache) *Handler {
	return &Handler{Store: store, Cache: cache}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrTripNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondWithError(w, http.StatusInternalServerError, "internal server error")
}

type tripInput struct {
	Destination  string            `json:"destination"`
	Date         string            `json:"date"`
	DurationDays int               `json:"durationDays"`
	Seats        *int              `json:"seats"`
	Gender       string            `json:"gender"`
	Price        *float64          `json:"price"`
	Profit       *float64          `json:"profit"`
	Image        *string           `json:"image"`
	Activities   []models.Activity `json:"activities"`
}

// CreateTrip handles POST /api/trips (admin).
func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in tripInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if in.Destination == "" || in.Date == "" || in.Seats == nil || *in.Seats < 0 || in.Price == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if in.Gender == "" {
		in.Gender = models.GenderAll
	}
	if in.Gender != models.GenderAll && in.Gender != models.GenderFemale {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid gender restriction")
		return
	}
	if in.DurationDays < 1 {
		in.DurationDays = 1
	}

	now := time.Now()
	trip := &models.Trip{
		TripID:       "t" + utils.GenerateRandomDigitString(12),
		Destination:  in.Destination,
		Date:         in.Date,
		DurationDays: in.DurationDays,
		Seats:        *in.Seats,
		Gender:       in.Gender,
		Price:        *in.Price,
		Activities:   in.Activities,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Profit != nil {
		trip.Profit = *in.Profit
	}
	if in.Image != nil {
		trip.Image = *in.Image
	}

	if err := h.Store.InsertTrip(r.Context(), trip); err != nil {
		writeError(w, err)
		return
	}

	h.invalidateListCache(r)
	utils.RespondWithJSON(w, http.StatusCreated, trip)
}

// GetTrips handles GET /api/trips. The public list is cached in redis for a
// couple of minutes; admins bypass the cache and see profit.
func (h *Handler) GetTrips(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	admin := utils.IsAdmin(r)

	if !admin && h.Cache != nil {
		if cached, err := h.Cache.Get(r.Context(), tripListCacheKey); err == nil && cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}

	trips, err := h.Store.ListTrips(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if admin {
		utils.RespondWithJSON(w, http.StatusOK, trips)
		return
	}

	public := make([]models.Trip, len(trips))
	for i, t := range trips {
		public[i] = t.Public()
	}

	if h.Cache != nil {
		if data, err := json.Marshal(public); err == nil {
			if err := h.Cache.Set(r.Context(), tripListCacheKey, string(data), tripListCacheTTL); err != nil {
				log.Printf("trips: failed to cache list: %v", err)
			}
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, public)
}

func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	trip, err := h.Store.GetTrip(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if !utils.IsAdmin(r) {
		utils.RespondWithJSON(w, http.StatusOK, trip.Public())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /api/trips/:id (admin). Only fields present in the
// body are touched, so the dashboard can update activities alone.
func (h *Handler) UpdateTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in tripInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	fields := bson.M{}
	if in.Destination != "" {
		fields["destination"] = in.Destination
	}
	if in.Date != "" {
		fields["date"] = in.Date
	}
	if in.DurationDays >= 1 {
		fields["durationDays"] = in.DurationDays
	}
	if in.Seats != nil {
		if *in.Seats < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Seats must not be negative")
			return
		}
		fields["seats"] = *in.Seats
	}
	if in.Gender != "" {
		if in.Gender != models.GenderAll && in.Gender != models.GenderFemale {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid gender restriction")
			return
		}
		fields["gender"] = in.Gender
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.Profit != nil {
		fields["profit"] = *in.Profit
	}
	if in.Image != nil {
		fields["image"] = *in.Image
	}
	if in.Activities != nil {
		fields["activities"] = in.Activities
	}
	if len(fields) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	trip, err := h.Store.UpdateTrip(r.Context(), ps.ByName("id"), fields)
	if err != nil {
		writeError(w, err)
		return
	}

	h.invalidateListCache(r)
	utils.RespondWithJSON(w, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /api/trips/:id (admin). Bookings referencing
// the trip are kept; their destination/date snapshot keeps them displayable.
func (h *Handler) DeleteTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.Store.DeleteTrip(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, err)
		return
	}

	h.invalidateListCache(r)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Trip deleted"})
}

func (h *Handler) invalidateListCache(r *http.Request) {
	DropListCache(r.Context(), h.Cache)
}

// DropListCache discards the cached public trip list so the next read
// rebuilds it from the store.
func DropListCache(ctx context.Context, cache *rdx.Cache) {
	if cache == nil {
		return
	}
	if err := cache.Del(ctx, tripListCacheKey); err != nil {
		log.Printf("trips: cache invalidation failed: %v", err)
	}
}
