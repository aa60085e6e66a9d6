package stats

import (
	"net/http"

	"rihla/db"
	"rihla/models"
	"rihla/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	Store *db.Store
}

func NewHandler(store *db.Store) *Handler {
	return &Handler{Store: store}
}

type tripStats struct {
	TripID      string  `json:"tripid"`
	Destination string  `json:"destination"`
	Date        string  `json:"date"`
	SeatsLeft   int     `json:"seatsLeft"`
	Confirmed   int64   `json:"confirmed"`
	Revenue     float64 `json:"revenue"`
	Profit      float64 `json:"profit"`
}

// GetStats handles GET /api/stats (admin): booking totals by status, the
// flagged-traveler count and per-trip occupancy with revenue and profit
// projected from confirmed bookings.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	byStatus, err := h.Store.CountBookingsByStatus(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	confirmedByTrip, err := h.Store.CountConfirmedByTrip(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	flagged, err := h.Store.CountFlagged(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	trips, err := h.Store.ListTrips(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	perTrip := make([]tripStats, 0, len(trips))
	var totalRevenue, totalProfit float64
	for _, t := range trips {
		confirmed := confirmedByTrip[t.TripID]
		revenue := float64(confirmed) * t.Price
		profit := float64(confirmed) * t.Profit
		totalRevenue += revenue
		totalProfit += profit
		perTrip = append(perTrip, tripStats{
			TripID:      t.TripID,
			Destination: t.Destination,
			Date:        t.Date,
			SeatsLeft:   t.Seats,
			Confirmed:   confirmed,
			Revenue:     revenue,
			Profit:      profit,
		})
	}

	var totalBookings int64
	for _, c := range byStatus {
		totalBookings += c
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"totalTrips":    len(trips),
		"totalBookings": totalBookings,
		"pending":       byStatus[models.StatusPending],
		"confirmed":     byStatus[models.StatusConfirmed],
		"rejected":      byStatus[models.StatusRejected],
		"flaggedCins":   flagged,
		"totalRevenue":  totalRevenue,
		"totalProfit":   totalProfit,
		"trips":         perTrip,
	})
}
