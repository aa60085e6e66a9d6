package bookings

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"rihla/utils"

	"github.com/julienschmidt/httprouter"
)

// ExportCSV handles GET /api/export/bookings (admin): the full booking list
// as a spreadsheet-importable CSV.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.Store.ListBookings(r.Context(), r.URL.Query().Get("cin"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=bookings.csv")

	cw := csv.NewWriter(w)
	cw.Write([]string{
		"bookingid", "name", "phone", "address", "cin", "gender", "age",
		"destination", "date", "status", "flag", "checkedIn", "comment", "createdAt",
	})
	for _, b := range bookings {
		cw.Write([]string{
			b.BookingID, b.Name, b.Phone, b.Address, b.CIN, b.Gender,
			strconv.Itoa(b.Age), b.Destination, b.Date, b.Status,
			strconv.FormatBool(b.Flag), strconv.FormatBool(b.CheckedIn),
			b.Comment, b.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to write CSV")
	}
}
