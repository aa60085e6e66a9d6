package bookings

import (
	"bytes"
	"fmt"
	"net/http"

	"rihla/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// PrintTicket handles GET /api/bookings/:id/ticket: a PDF confirmation with
// the traveler's details and the signed check-in QR.
func (h *Handler) PrintTicket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.Store.GetBooking(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	qrPNG, err := qrcode.Encode(CheckinPayload(booking.BookingID, booking.CIN), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Trip Booking")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Booking: %s", booking.BookingID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", booking.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("CIN: %s", booking.CIN))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Destination: %s", booking.Destination))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", booking.Date))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", booking.Status))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=booking-"+booking.BookingID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
