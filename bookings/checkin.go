package bookings

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"rihla/globals"
	"rihla/models"
	"rihla/utils"

	"github.com/julienschmidt/httprouter"
)

// CheckinPayload builds the signed string encoded into the booking QR:
// bookingID|cin|signature. No timestamp: the code stays valid for the life
// of the booking, the scan endpoint is admin-only anyway.
func CheckinPayload(bookingID, cin string) string {
	data := fmt.Sprintf("%s|%s", bookingID, cin)
	h := hmac.New(sha256.New, globals.QrSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyCheckinPayload checks the HMAC and returns the embedded IDs.
func VerifyCheckinPayload(payload string) (bookingID, cin string, err error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 3 {
		return "", "", errors.New("invalid QR format")
	}
	bookingID = parts[0]
	cin = parts[1]
	signature := parts[2]

	data := fmt.Sprintf("%s|%s", bookingID, cin)
	h := hmac.New(sha256.New, globals.QrSecret)
	h.Write([]byte(data))
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", "", errors.New("invalid signature")
	}
	return bookingID, cin, nil
}

// Checkin handles POST /api/checkin (admin): scan a traveler's QR
// at boarding and mark the booking checked in.
func (h *Handler) Checkin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Payload == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	bookingID, cin, err := VerifyCheckinPayload(body.Payload)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := h.Store.GetBooking(r.Context(), bookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	if booking.CIN != cin {
		utils.RespondWithError(w, http.StatusBadRequest, "QR does not match booking")
		return
	}
	if booking.Status != models.StatusConfirmed {
		utils.RespondWithError(w, http.StatusBadRequest, "Booking is not confirmed")
		return
	}
	if booking.CheckedIn {
		utils.RespondWithError(w, http.StatusConflict, "Already checked in")
		return
	}

	if err := h.Store.SetBookingCheckedIn(r.Context(), bookingID, true); err != nil {
		writeError(w, err)
		return
	}
	booking.CheckedIn = true

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Checked in",
		"booking": booking,
	})
}
