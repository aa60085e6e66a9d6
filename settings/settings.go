package settings

import (
	"encoding/json"
	"net/http"

	"rihla/db"
	"rihla/utils"

	"github.com/julienschmidt/httprouter"
)

const whatsappKey = "whatsappNumber"

type Handler struct {
	Store *db.Store
}

func NewHandler(store *db.Store) *Handler {
	return &Handler{Store: store}
}

// GetWhatsappNumber handles GET /api/settings/whatsapp. Returns an empty
// number when nothing is configured yet.
func (h *Handler) GetWhatsappNumber(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	number, err := h.Store.GetSetting(r.Context(), whatsappKey)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"number": number})
}

// SetWhatsappNumber handles POST /api/settings/whatsapp (admin).
func (h *Handler) SetWhatsappNumber(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Number string `json:"number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := h.Store.SetSetting(r.Context(), whatsappKey, input.Number); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update setting")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"number": input.Number})
}
