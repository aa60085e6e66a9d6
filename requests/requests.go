package requests

import (
	"encoding/json"
	"net/http"
	"time"

	"rihla/db"
	"rihla/models"
	"rihla/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	Store *db.Store
}

func NewHandler(store *db.Store) *Handler {
	return &Handler{Store: store}
}

// CreateRequest handles POST /api/requests: a visitor asks about a custom
// trip or date.
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name    string `json:"name"`
		CIN     string `json:"cin"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Phone == "" || input.Message == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	req := &models.Request{
		RequestID: uuid.NewString(),
		Name:      input.Name,
		CIN:       input.CIN,
		Phone:     input.Phone,
		Message:   input.Message,
		CreatedAt: time.Now(),
	}

	if err := h.Store.InsertRequest(r.Context(), req); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not create request")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, req)
}

// GetRequests handles GET /api/requests (admin).
func (h *Handler) GetRequests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list, err := h.Store.ListRequests(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}
