package profile

import (
	"encoding/json"
	"net/http"

	"rihla/db"
	"rihla/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type Handler struct {
	Store *db.Store
}

func NewHandler(store *db.Store) *Handler {
	return &Handler{Store: store}
}

// GetProfile handles GET /api/profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	user, err := h.Store.GetUserByID(r.Context(), userID)
	if err != nil {
		if err == db.ErrUserNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/profile. Travelers keep their CIN and
// contact details here so the booking form can be prefilled.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Username string `json:"username"`
		CIN      string `json:"cin"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
		Gender   string `json:"gender"`
		Age      int    `json:"age"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	fields := bson.M{}
	if input.Username != "" {
		fields["username"] = input.Username
	}
	if input.CIN != "" {
		fields["cin"] = input.CIN
	}
	if input.Phone != "" {
		fields["phone"] = input.Phone
	}
	if input.Address != "" {
		fields["address"] = input.Address
	}
	if input.Gender != "" {
		fields["gender"] = input.Gender
	}
	if input.Age > 0 {
		fields["age"] = input.Age
	}
	if len(fields) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	user, err := h.Store.UpdateUser(r.Context(), userID, fields)
	if err != nil {
		if err == db.ErrUserNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, user)
}
