package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"rihla/db"
	"rihla/models"
	"rihla/utils"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

// ListAdmins handles GET /api/auth/admins (admin).
func (h *Handler) ListAdmins(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	admins, err := h.Store.ListAdmins(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, admins)
}

// CreateAdmin handles POST /api/auth/admins (admin): only an existing admin
// can create another one.
func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Username == "" || input.Email == "" || input.Password == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("auth: failed to hash password for %s: %v", input.Username, err)
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	admin := &models.User{
		UserID:    "u" + utils.GenerateRandomString(10),
		Username:  input.Username,
		Email:     input.Email,
		Password:  string(hashedPassword),
		Role:      []string{"user", "admin"},
		CreatedAt: time.Now(),
	}

	if err := h.Store.InsertUser(r.Context(), admin); err != nil {
		if err == db.ErrUserExists {
			http.Error(w, "User already exists", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create admin", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusCreated, nil, "Admin account created", nil)
}

// DeleteAdmin handles DELETE /api/auth/admins/:id (admin). An admin cannot
// delete their own account.
func (h *Handler) DeleteAdmin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	targetID := ps.ByName("id")
	if targetID == utils.GetUserIDFromRequest(r) {
		http.Error(w, "Cannot delete your own account", http.StatusBadRequest)
		return
	}

	if err := h.Store.DeleteUser(r.Context(), targetID); err != nil {
		if err == db.ErrUserNotFound {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Admin deleted", nil)
}
