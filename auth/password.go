package auth

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"rihla/db"
	"rihla/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

// ForgotPassword handles POST /api/auth/forgot-password. The reset link is
// logged rather than mailed; there is no mail transport in this deployment.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	user, err := h.Store.GetUserByEmail(r.Context(), input.Email)
	if err != nil {
		// Do not reveal whether the address exists
		utils.SendResponse(w, http.StatusOK, nil, "If the address exists, a reset link was issued", nil)
		return
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		http.Error(w, "Failed to generate reset token", http.StatusInternalServerError)
		return
	}
	token := hex.EncodeToString(tokenBytes)

	_, err = h.Store.UpdateUser(r.Context(), user.UserID, bson.M{
		"reset_token":  token,
		"reset_expiry": time.Now().Add(resetTokenTTL),
	})
	if err != nil {
		http.Error(w, "Failed to store reset token", http.StatusInternalServerError)
		return
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}
	log.Printf("auth: password reset link for %s: %s/reset-password/%s", user.Email, frontendURL, token)

	utils.SendResponse(w, http.StatusOK, nil, "If the address exists, a reset link was issued", nil)
}

// ResetPassword handles POST /api/auth/reset-password/:token.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	token := ps.ByName("token")

	var input struct {
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.NewPassword == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	user, err := h.Store.GetUserByResetToken(r.Context(), token)
	if err != nil {
		if err == db.ErrUserNotFound {
			http.Error(w, "Invalid or expired token", http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Could not process password", http.StatusInternalServerError)
		return
	}

	_, err = h.Store.UpdateUser(r.Context(), user.UserID, bson.M{
		"password":     string(hashedPassword),
		"reset_token":  "",
		"reset_expiry": time.Time{},
	})
	if err != nil {
		http.Error(w, "Failed to update password", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Password updated", nil)
}
