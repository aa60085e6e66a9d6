package trips

import (
	"net/http"

	"rihla/filemgr"
	"rihla/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// UploadImage handles POST /api/trips/:id/image (admin, multipart field
// "image").
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("id")

	if _, err := h.Store.GetTrip(r.Context(), tripID); err != nil {
		writeError(w, err)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	name, err := filemgr.SaveTripImage(file, header, tripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	trip, err := h.Store.UpdateTrip(r.Context(), tripID, bson.M{"image": name})
	if err != nil {
		writeError(w, err)
		return
	}

	h.invalidateListCache(r)
	utils.RespondWithJSON(w, http.StatusOK, trip)
}
