package flags

import (
	"context"
	"encoding/json"
	"net/http"

	"rihla/db"
	"rihla/models"
	"rihla/mq"
	"rihla/utils"

	"github.com/julienschmidt/httprouter"
)

// Registry is the flag side of the store plus the bulk booking rewrite.
type Registry interface {
	GetFlag(ctx context.Context, cin string) (*models.FlagEntry, error)
	UpsertFlag(ctx context.Context, cin string, redFlag bool) (*models.FlagEntry, error)
	PropagateFlag(ctx context.Context, cin string, flag bool) (int64, error)
}

// Service upserts a traveler's registry entry and propagates the value to
// every booking sharing the CIN. The two writes are not wrapped in a
// transaction; a crash in between leaves bookings stale, but the operation
// is idempotent so replaying it converges.
type Service struct {
	registry Registry
}

func NewService(registry Registry) *Service {
	return &Service{registry: registry}
}

func (s *Service) SetFlag(ctx context.Context, cin string, redFlag bool) (*models.FlagEntry, int64, error) {
	entry, err := s.registry.UpsertFlag(ctx, cin, redFlag)
	if err != nil {
		return nil, 0, err
	}

	affected, err := s.registry.PropagateFlag(ctx, cin, redFlag)
	if err != nil {
		return entry, 0, err
	}
	return entry, affected, nil
}

func (s *Service) GetFlag(ctx context.Context, cin string) (*models.FlagEntry, error) {
	return s.registry.GetFlag(ctx, cin)
}

type Handler struct {
	Svc     *Service
	Emitter *mq.Emitter
}

func NewHandler(svc *Service, emitter *mq.Emitter) *Handler {
	return &Handler{Svc: svc, Emitter: emitter}
}

// SetFlag handles PUT /api/flags/:cin (admin); body: {"redFlag": bool}.
func (h *Handler) SetFlag(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cin := ps.ByName("cin")
	if cin == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing CIN")
		return
	}

	var body struct {
		RedFlag bool `json:"redFlag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	entry, affected, err := h.Svc.SetFlag(r.Context(), cin, body.RedFlag)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not update flag")
		return
	}

	if h.Emitter != nil {
		h.Emitter.Emit(r.Context(), mq.Event{Name: "flag-updated", CIN: cin})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":  "Flag updated and propagated to bookings",
		"updated":  entry,
		"affected": affected,
	})
}

// GetFlag handles GET /api/flags/:cin (admin). A CIN without an entry reads
// as not flagged.
func (h *Handler) GetFlag(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cin := ps.ByName("cin")

	entry, err := h.Svc.GetFlag(r.Context(), cin)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not read flag")
		return
	}
	if entry == nil {
		utils.RespondWithJSON(w, http.StatusOK, models.FlagEntry{CIN: cin, RedFlag: false})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, entry)
}

var _ Registry = (*db.Store)(nil)
