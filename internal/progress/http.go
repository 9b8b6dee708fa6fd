package progress

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/knowledgestack/backend/pkg/http/errors"
)

// HTTPHandlers exposes login, sync and progress-read endpoints.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers wires the progress endpoints.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{svc: svc, logger: logger}
}

type loginRequest struct {
	UserID string `json:"userId"`
}

type syncPayload struct {
	UserID           string `json:"userId"`
	Level            *int   `json:"level"`
	Score            *int   `json:"score"`
	SolvedQuestionID *int   `json:"solvedQuestionId"`
}

// Login handles POST /api/auth/login: create-or-fetch by opaque userId. No
// credential is checked; identity strength is the deployment's concern.
func (h *HTTPHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidPayload, "invalid JSON body")
		return
	}
	if req.UserID == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingUserID, "userId is required")
		return
	}

	p, err := h.svc.Login(r.Context(), req.UserID)
	if err != nil {
		h.logger.Error().Err(err).Str("player", req.UserID).Msg("login failed")
		httperrors.RespondInternalError(w, err.Error())
		return
	}
	writeJSON(w, p)
}

// Sync handles POST /api/game/sync: last-write-wins level/score update plus an
// optional solved-question append.
func (h *HTTPHandlers) Sync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var payload syncPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidPayload, "invalid JSON body")
		return
	}
	if payload.UserID == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingUserID, "userId is required")
		return
	}

	p, err := h.svc.Sync(r.Context(), SyncRequest{
		PlayerID:         payload.UserID,
		Level:            payload.Level,
		Score:            payload.Score,
		SolvedQuestionID: payload.SolvedQuestionID,
	})
	switch {
	case errors.Is(err, ErrUnknownPlayer):
		httperrors.RespondNotFound(w, httperrors.ErrCodeUnknownPlayer, "user not found")
		return
	case err != nil:
		h.logger.Error().Err(err).Str("player", payload.UserID).Msg("sync failed")
		httperrors.RespondInternalError(w, err.Error())
		return
	}
	writeJSON(w, p)
}

// Progress handles GET /api/game/progress?userId=: read-only record fetch.
func (h *HTTPHandlers) Progress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingUserID, "userId is required")
		return
	}

	p, err := h.svc.Get(r.Context(), userID)
	switch {
	case errors.Is(err, ErrUnknownPlayer):
		httperrors.RespondNotFound(w, httperrors.ErrCodeUnknownPlayer, "user not found")
		return
	case err != nil:
		h.logger.Error().Err(err).Str("player", userID).Msg("progress fetch failed")
		httperrors.RespondInternalError(w, err.Error())
		return
	}
	writeJSON(w, p)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
