package game

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/knowledgestack/backend/internal/catalog"
	httperrors "github.com/knowledgestack/backend/pkg/http/errors"
)

// HTTPHandlers serves the catalog dump and server-side level plans.
type HTTPHandlers struct {
	store    *catalog.Store
	engine   *Engine
	shuffler *Shuffler
	logger   zerolog.Logger
}

// NewHTTPHandlers wires the game endpoints.
func NewHTTPHandlers(store *catalog.Store, engine *Engine, shuffler *Shuffler, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{store: store, engine: engine, shuffler: shuffler, logger: logger}
}

// Questions handles GET /api/game/questions: the full catalog dump the client
// caches locally at game start.
func (h *HTTPHandlers) Questions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	writeJSON(w, catalog.Bundle{Questions: h.store.All()})
}

type planQuestion struct {
	catalog.Question
	Options []string `json:"options"`
}

type planResponse struct {
	Level     int            `json:"level"`
	Questions []planQuestion `json:"questions"`
}

// Plan handles GET /api/game/plan?userId=&level=: runs the distribution
// engine for one level attempt and returns the questions with their answers
// already in presentation order.
func (h *HTTPHandlers) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingUserID, "userId is required")
		return
	}
	level, err := strconv.Atoi(r.URL.Query().Get("level"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidLevel, "level must be an integer")
		return
	}

	questions, err := h.engine.PlanLevel(r.Context(), userID, level)
	switch {
	case errors.Is(err, ErrInvalidLevel):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidLevel, err.Error())
		return
	case errors.Is(err, ErrCatalogTooSmall):
		h.logger.Error().Err(err).Msg("catalog too small to build a plan")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeCatalogTooSmall, err.Error())
		return
	case err != nil:
		h.logger.Error().Err(err).Str("player", userID).Msg("level plan failed")
		httperrors.RespondInternalError(w, err.Error())
		return
	}

	resp := planResponse{Level: level, Questions: make([]planQuestion, 0, len(questions))}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, planQuestion{
			Question: q,
			Options:  h.shuffler.Shuffle(q),
		})
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
