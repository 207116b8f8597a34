package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type ScoreHandler struct {
	scoreService service.ScoreService
	validate     *validator.Validate
	logger       zerolog.Logger
}

func NewScoreHandler(scoreService service.ScoreService, v *validator.Validate, logger zerolog.Logger) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService, validate: v, logger: logger}
}

// RegisterRoutes mounts score routes behind the auth middleware.
func (h *ScoreHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/score", authMw(http.HandlerFunc(h.handleScore)))
}

func (h *ScoreHandler) handleScore(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createScore(w, r)
	case http.MethodGet:
		h.listScores(w, r)
	default:
		writeNotFound(w)
	}
}

func (h *ScoreHandler) createScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r, w)
	if !ok {
		return
	}

	var req dto.ScoreCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, dto.CodeValidationError, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, dto.CodeValidationError, "Validation failed: "+err.Error())
		return
	}

	score, err := h.scoreService.Record(r.Context(), userID, model.Module(req.Module), *req.Score)
	if err != nil {
		if errors.Is(err, service.ErrInvalidModule) || errors.Is(err, service.ErrInvalidScore) {
			writeError(w, http.StatusBadRequest, dto.CodeValidationError, err.Error())
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to save score")
		writeError(w, http.StatusBadRequest, dto.CodeScoreSaveError, "Failed to save score")
		return
	}

	writeSuccess(w, http.StatusCreated, dto.NewScoreResponse(*score))
}

func (h *ScoreHandler) listScores(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r, w)
	if !ok {
		return
	}

	var scores []model.Score
	var err error
	if moduleParam := r.URL.Query().Get("module"); moduleParam != "" {
		module, perr := model.ParseModule(moduleParam)
		if perr != nil {
			writeError(w, http.StatusBadRequest, dto.CodeValidationError, perr.Error())
			return
		}
		scores, err = h.scoreService.ListByModule(r.Context(), userID, module)
	} else {
		scores, err = h.scoreService.List(r.Context(), userID)
	}
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list scores")
		writeError(w, http.StatusBadRequest, dto.CodeScoreRetrievalError, "Failed to retrieve scores")
		return
	}

	writeSuccess(w, http.StatusOK, dto.NewScoreResponses(scores))
}
