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

type UsageHandler struct {
	usageService service.UsageService
	validate     *validator.Validate
	logger       zerolog.Logger
}

func NewUsageHandler(usageService service.UsageService, v *validator.Validate, logger zerolog.Logger) *UsageHandler {
	return &UsageHandler{usageService: usageService, validate: v, logger: logger}
}

// RegisterRoutes mounts usage routes behind the auth middleware.
func (h *UsageHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/usage", authMw(http.HandlerFunc(h.handleUsage)))
}

func (h *UsageHandler) handleUsage(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createUsage(w, r)
	case http.MethodGet:
		h.listUsage(w, r)
	default:
		writeNotFound(w)
	}
}

func (h *UsageHandler) createUsage(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r, w)
	if !ok {
		return
	}

	var req dto.UsageCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, dto.CodeValidationError, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, dto.CodeValidationError, "Validation failed: "+err.Error())
		return
	}

	usage, err := h.usageService.Record(r.Context(), userID, model.Module(req.Module))
	if err != nil {
		if errors.Is(err, service.ErrInvalidModule) {
			writeError(w, http.StatusBadRequest, dto.CodeValidationError, err.Error())
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to record usage")
		writeError(w, http.StatusBadRequest, dto.CodeUsageCreationError, "Failed to record usage")
		return
	}

	writeSuccess(w, http.StatusCreated, dto.NewUsageResponse(*usage))
}

func (h *UsageHandler) listUsage(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r, w)
	if !ok {
		return
	}

	var usages []model.Usage
	var err error
	if moduleParam := r.URL.Query().Get("module"); moduleParam != "" {
		module, perr := model.ParseModule(moduleParam)
		if perr != nil {
			writeError(w, http.StatusBadRequest, dto.CodeValidationError, perr.Error())
			return
		}
		usages, err = h.usageService.ListByModule(r.Context(), userID, module)
	} else {
		usages, err = h.usageService.List(r.Context(), userID)
	}
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list usage")
		writeError(w, http.StatusBadRequest, dto.CodeUsageRetrievalError, "Failed to retrieve usage records")
		return
	}

	writeSuccess(w, http.StatusOK, dto.NewUsageResponses(usages))
}
