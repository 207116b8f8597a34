package handler

import (
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/service"

	"github.com/rs/zerolog"
)

type StatsHandler struct {
	statsService service.StatsService
	logger       zerolog.Logger
}

func NewStatsHandler(statsService service.StatsService, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{statsService: statsService, logger: logger}
}

// RegisterRoutes mounts stats routes behind the auth middleware.
func (h *StatsHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/stats", authMw(http.HandlerFunc(h.getStats)))
}

func (h *StatsHandler) getStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeNotFound(w)
		return
	}
	if _, ok := userIDFromContext(r, w); !ok {
		return
	}

	stats, err := h.statsService.GetAllStats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to aggregate stats")
		writeError(w, http.StatusInternalServerError, dto.CodeStatsError, "Failed to retrieve statistics")
		return
	}

	writeSuccess(w, http.StatusOK, dto.NewStatsResponse(stats))
}
