package handler

import (
	"net/http"

	"lessonhub/internal/api/v1/dto"
)

// HealthHandler reports liveness and whether Supabase is configured.
type HealthHandler struct {
	configured func() bool
}

func NewHealthHandler(configured func() bool) *HealthHandler {
	return &HealthHandler{configured: configured}
}

// ServeHTTP godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthDTO
// @Router /healthz [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, dto.HealthDTO{Status: "ok", Configured: h.configured()})
}
