// Package http provides http transport for insights
package http

import (
	stdhttp "net/http"

	"quando/internal/modkit/httpkit"
	"quando/internal/platform/logger"
	"quando/internal/platform/net/middleware"
	"quando/internal/services/insights/domain"
	svc "quando/internal/services/insights/service"
)

// Register mounts insights endpoints on the given router
// admin guards the group with bearer auth; a nil port leaves it open
func Register(r httpkit.Router, s svc.Service, admin middleware.AuthPort) {
	h := &handlers{svc: s}
	httpkit.Protected(r, admin, func(gr httpkit.Router) {
		httpkit.PostJSON[domain.AnalyzeInput](gr, "/analyze", h.analyze)
		httpkit.Post(gr, "/task-patterns", h.taskPatterns)
	})
}

type handlers struct{ svc svc.Service }

// @Summary Parse log analysis for a lookback window
// @Tags Insights
// @Accept json
// @Produce json
// @Param payload body domain.AnalyzeInput true "Window"
// @Success 200 {object} domain.AnalysisReport "ok"
// @Router /insights/analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in domain.AnalyzeInput) (any, error) {
	if uid, err := httpkit.User(r); err == nil {
		logger.C(r.Context()).Info().Str("operator", uid).Int("hours", in.Hours).Msg("ad hoc analysis requested")
	}
	return h.svc.Analyze(r.Context(), in)
}

// @Summary Scheduling habits across stored tasks
// @Tags Insights
// @Produce json
// @Success 200 {object} domain.TaskPatterns "ok"
// @Router /insights/task-patterns [post]
func (h *handlers) taskPatterns(r *stdhttp.Request) (any, error) {
	return h.svc.TaskPatterns(r.Context())
}
