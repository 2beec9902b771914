// Package http provides http transport for intake
package http

import (
	stdhttp "net/http"

	"quando/internal/modkit/httpkit"
	"quando/internal/services/intake/domain"
	svc "quando/internal/services/intake/service"
)

// Register mounts intake endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ParseInput](r, "/parse", h.parse)
}

type handlers struct{ svc svc.Service }

// @Summary Turn free text into a task
// @Tags Intake
// @Accept json
// @Produce json
// @Param payload body domain.ParseInput true "Free text"
// @Success 200 {object} domain.ParseResult "ok"
// @Router /intake/parse [post]
func (h *handlers) parse(r *stdhttp.Request, in domain.ParseInput) (any, error) {
	return h.svc.Parse(r.Context(), in)
}
