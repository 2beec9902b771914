// Package http provides http transport for notifications
package http

import (
	stdhttp "net/http"

	"quando/internal/modkit/httpkit"
	"quando/internal/services/notify/domain"
	svc "quando/internal/services/notify/service"
)

// Register mounts notification endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)
	httpkit.PostJSON[domain.MarkReadInput](r, "/mark-read", h.markRead)
	httpkit.Post(r, "/clear", h.clear)
}

type handlers struct{ svc svc.Service }

// @Summary List notifications, newest first
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Filters"
// @Success 200 {array} domain.Notification "ok"
// @Router /notifications/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}

// @Summary Mark notifications read
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body domain.MarkReadInput true "Selection"
// @Success 200 {object} domain.MarkReadResult "ok"
// @Router /notifications/mark-read [post]
func (h *handlers) markRead(r *stdhttp.Request, in domain.MarkReadInput) (any, error) {
	return h.svc.MarkRead(r.Context(), in)
}

// @Summary Clear the notification feed
// @Tags Notifications
// @Produce json
// @Success 200 {object} domain.ClearResult "ok"
// @Router /notifications/clear [post]
func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	return h.svc.Clear(r.Context())
}
