// Package http provides http transport for tasks
package http

import (
	stdhttp "net/http"

	"quando/internal/modkit/httpkit"
	"quando/internal/services/tasks/domain"
	svc "quando/internal/services/tasks/service"
)

// Register mounts task endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.CreateInput](r, "/create", h.create)
	httpkit.PostJSON[domain.GetInput](r, "/get", h.get)
	httpkit.PostJSON[domain.UpdateInput](r, "/update", h.update)
	httpkit.PostJSON[domain.DeleteInput](r, "/delete", h.del)
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)
	httpkit.PostJSON[domain.BulkStatusInput](r, "/bulk-status", h.bulkStatus)
}

type handlers struct{ svc svc.Service }

// @Summary Create a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Task"
// @Success 200 {object} domain.Task "ok"
// @Router /tasks/create [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	return h.svc.Create(r.Context(), in)
}

// @Summary Fetch a task by id
// @Tags Tasks
// @Accept json
// @Produce json
// @Param payload body domain.GetInput true "Selector"
// @Success 200 {object} domain.Task "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /tasks/get [post]
func (h *handlers) get(r *stdhttp.Request, in domain.GetInput) (any, error) {
	return h.svc.Get(r.Context(), in)
}

// @Summary Update task fields
// @Tags Tasks
// @Accept json
// @Produce json
// @Param payload body domain.UpdateInput true "Patch"
// @Success 200 {object} domain.Task "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /tasks/update [post]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), in)
}

// @Summary Delete a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param payload body domain.DeleteInput true "Selector"
// @Success 200 {object} domain.DeleteResult "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /tasks/delete [post]
func (h *handlers) del(r *stdhttp.Request, in domain.DeleteInput) (any, error) {
	return h.svc.Delete(r.Context(), in)
}

// @Summary List tasks with filters
// @Tags Tasks
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Filters"
// @Success 200 {array} domain.Task "ok"
// @Router /tasks/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}

// @Summary Move a batch of tasks to one status
// @Tags Tasks
// @Accept json
// @Produce json
// @Param payload body domain.BulkStatusInput true "Batch"
// @Success 200 {object} domain.BulkStatusResult "ok"
// @Router /tasks/bulk-status [post]
func (h *handlers) bulkStatus(r *stdhttp.Request, in domain.BulkStatusInput) (any, error) {
	return h.svc.BulkStatus(r.Context(), in)
}
