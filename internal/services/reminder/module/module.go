// Package module wires the reminder worker service and exposes its ports
package module

import (
	"quando/internal/modkit"
	"quando/internal/modkit/httpkit"
	notifydom "quando/internal/services/notify/domain"
	"quando/internal/services/reminder/service"
	taskssvc "quando/internal/services/tasks/service"
)

// Ports are the cross module ports exposed by reminder
type Ports struct {
	Worker service.Service
}

// Module defines the reminder worker module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the reminder worker module over injected tasks and notify ports
func New(deps modkit.Deps, tasks taskssvc.Service, notify notifydom.Publisher) *Module {
	opts := FromConfig(deps.Cfg)
	svc := service.New(tasks, notify, opts)

	m := &Module{deps: deps}
	m.ports = Ports{Worker: svc}
	return m
}

// MountRoutes implements the modkit.Module interface; the worker mounts nothing
func (m *Module) MountRoutes(_ httpkit.Router) {}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "reminder" }

// Prefix returns the module config prefix (none for worker-only service)
func (m *Module) Prefix() string { return "" }
