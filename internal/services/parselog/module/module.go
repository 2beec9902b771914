// Package module wires the parse log sink using modkit
package module

import (
	"net/http"

	modkit "quando/internal/modkit"
	"quando/internal/modkit/httpkit"
	str "quando/internal/platform/strings"
	"quando/internal/services/parselog/domain"
	parselogrepo "quando/internal/services/parselog/repo"
	parselogsvc "quando/internal/services/parselog/service"
)

// Ports are the cross module ports exposed by parselog
type Ports struct {
	// Writer is the sink used by intake
	Writer domain.Writer
}

// Module implements the modkit.Module interface.
// parselog has no HTTP surface; it only publishes its Writer port
type Module struct {
	deps modkit.Deps
	name string

	ports any
	svc   parselogsvc.Service
}

// New constructs a parselog module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("parselog")}, opts...)...)

	svc := parselogsvc.New(parselogrepo.NewCH(deps.CH), deps.Log)

	m := &Module{deps: deps, name: b.Name, svc: svc}
	m.ports = Ports{Writer: svc}
	return m
}

// MountRoutes implements the modkit.Module interface; nothing to mount
func (m *Module) MountRoutes(_ httpkit.Router) {}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix; parselog mounts nothing
func (m *Module) Prefix() string { return "" }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
