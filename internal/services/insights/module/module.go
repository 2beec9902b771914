// Package module wires insights into the API using modkit
package module

import (
	"net/http"

	modkit "quando/internal/modkit"
	"quando/internal/modkit/httpkit"
	"quando/internal/platform/net/middleware"
	str "quando/internal/platform/strings"
	insightshttp "quando/internal/services/insights/http"
	insightsrepo "quando/internal/services/insights/repo"
	insightssvc "quando/internal/services/insights/service"
)

// Ports are the cross module ports exposed by insights
type Ports struct {
	// Insights backs the scheduled worker binary
	Insights *insightssvc.Svc
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *insightssvc.Svc
}

// New constructs an insights module with the provided dependencies and options
// admin, when non-nil, puts the HTTP surface behind bearer auth
func New(deps modkit.Deps, admin middleware.AuthPort, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("insights"), modkit.WithPrefix("/insights")}, opts...)...)

	svc := insightssvc.New(deps.PG, insightsrepo.NewHybrid(deps.CH))

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Insights: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		insightshttp.Register(r, m.svc, admin)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
