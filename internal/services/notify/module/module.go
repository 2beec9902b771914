// Package module wires notifications into the API using modkit
package module

import (
	"net/http"

	modkit "quando/internal/modkit"
	"quando/internal/modkit/httpkit"
	str "quando/internal/platform/strings"
	"quando/internal/services/notify/domain"
	notifyhttp "quando/internal/services/notify/http"
	notifysvc "quando/internal/services/notify/service"
)

// Ports are the cross module ports exposed by notify
type Ports struct {
	// Publisher is used by intake and the reminder worker
	Publisher domain.Publisher
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

	svc notifysvc.Service
}

// New constructs a notify module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append(
		[]modkit.Option{modkit.WithName("notify"), modkit.WithPrefix("/notifications")},
		opts...,
	)...)

	capacity := deps.Cfg.MayInt("NOTIFY_CAPACITY", notifysvc.DefaultCapacity)
	svc := notifysvc.New(capacity)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Publisher: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		notifyhttp.Register(r, m.svc)
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
