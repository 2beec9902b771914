// Package module wires tasks into the API using modkit
package module

import (
	"net/http"

	modkit "quando/internal/modkit"
	"quando/internal/modkit/httpkit"
	str "quando/internal/platform/strings"
	notifydom "quando/internal/services/notify/domain"
	taskshttp "quando/internal/services/tasks/http"
	tasksrepo "quando/internal/services/tasks/repo"
	taskssvc "quando/internal/services/tasks/service"
)

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

	svc taskssvc.Service
}

// New constructs a tasks module with the provided dependencies and options
// notify, when non-nil, receives update/delete/priority notifications
func New(deps modkit.Deps, notify notifydom.Publisher, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("tasks"), modkit.WithPrefix("/tasks")}, opts...)...)

	repo := tasksrepo.NewPG()
	svc := taskssvc.New(deps.PG, repo)
	if notify != nil {
		svc.WithNotifier(notify)
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Tasks: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		taskshttp.Register(r, m.svc)
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
