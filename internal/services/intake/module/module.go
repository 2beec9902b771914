// Package module wires intake into the API using modkit
package module

import (
	"net/http"
	"time"

	"quando/internal/core/temporal"
	modkit "quando/internal/modkit"
	"quando/internal/modkit/httpkit"
	str "quando/internal/platform/strings"

	intakehttp "quando/internal/services/intake/http"
	intakesvc "quando/internal/services/intake/service"
	notifydom "quando/internal/services/notify/domain"
	plogdom "quando/internal/services/parselog/domain"
	tasksdom "quando/internal/services/tasks/domain"
)

// Ports declares the injected ports this module requires. LLM may be nil;
// intake then runs pattern-only
type Ports struct {
	Tasks    tasksdom.ServicePort
	Notify   notifydom.Publisher
	ParseLog plogdom.Writer
	LLM      intakesvc.Proposer
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

	svc intakesvc.Service
}

// New constructs an intake module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("intake"), modkit.WithPrefix("/intake")}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Tasks == nil {
		panic("intake module requires the tasks port")
	}
	if injected.Notify == nil {
		panic("intake module requires the notify publisher port")
	}
	if injected.ParseLog == nil {
		panic("intake module requires the parse log writer port")
	}

	ropts := temporal.ResolverOptions{
		WeekEndDay:  time.Weekday(deps.Cfg.MayInt("WEEK_END_DAY", int(time.Friday))),
		WeekEndHour: deps.Cfg.MayInt("WEEK_END_HOUR", 17),
	}

	svc := intakesvc.New(injected.Tasks, injected.Notify, injected.ParseLog, injected.LLM, ropts, deps.Log)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = injected

	external := b.Register
	m.register = func(r httpkit.Router) {
		intakehttp.Register(r, m.svc)
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
