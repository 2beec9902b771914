// Package api provides the HTTP API for the application
package api

import (
	"crypto/subtle"

	"quando/internal/platform/config"
	perrs "quando/internal/platform/errors"
	"quando/internal/platform/logger"
	phttp "quando/internal/platform/net/http"
	"quando/internal/platform/net/middleware"
	"quando/internal/platform/store"

	"quando/internal/modkit"
	"quando/internal/modkit/httpkit"
	"quando/internal/modkit/module"
	"quando/internal/modkit/swaggerkit"

	metamod "quando/internal/services/api/meta/module"
	insightsmod "quando/internal/services/insights/module"
	intakemod "quando/internal/services/intake/module"
	intakesvc "quando/internal/services/intake/service"
	notifymod "quando/internal/services/notify/module"
	parselogmod "quando/internal/services/parselog/module"
	tasksmod "quando/internal/services/tasks/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	LLM            intakesvc.Proposer
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Log: *opt.Logger,
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Construct the provider modules first and extract their ports.
	// notify comes up before tasks so task changes can land in the feed
	notify := notifymod.New(deps)
	notifyPorts := module.MustPortsOf[notifymod.Ports](notify)

	tasks := tasksmod.New(deps, notifyPorts.Publisher)
	parselog := parselogmod.New(deps)

	tasksPorts := module.MustPortsOf[tasksmod.Ports](tasks)
	parselogPorts := module.MustPortsOf[parselogmod.Ports](parselog)

	// Intake depends on all three provider ports plus the optional LLM
	intake := intakemod.New(
		deps,
		modkit.WithPorts(intakemod.Ports{
			Tasks:    tasksPorts.Tasks,
			Notify:   notifyPorts.Publisher,
			ParseLog: parselogPorts.Writer,
			LLM:      opt.LLM,
		}),
	)

	// insights is an operator surface; a static bearer token guards it when configured
	mods := []module.Module{
		metamod.New(deps),
		tasks,
		notify,
		parselog,
		intake,
		insightsmod.New(deps, adminPort(opt.Config.MayString("ADMIN_TOKEN", ""))),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}

// adminPort builds a bearer auth port from a shared operator token
// an empty token disables the guard entirely
func adminPort(token string) middleware.AuthPort {
	if token == "" {
		return nil
	}
	return httpkit.NewPortFunc(func(raw string) (string, string, error) {
		if subtle.ConstantTimeCompare([]byte(raw), []byte(token)) != 1 {
			return "", "", perrs.Unauthorizedf("invalid bearer token")
		}
		return "operator", "", nil
	})
}
