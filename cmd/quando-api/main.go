// @title         Quando API
// @version       0.1.0
// @description   Natural language task intake, task management, and parsing insights

package main

import (
	"context"

	gemini "quando/internal/adapters/llm/gemini"
	"quando/internal/modkit"
	"quando/internal/modkit/module"
	"quando/internal/modkit/repokit"
	"quando/internal/platform/config"
	"quando/internal/platform/logger"
	phttp "quando/internal/platform/net/http"
	"quando/internal/platform/store"

	"quando/internal/services/api"
	intakesvc "quando/internal/services/intake/service"
	notifymod "quando/internal/services/notify/module"
	remindermod "quando/internal/services/reminder/module"
	tasksmod "quando/internal/services/tasks/module"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	llmCfg := root.Prefix("LLM_")               // llmCfg lives under LLM_*
	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres + CH adapter)
	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled:    true,
				URL:        chCfg.MustString("DBURL"),
				ClientName: "quando",
				ClientTag:  "api",
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast when a backend is unreachable
	repokit.MustGuard(context.Background(), st)

	// every transaction carries a local statement timeout so one stuck
	// query cannot pin the pool
	st.PG = repokit.WithBeginHooks(st.PG, func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, "set local statement_timeout = '30s'")
		return err
	})

	// optional Gemini enrichment; intake degrades to pattern-only without it
	var llm intakesvc.Proposer
	if key := llmCfg.MayString("GEMINI_API_KEY", ""); key != "" {
		client, err := gemini.New(context.Background(), gemini.Config{
			APIKey: key,
			Model:  llmCfg.MayString("GEMINI_MODEL", gemini.DefaultModel),
		})
		if err != nil {
			l.Panic().Err(err).Msg("gemini client init failed")
		}
		defer client.Close()
		llm = client
		l.Info().Str("model", client.Model()).Msg("llm enrichment enabled")
	} else {
		l.Info().Msg("no LLM_GEMINI_API_KEY; running pattern-only intake")
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			LLM:            llm,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// the reminder scan runs in-process so deadline notifications land in
	// the feed this binary serves; disable when running a dedicated scanner
	if apiCfg.MayBool("REMINDER", true) {
		tasksPorts, okT := module.PortsAs[tasksmod.Ports]("tasks")
		notifyPorts, okN := module.PortsAs[notifymod.Ports]("notify")
		if !okT || !okN {
			l.Panic().Msg("reminder wiring: tasks or notify ports missing from registry")
		}
		rem := remindermod.New(modkit.Deps{Log: *l, Cfg: apiCfg, PG: st.PG, CH: st.CH}, tasksPorts.Tasks, notifyPorts.Publisher)
		module.Register(rem.Name(), rem.Ports())
		remPorts := module.MustPortsOf[remindermod.Ports](rem)
		go func() {
			if err := remPorts.Worker.Run(context.Background()); err != nil {
				l.Error().Err(err).Msg("reminder worker stopped")
			}
		}()
	}

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
