package main

import (
	"context"

	"quando/internal/modkit"
	"quando/internal/modkit/module"
	"quando/internal/modkit/repokit"
	"quando/internal/platform/config"
	"quando/internal/platform/logger"
	"quando/internal/platform/store"

	notifysvc "quando/internal/services/notify/service"
	remindermod "quando/internal/services/reminder/module"
	tasksrepo "quando/internal/services/tasks/repo"
	taskssvc "quando/internal/services/tasks/service"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
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

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	// the feed here is process-local; it backs reminder_sent bookkeeping only.
	// quando-api runs the same scan in-process (CORE_API_REMINDER) when
	// announcements must reach the feed it serves
	tasks := taskssvc.New(st.PG, tasksrepo.NewPG())
	notify := notifysvc.New(root.Prefix("NOTIFY_").MayInt("CAPACITY", notifysvc.DefaultCapacity))

	mod := remindermod.New(deps, tasks, notify)
	module.Register(mod.Name(), mod.Ports())

	ports := module.MustPortsOf[remindermod.Ports](mod)

	if err := ports.Worker.Run(context.Background()); err != nil {
		l.Fatal().Err(err).Msg("reminder worker failed")
	}
}
