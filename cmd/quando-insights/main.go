package main

import (
	"context"
	"flag"
	"time"

	"quando/internal/modkit"
	"quando/internal/modkit/module"
	"quando/internal/modkit/repokit"
	"quando/internal/platform/config"
	"quando/internal/platform/logger"
	"quando/internal/platform/store"

	insightsmod "quando/internal/services/insights/module"
	insightssvc "quando/internal/services/insights/service"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled:    true,
			URL:        chCfg.MustString("DBURL"),
			ClientName: "quando",
			ClientTag:  "insights",
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

	var (
		fInterval = flag.Duration("interval", time.Hour, "time between analysis passes")
		fWindow   = flag.Int("window", insightssvc.DefaultWindowHours, "hours of parse history per pass")
	)
	flag.Parse()

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	// no HTTP surface in the worker, so no auth port
	mod := insightsmod.New(deps, nil)
	module.Register(mod.Name(), mod.Ports())

	ports := module.MustPortsOf[insightsmod.Ports](mod)

	if err := ports.Insights.Run(context.Background(), *fInterval, *fWindow); err != nil {
		l.Fatal().Err(err).Msg("insights worker failed")
	}
}
