package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	expsvc "github.com/cdy-agency/api-sky-solutions/internal/application/expenses"
	invsvc "github.com/cdy-agency/api-sky-solutions/internal/application/invoices"
	"github.com/cdy-agency/api-sky-solutions/internal/config"
	"github.com/cdy-agency/api-sky-solutions/internal/interfaces/router"
	"github.com/cdy-agency/api-sky-solutions/internal/scheduler"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("app create failed")
	}

	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal().Err(err).Msg("get sql.DB failed")
		}
		if err := sqlDB.Ping(); err != nil {
			log.Fatal().Err(err).Msg("Postgres connection failed")
		}
		log.Info().Msg("Postgres connected")
	}
	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("Redis connection failed")
		}
		log.Info().Msg("Redis connected")
	}

	// Hourly recurrence sweeps: expense successors + overdue flips, invoice
	// overdue flips. Started after the connection checks, stopped on shutdown.
	var sched *scheduler.Scheduler
	if db != nil {
		es := &expsvc.Service{DB: db}
		is := &invsvc.Service{DB: db}
		sched = scheduler.New(cfg.SweepInterval,
			scheduler.Func{Label: "expense-recurrence", Run: es.Sweep},
			scheduler.Func{Label: "invoice-overdue", Run: is.SweepOverdue},
		)
		if err := sched.Start(); err != nil {
			log.Fatal().Err(err).Msg("scheduler start failed")
		}
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		if sched != nil {
			sched.Stop()
		}
		_ = app.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Msg("Server running")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
