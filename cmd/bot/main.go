// Package main contains the entrypoint for the IDNT store Telegram bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/idnt/idntbot/internal/bot"
	"github.com/idnt/idntbot/internal/bot/handlers"
	"github.com/idnt/idntbot/internal/bot/tasks"
	"github.com/idnt/idntbot/internal/config"
	"github.com/idnt/idntbot/internal/database"
	"github.com/idnt/idntbot/internal/logger"
	"github.com/idnt/idntbot/internal/metrics"
	"github.com/idnt/idntbot/internal/server"
	"github.com/idnt/idntbot/internal/sitemap"
	"github.com/idnt/idntbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run wires every component, blocks until shutdown and returns the exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	var store database.Store
	if cfg.Database.Path != "" {
		db, err := database.NewDB(cfg.Database.Path)
		if err != nil {
			log.Error("Failed to open database", "path", cfg.Database.Path, "error", err)
			return 1
		}
		defer database.CloseDB(db)
		store = database.NewStore(db, log)
	} else {
		log.Info("Database path empty, interaction log disabled")
	}

	var m *metrics.Metrics
	var metricsServer bot.Runner
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		metricsServer = server.New(cfg.Metrics.Addr, server.NewMetricsHandler(m.Handler()), server.Options{
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		}, log)
	}

	cache := sitemap.NewCache(
		sitemap.NewHTTPFetcher(cfg.Sitemap.URL, cfg.Sitemap.Timeout),
		cfg.Site.BaseURL,
		sitemap.WithTTL(cfg.Sitemap.TTL),
		sitemap.WithLogger(log),
		sitemap.WithMetrics(m),
	)

	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, cfg.Telegram.APIURL, log)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	hDeps := handlers.HandlerDeps{
		Logger:  log,
		Config:  cfg,
		Sitemap: cache,
		Store:   store,
		Metrics: m,
	}
	commands := handlers.RegisterAllCommands(hDeps)
	router := handlers.NewRouter(hDeps, commands)

	telegram.Setup(ctx, tg, cfg.Telegram, commands, log)

	webhook := server.NewWebhookHandler(server.WebhookConfig{
		Secret:       cfg.Telegram.WebhookSecret,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	}, func(ctx context.Context, update *models.Update) error {
		return router.Handle(ctx, tg, update)
	}, log)
	webhookServer := server.New(cfg.ListenAddr(), webhook, server.Options{
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, log)

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tasks.TaskDeps{
		Logger:  log,
		Store:   store,
		Sitemap: cache,
		Config:  cfg,
	}))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, webhookServer, metricsServer, sched)

	log.Info("Starting bot", "listen_addr", cfg.ListenAddr())
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Bot stopped due to error", "error", err)
		return 1
	}

	log.Info("Bot stopped gracefully")
	return 0
}
