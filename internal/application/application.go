package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"tg_giftwatch/internal/config"
	"tg_giftwatch/internal/domain/entity"
	"tg_giftwatch/internal/infrastructure/feed"
	"tg_giftwatch/internal/infrastructure/notifier"
	"tg_giftwatch/internal/infrastructure/persistence"
	"tg_giftwatch/internal/infrastructure/telegram"
	"tg_giftwatch/internal/server"
	"tg_giftwatch/internal/transport/bot"
	"tg_giftwatch/internal/worker"
	"tg_giftwatch/pkg/application/connectors"
	"tg_giftwatch/pkg/application/modules"
	"tg_giftwatch/pkg/middlewarex"
)

const (
	appName             = "giftwatch"
	appVersion          = "v1.0.0"
	httpShutdownTimeout = 10 * time.Second
	alertsBuffer        = 100
)

func Run(ctx context.Context, log *slog.Logger, cancel context.CancelFunc) error {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	// 2. Database
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	log.Info("database connection OK")

	giftRepo := persistence.NewGiftRepository(db)

	// 3. Telegram MTProto client
	tgClient, err := telegram.NewClient(cfg.Telegram)
	if err != nil {
		return fmt.Errorf("tg client create: %w", err)
	}

	tgReady := make(chan struct{})
	go func() {
		log.Info("starting telegram client...")
		err := tgClient.Start(ctx, func() error {
			log.Info("telegram authorized & ready")
			close(tgReady)
			return nil
		})
		if err != nil && ctx.Err() == nil {
			log.Error("telegram client stopped", "error", err)
			cancel()
		}
	}()

	select {
	case <-tgReady:
	case <-ctx.Done():
		return ctx.Err()
	}

	// 4. Feed writer
	feedWriter, err := feed.NewWriter(cfg.Monitor.FeedPath)
	if err != nil {
		return fmt.Errorf("feed writer: %w", err)
	}
	log.Info("feed writer ready", "path", feedWriter.Path())

	// 5. Gift monitor
	monitor := worker.NewGiftMonitor(tgClient, feedWriter, cfg.Monitor.Interval).
		WithArchive(giftRepo).
		WithDedup(cfg.Monitor.Dedup)

	// 6. Alert + admin bots (optional)
	var alerts chan entity.Gift

	if cfg.Bot.Token != "" {
		alerts = make(chan entity.Gift, alertsBuffer)
		monitor.WithAlerts(alerts)

		alertBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.AdminID)
		if err != nil {
			return fmt.Errorf("notifier bot: %w", err)
		}
		if err := alertBot.SendText(ctx, "🚀 giftwatch started"); err != nil {
			log.Error("bot test message failed, check token and chat id", "error", err)
		}
		go func() {
			if err := alertBot.Run(ctx, alerts); err != nil && ctx.Err() == nil {
				log.Error("notifier bot stopped", "error", err)
			}
		}()

		adminBot, err := bot.New(cfg.Bot.Token, cfg.Bot.AdminID, monitor, giftRepo)
		if err != nil {
			return fmt.Errorf("admin bot: %w", err)
		}
		go func() {
			if err := adminBot.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error("admin bot stopped", "error", err)
			}
		}()

		log.Info("bots started", "admin_id", cfg.Bot.AdminID)
	}

	// 7. Servers + monitor loop
	g, ctx := errgroup.WithContext(ctx)

	modules.ProbeServer{
		Name:          appName,
		Version:       appVersion,
		ListenAddress: cfg.Server.ProbeAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Server.MetricsAddress,
	}.Run(ctx, g)

	modules.HTTPServer{
		ShutdownTimeout: httpShutdownTimeout,
	}.Run(ctx, g, newHTTPServer(cfg.Server.HTTPAddress, monitor, giftRepo))

	g.Go(func() error {
		defer func() {
			if alerts != nil {
				close(alerts)
			}
		}()

		return monitor.Run(ctx)
	})

	log.Info("monitor started",
		"interval", cfg.Monitor.Interval,
		"feed", cfg.Monitor.FeedPath,
		"dedup", cfg.Monitor.Dedup,
	)

	return g.Wait()
}

func newHTTPServer(
	address string,
	monitor *worker.GiftMonitor,
	giftRepo *persistence.GiftRepository,
) *http.Server {
	router := chi.NewRouter()

	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
	)

	server.NewServer(
		server.NewGiftServer(monitor, giftRepo),
	).RegisterRoutes(router)

	//nolint:exhaustruct
	return &http.Server{
		Addr:              address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
