// cmd/notification-service/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"nutrition-notifier/internal/api"
	commonaws "nutrition-notifier/internal/common/aws"
	"nutrition-notifier/internal/common/config"
	"nutrition-notifier/internal/common/logger"
	"nutrition-notifier/internal/notify"
	"nutrition-notifier/internal/scheduler"
	"nutrition-notifier/pkg/registry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := logger.NewZapAdapter(zapLogger)

	log.Info("starting notification service", map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	svc, err := buildService(cfg, log)
	if err != nil {
		zapLogger.Fatal("failed to build notification service", zap.Error(err))
	}

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(scheduler.Options{
			Triggers:     scheduler.DefaultTriggers(svc, log, nil),
			Logger:       log,
			TickInterval: config.GetDuration(cfg.Scheduler.TickInterval),
		})
		sched.Start()
		log.Info("campaign scheduler started", map[string]interface{}{
			"tickInterval": cfg.Scheduler.TickInterval,
		})
	}

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: api.NewRouter(svc, log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", map[string]interface{}{
			"address": cfg.Server.Address,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})
	case err := <-errCh:
		log.WithError(err).Error("http server failed", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if sched != nil {
		sched.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http server shutdown failed", nil)
	}

	// Flush anything still queued before exiting.
	if remaining := svc.Drain(shutdownCtx); remaining > 0 {
		log.Warn("shutdown drain left notifications queued", map[string]interface{}{
			"remaining": remaining,
		})
	}

	log.Info("notification service stopped", nil)
}

// buildService assembles the Service from configuration: quiet hours,
// history retention, an optional template registry file and the configured
// push driver.
func buildService(cfg *config.Config, log logger.Logger) (*notify.Service, error) {
	quietStart, err := notify.ParseClock(cfg.Notifications.QuietHoursStart)
	if err != nil {
		return nil, err
	}
	quietEnd, err := notify.ParseClock(cfg.Notifications.QuietHoursEnd)
	if err != nil {
		return nil, err
	}
	quiet := notify.Window{Start: quietStart, End: quietEnd}

	catalog := notify.DefaultCatalog()
	if path := cfg.Notifications.TemplateRegistry; path != "" {
		catalog, err = registry.LoadCatalog(path)
		if err != nil {
			return nil, err
		}
		log.Info("loaded template registry", map[string]interface{}{
			"path": path,
		})
	}

	var pusher notify.Pusher
	switch cfg.Push.Driver {
	case "sns":
		client, err := commonaws.NewSNSClient(context.Background(), cfg.Push.SNS.Region)
		if err != nil {
			return nil, err
		}
		pusher = notify.NewSNSPusher(client)
		log.Info("using SNS push driver", map[string]interface{}{
			"region": cfg.Push.SNS.Region,
		})
	default:
		pusher = notify.NewSimulatedPusher(log)
	}

	return notify.NewService(notify.Options{
		HistoryLimit:      cfg.Notifications.HistoryLimit,
		DefaultQuietHours: &quiet,
		Catalog:           catalog,
		Pusher:            pusher,
		Logger:            log,
		PushTimeout:       config.GetDuration(cfg.Push.Timeout),
		PushMaxRetries:    cfg.Push.MaxRetries,
		PushRetryDelay:    config.GetDuration(cfg.Push.RetryDelay),
	}), nil
}
