package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mealcart/payouts/config"
	"github.com/mealcart/payouts/db"
	"github.com/mealcart/payouts/gateway"
	"github.com/mealcart/payouts/notify"
	"github.com/mealcart/payouts/payout"
	"github.com/mealcart/payouts/store"
)

// One cycle has to finish well before the next day's run; a stuck gateway
// should not pile up overlapping cycles.
const cycleTimeout = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	payouts := &store.Payouts{DB: database}
	scheduler := &payout.Scheduler{
		Records:     payouts,
		Orders:      &store.Orders{DB: database},
		Restaurants: &store.Restaurants{DB: database},
		Gateway: gateway.NewRazorpayX(cfg.GatewayBaseURL, cfg.GatewayKeyID,
			cfg.GatewayKeySecret, cfg.GatewayAccountNumber),
		Notifier: notify.NewMailer(cfg.SendgridAPIKey, cfg.ReportFromName, cfg.ReportFromEmail),
		Config: payout.Config{
			BufferDays:          cfg.PayoutBufferDays,
			MinimumReserve:      cfg.MinimumReserve,
			DispatchFloor:       cfg.DispatchFloor,
			TransactionChargeBP: cfg.TransactionChargeBP,
			ReportRecipients:    cfg.ReportRecipients,
		},
	}

	c := cron.New(cron.WithSeconds())
	_, err = c.AddFunc(cfg.PayoutCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
		defer cancel()

		if err := scheduler.RunPayoutCycle(ctx); err != nil {
			slog.Error("payout cycle failed", "error", err)
			return
		}
		slog.Info("payout cycle finished")
	})
	if err != nil {
		slog.Error("invalid cron spec", "spec", cfg.PayoutCronSpec, "error", err)
		os.Exit(1)
	}

	c.Start()
	slog.Info("payout cron started", "spec", cfg.PayoutCronSpec)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Stop scheduling new runs and give an in-flight cycle a short drain.
	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		slog.Warn("cycle still running at shutdown deadline")
	}
	slog.Info("payout cron stopped")
}
