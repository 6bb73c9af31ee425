package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mealcart/payouts/models"
)

// Config holds all runtime settings for the service. Values come from the
// environment, with a .env file loaded first when present.
type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string

	AuthUser string
	AuthPass string

	// Transfer gateway (RazorpayX-style payout API).
	GatewayBaseURL       string
	GatewayKeyID         string
	GatewayKeySecret     string
	GatewayAccountNumber string

	// Operational notifications.
	SendgridAPIKey   string
	ReportFromName   string
	ReportFromEmail  string
	ReportRecipients []string

	// Settlement tuning. BufferDays keeps orders inside the refund grace
	// window out of the current payout period. MinimumReserve is withheld
	// from the gateway balance before admission; DispatchFloor is the
	// smallest usable balance below which the whole settlement phase aborts.
	PayoutBufferDays    int
	MinimumReserve      models.Money
	DispatchFloor       models.Money
	TransactionChargeBP int
	PayoutCronSpec      string
}

// Load reads configuration from the environment. Only DATABASE_URL is
// mandatory; everything else has a sensible default for local development.
func Load() (*Config, error) {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 envOr("PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		LogLevel:             envOr("LOG_LEVEL", "info"),
		AuthUser:             os.Getenv("AUTH_USER"),
		AuthPass:             os.Getenv("AUTH_PASS"),
		GatewayBaseURL:       envOr("GATEWAY_BASE_URL", "https://api.razorpay.com/v1"),
		GatewayKeyID:         os.Getenv("GATEWAY_KEY_ID"),
		GatewayKeySecret:     os.Getenv("GATEWAY_KEY_SECRET"),
		GatewayAccountNumber: os.Getenv("GATEWAY_ACCOUNT_NUMBER"),
		SendgridAPIKey:       os.Getenv("SENDGRID_API_KEY"),
		ReportFromName:       envOr("REPORT_FROM_NAME", "Payout Service"),
		ReportFromEmail:      envOr("REPORT_FROM_EMAIL", "payouts@mealcart.in"),
		PayoutCronSpec:       envOr("PAYOUT_CRON_SPEC", "0 30 2 * * *"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	if recipients := os.Getenv("REPORT_RECIPIENTS"); recipients != "" {
		for _, r := range strings.Split(recipients, ",") {
			if r = strings.TrimSpace(r); r != "" {
				cfg.ReportRecipients = append(cfg.ReportRecipients, r)
			}
		}
	}

	var err error
	if cfg.PayoutBufferDays, err = envInt("PAYOUT_BUFFER_DAYS", 2); err != nil {
		return nil, err
	}
	reserve, err := envInt("MINIMUM_RESERVE_PAISE", 1000000)
	if err != nil {
		return nil, err
	}
	cfg.MinimumReserve = models.Money(reserve)
	floor, err := envInt("DISPATCH_FLOOR_PAISE", 100)
	if err != nil {
		return nil, err
	}
	cfg.DispatchFloor = models.Money(floor)
	if cfg.TransactionChargeBP, err = envInt("TRANSACTION_CHARGE_BP", 100); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
