package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/shopspring/decimal"

	"github.com/knadh/koanf/v2"
)

var Global = koanf.New(".")

// Defaults holds the value of every optional key.
var Defaults = map[string]interface{}{
	API_PORT:               "3001",
	API_BIND_ADDR:          "127.0.0.1",
	LOG_LEVEL:              "info",
	NATIVE_SYMBOL:          "ETH",
	NATIVE_WHALE_THRESHOLD: "100",
	NATIVE_USD_PRICE:       "2500",
	RECENT_EVENTS_CAPACITY: 100,
	RECONNECT_BACKOFF:      "10s",
	MAX_RECONNECT_ATTEMPTS: 0,
	RPC_CALL_TIMEOUT:       "15s",
	RECEIPT_CONCURRENCY:    16,
	SUBSCRIBER_QUEUE_SIZE:  64,
	DEDUP_CACHE_SIZE:       4096,
	SHUTDOWN_TIMEOUT:       "5s",
	KAFKA_TOPIC:            "whale-transactions",
}

// LoadRequiredEnv loads the environment variables required to run the services.
// An error is returned if any of the required variables are missing in .env or
// env, or if a numeric setting cannot be parsed.
func LoadRequiredEnv() error {
	// Load default values
	Global.Load(confmap.Provider(Defaults, "."), nil)

	// .env file is optional, but we still try to load it if it exists.
	err := Global.Load(
		file.Provider(".env"), dotenv.Parser(),
	)
	if err != nil {
		slog.Warn("failed to load .env file", slog.Any("error", err))
	}

	if err := Global.Load(env.Provider("", "", nil), nil); err != nil {
		slog.Warn("failed to load environment variables", slog.Any("error", err))
	}

	if err := checkRequired(); err != nil {
		return err
	}

	for _, k := range []string{NATIVE_WHALE_THRESHOLD, NATIVE_USD_PRICE} {
		if _, err := Decimal(k); err != nil {
			return err
		}
	}

	return nil
}

func checkRequired() error {
	required := []string{
		RPC_URL_ETHEREUM,
		API_BIND_ADDR,
		API_PORT,
	}

	for _, r := range required {
		if Global.String(r) == "" {
			return fmt.Errorf("required environment variable %s is missing", r)
		}
	}
	return nil
}

// Decimal parses a decimal valued setting. Negative values are rejected.
func Decimal(key string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(Global.String(key)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}

// LogLevel maps LOG_LEVEL to a slog level, falling back to info.
func LogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(Global.String(LOG_LEVEL))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// KafkaBrokers returns the configured brokers, empty when export is disabled.
func KafkaBrokers() []string {
	parts := strings.Split(Global.String(KAFKA_BROKERS), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
