package api

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.temporal.io/sdk/client"

	"github.com/xtremepizzaria/storefront/internal/app/storefront"
	cartapp "github.com/xtremepizzaria/storefront/internal/domains/cart/application"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/handoff"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/pix"
	platformobservability "github.com/xtremepizzaria/storefront/internal/platform/observability"
)

const (
	defaultStatusTimeUnit = time.Second
	defaultTimezone       = "America/Sao_Paulo"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port               string
	Environment        string
	LogLevel           string
	OTLPEndpoint       string
	OTLPSecure         bool
	PostgresDSN        string
	TemporalAddress    string
	TemporalNamespace  string
	TemporalDisabled   bool
	RabbitMQURL        string
	CORSAllowedOrigins []string
	Storefront         storefront.Config
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:               envDefault("PORT", "8080"),
		Environment:        envDefault("ENVIRONMENT", "local"),
		LogLevel:           envDefault("LOG_LEVEL", "info"),
		OTLPEndpoint:       strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPSecure:         strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")) == "0",
		PostgresDSN:        strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:    envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:  envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:   isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		RabbitMQURL:        strings.TrimSpace(os.Getenv("RABBITMQ_URL")),
		CORSAllowedOrigins: splitList(envDefault("CORS_ALLOWED_ORIGINS", "*")),
		Storefront: storefront.Config{
			Namespace:      envDefault("STATE_NAMESPACE", storefront.DefaultNamespace),
			WhatsAppNumber: envDefault("WHATSAPP_BUSINESS_NUMBER", handoff.DefaultBusinessNumber),
			PixMerchantKey: envDefault("PIX_MERCHANT_KEY", pix.DefaultMerchantKey),
			PixCity:        envDefault("PIX_CITY", pix.DefaultCity),
		},
	}

	var err error
	if cfg.Storefront.StatusTimeUnit, err = envDuration("STATUS_TIME_UNIT", defaultStatusTimeUnit); err != nil {
		return Config{}, err
	}
	if cfg.Storefront.AddedSignalTTL, err = envDuration("ADDED_SIGNAL_TTL", cartapp.DefaultAddedSignalTTL); err != nil {
		return Config{}, err
	}
	zone := envDefault("STORE_TIMEZONE", defaultTimezone)
	if cfg.Storefront.Location, err = time.LoadLocation(zone); err != nil {
		return Config{}, fmt.Errorf("STORE_TIMEZONE %q is not a known zone: %w", zone, err)
	}
	return cfg, nil
}

// Telemetry describes the observability setup for the named service.
func (c Config) Telemetry(service string) platformobservability.Settings {
	return platformobservability.Settings{
		ServiceName:  service,
		Environment:  c.Environment,
		LogLevel:     c.LogLevel,
		OTLPEndpoint: c.OTLPEndpoint,
		OTLPSecure:   c.OTLPSecure,
		Attributes:   []attribute.KeyValue{attribute.String("storefront.state_namespace", c.Storefront.Namespace)},
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration such as 1s or 500ms", key)
	}
	return d, nil
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
