package config

import (
	"time"

	"github.com/suagrafica/portal/pkg/config"
)

type ServiceConfig struct {
	config.Config

	AutoMigrate      bool
	CustomerTokenTTL time.Duration
	SessionTTL       time.Duration

	OrderEventsTopic string

	GeminiAPIKey          string
	GeminiModel           string
	AgentCallTimeout      time.Duration
	AgentFinalizeFallback bool

	PaymentLinkBaseURL string
	ExtraOrderStatuses []string

	AuthDebugMode    bool
	AuthDebugTokens  []string
	AuthDebugAdminID uint

	// ChatRateLimit is requests per second per client IP; 0 disables it.
	ChatRateLimit float64
}

// FromEnv reads the portal settings without enforcing required values.
func FromEnv() ServiceConfig {
	return ServiceConfig{
		Config: config.Load(),

		AutoMigrate:      config.EnvBoolDefault("AUTO_MIGRATE", true),
		CustomerTokenTTL: config.EnvDurationDefault("CUSTOMER_TOKEN_TTL", 12*time.Hour),
		SessionTTL:       config.EnvDurationDefault("SESSION_TTL", 0),

		OrderEventsTopic: config.EnvDefault("ORDER_EVENTS_TOPIC", "order_events"),

		GeminiAPIKey:          config.EnvDefault("GEMINI_API_KEY", ""),
		GeminiModel:           config.EnvDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		AgentCallTimeout:      config.EnvDurationDefault("AGENT_CALL_TIMEOUT", 20*time.Second),
		AgentFinalizeFallback: config.EnvBoolDefault("AGENT_FINALIZE_FALLBACK", true),

		PaymentLinkBaseURL: config.EnvDefault("PAYMENT_LINK_BASE_URL", "https://pagamento.suagrafica.com/pedido/"),
		ExtraOrderStatuses: config.CSV(config.EnvDefault("ORDER_EXTRA_STATUSES", "")),

		AuthDebugMode:    config.EnvBoolDefault("AUTH_DEBUG_MODE", false),
		AuthDebugTokens:  config.CSV(config.EnvDefault("AUTH_DEBUG_TOKENS", "")),
		AuthDebugAdminID: uint(config.EnvIntDefault("AUTH_DEBUG_ADMIN_ID", 1)),

		ChatRateLimit: config.EnvFloatDefault("CHAT_RATE_LIMIT", 2),
	}
}

func Load() ServiceConfig {
	cfg := FromEnv()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustPositive(cfg.CustomerTokenTTL, "CUSTOMER_TOKEN_TTL")
	config.MustPositive(cfg.AgentCallTimeout, "AGENT_CALL_TIMEOUT")

	return cfg
}
