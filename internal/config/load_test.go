package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"AUTO_MIGRATE", "AGENT_CALL_TIMEOUT", "AGENT_FINALIZE_FALLBACK", "AUTH_DEBUG_MODE", "AUTH_DEBUG_TOKENS", "ORDER_EXTRA_STATUSES", "SESSION_TTL"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 20*time.Second, cfg.AgentCallTimeout)
	assert.True(t, cfg.AgentFinalizeFallback)
	assert.False(t, cfg.AuthDebugMode)
	assert.Empty(t, cfg.AuthDebugTokens)
	assert.Empty(t, cfg.ExtraOrderStatuses)
	assert.Zero(t, cfg.SessionTTL)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("AGENT_CALL_TIMEOUT", "5s")
	t.Setenv("AGENT_FINALIZE_FALLBACK", "false")
	t.Setenv("AUTH_DEBUG_MODE", "true")
	t.Setenv("AUTH_DEBUG_TOKENS", "dev-a, dev-b")
	t.Setenv("AUTH_DEBUG_ADMIN_ID", "3")
	t.Setenv("ORDER_EXTRA_STATUSES", "Shipped,Delivered")
	t.Setenv("SESSION_TTL", "8h")

	cfg := FromEnv()
	assert.Equal(t, 5*time.Second, cfg.AgentCallTimeout)
	assert.False(t, cfg.AgentFinalizeFallback)
	assert.True(t, cfg.AuthDebugMode)
	assert.Equal(t, []string{"dev-a", "dev-b"}, cfg.AuthDebugTokens)
	assert.EqualValues(t, 3, cfg.AuthDebugAdminID)
	assert.Equal(t, []string{"Shipped", "Delivered"}, cfg.ExtraOrderStatuses)
	assert.Equal(t, 8*time.Hour, cfg.SessionTTL)
}
