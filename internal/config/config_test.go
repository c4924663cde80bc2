package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()

	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, cfg.Database.WriterDSN, cfg.Database.ReaderDSN)
	assert.Equal(t, "studio.orders", cfg.Messaging.Kafka.Topic)
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL)
	assert.NotEmpty(t, cfg.WhatsApp.PhoneNumber)
	assert.Equal(t, "/metrics", cfg.Observability.PrometheusPath)
}

func TestNew_InvalidCacheDriver(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "memcached")

	_, err := New()

	assert.Error(t, err)
}

func TestNew_CacheDisabledForcesNoop(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")

	cfg, err := New()

	assert.NoError(t, err)
	assert.Equal(t, "noop", cfg.Cache.Driver)
}

func TestNew_MessagingDisabledForcesNoop(t *testing.T) {
	t.Setenv("MESSAGING_ENABLED", "false")

	cfg, err := New()

	assert.NoError(t, err)
	assert.Equal(t, "noop", cfg.Messaging.Driver)
}

func TestNew_PrometheusPathNormalized(t *testing.T) {
	t.Setenv("OBS_PROMETHEUS_PATH", "metrics")

	cfg, err := New()

	assert.NoError(t, err)
	assert.Equal(t, "/metrics", cfg.Observability.PrometheusPath)
}

func TestNew_BlankWhatsAppPhoneRejected(t *testing.T) {
	t.Setenv("WHATSAPP_PHONE", "   ")

	_, err := New()

	assert.Error(t, err)
}

func TestNew_SessionTTLOverride(t *testing.T) {
	t.Setenv("AUTH_SESSION_TTL", "30m")

	cfg, err := New()

	assert.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL)
}

func TestNew_AdminEmailLowerCased(t *testing.T) {
	t.Setenv("AUTH_ADMIN_EMAIL", "  Admin@SculptStudio.com ")

	cfg, err := New()

	assert.NoError(t, err)
	assert.Equal(t, "admin@sculptstudio.com", cfg.Auth.AdminEmail)
}

func TestNew_TokenBytes(t *testing.T) {
	cfg, err := New()
	assert.NoError(t, err)
	assert.Equal(t, 32, cfg.Auth.TokenBytes)

	t.Setenv("AUTH_TOKEN_BYTES", "64")
	cfg, err = New()
	assert.NoError(t, err)
	assert.Equal(t, 64, cfg.Auth.TokenBytes)

	t.Setenv("AUTH_TOKEN_BYTES", "4")
	cfg, err = New()
	assert.NoError(t, err)
	assert.Equal(t, 32, cfg.Auth.TokenBytes)
}
