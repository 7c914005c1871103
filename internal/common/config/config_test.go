package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("TOKEN_SECRET", "token-secret")
	t.Setenv("SESSION_SECRET", "session-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BotModePolling, cfg.Telegram.Mode)
	assert.Equal(t, 8*time.Minute, cfg.CheckIn.ContactTTL)
	assert.True(t, cfg.CheckIn.LockEnabled)
	assert.GreaterOrEqual(t, cfg.CheckIn.LockTTL, cfg.Telegram.HandlerTimeout)
}

func TestLoad_RejectsLockShorterThanHandler(t *testing.T) {
	setRequired(t)
	t.Setenv("CHECKIN_LOCK_TTL", "10s")
	t.Setenv("BOT_HANDLER_TIMEOUT", "15s")

	_, err := Load()
	assert.ErrorContains(t, err, "CHECKIN_LOCK_TTL")

	t.Setenv("CHECKIN_LOCK_ENABLED", "false")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoad_WebhookNeedsURL(t *testing.T) {
	setRequired(t)
	t.Setenv("BOT_MODE", BotModeWebhook)

	_, err := Load()
	assert.ErrorContains(t, err, "BOT_WEBHOOK_URL")
}

func TestMongoURI_EscapesCredentials(t *testing.T) {
	cfg := &Config{}
	cfg.Mongo.Host = "db"
	cfg.Mongo.Port = 27017
	cfg.Mongo.Database = "tg_checkin"
	cfg.Mongo.AuthSource = "admin"
	cfg.Mongo.Username = "ops:team"
	cfg.Mongo.Password = "p@ss/w:rd"

	assert.Equal(t, "mongodb://ops%3Ateam:p%40ss%2Fw%3Ard@db:27017/tg_checkin?authSource=admin", cfg.MongoURI())

	cfg.Mongo.URI = "mongodb://override"
	assert.Equal(t, "mongodb://override", cfg.MongoURI())
}
