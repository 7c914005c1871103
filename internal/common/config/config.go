package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	BotModePolling = "polling"
	BotModeWebhook = "webhook"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port    int      `env:"PORT" envDefault:"3000"`
		Origins []string `env:"ORIGINS" envSeparator:"," envDefault:"http://localhost"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"127.0.0.1"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Username string `env:"REDIS_USERNAME" envDefault:"default"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Mongo struct {
		// URI takes precedence over the host/credential fields.
		URI         string `env:"MONGO_URI"`
		Host        string `env:"MONGO_HOSTNAME" envDefault:"127.0.0.1"`
		Port        int    `env:"MONGO_PORT" envDefault:"27017"`
		Username    string `env:"MONGO_USERNAME"`
		Password    string `env:"MONGO_PASSWORD"`
		Database    string `env:"MONGO_DB" envDefault:"tg_checkin"`
		AuthSource  string `env:"MONGO_AUTH_SOURCE" envDefault:"admin"`
		MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE" envDefault:"50"`
	}

	Telegram struct {
		BotToken       string        `env:"BOT_TOKEN,required"`
		Mode           string        `env:"BOT_MODE" envDefault:"polling"`
		WebhookURL     string        `env:"BOT_WEBHOOK_URL"`
		PollTimeout    int           `env:"BOT_POLL_TIMEOUT" envDefault:"60"`
		HandlerTimeout time.Duration `env:"BOT_HANDLER_TIMEOUT" envDefault:"15s"`
		InitDataTTL    time.Duration `env:"INIT_DATA_TTL" envDefault:"24h"`
		Debug          bool          `env:"TELEGRAM_DEBUG" envDefault:"false"`
	}

	Auth struct {
		Username        string        `env:"AUTH_USERNAME"`
		Password        string        `env:"AUTH_PASSWORD"`
		ClientID        string        `env:"CLIENT_ID"`
		ClientSecret    string        `env:"CLIENT_SECRET"`
		TokenSecret     string        `env:"TOKEN_SECRET,required"`
		AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`
		RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"43800h"`
		SessionSecret   string        `env:"SESSION_SECRET,required"`
		SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
		SessionCookie   string        `env:"SESSION_COOKIE" envDefault:"connect.sid"`
		SecureCookie    bool          `env:"SESSION_SECURE_COOKIE" envDefault:"false"`
	}

	CheckIn struct {
		ContactTTL               time.Duration `env:"CHECKIN_CONTACT_TTL" envDefault:"8m"`
		PickerTTL                time.Duration `env:"CHECKIN_PICKER_TTL" envDefault:"24h"`
		CatalogTTL               time.Duration `env:"CATALOG_TTL" envDefault:"24h"`
		CatalogInvalidateOnWrite bool          `env:"CATALOG_INVALIDATE_ON_WRITE" envDefault:"false"`
		LockEnabled              bool          `env:"CHECKIN_LOCK_ENABLED" envDefault:"true"`
		LockTTL                  time.Duration `env:"CHECKIN_LOCK_TTL" envDefault:"20s"`
	}

	Health struct {
		Interval time.Duration `env:"HEALTH_INTERVAL" envDefault:"30s"`
	}
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// .env is optional, production sets variables directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Telegram.Mode != BotModePolling && cfg.Telegram.Mode != BotModeWebhook {
		return nil, fmt.Errorf("invalid BOT_MODE %q: want %s or %s", cfg.Telegram.Mode, BotModePolling, BotModeWebhook)
	}
	if cfg.Telegram.Mode == BotModeWebhook && cfg.Telegram.WebhookURL == "" {
		return nil, fmt.Errorf("BOT_WEBHOOK_URL is required in webhook mode")
	}
	// a lock that expires mid-handler lets a second check-in run alongside
	if cfg.CheckIn.LockEnabled && cfg.CheckIn.LockTTL < cfg.Telegram.HandlerTimeout {
		return nil, fmt.Errorf("CHECKIN_LOCK_TTL %s is shorter than BOT_HANDLER_TIMEOUT %s",
			cfg.CheckIn.LockTTL, cfg.Telegram.HandlerTimeout)
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// MongoURI builds a connection string from the discrete fields when MONGO_URI is empty.
func (c *Config) MongoURI() string {
	if c.Mongo.URI != "" {
		return c.Mongo.URI
	}
	if c.Mongo.Username == "" {
		return fmt.Sprintf("mongodb://%s:%d/%s", c.Mongo.Host, c.Mongo.Port, c.Mongo.Database)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%d/%s?authSource=%s",
		url.QueryEscape(c.Mongo.Username), url.QueryEscape(c.Mongo.Password), c.Mongo.Host, c.Mongo.Port, c.Mongo.Database, c.Mongo.AuthSource)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
