package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"tg-checkin-backend/internal/common/config"
	"tg-checkin-backend/internal/common/logger"
)

const (
	CollectionAccounts  = "tg_accounts"
	CollectionHistoric  = "tg_account_stables"
	CollectionPassCodes = "tg_account_pass_codes"

	connectRetries = 3
)

type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

func clientOptions(cfg *config.Config) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(cfg.MongoURI()).
		SetMaxPoolSize(cfg.Mongo.MaxPoolSize).
		SetServerSelectionTimeout(10 * time.Second)

	// explicit credentials override the URI when MONGO_URI is set alongside them
	if cfg.Mongo.URI != "" && cfg.Mongo.Username != "" {
		opts.SetAuth(options.Credential{
			Username:   cfg.Mongo.Username,
			Password:   cfg.Mongo.Password,
			AuthSource: cfg.Mongo.AuthSource,
		})
	}
	return opts
}

// Connect dials Mongo with a short retry loop and pings the primary.
func Connect(ctx context.Context, cfg *config.Config) (*Client, error) {
	opts := clientOptions(cfg)

	var (
		cli *mongo.Client
		err error
	)
	for attempt := 1; attempt <= connectRetries; attempt++ {
		cli, err = mongo.Connect(ctx, opts)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = cli.Ping(pingCtx, readpref.Primary())
			cancel()
			if err == nil {
				break
			}
			_ = cli.Disconnect(ctx)
		}

		logger.Warn().Err(err).Int("attempt", attempt).Msg("mongo connect failed")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	return &Client{
		client: cli,
		db:     cli.Database(cfg.Mongo.Database),
	}, nil
}

func (c *Client) Database() *mongo.Database {
	return c.db
}

func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
