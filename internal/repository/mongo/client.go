// Package mongo implements the document store and report queries on top of
// the official MongoDB driver.
package mongo

import (
	"context"
	"fmt"
	"time"

	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"ecomload/internal/config"
	"ecomload/internal/domain"
)

const defaultConnectTimeout = 10 * time.Second

// ClientOptions builds driver options from cfg. A URI takes precedence over
// the host list; credentials apply to either.
func ClientOptions(cfg *config.MongoConfig) *options.ClientOptions {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	opts := options.Client()
	if cfg.URI != "" {
		opts.ApplyURI(cfg.URI)
	} else {
		opts.SetHosts(cfg.Hosts)
	}
	if cfg.Username != "" {
		opts.SetAuth(options.Credential{
			Username:   cfg.Username,
			Password:   cfg.Password,
			AuthSource: cfg.AuthSource,
		})
	}
	return opts.SetConnectTimeout(timeout).SetServerSelectionTimeout(timeout)
}

// Connect opens a client and pings the primary within the configured
// timeout. Failures wrap domain.ErrStoreUnreachable.
func Connect(ctx context.Context, cfg *config.MongoConfig) (*driver.Client, error) {
	opts := ClientOptions(cfg)

	client, err := driver.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnreachable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, *opts.ServerSelectionTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnreachable, err)
	}
	return client, nil
}
