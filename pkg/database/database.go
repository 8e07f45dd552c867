// Package database opens MongoDB connections from a finalized Config.
package database

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrConnection indicates the database could not be reached or authenticated.
var ErrConnection = errors.New("database connection failed")

// Connection is an open client bound to the configured database.
type Connection struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Options builds the driver client options for cfg.
func Options(cfg *Config) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(cfg.AppName).
		SetConnectTimeout(cfg.ConnectTimeoutDuration()).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeoutDuration()).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTimeDuration())

	if cfg.UseTLS() {
		opts.SetTLSConfig(&tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: cfg.TLSAllowInvalidCertificates,
		}).SetRetryWrites(true)
	}
	return opts
}

// Connect opens a client and pings the primary. Any failure is wrapped with
// ErrConnection and the client is disconnected before returning.
func Connect(ctx context.Context, cfg *Config, logger *slog.Logger) (*Connection, error) {
	logger.Info("connecting to database", "uri", cfg.Redacted(), "database", cfg.Name, "tls", cfg.UseTLS())

	client, err := mongo.Connect(ctx, Options(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeoutDuration())
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: ping: %v", ErrConnection, err)
	}

	logger.Info("database connection established", "database", cfg.Name)
	return &Connection{
		Client:   client,
		Database: client.Database(cfg.Name),
	}, nil
}

// Close disconnects the client.
func (c *Connection) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}
