// Package mongodb contains the concrete implementation of the persistence
// layer using the official MongoDB driver. Every operation is
// single-document; edge consistency across documents is the relationship
// graph's responsibility, not the store's.
package mongodb

import (
	"context"
	"log/slog"
	"time"

	"souq/config"
	"souq/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const connectTimeout = 10 * time.Second

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the MongoDB database handle and manages the client lifecycle.
func New(params Params) (*mongo.Database, error) {
	cfg := params.Config.Mongo
	if cfg == nil {
		return nil, errors.New("mongo configuration is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	db := client.Database(cfg.Database)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			pingCtx, pingCancel := context.WithTimeout(startCtx, connectTimeout)
			defer pingCancel()

			if err := client.Ping(pingCtx, nil); err != nil {
				return errors.Wrap(err, "failed to ping MongoDB")
			}

			if err := ensureIndexes(pingCtx, db); err != nil {
				return err
			}

			params.Logger.Info("MongoDB connected",
				slog.String("database", cfg.Database),
			)

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			return client.Disconnect(stopCtx)
		},
	})

	return db, nil
}

// ensureIndexes creates the unique indexes the domain relies on: one login
// email per user and one category per name. Duplicate-key errors from these
// indexes are mapped to the repository's duplicate errors.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return errors.Wrap(err, "create user email index")
	}

	_, err = db.Collection("categories").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return errors.Wrap(err, "create category name index")
	}

	_, err = db.Collection("reviews").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "product", Value: 1}},
	})

	return errors.Wrap(err, "create review product index")
}
