// Package store opens the registration store selected by configuration.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Adaptare-Software/workshop-registration/config"
	"github.com/Adaptare-Software/workshop-registration/dynamo"
	"github.com/Adaptare-Software/workshop-registration/postgres"
	"github.com/Adaptare-Software/workshop-registration/registration"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Store is an open registration repository plus whatever must be released
// on shutdown.
type Store struct {
	registration.Repository
	close func() error
}

func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to the store named by cfg.Store.Kind. This is the single place
// the process creates its store handle.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.Store.Kind {
	case config.STORE_DYNAMO:
		db, err := openDynamo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("Using dynamo store", "table", cfg.Store.DynamoTableName)

		return &Store{Repository: db}, nil
	case config.STORE_POSTGRES:
		db, err := postgres.Connect(ctx, cfg.Store.PostgresDSN)
		if err != nil {
			return nil, err
		}
		logger.Info("Using postgres store")

		return &Store{Repository: db, close: db.Close}, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store.Kind)
	}
}

func openDynamo(ctx context.Context, cfg *config.Config) (*dynamo.DB, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Env == config.LOCAL && cfg.Store.DynamoEndpoint != "" {
		opts = append(opts,
			awsconfig.WithRegion("localhost"),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")),
		)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to get aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Store.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Store.DynamoEndpoint)
		}
	})

	db := dynamo.NewDB(client, cfg.Store.DynamoTableName)
	if cfg.Env == config.LOCAL {
		if err := db.EnsureTable(ctx); err != nil {
			return nil, err
		}
	}

	return db, nil
}
