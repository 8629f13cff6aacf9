// Package mongodb owns the MongoDB client singleton and the AdProcess store
// backed by the ad_processes collection.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"adwizard/internal/logger"
)

type Options struct {
	URI      string
	Database string
}

type Service struct {
	client *mongo.Client
	db     *mongo.Database
	log    *logger.Logger
}

// New connects and pings the deployment. The client is a process-wide
// singleton, constructed once at startup.
func New(ctx context.Context, opts Options) (*Service, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Service{
		client: client,
		db:     client.Database(opts.Database),
		log:    logger.New("Mongo"),
	}, nil
}

func (s *Service) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Service) Database() *mongo.Database { return s.db }

func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		s.log.LogErrorf("Mongo health check failed: %v", err)
		return fmt.Errorf("mongo ping failed: %v", err)
	}
	return nil
}
