//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"rollouthq/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogLevel,
	ProvideLogger,
	ProvideTracer,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideS3Client,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideTableConfig,
	ProvideRepositories,
	ProvidePresigner,
	ProvideEventPublisher,
	ProvideCollector,
	ProvideMetrics,
	ProvideMetricsRecorder,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvidePresignService,
	ProvideJWTValidator,
	ProvideErrorHandler,
	ProvideAuthenticator,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
