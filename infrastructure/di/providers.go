package di

import (
	"context"
	"errors"
	"fmt"

	"rollouthq/application/commands"
	"rollouthq/application/commands/bus"
	commands_handlers "rollouthq/application/commands/handlers"
	"rollouthq/application/ports"
	"rollouthq/application/queries"
	querybus "rollouthq/application/queries/bus"
	queries_handlers "rollouthq/application/queries/handlers"
	"rollouthq/application/services"
	"rollouthq/infrastructure/config"
	"rollouthq/infrastructure/messaging/eventbridge"
	"rollouthq/infrastructure/persistence/dynamodb"
	"rollouthq/infrastructure/persistence/memory"
	s3storage "rollouthq/infrastructure/storage/s3"
	"rollouthq/interfaces/http/rest"
	"rollouthq/interfaces/http/rest/middleware"
	"rollouthq/pkg/auth"
	pkgerrors "rollouthq/pkg/errors"
	"rollouthq/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

const serviceName = "rollouthq"

// ProvideLogLevel parses LOG_LEVEL into a level that can change at runtime
func ProvideLogLevel(cfg *config.Config) zap.AtomicLevel {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return level
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level

	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", serviceName)), nil
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config, tracer *observability.Tracer) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	tracer.InstrumentAWS(&awsCfg)
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideTableConfig names the table and its owner index
func ProvideTableConfig(cfg *config.Config) dynamodb.TableConfig {
	return dynamodb.TableConfig{
		TableName: cfg.DynamoDBTable,
		GSI1Name:  cfg.IndexName,
	}
}

// Repositories groups the store-backed ports
type Repositories struct {
	Albums   ports.AlbumRepository
	Projects ports.ProjectRepository
	Files    ports.ProjectFileRepository
}

// ProvideRepositories returns the DynamoDB repositories, or the in-process
// store when USE_MEMORY_STORE is set
func ProvideRepositories(client *awsdynamodb.Client, table dynamodb.TableConfig, cfg *config.Config, logger *zap.Logger) Repositories {
	if cfg.UseMemoryStore {
		logger.Warn("Using in-memory store; data is lost on restart")
		return MemoryRepositories(memory.NewStore())
	}
	return Repositories{
		Albums:   dynamodb.NewAlbumRepository(client, table, logger),
		Projects: dynamodb.NewProjectRepository(client, table, logger),
		Files:    dynamodb.NewProjectFileRepository(client, table, logger),
	}
}

// MemoryRepositories exposes one in-process store through the ports
func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Albums:   store.Albums(),
		Projects: store.Projects(),
		Files:    store.Files(),
	}
}

// ProvidePresigner creates the media bucket presigner
func ProvidePresigner(client *awss3.Client, cfg *config.Config, logger *zap.Logger) ports.Presigner {
	return s3storage.NewPresigner(client, cfg.MediaBucket, logger)
}

// ProvideEventPublisher sends events to EventBridge, or only logs them when
// no bus is configured
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return eventbridge.NewLogPublisher(logger)
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideCollector creates the Prometheus collector
func ProvideCollector() *observability.Collector {
	return observability.NewCollector(serviceName)
}

// ProvideMetrics creates the CloudWatch metrics sink
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	namespace := fmt.Sprintf("RolloutHQ/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideMetricsRecorder always records to Prometheus and adds CloudWatch
// when ENABLE_METRICS is set
func ProvideMetricsRecorder(cfg *config.Config, collector *observability.Collector, metrics *observability.Metrics) ports.MetricsRecorder {
	recorders := observability.MultiRecorder{collector}
	if cfg.EnableMetrics {
		recorders = append(recorders, metrics)
	}
	return recorders
}

// CommandHandlerAdapter adapts specific command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, bus.Command) (interface{}, error)
}

func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	return a.handler(ctx, cmd)
}

func commandHandler[C bus.Command, R any](handle func(context.Context, C) (R, error)) *CommandHandlerAdapter {
	return &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			typed, ok := cmd.(C)
			if !ok {
				return nil, fmt.Errorf("invalid command type %T", cmd)
			}
			return handle(ctx, typed)
		},
	}
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	repos Repositories,
	publisher ports.EventPublisher,
	metrics ports.MetricsRecorder,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(logger),
		bus.TracingMiddleware(tracer),
		bus.MetricsMiddleware(metrics),
	)

	createAlbum := commands_handlers.NewCreateAlbumHandler(repos.Albums, publisher, logger)
	updateAlbum := commands_handlers.NewUpdateAlbumHandler(repos.Albums, publisher, logger)
	deleteAlbum := commands_handlers.NewDeleteAlbumHandler(repos.Albums, publisher, metrics, logger)
	createProject := commands_handlers.NewCreateProjectHandler(repos.Projects, publisher, logger)
	updateProject := commands_handlers.NewUpdateProjectHandler(repos.Projects, publisher, logger)
	deleteProject := commands_handlers.NewDeleteProjectHandler(repos.Projects, publisher, logger)
	createFile := commands_handlers.NewCreateProjectFileHandler(repos.Files, publisher, logger)

	err := errors.Join(
		commandBus.Register(commands.CreateAlbumCommand{}, commandHandler(createAlbum.Handle)),
		commandBus.Register(commands.UpdateAlbumCommand{}, commandHandler(updateAlbum.Handle)),
		commandBus.Register(commands.DeleteAlbumCommand{}, commandHandler(deleteAlbum.Handle)),
		commandBus.Register(commands.CreateProjectCommand{}, commandHandler(createProject.Handle)),
		commandBus.Register(commands.UpdateProjectCommand{}, commandHandler(updateProject.Handle)),
		commandBus.Register(commands.DeleteProjectCommand{}, commandHandler(
			func(ctx context.Context, cmd commands.DeleteProjectCommand) (interface{}, error) {
				return nil, deleteProject.Handle(ctx, cmd)
			},
		)),
		commandBus.Register(commands.CreateProjectFileCommand{}, commandHandler(createFile.Handle)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register command handlers: %w", err)
	}

	return commandBus, nil
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

func queryHandler[Q querybus.Query, R any](handle func(context.Context, Q) (R, error)) *QueryHandlerAdapter {
	return &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			typed, ok := query.(Q)
			if !ok {
				return nil, fmt.Errorf("invalid query type %T", query)
			}
			return handle(ctx, typed)
		},
	}
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	repos Repositories,
	metrics ports.MetricsRecorder,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()
	queryBus.Use(querybus.NewTracingMiddleware(tracer).Wrap)
	queryBus.Use(querybus.NewMetricsMiddleware(metrics).Wrap)

	listAlbums := queries_handlers.NewListAlbumsHandler(repos.Albums, logger)
	listProjects := queries_handlers.NewListProjectsHandler(repos.Projects, logger)
	getProject := queries_handlers.NewGetProjectHandler(repos.Projects, logger)
	listFiles := queries_handlers.NewListProjectFilesHandler(repos.Files, logger)

	err := errors.Join(
		queryBus.Register(queries.ListAlbumsQuery{}, queryHandler(listAlbums.Handle)),
		queryBus.Register(queries.ListProjectsQuery{}, queryHandler(listProjects.Handle)),
		queryBus.Register(queries.GetProjectQuery{}, queryHandler(getProject.Handle)),
		queryBus.Register(queries.ListProjectFilesQuery{}, queryHandler(listFiles.Handle)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}

	return queryBus, nil
}

// ProvidePresignService creates the presign use case
func ProvidePresignService(presigner ports.Presigner, cfg *config.Config, logger *zap.Logger) *services.PresignService {
	return services.NewPresignService(presigner, cfg.PresignExpiry(), logger)
}

// ProvideJWTValidator returns nil when no local key is configured; callers
// then rely on the API Gateway authorizer alone
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	if !cfg.HasLocalJWT() {
		return nil, nil
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: cfg.JWTSigningMethod,
		PublicKey:     cfg.JWTPublicKey,
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.TokenIssuer(),
		Audience:      cfg.JWTAudience,
	})
}

// ProvideErrorHandler creates the HTTP error writer
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideAuthenticator builds the auth middleware with its rate limiters.
// A non-positive limit disables that limiter.
func ProvideAuthenticator(
	cfg *config.Config,
	validator *auth.JWTValidator,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *middleware.Authenticator {
	var ipLimiter, userLimiter auth.RateLimiter
	if cfg.RateLimitIP > 0 {
		ipLimiter = auth.NewIPRateLimiter(cfg.RateLimitIP)
	}
	if cfg.RateLimitUser > 0 {
		userLimiter = auth.NewUserRateLimiter(cfg.RateLimitUser)
	}
	return middleware.NewAuthenticator(validator, ipLimiter, userLimiter, errorHandler, logger)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	presign *services.PresignService,
	authenticator *middleware.Authenticator,
	errorHandler *pkgerrors.ErrorHandler,
	collector *observability.Collector,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(
		commandBus,
		queryBus,
		presign,
		authenticator,
		errorHandler,
		collector,
		rest.Options{
			EnableCORS:     cfg.EnableCORS,
			AllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger,
	)
}
