package di

import (
	"rollouthq/application/commands/bus"
	querybus "rollouthq/application/queries/bus"
	"rollouthq/infrastructure/config"
	"rollouthq/interfaces/http/rest"
	"rollouthq/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	LogLevel     zap.AtomicLevel
	Repositories Repositories
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	Collector    *observability.Collector
	Router       *rest.Router
}
