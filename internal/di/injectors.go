//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"mpsd/internal"
	"mpsd/internal/collector"
	"mpsd/internal/controllers"
	"mpsd/internal/providers"
	"mpsd/internal/services"
	"mpsd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewCacheProvider,
		providers.NewMetricsProvider,
		wire.Bind(new(providers.StoreCounts), new(services.CollectorServiceInterface)),
		providers.NewSourceProvider,
		providers.NewNotificationSink,

		collector.NewZstdCompressor,
		services.NewCollectorService,
		services.NewQueryService,
		collector.NewFileRepository,
		collector.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
