//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"powerevents/internal"
	"powerevents/internal/controllers"
	"powerevents/internal/eventlog"
	"powerevents/internal/persistence"
	"powerevents/internal/providers"
	"powerevents/internal/recorder"
	"powerevents/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewClockProvider,
		providers.NewFsProvider,

		persistence.NewRecordMedium,
		persistence.NewPersistentState,
		eventlog.NewEventLogRotator,
		recorder.NewRecorder,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
