package internal

import (
	"net/http"
	"powerevents/internal/controllers"
	"powerevents/internal/providers"
)

func InitRoutes(healthController *controllers.HealthController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/health", http.HandlerFunc(healthController.Health))
	routers.Get("/status", http.HandlerFunc(healthController.Status))
	return routers
}
