package api

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/referralhub/casemgmt/scheduled-tasks/cmd/api/handlers"
	"github.com/referralhub/casemgmt/scheduled-tasks/framework/connection"
	"github.com/referralhub/casemgmt/scheduled-tasks/framework/mid"
	"github.com/referralhub/casemgmt/scheduled-tasks/framework/web"
	"github.com/referralhub/casemgmt/scheduled-tasks/logger"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/service"
)

// API constructs an api with the needed functionality.
type API struct {
	shutdown chan os.Signal
	conn     *connection.Connection
	registry prometheus.Registerer
}

func NewAPI(shutdown chan os.Signal, conn *connection.Connection) *API {
	return &API{
		shutdown: shutdown,
		conn:     conn,
		registry: prometheus.DefaultRegisterer,
	}
}

// Build builds the api endpoints with the needed middlewares, and returns http.Handler interface.
func (a *API) Build() http.Handler {
	loggerProvider := logger.FromContext

	// Construct the web.App which holds all routes as well as common Middleware.
	app := web.NewApp(a.shutdown, a.conn, mid.Logger(), mid.Errors(), mid.Panics(), mid.Sentry())

	members := handlers.NewMembers(loggerProvider, a.conn, service.NewMetrics(a.registry))

	app.Get("/health", handlers.Health)
	app.HandleHTTP(http.MethodGet, "/metrics", promhttp.Handler())

	// SCHEDULED OR CLOUD TASKS
	tasksGroup := web.NewGroup(app, "/tasks", mid.RequireCaller())
	{
		membersGroup := tasksGroup.NewSubgroup("/members")
		{
			membersGroup.Get("/sync", members.Sync)
			membersGroup.Post("/sync", members.Sync)
			membersGroup.Get("/sync/status", members.SyncStatus)
		}
	}

	app.Get("/members/assigned", members.Assigned, mid.RequireCaller(), mid.ValidateQueryParamNotEmpty("staff"))

	return app
}
