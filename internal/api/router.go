package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "owid-charts/docs"
	"owid-charts/internal/api/handler"
	"owid-charts/pkg/router"
)

func RegisterRoutes(r *router.Router, charts *handler.ChartHandler) {
	r.GET("/", charts.GetPage)
	r.GET("/api/v1/charts", charts.ListCharts)
	r.POST("/api/v1/data/refresh", charts.RefreshData)
	r.GET("/api/v1/data/acquisitions", handler.ListAcquisitions)
	r.GET("/api/v1/runs", handler.ListRuns)
	r.GET("/api/v1/runs/*", handler.GetRun)
	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
