package router

import (
	"github.com/aihub/rag-go/app/controllers"
	"github.com/aihub/rag-go/app/middleware"
	"github.com/beego/beego/v2/server/web"
)

// Init registers all routes. Must be called after the DI container is ready.
func Init() {
	web.InsertFilter("/*", web.BeforeRouter, middleware.CORSMiddleware)

	web.Router("/", &controllers.RootController{}, "get:Index")
	web.Router("/health", &controllers.HealthController{}, "get:Health")
	web.Router("/metrics", &controllers.MetricsController{}, "get:Metrics")

	web.Router("/api/documents/upload", &controllers.DocumentController{}, "post:Upload")
	web.Router("/api/query", &controllers.QueryController{}, "post:Query")
}
