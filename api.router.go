package main

import (
	_ "github.com/jeamon/demo-catalog/docs"
	"github.com/julienschmidt/httprouter"
	httpswagger "github.com/swaggo/http-swagger/v2"
)

// SetupRoutes injects catalog and ops related endpoints if required.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.NotFound = api.NotFound()
	router.GET("/", m.public(api.Index))
	router.GET("/status", m.public(api.Status))
	router.GET("/health", m.public(api.Health))
	api.SetupCatalogRoutes(router, m)
	if api.config.OpsEndpointsEnable {
		api.SetupOpsRoutes(router, m)
	}
	router.GET("/docs/*any", m.public(api.WrapHTTPHandler(httpswagger.WrapHandler)))
	return router
}

// SetupCatalogRoutes injects the books, authors and publishers endpoints.
func (api *APIHandler) SetupCatalogRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	registerResource(api, router, m, api.bookResource())
	registerResource(api, router, m, api.authorResource())
	registerResource(api, router, m, api.publisherResource())
	return router
}

func registerResource[T any](api *APIHandler, router *httprouter.Router, m *MiddlewareMap, res resource[T]) {
	collection := "/" + res.plural
	item := collection + "/:id"
	router.GET(collection, m.public(listHandler(api, res)))
	router.POST(collection, m.public(createHandler(api, res)))
	router.GET(item, m.public(getHandler(api, res)))
	router.PUT(item, m.public(updateHandler(api, res)))
	router.DELETE(item, m.public(deleteHandler(api, res)))
}

// SetupOpsRoutes injects internal operations related endpoints.
func (api *APIHandler) SetupOpsRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.GET("/ops/configs", m.ops(api.GetConfigs))
	router.GET("/ops/stats", m.ops(api.GetStatistics))
	router.GET("/ops/debug/vars", m.ops(GetMemStats))
	return router
}
