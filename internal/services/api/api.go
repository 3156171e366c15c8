// Package api provides the HTTP API for the application
package api

import (
	"time"

	"telar/internal/platform/config"
	phttp "telar/internal/platform/net/http"
	"telar/internal/platform/store"

	catalogmod "telar/internal/services/api/catalog/module"
	metahttp "telar/internal/services/api/meta/http"
	planmod "telar/internal/services/api/plan/module"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{opt.Config.MayString("CORS_ORIGIN", "*")},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
	)

	r.Route("/api/v1", func(api phttp.Router) {
		api.Route("/meta", func(rr phttp.Router) {
			metahttp.Register(rr, opt.Store)
		})

		planmod.New(opt.Store).MountRoutes(api)
		catalogmod.New(opt.Store).MountRoutes(api)
	})
}
