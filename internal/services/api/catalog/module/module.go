// Package module wires catalog into the API
package module

import (
	phttp "telar/internal/platform/net/http"
	"telar/internal/platform/store"
	cathttp "telar/internal/services/api/catalog/http"
	catrepo "telar/internal/services/api/catalog/repo"
	catsvc "telar/internal/services/api/catalog/service"
)

// Module implements the catalog module
type Module struct {
	svc catsvc.Service
}

// New constructs the catalog module from the shared store
func New(st *store.Store) *Module {
	return &Module{svc: catsvc.New(catrepo.NewPG(st.PG))}
}

// Name returns the module name
func (m *Module) Name() string { return "catalog" }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return "/catalog" }

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r phttp.Router) {
	r.Route(m.Prefix(), func(rr phttp.Router) {
		cathttp.Register(rr, m.svc)
	})
}
