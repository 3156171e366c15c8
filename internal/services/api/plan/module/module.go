// Package module wires plan into the API
package module

import (
	phttp "telar/internal/platform/net/http"
	"telar/internal/platform/store"
	planhttp "telar/internal/services/api/plan/http"
	planrepo "telar/internal/services/api/plan/repo"
	plansvc "telar/internal/services/api/plan/service"
)

// Module implements the plan module
type Module struct {
	svc plansvc.Service
}

// New constructs the plan module from the shared store
func New(st *store.Store) *Module {
	var sink planrepo.Sink
	if st.CH != nil {
		sink = planrepo.NewCH(st.CH)
	}
	return &Module{
		svc: plansvc.New(planrepo.NewPG(st.PG), sink, st.Log),
	}
}

// Name returns the module name
func (m *Module) Name() string { return "plan" }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return "/plan" }

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r phttp.Router) {
	r.Route(m.Prefix(), func(rr phttp.Router) {
		planhttp.Register(rr, m.svc)
	})
}

// Service exposes the plan service port for other modules
func (m *Module) Service() plansvc.Service { return m.svc }
