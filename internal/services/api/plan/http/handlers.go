// Package http provides http transport for plan
package http

import (
	stdhttp "net/http"

	phttp "telar/internal/platform/net/http"
	"telar/internal/services/api/plan/domain"
	svc "telar/internal/services/api/plan/service"

	"github.com/go-chi/chi/v5"
)

// Register mounts plan endpoints on the given router
func Register(r phttp.Router, s svc.Service) {
	h := &handlers{svc: s}

	// run the engine over the stored catalog
	phttp.PostJSON[domain.GenerateInput](r, "/generate", h.generate)

	// saved scenarios
	phttp.PostJSON[domain.SaveScenarioInput](r, "/scenarios", h.saveScenario)
	phttp.GetJSON(r, "/scenarios", h.scenarios)
	phttp.GetJSON(r, "/scenarios/{id}", h.scenario)

	// operator load chart, latest scenario unless one is named
	phttp.GetJSON(r, "/charts/operators", h.operatorsChart)
}

type handlers struct{ svc svc.Service }

func (h *handlers) generate(r *stdhttp.Request, in domain.GenerateInput) (any, error) {
	return h.svc.Generate(r.Context(), in)
}

func (h *handlers) saveScenario(r *stdhttp.Request, in domain.SaveScenarioInput) (any, error) {
	return h.svc.SaveScenario(r.Context(), in)
}

func (h *handlers) scenarios(r *stdhttp.Request) (any, error) {
	return h.svc.Scenarios(r.Context())
}

func (h *handlers) scenario(r *stdhttp.Request) (any, error) {
	return h.svc.Scenario(r.Context(), chi.URLParam(r, "id"))
}

func (h *handlers) operatorsChart(r *stdhttp.Request) (any, error) {
	return h.svc.OperatorsChart(r.Context(), r.URL.Query().Get("scenario"))
}
