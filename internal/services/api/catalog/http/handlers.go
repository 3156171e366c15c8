// Package http provides http transport for catalog
package http

import (
	stdhttp "net/http"

	phttp "telar/internal/platform/net/http"
	"telar/internal/services/api/catalog/domain"
	svc "telar/internal/services/api/catalog/service"

	"github.com/go-chi/chi/v5"
)

// Register mounts catalog endpoints on the given router
func Register(r phttp.Router, s svc.Service) {
	h := &handlers{svc: s}

	phttp.GetJSON(r, "/machines", h.machines)
	phttp.PutJSON[domain.MachineInput](r, "/machines", h.upsertMachine)
	phttp.DeleteJSON(r, "/machines/{id}", h.deleteMachine)

	phttp.GetJSON(r, "/torsion-configs", h.torsionConfigs)
	phttp.PutJSON[domain.TorsionConfigInput](r, "/torsion-configs", h.upsertTorsionConfig)
	phttp.DeleteJSON(r, "/torsion-configs/{machine}/{denier}", h.deleteTorsionConfig)

	phttp.GetJSON(r, "/rewinder-configs", h.rewinderConfigs)
	phttp.PutJSON[domain.RewinderConfigInput](r, "/rewinder-configs", h.upsertRewinderConfig)
	phttp.DeleteJSON(r, "/rewinder-configs/{denier}", h.deleteRewinderConfig)

	phttp.GetJSON(r, "/shifts", h.shifts)
	phttp.PutJSON[domain.ShiftInput](r, "/shifts", h.upsertShift)
	phttp.DeleteJSON(r, "/shifts/{date}", h.deleteShift)

	phttp.GetJSON(r, "/orders", h.orders)
	phttp.PutJSON[domain.OrderInput](r, "/orders", h.upsertOrder)
	phttp.DeleteJSON(r, "/orders/{ref}", h.deleteOrder)
}

type handlers struct{ svc svc.Service }

func (h *handlers) machines(r *stdhttp.Request) (any, error) {
	return h.svc.Machines(r.Context())
}

func (h *handlers) upsertMachine(r *stdhttp.Request, in domain.MachineInput) (any, error) {
	return nil, h.svc.UpsertMachine(r.Context(), in)
}

func (h *handlers) deleteMachine(r *stdhttp.Request) (any, error) {
	return nil, h.svc.DeleteMachine(r.Context(), chi.URLParam(r, "id"))
}

func (h *handlers) torsionConfigs(r *stdhttp.Request) (any, error) {
	return h.svc.TorsionConfigs(r.Context())
}

func (h *handlers) upsertTorsionConfig(r *stdhttp.Request, in domain.TorsionConfigInput) (any, error) {
	return nil, h.svc.UpsertTorsionConfig(r.Context(), in)
}

func (h *handlers) deleteTorsionConfig(r *stdhttp.Request) (any, error) {
	return nil, h.svc.DeleteTorsionConfig(r.Context(), chi.URLParam(r, "machine"), chi.URLParam(r, "denier"))
}

func (h *handlers) rewinderConfigs(r *stdhttp.Request) (any, error) {
	return h.svc.RewinderConfigs(r.Context())
}

func (h *handlers) upsertRewinderConfig(r *stdhttp.Request, in domain.RewinderConfigInput) (any, error) {
	return nil, h.svc.UpsertRewinderConfig(r.Context(), in)
}

func (h *handlers) deleteRewinderConfig(r *stdhttp.Request) (any, error) {
	return nil, h.svc.DeleteRewinderConfig(r.Context(), chi.URLParam(r, "denier"))
}

func (h *handlers) shifts(r *stdhttp.Request) (any, error) {
	return h.svc.Shifts(r.Context())
}

func (h *handlers) upsertShift(r *stdhttp.Request, in domain.ShiftInput) (any, error) {
	return nil, h.svc.UpsertShift(r.Context(), in)
}

func (h *handlers) deleteShift(r *stdhttp.Request) (any, error) {
	return nil, h.svc.DeleteShift(r.Context(), chi.URLParam(r, "date"))
}

func (h *handlers) orders(r *stdhttp.Request) (any, error) {
	return h.svc.Orders(r.Context())
}

func (h *handlers) upsertOrder(r *stdhttp.Request, in domain.OrderInput) (any, error) {
	return nil, h.svc.UpsertOrder(r.Context(), in)
}

func (h *handlers) deleteOrder(r *stdhttp.Request) (any, error) {
	return nil, h.svc.DeleteOrder(r.Context(), chi.URLParam(r, "ref"))
}
