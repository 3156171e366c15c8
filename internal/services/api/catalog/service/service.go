// Package service contains catalog workflows
package service

import (
	"context"

	"telar/internal/core/schedule"
	"telar/internal/services/api/catalog/domain"
	"telar/internal/services/api/catalog/repo"
)

// Service defines the catalog service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the catalog service
type Svc struct {
	repo repo.Repo
}

// New constructs the catalog service
func New(r repo.Repo) *Svc { return &Svc{repo: r} }

// Machines lists the machine park
func (s *Svc) Machines(ctx context.Context) ([]schedule.Machine, error) {
	return s.repo.Machines(ctx)
}

// UpsertMachine creates or replaces one machine
func (s *Svc) UpsertMachine(ctx context.Context, in domain.MachineInput) error {
	return s.repo.UpsertMachine(ctx, schedule.Machine{
		ID:    in.ID,
		Stage: schedule.Stage(in.Stage),
		Posts: in.Posts,
	})
}

// DeleteMachine removes one machine
func (s *Svc) DeleteMachine(ctx context.Context, id string) error {
	return s.repo.DeleteMachine(ctx, id)
}

// TorsionConfigs lists the torsion capability records
func (s *Svc) TorsionConfigs(ctx context.Context) ([]schedule.TorsionConfig, error) {
	return s.repo.TorsionConfigs(ctx)
}

// UpsertTorsionConfig creates or replaces one capability record
func (s *Svc) UpsertTorsionConfig(ctx context.Context, in domain.TorsionConfigInput) error {
	return s.repo.UpsertTorsionConfig(ctx, schedule.TorsionConfig{
		MachineID:      in.MachineID,
		Denier:         in.Denier,
		RPM:            in.RPM,
		TwistsPerMeter: in.TwistsPerMeter,
		Posts:          in.Posts,
	})
}

// DeleteTorsionConfig removes one capability record
func (s *Svc) DeleteTorsionConfig(ctx context.Context, machineID, denier string) error {
	return s.repo.DeleteTorsionConfig(ctx, machineID, denier)
}

// RewinderConfigs lists the per-denier rewinder defaults
func (s *Svc) RewinderConfigs(ctx context.Context) ([]schedule.RewinderConfig, error) {
	return s.repo.RewinderConfigs(ctx)
}

// UpsertRewinderConfig creates or replaces one rewinder default
func (s *Svc) UpsertRewinderConfig(ctx context.Context, in domain.RewinderConfigInput) error {
	return s.repo.UpsertRewinderConfig(ctx, schedule.RewinderConfig{
		Denier:    in.Denier,
		MPSeconds: in.MPSeconds,
		TMMinutes: in.TMMinutes,
	})
}

// DeleteRewinderConfig removes one rewinder default
func (s *Svc) DeleteRewinderConfig(ctx context.Context, denier string) error {
	return s.repo.DeleteRewinderConfig(ctx, denier)
}

// Shifts lists the shift calendar
func (s *Svc) Shifts(ctx context.Context) ([]schedule.Shift, error) {
	return s.repo.Shifts(ctx)
}

// UpsertShift creates or replaces one calendar day
func (s *Svc) UpsertShift(ctx context.Context, in domain.ShiftInput) error {
	return s.repo.UpsertShift(ctx, schedule.Shift{
		Date:  schedule.Date(in.Date),
		Hours: in.Hours,
	})
}

// DeleteShift removes one calendar day
func (s *Svc) DeleteShift(ctx context.Context, date string) error {
	if _, err := schedule.ParseDate(date); err != nil {
		return err
	}
	return s.repo.DeleteShift(ctx, date)
}

// Orders lists the backlog in priority order
func (s *Svc) Orders(ctx context.Context) ([]domain.OrderRow, error) {
	return s.repo.Orders(ctx)
}

// UpsertOrder creates or replaces one backlog entry
func (s *Svc) UpsertOrder(ctx context.Context, in domain.OrderInput) error {
	return s.repo.UpsertOrder(ctx, domain.OrderRow{
		Ref:      in.Ref,
		Denier:   in.Denier,
		TargetKg: in.TargetKg,
		Position: in.Position,
	})
}

// DeleteOrder removes one backlog entry
func (s *Svc) DeleteOrder(ctx context.Context, ref string) error {
	return s.repo.DeleteOrder(ctx, ref)
}
