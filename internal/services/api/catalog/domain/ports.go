package domain

import (
	"context"

	"telar/internal/core/schedule"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Machines(ctx context.Context) ([]schedule.Machine, error)
	UpsertMachine(ctx context.Context, in MachineInput) error
	DeleteMachine(ctx context.Context, id string) error

	TorsionConfigs(ctx context.Context) ([]schedule.TorsionConfig, error)
	UpsertTorsionConfig(ctx context.Context, in TorsionConfigInput) error
	DeleteTorsionConfig(ctx context.Context, machineID, denier string) error

	RewinderConfigs(ctx context.Context) ([]schedule.RewinderConfig, error)
	UpsertRewinderConfig(ctx context.Context, in RewinderConfigInput) error
	DeleteRewinderConfig(ctx context.Context, denier string) error

	Shifts(ctx context.Context) ([]schedule.Shift, error)
	UpsertShift(ctx context.Context, in ShiftInput) error
	DeleteShift(ctx context.Context, date string) error

	Orders(ctx context.Context) ([]OrderRow, error)
	UpsertOrder(ctx context.Context, in OrderInput) error
	DeleteOrder(ctx context.Context, ref string) error
}
