// Package repo provides postgres access for the plant catalog
package repo

import (
	"context"

	"telar/internal/core/schedule"
	perr "telar/internal/platform/errors"
	"telar/internal/platform/store"
	"telar/internal/services/api/catalog/domain"
)

// Repo is the persistence surface for the plant catalog
type Repo interface {
	Machines(ctx context.Context) ([]schedule.Machine, error)
	UpsertMachine(ctx context.Context, m schedule.Machine) error
	DeleteMachine(ctx context.Context, id string) error

	TorsionConfigs(ctx context.Context) ([]schedule.TorsionConfig, error)
	UpsertTorsionConfig(ctx context.Context, tc schedule.TorsionConfig) error
	DeleteTorsionConfig(ctx context.Context, machineID, denier string) error

	RewinderConfigs(ctx context.Context) ([]schedule.RewinderConfig, error)
	UpsertRewinderConfig(ctx context.Context, rc schedule.RewinderConfig) error
	DeleteRewinderConfig(ctx context.Context, denier string) error

	Shifts(ctx context.Context) ([]schedule.Shift, error)
	UpsertShift(ctx context.Context, s schedule.Shift) error
	DeleteShift(ctx context.Context, date string) error

	Orders(ctx context.Context) ([]domain.OrderRow, error)
	UpsertOrder(ctx context.Context, o domain.OrderRow) error
	DeleteOrder(ctx context.Context, ref string) error
}

// NewPG binds the repo to a postgres querier
func NewPG(q store.RowQuerier) Repo { return &queries{q: q} }

type queries struct{ q store.RowQuerier }

func (r *queries) Machines(ctx context.Context) ([]schedule.Machine, error) {
	const sql = `
select id, stage, posts
from machines
order by id asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []schedule.Machine
	for rows.Next() {
		var m schedule.Machine
		if err := rows.Scan(&m.ID, &m.Stage, &m.Posts); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *queries) UpsertMachine(ctx context.Context, m schedule.Machine) error {
	const sql = `
insert into machines (id, stage, posts)
values ($1, $2, $3)
on conflict (id) do update set stage = excluded.stage, posts = excluded.posts
`
	_, err := r.q.Exec(ctx, sql, m.ID, m.Stage, m.Posts)
	return err
}

func (r *queries) DeleteMachine(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `delete from machines where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("machine %s not found", id)
	}
	return nil
}

func (r *queries) TorsionConfigs(ctx context.Context) ([]schedule.TorsionConfig, error) {
	const sql = `
select machine_id, denier, rpm, twists_per_meter, posts
from torsion_configs
order by machine_id asc, denier asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []schedule.TorsionConfig
	for rows.Next() {
		var tc schedule.TorsionConfig
		if err := rows.Scan(&tc.MachineID, &tc.Denier, &tc.RPM, &tc.TwistsPerMeter, &tc.Posts); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

func (r *queries) UpsertTorsionConfig(ctx context.Context, tc schedule.TorsionConfig) error {
	const sql = `
insert into torsion_configs (machine_id, denier, rpm, twists_per_meter, posts)
values ($1, $2, $3, $4, $5)
on conflict (machine_id, denier) do update
set rpm = excluded.rpm, twists_per_meter = excluded.twists_per_meter, posts = excluded.posts
`
	_, err := r.q.Exec(ctx, sql, tc.MachineID, tc.Denier, tc.RPM, tc.TwistsPerMeter, tc.Posts)
	return err
}

func (r *queries) DeleteTorsionConfig(ctx context.Context, machineID, denier string) error {
	tag, err := r.q.Exec(ctx,
		`delete from torsion_configs where machine_id = $1 and denier = $2`, machineID, denier)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("torsion config %s/%s not found", machineID, denier)
	}
	return nil
}

func (r *queries) RewinderConfigs(ctx context.Context) ([]schedule.RewinderConfig, error) {
	const sql = `
select denier, mp_seconds, tm_minutes
from rewinder_configs
order by denier asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []schedule.RewinderConfig
	for rows.Next() {
		var rc schedule.RewinderConfig
		if err := rows.Scan(&rc.Denier, &rc.MPSeconds, &rc.TMMinutes); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func (r *queries) UpsertRewinderConfig(ctx context.Context, rc schedule.RewinderConfig) error {
	const sql = `
insert into rewinder_configs (denier, mp_seconds, tm_minutes)
values ($1, $2, $3)
on conflict (denier) do update
set mp_seconds = excluded.mp_seconds, tm_minutes = excluded.tm_minutes
`
	_, err := r.q.Exec(ctx, sql, rc.Denier, rc.MPSeconds, rc.TMMinutes)
	return err
}

func (r *queries) DeleteRewinderConfig(ctx context.Context, denier string) error {
	tag, err := r.q.Exec(ctx, `delete from rewinder_configs where denier = $1`, denier)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("rewinder config %s not found", denier)
	}
	return nil
}

func (r *queries) Shifts(ctx context.Context) ([]schedule.Shift, error) {
	const sql = `
select date::text, hours
from shifts
order by date asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []schedule.Shift
	for rows.Next() {
		var s schedule.Shift
		if err := rows.Scan(&s.Date, &s.Hours); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *queries) UpsertShift(ctx context.Context, s schedule.Shift) error {
	const sql = `
insert into shifts (date, hours)
values ($1, $2)
on conflict (date) do update set hours = excluded.hours
`
	_, err := r.q.Exec(ctx, sql, string(s.Date), s.Hours)
	return err
}

func (r *queries) DeleteShift(ctx context.Context, date string) error {
	tag, err := r.q.Exec(ctx, `delete from shifts where date = $1`, date)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("shift %s not found", date)
	}
	return nil
}

func (r *queries) Orders(ctx context.Context) ([]domain.OrderRow, error) {
	const sql = `
select ref, denier, target_kg, position
from orders
order by position asc, ref asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.OrderRow
	for rows.Next() {
		var o domain.OrderRow
		if err := rows.Scan(&o.Ref, &o.Denier, &o.TargetKg, &o.Position); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *queries) UpsertOrder(ctx context.Context, o domain.OrderRow) error {
	// zero position appends at the backlog tail
	const sql = `
insert into orders (ref, denier, target_kg, position)
values ($1, $2, $3,
	case when $4 > 0 then $4 else (select coalesce(max(position), 0) + 1 from orders) end)
on conflict (ref) do update
set denier = excluded.denier, target_kg = excluded.target_kg,
	position = case when $4 > 0 then $4 else orders.position end
`
	_, err := r.q.Exec(ctx, sql, o.Ref, o.Denier, o.TargetKg, o.Position)
	return err
}

func (r *queries) DeleteOrder(ctx context.Context, ref string) error {
	tag, err := r.q.Exec(ctx, `delete from orders where ref = $1`, ref)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("order %s not found", ref)
	}
	return nil
}
