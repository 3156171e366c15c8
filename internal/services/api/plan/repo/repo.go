// Package repo provides postgres access for plan runs and scenarios
package repo

import (
	"context"
	"errors"

	"telar/internal/core/schedule"
	perr "telar/internal/platform/errors"
	"telar/internal/platform/store"

	"github.com/jackc/pgx/v5"
)

// Repo is the minimal persistence surface for plan runs
type Repo interface {
	LoadSnapshot(ctx context.Context) (schedule.Snapshot, error)
	SaveScenario(ctx context.Context, s ScenarioRow) error
	ListScenarios(ctx context.Context) ([]ScenarioRow, error)
	GetScenario(ctx context.Context, id string) (ScenarioRow, error)
	LatestScenario(ctx context.Context) (ScenarioRow, error)
}

// ScenarioRow is one persisted scheduling run
type ScenarioRow struct {
	ID        string
	Name      string
	CreatedAt string
	Days      int
	TotalKg   float64
	Payload   []byte
}

// NewPG binds the repo to a postgres querier
func NewPG(q store.RowQuerier) Repo { return &queries{q: q} }

type queries struct{ q store.RowQuerier }

func (r *queries) LoadSnapshot(ctx context.Context) (schedule.Snapshot, error) {
	var snap schedule.Snapshot

	if err := r.loadOrders(ctx, &snap); err != nil {
		return snap, err
	}
	if err := r.loadMachines(ctx, &snap); err != nil {
		return snap, err
	}
	if err := r.loadTorsionConfigs(ctx, &snap); err != nil {
		return snap, err
	}
	if err := r.loadRewinderConfigs(ctx, &snap); err != nil {
		return snap, err
	}
	return snap, r.loadShifts(ctx, &snap)
}

func (r *queries) loadOrders(ctx context.Context, snap *schedule.Snapshot) error {
	const sql = `
select ref, denier, target_kg
from orders
order by position asc, ref asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var o schedule.Order
		if err := rows.Scan(&o.Ref, &o.Denier, &o.TargetKg); err != nil {
			return err
		}
		snap.Orders = append(snap.Orders, o)
	}
	return rows.Err()
}

func (r *queries) loadMachines(ctx context.Context, snap *schedule.Snapshot) error {
	const sql = `
select id, stage, posts
from machines
order by id asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var m schedule.Machine
		if err := rows.Scan(&m.ID, &m.Stage, &m.Posts); err != nil {
			return err
		}
		snap.Machines = append(snap.Machines, m)
	}
	return rows.Err()
}

func (r *queries) loadTorsionConfigs(ctx context.Context, snap *schedule.Snapshot) error {
	const sql = `
select machine_id, denier, rpm, twists_per_meter, posts
from torsion_configs
order by machine_id asc, denier asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var tc schedule.TorsionConfig
		if err := rows.Scan(&tc.MachineID, &tc.Denier, &tc.RPM, &tc.TwistsPerMeter, &tc.Posts); err != nil {
			return err
		}
		snap.TorsionConfigs = append(snap.TorsionConfigs, tc)
	}
	return rows.Err()
}

func (r *queries) loadRewinderConfigs(ctx context.Context, snap *schedule.Snapshot) error {
	const sql = `
select denier, mp_seconds, tm_minutes
from rewinder_configs
order by denier asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var rc schedule.RewinderConfig
		if err := rows.Scan(&rc.Denier, &rc.MPSeconds, &rc.TMMinutes); err != nil {
			return err
		}
		snap.RewinderConfigs = append(snap.RewinderConfigs, rc)
	}
	return rows.Err()
}

func (r *queries) loadShifts(ctx context.Context, snap *schedule.Snapshot) error {
	const sql = `
select date::text, hours
from shifts
order by date asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var s schedule.Shift
		if err := rows.Scan(&s.Date, &s.Hours); err != nil {
			return err
		}
		snap.Shifts = append(snap.Shifts, s)
	}
	return rows.Err()
}

func (r *queries) SaveScenario(ctx context.Context, s ScenarioRow) error {
	const sql = `
insert into scenarios (id, name, days, total_kg, payload)
values ($1, $2, $3, $4, $5)
`
	_, err := r.q.Exec(ctx, sql, s.ID, s.Name, s.Days, s.TotalKg, s.Payload)
	return err
}

func (r *queries) ListScenarios(ctx context.Context) ([]ScenarioRow, error) {
	const sql = `
select id, name, created_at::text, days, total_kg
from scenarios
order by created_at desc
limit 200
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ScenarioRow
	for rows.Next() {
		var s ScenarioRow
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.Days, &s.TotalKg); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *queries) GetScenario(ctx context.Context, id string) (ScenarioRow, error) {
	const sql = `
select id, name, created_at::text, days, total_kg, payload
from scenarios
where id = $1
`
	var s ScenarioRow
	err := r.q.QueryRow(ctx, sql, id).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.Days, &s.TotalKg, &s.Payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return s, perr.NotFoundf("scenario %s not found", id)
	}
	return s, err
}

func (r *queries) LatestScenario(ctx context.Context) (ScenarioRow, error) {
	const sql = `
select id, name, created_at::text, days, total_kg, payload
from scenarios
order by created_at desc
limit 1
`
	var s ScenarioRow
	err := r.q.QueryRow(ctx, sql).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.Days, &s.TotalKg, &s.Payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return s, perr.NotFoundf("no scenarios saved yet")
	}
	return s, err
}
