// Package engine runs a full scheduling pass: demand planning on the
// rewinder hall, supply reconciliation on the torsion floor and final
// assembly with mass-balance checks. Runs are pure functions of the
// snapshot, so the same input always yields the same schedule.
package engine

import (
	"telar/internal/core/calendar"
	"telar/internal/core/capacity"
	"telar/internal/core/planner"
	"telar/internal/core/reconcile"
	"telar/internal/core/schedule"
	perr "telar/internal/platform/errors"
)

// Run produces the balanced two-stage schedule for one snapshot
func Run(snap schedule.Snapshot) (*schedule.Schedule, error) {
	if err := validate(snap); err != nil {
		return nil, err
	}
	pol := snap.Policy.WithDefaults()

	cal, err := calendar.New(snap.Shifts)
	if err != nil {
		return nil, err
	}
	res := capacity.NewResolver(snap, pol)

	demand, err := planner.Plan(snap, pol, res, cal)
	if err != nil {
		return nil, err
	}
	supply, universal, err := reconcile.Reconcile(snap, pol, res, cal, demand)
	if err != nil {
		return nil, err
	}

	return assemble(snap, pol, res, demand, supply, universal)
}

func validate(snap schedule.Snapshot) error {
	seen := map[string]bool{}
	for _, o := range snap.Orders {
		if o.Ref == "" {
			return perr.InvalidArgf("order with empty reference")
		}
		if seen[o.Ref] {
			return perr.InvalidArgf("duplicate order reference %s", o.Ref)
		}
		seen[o.Ref] = true
		if o.TargetKg <= 0 {
			return perr.InvalidArgf("order %s has non-positive target %v kg", o.Ref, o.TargetKg)
		}
	}

	ids := map[string]bool{}
	for _, m := range snap.Machines {
		if m.ID == "" {
			return perr.InvalidArgf("machine with empty id")
		}
		if ids[m.ID] {
			return perr.InvalidArgf("duplicate machine id %s", m.ID)
		}
		ids[m.ID] = true
		if m.Stage != schedule.StageTorsion && m.Stage != schedule.StageRewinder {
			return perr.InvalidArgf("machine %s has unknown stage %q", m.ID, m.Stage)
		}
		if m.Posts <= 0 {
			return perr.InvalidArgf("machine %s has non-positive posts", m.ID)
		}
	}
	return nil
}
