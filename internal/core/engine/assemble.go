package engine

import (
	"math"
	"sort"

	"telar/internal/core/capacity"
	"telar/internal/core/planner"
	"telar/internal/core/schedule"
	perr "telar/internal/platform/errors"
)

type slotKey struct {
	date    schedule.Date
	machine string
}

// assemble merges both stages into the final schedule and verifies the
// structural guarantees: one reference per machine-day, post counts
// within machine capacity, split-stream crews inside the operator band
// and supply mass equal to demand mass per reference
func assemble(
	snap schedule.Snapshot,
	pol schedule.Policy,
	res *capacity.Resolver,
	demand, supply []schedule.DaySlot,
	universal []string,
) (*schedule.Schedule, error) {
	machines := map[string]schedule.Machine{}
	for _, m := range snap.Machines {
		machines[m.ID] = m
	}

	all := make([]schedule.DaySlot, 0, len(demand)+len(supply))
	all = append(all, demand...)
	all = append(all, supply...)

	occupied := map[slotKey]bool{}
	for _, s := range all {
		m, ok := machines[s.MachineID]
		if !ok {
			return nil, perr.Invariantf("slot on unknown machine %s", s.MachineID)
		}
		if s.Posts > m.Posts {
			return nil, perr.Invariantf(
				"machine %s booked for %d posts on %s, capacity %d", s.MachineID, s.Posts, s.Date, m.Posts)
		}
		if s.Split && !s.Idle && s.Operators > pol.OperatorBandMax {
			return nil, perr.Invariantf(
				"split stream on %s runs %d operators on %s, band max %d",
				s.MachineID, s.Operators, s.Date, pol.OperatorBandMax)
		}
		k := slotKey{s.Date, s.MachineID}
		if occupied[k] {
			return nil, perr.Invariantf("machine %s double-booked on %s", s.MachineID, s.Date)
		}
		occupied[k] = true
	}

	if err := checkMassBalance(snap, demand, supply); err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Date != all[j].Date {
			return all[i].Date.Before(all[j].Date)
		}
		if all[i].Stage != all[j].Stage {
			return all[i].Stage == schedule.StageTorsion
		}
		return all[i].MachineID < all[j].MachineID
	})

	return &schedule.Schedule{
		Slots:   all,
		Demand:  demand,
		Supply:  supply,
		Summary: summarize(snap, pol, res, demand, supply, universal),
	}, nil
}

// checkMassBalance verifies that every reference ends the schedule with
// torsion output equal to rewinder consumption and that consumption
// matches the order target
func checkMassBalance(snap schedule.Snapshot, demand, supply []schedule.DaySlot) error {
	demandBy := kgByRef(demand)
	supplyBy := kgByRef(supply)

	for _, o := range snap.Orders {
		d := demandBy[o.Ref]
		if math.Abs(d-o.TargetKg) > planner.Epsilon {
			return perr.Invariantf("reference %s planned %v kg against a %v kg target", o.Ref, d, o.TargetKg)
		}
		s := supplyBy[o.Ref]
		if math.Abs(s-d) > planner.Epsilon {
			return perr.Invariantf("reference %s out of balance: %v kg supplied, %v kg consumed", o.Ref, s, d)
		}
	}
	return nil
}

func summarize(
	snap schedule.Snapshot,
	pol schedule.Policy,
	res *capacity.Resolver,
	demand, supply []schedule.DaySlot,
	universal []string,
) schedule.Summary {
	dates := map[schedule.Date]bool{}
	kgDay := map[schedule.Date]float64{}
	opsDay := map[schedule.Date]int{}
	finish := map[string]schedule.Date{}

	for _, s := range demand {
		dates[s.Date] = true
		kgDay[s.Date] += s.Kg
		opsDay[s.Date] += s.Operators
		if s.Kg > planner.Epsilon {
			if f, ok := finish[s.Ref]; !ok || f.Before(s.Date) {
				finish[s.Ref] = s.Date
			}
		}
	}

	labels := make([]schedule.Date, 0, len(dates))
	for d := range dates {
		labels = append(labels, d)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Before(labels[j]) })

	sum := schedule.Summary{
		Days:               len(labels),
		UniversalProducers: universal,
	}
	if len(labels) > 0 {
		sum.StartDate = labels[0]
		sum.EndDate = labels[len(labels)-1]
	}

	sum.Series.Labels = labels
	for _, d := range labels {
		sum.Series.KgPerDay = append(sum.Series.KgPerDay, kgDay[d])
		sum.Series.OperatorsDay = append(sum.Series.OperatorsDay, opsDay[d])
		if opsDay[d] > sum.PeakOperators {
			sum.PeakOperators = opsDay[d]
		}
	}

	demandBy := kgByRef(demand)
	supplyBy := kgByRef(supply)
	for _, o := range snap.Orders {
		heavy := false
		if dr, err := res.Demand(o.Denier); err == nil {
			heavy = pol.Heavy(dr.PostsRequired)
		}
		sum.ByRef = append(sum.ByRef, schedule.RefTotal{
			Ref:        o.Ref,
			Denier:     o.Denier,
			DemandKg:   demandBy[o.Ref],
			SupplyKg:   supplyBy[o.Ref],
			RawInputKg: capacity.RawInputKg(demandBy[o.Ref]),
			FinishDate: finish[o.Ref],
			Heavy:      heavy,
		})
		sum.TotalKg += demandBy[o.Ref]
	}

	return sum
}

func kgByRef(slots []schedule.DaySlot) map[string]float64 {
	out := map[string]float64{}
	for _, s := range slots {
		if s.Idle {
			continue
		}
		out[s.Ref] += s.Kg
	}
	return out
}
