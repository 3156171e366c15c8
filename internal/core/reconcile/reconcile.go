// Package reconcile builds the upstream supply schedule that keeps the
// torsion floor mass-balanced against the downstream demand plan. Each
// demand day is assigned to one torsion machine; when a day's demand
// exceeds what the machine can twist in that shift, the excess is
// pre-pumped backward into the machine's earlier free days.
package reconcile

import (
	"sort"

	"telar/internal/core/calendar"
	"telar/internal/core/capacity"
	"telar/internal/core/planner"
	"telar/internal/core/schedule"
	perr "telar/internal/platform/errors"
)

type entry struct {
	ref    string
	denier string
	kg     float64
	cap    float64
	posts  int
	hours  int
	mirror bool
}

type ledger struct {
	machines []schedule.Machine
	days     map[string]map[schedule.Date]*entry
}

func newLedger(snap schedule.Snapshot) *ledger {
	l := &ledger{days: make(map[string]map[schedule.Date]*entry)}
	for _, m := range snap.Machines {
		if m.Stage == schedule.StageTorsion {
			l.machines = append(l.machines, m)
			l.days[m.ID] = make(map[schedule.Date]*entry)
		}
	}
	sort.Slice(l.machines, func(i, j int) bool { return l.machines[i].ID < l.machines[j].ID })
	return l
}

func (l *ledger) at(machineID string, d schedule.Date) *entry {
	return l.days[machineID][d]
}

// open reports whether machineID can take ref on d: the day is either
// free or already running the same reference
func (l *ledger) open(machineID string, d schedule.Date, ref string) bool {
	e := l.at(machineID, d)
	return e == nil || e.ref == ref
}

// requirement is one day's aggregated demand for a reference
type requirement struct {
	ref    string
	denier string
	kg     float64
}

// Reconcile returns the torsion supply slots matching the demand
// schedule, plus the ids of machines that ran without an explicit
// capability record (universal producers)
func Reconcile(
	snap schedule.Snapshot,
	pol schedule.Policy,
	res *capacity.Resolver,
	cal *calendar.Calendar,
	demand []schedule.DaySlot,
) ([]schedule.DaySlot, []string, error) {
	led := newLedger(snap)
	if len(led.machines) == 0 {
		return nil, nil, perr.ConfigMissingf("snapshot has no torsion machines")
	}

	dates := demandDates(demand)
	universal := map[string]bool{}

	for di, date := range dates {
		for _, req := range dayRequirements(demand, date) {
			m, rate, err := pick(led, res, dates, di, req)
			if err != nil {
				return nil, nil, err
			}
			if rate.Mirror {
				universal[m] = true
			}
			if err := assign(led, cal, dates, di, m, rate, req); err != nil {
				return nil, nil, err
			}
		}
	}

	slots := led.slots(dates)
	return slots, sortedKeys(universal), nil
}

// pick chooses the machine for a requirement: the machine that ran the
// same reference the previous day, else the best explicitly-capable
// machine that is open, else any open machine in mirror mode
func pick(
	led *ledger,
	res *capacity.Resolver,
	dates []schedule.Date,
	di int,
	req requirement,
) (string, capacity.Rate, error) {
	if di > 0 {
		prev := dates[di-1]
		for _, m := range led.machines {
			e := led.at(m.ID, prev)
			if e != nil && e.ref == req.ref && led.open(m.ID, dates[di], req.ref) {
				rate, err := res.Torsion(m.ID, req.denier)
				if err != nil {
					return "", capacity.Rate{}, err
				}
				return m.ID, rate, nil
			}
		}
	}

	for _, id := range res.Candidates(req.denier) {
		if _, isTorsion := led.days[id]; !isTorsion {
			continue
		}
		if !led.open(id, dates[di], req.ref) {
			continue
		}
		rate, err := res.Torsion(id, req.denier)
		if err != nil {
			return "", capacity.Rate{}, err
		}
		return id, rate, nil
	}

	for _, m := range led.machines {
		if !led.open(m.ID, dates[di], req.ref) {
			continue
		}
		rate, err := res.Torsion(m.ID, req.denier)
		if err != nil {
			if perr.IsCode(err, perr.ErrorCodeConfigMissing) {
				continue
			}
			return "", capacity.Rate{}, err
		}
		return m.ID, rate, nil
	}

	return "", capacity.Rate{}, perr.Infeasiblef(
		"no torsion machine available for reference %s on %s", req.ref, dates[di])
}

// assign books req.kg on machine m, pre-pumping any excess backward
// through the machine's earlier open days
func assign(
	led *ledger,
	cal *calendar.Calendar,
	dates []schedule.Date,
	di int,
	m string,
	rate capacity.Rate,
	req requirement,
) error {
	shortfall, err := book(led, cal, dates[di], m, rate, req, req.kg)
	if err != nil {
		return err
	}

	for dj := di - 1; dj >= 0 && shortfall > planner.Epsilon; dj-- {
		if !led.open(m, dates[dj], req.ref) {
			continue
		}
		shortfall, err = book(led, cal, dates[dj], m, rate, req, shortfall)
		if err != nil {
			return err
		}
	}

	if shortfall > planner.Epsilon {
		return perr.Infeasiblef(
			"cannot pre-pump %.1f kg of reference %s before %s on machine %s",
			shortfall, req.ref, dates[di], m)
	}
	return nil
}

// book absorbs up to kg into the machine's day and returns what is left
func book(
	led *ledger,
	cal *calendar.Calendar,
	d schedule.Date,
	m string,
	rate capacity.Rate,
	req requirement,
	kg float64,
) (float64, error) {
	hours, err := cal.Hours(d)
	if err != nil {
		return 0, err
	}

	e := led.at(m, d)
	if e == nil {
		e = &entry{
			ref:    req.ref,
			denier: req.denier,
			cap:    rate.KgPerHour * float64(hours),
			posts:  rate.Posts,
			hours:  hours,
			mirror: rate.Mirror,
		}
		led.days[m][d] = e
	}

	free := e.cap - e.kg
	if free <= 0 {
		return kg, nil
	}
	take := kg
	if take > free {
		take = free
	}
	e.kg += take
	return kg - take, nil
}

// slots flattens the ledger into date-then-machine ordered supply slots
func (l *ledger) slots(dates []schedule.Date) []schedule.DaySlot {
	var out []schedule.DaySlot
	for _, d := range dates {
		for _, m := range l.machines {
			e := l.at(m.ID, d)
			if e == nil || e.kg <= planner.Epsilon {
				continue
			}
			out = append(out, schedule.DaySlot{
				Date:      d,
				MachineID: m.ID,
				Stage:     schedule.StageTorsion,
				Ref:       e.ref,
				Denier:    e.denier,
				Kg:        e.kg,
				Posts:     e.posts,
				Operators: 1,
				Hours:     e.hours,
			})
		}
	}
	return out
}

func demandDates(demand []schedule.DaySlot) []schedule.Date {
	seen := map[schedule.Date]bool{}
	var out []schedule.Date
	for _, s := range demand {
		if !seen[s.Date] {
			seen[s.Date] = true
			out = append(out, s.Date)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// dayRequirements aggregates the non-idle demand of one day per
// reference, keeping first-seen order
func dayRequirements(demand []schedule.DaySlot, d schedule.Date) []requirement {
	var out []requirement
	idx := map[string]int{}
	for _, s := range demand {
		if s.Date != d || s.Idle || s.Kg <= planner.Epsilon {
			continue
		}
		if i, ok := idx[s.Ref]; ok {
			out[i].kg += s.Kg
			continue
		}
		idx[s.Ref] = len(out)
		out = append(out, requirement{ref: s.Ref, denier: s.Denier, kg: s.Kg})
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
