package capacity

import (
	"sort"

	"telar/internal/core/schedule"
	perr "telar/internal/platform/errors"
)

// Rate is the resolved throughput of one machine running one denier
type Rate struct {
	KgPerHour float64
	Posts     int

	// Mirror marks a rate derived from the rewinder default instead of
	// an explicit capability record
	Mirror bool
}

// DemandRate is the downstream view of a denier: per-post throughput,
// how many posts the reference needs and how many posts one operator
// can cover
type DemandRate struct {
	PerPostKgPerHour float64
	PostsRequired    int
	PostsPerOperator int
}

type tcKey struct {
	machine string
	denier  string
}

// Resolver answers throughput questions against one snapshot. It is
// read-only after construction and safe for concurrent use.
type Resolver struct {
	pol      schedule.Policy
	torsion  map[tcKey]schedule.TorsionConfig
	byDenier map[string][]schedule.TorsionConfig
	rewinder map[string]schedule.RewinderConfig
	machines map[string]schedule.Machine
}

// NewResolver indexes the snapshot capability records
func NewResolver(snap schedule.Snapshot, pol schedule.Policy) *Resolver {
	r := &Resolver{
		pol:      pol,
		torsion:  make(map[tcKey]schedule.TorsionConfig, len(snap.TorsionConfigs)),
		byDenier: make(map[string][]schedule.TorsionConfig),
		rewinder: make(map[string]schedule.RewinderConfig, len(snap.RewinderConfigs)),
		machines: make(map[string]schedule.Machine, len(snap.Machines)),
	}
	for _, tc := range snap.TorsionConfigs {
		r.torsion[tcKey{tc.MachineID, tc.Denier}] = tc
		r.byDenier[tc.Denier] = append(r.byDenier[tc.Denier], tc)
	}
	for _, rw := range snap.RewinderConfigs {
		r.rewinder[rw.Denier] = rw
	}
	for _, m := range snap.Machines {
		r.machines[m.ID] = m
	}
	return r
}

// Torsion resolves the rate of machineID running denier. An explicit
// capability record wins; without one the machine acts as a universal
// producer and mirrors the rewinder default rate scaled to its posts.
func (r *Resolver) Torsion(machineID, denier string) (Rate, error) {
	if cfg, ok := r.torsion[tcKey{machineID, denier}]; ok {
		kgh := TorsionKgPerHour(DenierValue(denier), cfg.RPM, cfg.TwistsPerMeter, cfg.Posts)
		if kgh <= 0 {
			return Rate{}, perr.ConfigMissingf(
				"torsion config for machine %s denier %s yields zero throughput", machineID, denier)
		}
		return Rate{KgPerHour: kgh, Posts: cfg.Posts}, nil
	}

	m, ok := r.machines[machineID]
	if !ok {
		return Rate{}, perr.ConfigMissingf("unknown machine %s", machineID)
	}
	rw, ok := r.rewinder[denier]
	if !ok {
		return Rate{}, perr.ConfigMissingf(
			"no torsion config for machine %s and no rewinder default for denier %s", machineID, denier)
	}
	per := RewinderKgPerHourPerPost(rw.TMMinutes)
	if per <= 0 {
		return Rate{}, perr.ConfigMissingf("rewinder default for denier %s yields zero throughput", denier)
	}
	return Rate{KgPerHour: per * float64(m.Posts), Posts: m.Posts, Mirror: true}, nil
}

// Demand resolves the downstream rate of a denier. PostsRequired comes
// from the widest explicit capability record for the denier; deniers
// known only by their rewinder default fill the whole line.
func (r *Resolver) Demand(denier string) (DemandRate, error) {
	rw, ok := r.rewinder[denier]
	if !ok {
		return DemandRate{}, perr.ConfigMissingf("no rewinder default for denier %s", denier)
	}
	per := RewinderKgPerHourPerPost(rw.TMMinutes)
	if per <= 0 {
		return DemandRate{}, perr.ConfigMissingf("rewinder default for denier %s yields zero throughput", denier)
	}

	posts := 0
	for _, tc := range r.byDenier[denier] {
		if tc.Posts > posts {
			posts = tc.Posts
		}
	}
	if posts == 0 {
		posts = r.pol.LinePosts
	}

	return DemandRate{
		PerPostKgPerHour: per,
		PostsRequired:    posts,
		PostsPerOperator: OptimalPostsPerOperator(rw.MPSeconds, rw.TMMinutes),
	}, nil
}

// Candidates returns the torsion machines with an explicit capability
// record for denier, best throughput first, ties broken by machine id
func (r *Resolver) Candidates(denier string) []string {
	cfgs := r.byDenier[denier]
	if len(cfgs) == 0 {
		return nil
	}
	type cand struct {
		id  string
		kgh float64
	}
	out := make([]cand, 0, len(cfgs))
	for _, cfg := range cfgs {
		out = append(out, cand{
			id:  cfg.MachineID,
			kgh: TorsionKgPerHour(DenierValue(denier), cfg.RPM, cfg.TwistsPerMeter, cfg.Posts),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].kgh != out[j].kgh {
			return out[i].kgh > out[j].kgh
		}
		return out[i].id < out[j].id
	})
	ids := make([]string, len(out))
	for i, c := range out {
		ids[i] = c.id
	}
	return ids
}

// Machine returns the machine record for id
func (r *Resolver) Machine(id string) (schedule.Machine, bool) {
	m, ok := r.machines[id]
	return m, ok
}
