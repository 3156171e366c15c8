package engine

import (
	"math"
	"reflect"
	"testing"

	"telar/internal/core/schedule"
	perr "telar/internal/platform/errors"
)

func shiftTable(start schedule.Date, days, hours int) []schedule.Shift {
	out := make([]schedule.Shift, 0, days)
	d := start
	for i := 0; i < days; i++ {
		out = append(out, schedule.Shift{Date: d, Hours: hours})
		d = d.Next()
	}
	return out
}

// heavySnapshot is the reference scenario: one 2800 kg order of an
// 18-post denier on a 28 post hall with 8 hour shifts
func heavySnapshot() schedule.Snapshot {
	return schedule.Snapshot{
		Orders: []schedule.Order{{Ref: "18000", Denier: "18000", TargetKg: 2800}},
		Machines: []schedule.Machine{
			{ID: "T11", Stage: schedule.StageTorsion, Posts: 28},
			{ID: "REW-1", Stage: schedule.StageRewinder, Posts: 28},
			{ID: "REW-2", Stage: schedule.StageRewinder, Posts: 28},
		},
		TorsionConfigs: []schedule.TorsionConfig{
			{MachineID: "T11", Denier: "18000", RPM: 6000, TwistsPerMeter: 120, Posts: 18},
		},
		RewinderConfigs: []schedule.RewinderConfig{
			{Denier: "18000", MPSeconds: 180, TMMinutes: 12},
		},
		Shifts: shiftTable("2026-03-01", 14, 8),
	}
}

func run(t *testing.T, snap schedule.Snapshot) *schedule.Schedule {
	t.Helper()
	sched, err := Run(snap)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return sched
}

func stageTotal(slots []schedule.DaySlot, stage schedule.Stage) float64 {
	var sum float64
	for _, s := range slots {
		if s.Stage == stage {
			sum += s.Kg
		}
	}
	return sum
}

func TestHeavyReferenceEndToEnd(t *testing.T) {
	sched := run(t, heavySnapshot())

	// each stream runs 14 posts at 4 kg/h over 8h, so the single
	// producing stream needs 7 days for 2800 kg
	if sched.Summary.Days != 7 {
		t.Fatalf("Days = %d, want 7", sched.Summary.Days)
	}
	if len(sched.Summary.ByRef) != 1 || !sched.Summary.ByRef[0].Heavy {
		t.Fatalf("heavy flag missing: %+v", sched.Summary.ByRef)
	}

	perDay := map[schedule.Date]int{}
	for _, s := range sched.Demand {
		perDay[s.Date]++
		if s.Posts > 14 {
			t.Fatalf("stream width %d exceeds 14 on %s", s.Posts, s.Date)
		}
	}
	for d, n := range perDay {
		if n != 2 {
			t.Fatalf("%s has %d rewinder slots, want 2 (stream plus idle)", d, n)
		}
	}

	dem := stageTotal(sched.Slots, schedule.StageRewinder)
	sup := stageTotal(sched.Slots, schedule.StageTorsion)
	if math.Abs(dem-2800) > 1e-6 {
		t.Fatalf("rewinder total = %v, want 2800", dem)
	}
	if math.Abs(sup-dem) > 1e-6 {
		t.Fatalf("torsion total %v != rewinder total %v", sup, dem)
	}
}

func TestSplitStretchesScheduleBeyondNaiveDuration(t *testing.T) {
	sched := run(t, heavySnapshot())

	// unsplit the order would run all 18 posts at once: 576 kg/day,
	// five days; the shaved schedule trades days for a flat crew
	naiveDays := int(math.Ceil(2800.0 / (18 * 4 * 8)))
	if sched.Summary.Days <= naiveDays {
		t.Fatalf("Days = %d, want more than the naive %d", sched.Summary.Days, naiveDays)
	}
}

func TestIdempotence(t *testing.T) {
	snap := heavySnapshot()
	snap.Orders = append(snap.Orders, schedule.Order{Ref: "E1", Denier: "18000", TargetKg: 500})

	a := run(t, snap)
	b := run(t, snap)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two runs over the same snapshot differ")
	}
}

func TestMirrorModeSchedulesUnconfiguredDenier(t *testing.T) {
	snap := heavySnapshot()
	snap.Orders = []schedule.Order{{Ref: "E1", Denier: "6000 expo", TargetKg: 900}}
	snap.RewinderConfigs = append(snap.RewinderConfigs,
		schedule.RewinderConfig{Denier: "6000 expo", MPSeconds: 60, TMMinutes: 4})

	sched := run(t, snap)

	sup := stageTotal(sched.Slots, schedule.StageTorsion)
	if math.Abs(sup-900) > 1e-6 {
		t.Fatalf("torsion total = %v, want 900", sup)
	}
	if len(sched.Summary.UniversalProducers) != 1 || sched.Summary.UniversalProducers[0] != "T11" {
		t.Fatalf("UniversalProducers = %v, want [T11]", sched.Summary.UniversalProducers)
	}
}

func TestEmptyBacklogYieldsEmptySchedule(t *testing.T) {
	snap := heavySnapshot()
	snap.Orders = nil

	sched := run(t, snap)
	if len(sched.Slots) != 0 || sched.Summary.Days != 0 || sched.Summary.TotalKg != 0 {
		t.Fatalf("expected empty schedule, got %+v", sched.Summary)
	}
}

func TestSummaryTotals(t *testing.T) {
	sched := run(t, heavySnapshot())

	sum := sched.Summary
	if math.Abs(sum.TotalKg-2800) > 1e-6 {
		t.Fatalf("TotalKg = %v", sum.TotalKg)
	}
	ref := sum.ByRef[0]
	if math.Abs(ref.DemandKg-2800) > 1e-6 || math.Abs(ref.SupplyKg-2800) > 1e-6 {
		t.Fatalf("ref totals = %+v", ref)
	}
	if want := 2800 / 0.97; math.Abs(ref.RawInputKg-want) > 1e-6 {
		t.Fatalf("RawInputKg = %v, want %v", ref.RawInputKg, want)
	}
	if ref.FinishDate != "2026-03-07" {
		t.Fatalf("FinishDate = %s, want 2026-03-07", ref.FinishDate)
	}
	if sum.StartDate != "2026-03-01" || sum.EndDate != "2026-03-07" {
		t.Fatalf("window = %s..%s", sum.StartDate, sum.EndDate)
	}
	if len(sum.Series.Labels) != 7 || len(sum.Series.KgPerDay) != 7 {
		t.Fatalf("series lengths = %d/%d", len(sum.Series.Labels), len(sum.Series.KgPerDay))
	}
	if sum.PeakOperators != 3 {
		t.Fatalf("PeakOperators = %d, want 3", sum.PeakOperators)
	}
}

func TestValidateRejectsBadSnapshots(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*schedule.Snapshot)
	}{
		{"empty ref", func(s *schedule.Snapshot) {
			s.Orders = []schedule.Order{{Ref: "", Denier: "18000", TargetKg: 1}}
		}},
		{"duplicate ref", func(s *schedule.Snapshot) {
			s.Orders = append(s.Orders, s.Orders[0])
		}},
		{"non-positive target", func(s *schedule.Snapshot) {
			s.Orders[0].TargetKg = 0
		}},
		{"duplicate machine", func(s *schedule.Snapshot) {
			s.Machines = append(s.Machines, s.Machines[0])
		}},
		{"bad stage", func(s *schedule.Snapshot) {
			s.Machines[0].Stage = "weaving"
		}},
		{"zero posts", func(s *schedule.Snapshot) {
			s.Machines[0].Posts = 0
		}},
	}
	for _, tc := range cases {
		snap := heavySnapshot()
		tc.mutate(&snap)
		if _, err := Run(snap); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("%s: err = %v, want invalid argument", tc.name, err)
		}
	}
}
