package reconcile

import (
	"math"
	"testing"

	"telar/internal/core/calendar"
	"telar/internal/core/capacity"
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

func floorSnapshot(days int) schedule.Snapshot {
	return schedule.Snapshot{
		Machines: []schedule.Machine{
			{ID: "T11", Stage: schedule.StageTorsion, Posts: 96},
			{ID: "T12", Stage: schedule.StageTorsion, Posts: 96},
			{ID: "REW-1", Stage: schedule.StageRewinder, Posts: 28},
			{ID: "REW-2", Stage: schedule.StageRewinder, Posts: 28},
		},
		TorsionConfigs: []schedule.TorsionConfig{
			{MachineID: "T11", Denier: "9000", RPM: 7000, TwistsPerMeter: 140, Posts: 10},
			{MachineID: "T12", Denier: "9000", RPM: 6300, TwistsPerMeter: 140, Posts: 10},
			{MachineID: "T11", Denier: "18000", RPM: 6000, TwistsPerMeter: 120, Posts: 18},
		},
		RewinderConfigs: []schedule.RewinderConfig{
			{Denier: "9000", MPSeconds: 90, TMMinutes: 6},
			{Denier: "18000", MPSeconds: 180, TMMinutes: 12},
			{Denier: "6000 expo", MPSeconds: 60, TMMinutes: 4},
		},
		Shifts: shiftTable("2026-03-01", days, 8),
	}
}

func reconcile(
	t *testing.T,
	snap schedule.Snapshot,
	demand []schedule.DaySlot,
) ([]schedule.DaySlot, []string, error) {
	t.Helper()
	pol := schedule.DefaultPolicy()
	cal, err := calendar.New(snap.Shifts)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	return Reconcile(snap, pol, capacity.NewResolver(snap, pol), cal, demand)
}

func rw(date schedule.Date, ref, denier string, kg float64) schedule.DaySlot {
	return schedule.DaySlot{
		Date: date, MachineID: "REW-1", Stage: schedule.StageRewinder,
		Ref: ref, Denier: denier, Kg: kg, Posts: 10, Operators: 2, Hours: 8,
	}
}

func supplyTotal(slots []schedule.DaySlot) float64 {
	var sum float64
	for _, s := range slots {
		sum += s.Kg
	}
	return sum
}

func TestAssignsBestExplicitMachine(t *testing.T) {
	snap := floorSnapshot(3)
	demand := []schedule.DaySlot{rw("2026-03-01", "R1", "9000", 50)}

	slots, universal, err := reconcile(t, snap, demand)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1", len(slots))
	}
	s := slots[0]
	if s.MachineID != "T11" {
		t.Fatalf("assigned to %s, want the fastest capable machine T11", s.MachineID)
	}
	if s.Stage != schedule.StageTorsion || s.Kg != 50 || s.Posts != 10 || s.Operators != 1 {
		t.Fatalf("malformed supply slot: %+v", s)
	}
	if universal != nil {
		t.Fatalf("universal = %v, want none", universal)
	}
}

func TestPrefersMachineAlreadyRunningRef(t *testing.T) {
	snap := floorSnapshot(3)

	// day one T11 is taken by the heavy reference, so R1 lands on T12;
	// day two T11 is free again but R1 must stay where it already runs
	demand := []schedule.DaySlot{
		rw("2026-03-01", "H1", "18000", 50),
		rw("2026-03-01", "R1", "9000", 40),
		rw("2026-03-02", "R1", "9000", 40),
	}

	slots, _, err := reconcile(t, snap, demand)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	byDayRef := map[string]string{}
	for _, s := range slots {
		byDayRef[string(s.Date)+"/"+s.Ref] = s.MachineID
	}
	if byDayRef["2026-03-01/R1"] != "T12" {
		t.Fatalf("day one R1 on %s, want T12", byDayRef["2026-03-01/R1"])
	}
	if byDayRef["2026-03-02/R1"] != "T12" {
		t.Fatalf("day two R1 on %s, want sticky T12", byDayRef["2026-03-02/R1"])
	}
}

func TestPrePumpsExcessBackward(t *testing.T) {
	snap := floorSnapshot(2)
	snap.Machines = []schedule.Machine{
		{ID: "T11", Stage: schedule.StageTorsion, Posts: 96},
		{ID: "REW-1", Stage: schedule.StageRewinder, Posts: 28},
	}

	capDay := capacity.TorsionKgPerHour(9000, 7000, 140, 10) * 8
	demand := []schedule.DaySlot{
		rw("2026-03-01", "R1", "9000", 100),
		rw("2026-03-02", "R1", "9000", capDay+50),
	}

	slots, _, err := reconcile(t, snap, demand)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	if math.Abs(slots[0].Kg-150) > 1e-6 {
		t.Fatalf("day one kg = %v, want 150 after absorbing the excess", slots[0].Kg)
	}
	if math.Abs(slots[1].Kg-capDay) > 1e-6 {
		t.Fatalf("day two kg = %v, want full capacity %v", slots[1].Kg, capDay)
	}
	if got, want := supplyTotal(slots), capDay+150; math.Abs(got-want) > 1e-6 {
		t.Fatalf("supply total = %v, want %v", got, want)
	}
}

func TestInfeasibleWhenStartReached(t *testing.T) {
	snap := floorSnapshot(1)
	snap.Machines = []schedule.Machine{
		{ID: "T11", Stage: schedule.StageTorsion, Posts: 96},
		{ID: "REW-1", Stage: schedule.StageRewinder, Posts: 28},
	}

	capDay := capacity.TorsionKgPerHour(9000, 7000, 140, 10) * 8
	demand := []schedule.DaySlot{rw("2026-03-01", "R1", "9000", 3*capDay)}

	_, _, err := reconcile(t, snap, demand)
	if !perr.IsCode(err, perr.ErrorCodeInfeasible) {
		t.Fatalf("err = %v, want infeasible", err)
	}
}

func TestMirrorModeMarksUniversalProducer(t *testing.T) {
	snap := floorSnapshot(2)
	demand := []schedule.DaySlot{rw("2026-03-01", "E1", "6000 expo", 500)}

	slots, universal, err := reconcile(t, snap, demand)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(slots) != 1 || slots[0].MachineID != "T11" {
		t.Fatalf("slots = %+v, want one mirror slot on T11", slots)
	}
	if len(universal) != 1 || universal[0] != "T11" {
		t.Fatalf("universal = %v, want [T11]", universal)
	}
}

func TestAggregatesSplitDemandOfOneDay(t *testing.T) {
	snap := floorSnapshot(2)

	// the same reference split across both rewinder lines on one day is
	// one upstream requirement
	a := rw("2026-03-01", "H1", "18000", 200)
	b := rw("2026-03-01", "H1", "18000", 200)
	b.MachineID = "REW-2"

	slots, _, err := reconcile(t, snap, []schedule.DaySlot{a, b})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1 aggregated slot", len(slots))
	}
	if math.Abs(slots[0].Kg-400) > 1e-9 {
		t.Fatalf("kg = %v, want 400", slots[0].Kg)
	}
}

func TestIgnoresIdleDemandSlots(t *testing.T) {
	snap := floorSnapshot(2)
	demand := []schedule.DaySlot{
		rw("2026-03-01", "R1", "9000", 50),
		{Date: "2026-03-01", MachineID: "REW-2", Stage: schedule.StageRewinder,
			Posts: 14, Hours: 8, Split: true, Idle: true},
	}

	slots, _, err := reconcile(t, snap, demand)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(slots) != 1 || slots[0].Ref != "R1" {
		t.Fatalf("slots = %+v", slots)
	}
}
