package capacity

import (
	"testing"

	"telar/internal/core/schedule"
	perr "telar/internal/platform/errors"
)

func testSnapshot() schedule.Snapshot {
	return schedule.Snapshot{
		Machines: []schedule.Machine{
			{ID: "T11", Stage: schedule.StageTorsion, Posts: 96},
			{ID: "T12", Stage: schedule.StageTorsion, Posts: 96},
			{ID: "T13", Stage: schedule.StageTorsion, Posts: 48},
			{ID: "REW-1", Stage: schedule.StageRewinder, Posts: 28},
		},
		TorsionConfigs: []schedule.TorsionConfig{
			{MachineID: "T11", Denier: "18000", RPM: 6000, TwistsPerMeter: 120, Posts: 18},
			{MachineID: "T12", Denier: "18000", RPM: 5400, TwistsPerMeter: 120, Posts: 18},
			{MachineID: "T11", Denier: "9000", RPM: 7000, TwistsPerMeter: 140, Posts: 10},
		},
		RewinderConfigs: []schedule.RewinderConfig{
			{Denier: "18000", MPSeconds: 180, TMMinutes: 12},
			{Denier: "9000", MPSeconds: 90, TMMinutes: 6},
			{Denier: "6000 expo", MPSeconds: 60, TMMinutes: 4},
		},
	}
}

func newTestResolver() *Resolver {
	return NewResolver(testSnapshot(), schedule.DefaultPolicy())
}

func TestTorsionExplicitConfigWins(t *testing.T) {
	r := newTestResolver()

	rate, err := r.Torsion("T11", "18000")
	if err != nil {
		t.Fatalf("Torsion: %v", err)
	}
	if rate.Mirror {
		t.Fatalf("explicit config resolved as mirror")
	}
	if rate.Posts != 18 {
		t.Fatalf("Posts = %d, want 18", rate.Posts)
	}
	want := TorsionKgPerHour(18000, 6000, 120, 18)
	if rate.KgPerHour != want {
		t.Fatalf("KgPerHour = %v, want %v", rate.KgPerHour, want)
	}
}

func TestTorsionMirrorFallback(t *testing.T) {
	r := newTestResolver()

	// T13 has no explicit record for 9000, so it mirrors the rewinder
	// default scaled to its 48 posts
	rate, err := r.Torsion("T13", "9000")
	if err != nil {
		t.Fatalf("Torsion: %v", err)
	}
	if !rate.Mirror {
		t.Fatalf("expected mirror rate")
	}
	if rate.Posts != 48 {
		t.Fatalf("Posts = %d, want 48", rate.Posts)
	}
	want := RewinderKgPerHourPerPost(6) * 48
	if rate.KgPerHour != want {
		t.Fatalf("KgPerHour = %v, want %v", rate.KgPerHour, want)
	}
}

func TestTorsionConfigMissing(t *testing.T) {
	r := newTestResolver()

	// no explicit record and no rewinder default either
	_, err := r.Torsion("T13", "unknown")
	if !perr.IsCode(err, perr.ErrorCodeConfigMissing) {
		t.Fatalf("err = %v, want config missing", err)
	}

	_, err = r.Torsion("nope", "18000")
	if !perr.IsCode(err, perr.ErrorCodeConfigMissing) {
		t.Fatalf("unknown machine err = %v, want config missing", err)
	}
}

func TestDemandUsesWidestExplicitRecord(t *testing.T) {
	r := newTestResolver()

	d, err := r.Demand("18000")
	if err != nil {
		t.Fatalf("Demand: %v", err)
	}
	if d.PostsRequired != 18 {
		t.Fatalf("PostsRequired = %d, want 18", d.PostsRequired)
	}
	if d.PerPostKgPerHour != RewinderKgPerHourPerPost(12) {
		t.Fatalf("PerPostKgPerHour = %v", d.PerPostKgPerHour)
	}
	if d.PostsPerOperator != 5 {
		t.Fatalf("PostsPerOperator = %d, want 5", d.PostsPerOperator)
	}
}

func TestDemandWithoutExplicitRecordFillsLine(t *testing.T) {
	r := newTestResolver()

	d, err := r.Demand("6000 expo")
	if err != nil {
		t.Fatalf("Demand: %v", err)
	}
	if d.PostsRequired != schedule.DefaultPolicy().LinePosts {
		t.Fatalf("PostsRequired = %d, want full line", d.PostsRequired)
	}
}

func TestDemandConfigMissing(t *testing.T) {
	r := newTestResolver()
	if _, err := r.Demand("unknown"); !perr.IsCode(err, perr.ErrorCodeConfigMissing) {
		t.Fatalf("err = %v, want config missing", err)
	}
}

func TestCandidatesOrderedByThroughput(t *testing.T) {
	r := newTestResolver()

	got := r.Candidates("18000")
	if len(got) != 2 || got[0] != "T11" || got[1] != "T12" {
		t.Fatalf("Candidates = %v, want [T11 T12]", got)
	}
	if c := r.Candidates("6000 expo"); c != nil {
		t.Fatalf("Candidates for mirror-only denier = %v, want nil", c)
	}
}
