package service

import (
	"context"
	"testing"

	"telar/internal/core/schedule"
	perr "telar/internal/platform/errors"
	"telar/internal/platform/logger"
	"telar/internal/services/api/plan/domain"
	"telar/internal/services/api/plan/repo"
)

type fakeRepo struct {
	snap      schedule.Snapshot
	scenarios []repo.ScenarioRow
}

func (f *fakeRepo) LoadSnapshot(context.Context) (schedule.Snapshot, error) { return f.snap, nil }

func (f *fakeRepo) SaveScenario(_ context.Context, s repo.ScenarioRow) error {
	f.scenarios = append(f.scenarios, s)
	return nil
}

func (f *fakeRepo) ListScenarios(context.Context) ([]repo.ScenarioRow, error) {
	return f.scenarios, nil
}

func (f *fakeRepo) GetScenario(_ context.Context, id string) (repo.ScenarioRow, error) {
	for _, s := range f.scenarios {
		if s.ID == id {
			return s, nil
		}
	}
	return repo.ScenarioRow{}, perr.NotFoundf("scenario %s not found", id)
}

func (f *fakeRepo) LatestScenario(ctx context.Context) (repo.ScenarioRow, error) {
	if len(f.scenarios) == 0 {
		return repo.ScenarioRow{}, perr.NotFoundf("no scenarios saved yet")
	}
	return f.scenarios[len(f.scenarios)-1], nil
}

type fakeSink struct {
	runs  []string
	slots int
}

func (f *fakeSink) InsertDaySlots(_ context.Context, runID string, slots []schedule.DaySlot) error {
	f.runs = append(f.runs, runID)
	f.slots += len(slots)
	return nil
}

// testSnapshot keeps daily demand under the torsion ceiling: T11 twists
// about 186 kg per 8 h day for denier 9000 while ten rewinder posts at
// 2 kg/h consume 160 kg, so 1000 kg spans seven feasible days
func testSnapshot() schedule.Snapshot {
	shifts := make([]schedule.Shift, 0, 10)
	d := schedule.Date("2026-03-01")
	for i := 0; i < 10; i++ {
		shifts = append(shifts, schedule.Shift{Date: d, Hours: 8})
		d = d.Next()
	}
	return schedule.Snapshot{
		Orders: []schedule.Order{{Ref: "R1", Denier: "9000", TargetKg: 1000}},
		Machines: []schedule.Machine{
			{ID: "T11", Stage: schedule.StageTorsion, Posts: 96},
			{ID: "REW-1", Stage: schedule.StageRewinder, Posts: 28},
			{ID: "REW-2", Stage: schedule.StageRewinder, Posts: 28},
		},
		TorsionConfigs: []schedule.TorsionConfig{
			{MachineID: "T11", Denier: "9000", RPM: 7000, TwistsPerMeter: 140, Posts: 10},
		},
		RewinderConfigs: []schedule.RewinderConfig{
			{Denier: "9000", MPSeconds: 90, TMMinutes: 24},
		},
		Shifts: shifts,
	}
}

func newTestSvc() (*Svc, *fakeRepo, *fakeSink) {
	fr := &fakeRepo{snap: testSnapshot()}
	fs := &fakeSink{}
	return New(fr, fs, *logger.Get()), fr, fs
}

func TestGenerateWithoutNameDoesNotSave(t *testing.T) {
	svc, fr, fs := newTestSvc()

	out, err := svc.Generate(context.Background(), domain.GenerateInput{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out.ScenarioID != "" {
		t.Fatalf("ScenarioID = %q, want empty", out.ScenarioID)
	}
	if out.Schedule == nil || out.Schedule.Summary.TotalKg != 1000 {
		t.Fatalf("schedule summary = %+v", out.Schedule)
	}
	if len(fr.scenarios) != 0 {
		t.Fatalf("scenario saved without a name")
	}
	if len(fs.runs) != 1 || fs.slots != len(out.Schedule.Slots) {
		t.Fatalf("sink runs = %v, slots = %d", fs.runs, fs.slots)
	}
}

func TestGenerateSavesNamedScenario(t *testing.T) {
	svc, fr, _ := newTestSvc()

	out, err := svc.Generate(context.Background(), domain.GenerateInput{Name: "march"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out.ScenarioID == "" {
		t.Fatalf("expected scenario id")
	}
	if len(fr.scenarios) != 1 || fr.scenarios[0].Name != "march" {
		t.Fatalf("scenarios = %+v", fr.scenarios)
	}

	got, err := svc.Scenario(context.Background(), out.ScenarioID)
	if err != nil {
		t.Fatalf("Scenario: %v", err)
	}
	if got.Schedule.Summary.TotalKg != out.Schedule.Summary.TotalKg {
		t.Fatalf("round-tripped schedule differs")
	}

	heads, err := svc.Scenarios(context.Background())
	if err != nil || len(heads) != 1 {
		t.Fatalf("Scenarios = %v, %v", heads, err)
	}
}

func TestGeneratePolicyOverride(t *testing.T) {
	svc, _, _ := newTestSvc()

	// a one day horizon cannot absorb 1000 kg at 160 kg/day
	_, err := svc.Generate(context.Background(), domain.GenerateInput{
		Policy: domain.PolicyOverride{MaxDays: 1},
	})
	if !perr.IsCode(err, perr.ErrorCodeInfeasible) {
		t.Fatalf("err = %v, want infeasible", err)
	}
}

func TestOperatorsChartDefaultsToLatest(t *testing.T) {
	svc, _, _ := newTestSvc()

	if _, err := svc.OperatorsChart(context.Background(), ""); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found before any save", err)
	}

	out, err := svc.Generate(context.Background(), domain.GenerateInput{Name: "march"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	chart, err := svc.OperatorsChart(context.Background(), "")
	if err != nil {
		t.Fatalf("OperatorsChart: %v", err)
	}
	if chart.ScenarioID != out.ScenarioID {
		t.Fatalf("chart scenario = %s, want %s", chart.ScenarioID, out.ScenarioID)
	}
	if len(chart.Labels) != len(chart.Operators) || len(chart.Labels) == 0 {
		t.Fatalf("chart series malformed: %+v", chart)
	}
}
