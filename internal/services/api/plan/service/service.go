// Package service contains the plan workflows: run the engine over the
// stored catalog, persist scenarios and answer chart queries
package service

import (
	"context"
	"encoding/json"

	"telar/internal/core/engine"
	"telar/internal/core/schedule"
	perr "telar/internal/platform/errors"
	"telar/internal/platform/logger"
	"telar/internal/services/api/plan/domain"
	"telar/internal/services/api/plan/repo"

	"github.com/google/uuid"
)

// Service defines the plan service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the plan service
type Svc struct {
	repo repo.Repo
	sink repo.Sink
	log  logger.Logger
}

// New constructs the plan service; sink may be nil when the analytical
// store is disabled
func New(r repo.Repo, sink repo.Sink, log logger.Logger) *Svc {
	return &Svc{repo: r, sink: sink, log: log}
}

// Generate loads the catalog snapshot, runs the engine and optionally
// saves the result as a named scenario
func (s *Svc) Generate(ctx context.Context, in domain.GenerateInput) (domain.GenerateOutput, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return domain.GenerateOutput{}, perr.Wrapf(err, perr.ErrorCodeDB, "load snapshot")
	}
	snap.Policy = applyOverride(snap.Policy, in.Policy)

	sched, err := engine.Run(snap)
	if err != nil {
		return domain.GenerateOutput{}, err
	}

	out := domain.GenerateOutput{Schedule: sched}
	runID := uuid.NewString()

	if in.Name != "" {
		payload, err := json.Marshal(sched)
		if err != nil {
			return domain.GenerateOutput{}, perr.Wrapf(err, perr.ErrorCodeJSON, "encode schedule")
		}
		row := repo.ScenarioRow{
			ID:      runID,
			Name:    in.Name,
			Days:    sched.Summary.Days,
			TotalKg: sched.Summary.TotalKg,
			Payload: payload,
		}
		if err := s.repo.SaveScenario(ctx, row); err != nil {
			return domain.GenerateOutput{}, perr.Wrapf(err, perr.ErrorCodeDB, "save scenario")
		}
		out.ScenarioID = runID
	}

	// analytical sink is best effort; a failed insert never fails the run
	if s.sink != nil {
		if err := s.sink.InsertDaySlots(ctx, runID, sched.Slots); err != nil {
			s.log.Warn().Err(err).Str("run_id", runID).Msg("day slot sink insert failed")
		}
	}

	return out, nil
}

// SaveScenario runs the engine and persists the result under a name
func (s *Svc) SaveScenario(ctx context.Context, in domain.SaveScenarioInput) (domain.GenerateOutput, error) {
	return s.Generate(ctx, domain.GenerateInput{Name: in.Name, Policy: in.Policy})
}

// Scenarios lists saved scenarios, newest first
func (s *Svc) Scenarios(ctx context.Context) ([]domain.ScenarioHead, error) {
	rows, err := s.repo.ListScenarios(ctx)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "list scenarios")
	}
	out := make([]domain.ScenarioHead, 0, len(rows))
	for _, r := range rows {
		out = append(out, head(r))
	}
	return out, nil
}

// Scenario returns one saved scenario with its full schedule
func (s *Svc) Scenario(ctx context.Context, id string) (domain.ScenarioOutput, error) {
	row, err := s.repo.GetScenario(ctx, id)
	if err != nil {
		return domain.ScenarioOutput{}, err
	}
	return decode(row)
}

// OperatorsChart returns the operator series of a scenario, defaulting
// to the most recent one
func (s *Svc) OperatorsChart(ctx context.Context, scenarioID string) (domain.OperatorsChart, error) {
	var (
		row repo.ScenarioRow
		err error
	)
	if scenarioID == "" {
		row, err = s.repo.LatestScenario(ctx)
	} else {
		row, err = s.repo.GetScenario(ctx, scenarioID)
	}
	if err != nil {
		return domain.OperatorsChart{}, err
	}

	sc, err := decode(row)
	if err != nil {
		return domain.OperatorsChart{}, err
	}
	return domain.OperatorsChart{
		ScenarioID: sc.ID,
		Labels:     sc.Schedule.Summary.Series.Labels,
		Operators:  sc.Schedule.Summary.Series.OperatorsDay,
		PeakBand:   sc.Schedule.Summary.PeakOperators,
	}, nil
}

func head(r repo.ScenarioRow) domain.ScenarioHead {
	return domain.ScenarioHead{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		Days:      r.Days,
		TotalKg:   r.TotalKg,
	}
}

func decode(r repo.ScenarioRow) (domain.ScenarioOutput, error) {
	var sched schedule.Schedule
	if err := json.Unmarshal(r.Payload, &sched); err != nil {
		return domain.ScenarioOutput{}, perr.Wrapf(err, perr.ErrorCodeJSON, "decode scenario %s", r.ID)
	}
	return domain.ScenarioOutput{ScenarioHead: head(r), Schedule: &sched}, nil
}

func applyOverride(pol schedule.Policy, o domain.PolicyOverride) schedule.Policy {
	if o.LinePosts > 0 {
		pol.LinePosts = o.LinePosts
	}
	if o.HeavyPostThreshold > 0 {
		pol.HeavyPostThreshold = o.HeavyPostThreshold
	}
	if o.SplitStreamPosts > 0 {
		pol.SplitStreamPosts = o.SplitStreamPosts
	}
	if o.OperatorBandMax > 0 {
		pol.OperatorBandMax = o.OperatorBandMax
	}
	if o.MaxDays > 0 {
		pol.MaxDays = o.MaxDays
	}
	return pol
}
