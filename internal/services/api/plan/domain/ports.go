package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Generate(ctx context.Context, in GenerateInput) (GenerateOutput, error)
	SaveScenario(ctx context.Context, in SaveScenarioInput) (GenerateOutput, error)
	Scenarios(ctx context.Context) ([]ScenarioHead, error)
	Scenario(ctx context.Context, id string) (ScenarioOutput, error)
	OperatorsChart(ctx context.Context, scenarioID string) (OperatorsChart, error)
}
