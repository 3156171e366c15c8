// Package domain holds DTOs for plan http and service contracts
package domain

import "telar/internal/core/schedule"

// PolicyOverride carries optional balancing knobs for one run; zero
// fields fall back to the stored policy defaults
type PolicyOverride struct {
	LinePosts          int `json:"line_posts,omitempty" validate:"omitempty,min=1,max=200"`
	HeavyPostThreshold int `json:"heavy_post_threshold,omitempty" validate:"omitempty,min=1,max=200"`
	SplitStreamPosts   int `json:"split_stream_posts,omitempty" validate:"omitempty,min=1,max=200"`
	OperatorBandMax    int `json:"operator_band_max,omitempty" validate:"omitempty,min=1,max=100"`
	MaxDays            int `json:"max_days,omitempty" validate:"omitempty,min=1,max=3660"`
}

// GenerateInput requests one scheduling run over the stored catalog
type GenerateInput struct {
	// Name, when set, saves the run as a named scenario
	Name string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`

	Policy PolicyOverride `json:"policy"`
}

// GenerateOutput is the run result plus the scenario id when saved
type GenerateOutput struct {
	ScenarioID string             `json:"scenario_id,omitempty"`
	Schedule   *schedule.Schedule `json:"schedule"`
}

// SaveScenarioInput runs the engine and saves the result under a name
type SaveScenarioInput struct {
	Name   string         `json:"name" validate:"required,min=1,max=120"`
	Policy PolicyOverride `json:"policy"`
}

// ScenarioHead is one row of the scenario listing
type ScenarioHead struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	CreatedAt string  `json:"created_at"`
	Days      int     `json:"days"`
	TotalKg   float64 `json:"total_kg"`
}

// ScenarioOutput is a stored scenario with its full schedule
type ScenarioOutput struct {
	ScenarioHead
	Schedule *schedule.Schedule `json:"schedule"`
}

// OperatorsChart is the per-day operator load of one scenario
type OperatorsChart struct {
	ScenarioID string          `json:"scenario_id"`
	Labels     []schedule.Date `json:"labels"`
	Operators  []int           `json:"operators"`
	PeakBand   int             `json:"peak_band"`
}
