// Package schedule defines the shared scheduling types: the input snapshot
// (orders, machines, capacity records, shift calendar, policy) and the
// DaySlot output records both production stages emit
package schedule

import (
	"time"

	perr "telar/internal/platform/errors"
)

// Stage identifies which production stage a machine or slot belongs to
type Stage string

const (
	// StageTorsion is the upstream twisting stage
	StageTorsion Stage = "torsion"
	// StageRewinder is the downstream rewinding stage
	StageRewinder Stage = "rewinder"
)

// DateLayout is the wire format for schedule dates
const DateLayout = "2006-01-02"

// Date is a calendar day in ISO format; ISO strings sort chronologically
type Date string

// ParseDate validates s and returns it as a Date
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", perr.InvalidArgf("invalid date %q: %v", s, err)
	}
	return Date(s), nil
}

// Time returns the date at midnight UTC
func (d Date) Time() time.Time {
	t, _ := time.Parse(DateLayout, string(d))
	return t
}

// Next returns the following calendar day
func (d Date) Next() Date {
	return Date(d.Time().AddDate(0, 0, 1).Format(DateLayout))
}

// Before reports chronological order
func (d Date) Before(o Date) bool { return string(d) < string(o) }

// Order is one backlog entry: a product reference to be produced.
// Backlog priority is the slice position; orders are immutable once a
// scheduling run starts.
type Order struct {
	Ref      string  `json:"ref" yaml:"ref"`
	Denier   string  `json:"denier" yaml:"denier"`
	TargetKg float64 `json:"target_kg" yaml:"target_kg"`
}

// Machine is a production line on one of the two stages
type Machine struct {
	ID    string `json:"id" yaml:"id"`
	Stage Stage  `json:"stage" yaml:"stage"`
	Posts int    `json:"posts" yaml:"posts"`
}

// TorsionConfig is an explicit (machine, denier) capability record
type TorsionConfig struct {
	MachineID      string `json:"machine_id" yaml:"machine_id"`
	Denier         string `json:"denier" yaml:"denier"`
	RPM            int    `json:"rpm" yaml:"rpm"`
	TwistsPerMeter int    `json:"twists_per_meter" yaml:"twists_per_meter"`
	Posts          int    `json:"posts" yaml:"posts"`
}

// RewinderConfig is the per-denier downstream default: seconds of manual
// handling per operation and cycle minutes, which together define the
// per-post throughput and the posts-per-operator optimum
type RewinderConfig struct {
	Denier    string  `json:"denier" yaml:"denier"`
	MPSeconds float64 `json:"mp_seconds" yaml:"mp_seconds"`
	TMMinutes float64 `json:"tm_minutes" yaml:"tm_minutes"`
}

// Shift is one calendar entry; Hours must be one of 8, 12, 16, 24
type Shift struct {
	Date  Date `json:"date" yaml:"date"`
	Hours int  `json:"hours" yaml:"hours"`
}

// DaySlot is the atomic unit of the output schedule: one machine working
// one reference on one day. Idle slots mark reserved-but-unused split
// capacity so the second stream stays traceable.
type DaySlot struct {
	Date      Date    `json:"date"`
	MachineID string  `json:"machine_id"`
	Stage     Stage   `json:"stage"`
	Ref       string  `json:"ref"`
	Denier    string  `json:"denier"`
	Kg        float64 `json:"kg"`
	Posts     int     `json:"posts"`
	Operators int     `json:"operators"`
	Hours     int     `json:"hours"`
	Split     bool    `json:"split,omitempty"`
	Idle      bool    `json:"idle,omitempty"`
}

// Snapshot is the immutable input set for one scheduling run
type Snapshot struct {
	Orders          []Order          `json:"orders" yaml:"orders"`
	Machines        []Machine        `json:"machines" yaml:"machines"`
	TorsionConfigs  []TorsionConfig  `json:"torsion_configs" yaml:"torsion_configs"`
	RewinderConfigs []RewinderConfig `json:"rewinder_configs" yaml:"rewinder_configs"`
	Shifts          []Shift          `json:"shifts" yaml:"shifts"`
	Policy          Policy           `json:"policy" yaml:"policy"`
}

// RefTotal summarizes one reference across the finished schedule
type RefTotal struct {
	Ref        string  `json:"ref"`
	Denier     string  `json:"denier"`
	DemandKg   float64 `json:"demand_kg"`
	SupplyKg   float64 `json:"supply_kg"`
	RawInputKg float64 `json:"raw_input_kg"`
	FinishDate Date    `json:"finish_date"`
	Heavy      bool    `json:"heavy"`
}

// Series holds the per-day chart data reporting collaborators render
type Series struct {
	Labels       []Date    `json:"labels"`
	KgPerDay     []float64 `json:"kg_per_day"`
	OperatorsDay []int     `json:"operators_per_day"`
}

// Summary aggregates the run for reports
type Summary struct {
	Days               int        `json:"days"`
	StartDate          Date       `json:"start_date"`
	EndDate            Date       `json:"end_date"`
	TotalKg            float64    `json:"total_kg"`
	PeakOperators      int        `json:"peak_operators"`
	ByRef              []RefTotal `json:"by_ref"`
	Series             Series     `json:"series"`
	UniversalProducers []string   `json:"universal_producers,omitempty"`
}

// Schedule is the assembled output of one run
type Schedule struct {
	Slots   []DaySlot `json:"slots"`
	Demand  []DaySlot `json:"demand"`
	Supply  []DaySlot `json:"supply"`
	Summary Summary   `json:"summary"`
}
