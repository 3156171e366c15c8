// Package domain holds DTOs for catalog http and service contracts
package domain

// MachineInput creates or replaces one machine
type MachineInput struct {
	ID    string `json:"id" validate:"required,min=1,max=40"`
	Stage string `json:"stage" validate:"required,oneof=torsion rewinder"`
	Posts int    `json:"posts" validate:"required,min=1,max=200"`
}

// TorsionConfigInput creates or replaces one (machine, denier)
// capability record
type TorsionConfigInput struct {
	MachineID      string `json:"machine_id" validate:"required,min=1,max=40"`
	Denier         string `json:"denier" validate:"required,min=1,max=60"`
	RPM            int    `json:"rpm" validate:"required,min=1,max=50000"`
	TwistsPerMeter int    `json:"twists_per_meter" validate:"required,min=1,max=10000"`
	Posts          int    `json:"posts" validate:"required,min=1,max=200"`
}

// RewinderConfigInput creates or replaces one per-denier rewinder
// default
type RewinderConfigInput struct {
	Denier    string  `json:"denier" validate:"required,min=1,max=60"`
	MPSeconds float64 `json:"mp_seconds" validate:"required,gt=0,lte=3600"`
	TMMinutes float64 `json:"tm_minutes" validate:"required,gt=0,lte=1440"`
}

// ShiftInput creates or replaces one calendar day
type ShiftInput struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Hours int    `json:"hours" validate:"required,oneof=8 12 16 24"`
}

// OrderInput creates or replaces one backlog entry; zero position
// appends at the end of the backlog
type OrderInput struct {
	Ref      string  `json:"ref" validate:"required,min=1,max=60"`
	Denier   string  `json:"denier" validate:"required,min=1,max=60"`
	TargetKg float64 `json:"target_kg" validate:"required,gt=0"`
	Position int     `json:"position,omitempty" validate:"omitempty,min=1"`
}

// OrderRow is one backlog entry with its priority position
type OrderRow struct {
	Ref      string  `json:"ref"`
	Denier   string  `json:"denier"`
	TargetKg float64 `json:"target_kg"`
	Position int     `json:"position"`
}
