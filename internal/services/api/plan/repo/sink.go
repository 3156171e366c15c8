package repo

import (
	"context"

	"telar/internal/core/schedule"
	"telar/internal/platform/store"
)

// Sink records generated day slots for analytical queries
type Sink interface {
	InsertDaySlots(ctx context.Context, runID string, slots []schedule.DaySlot) error
}

// NewCH binds the sink to a clickhouse seam
func NewCH(ch store.Clickhouse) Sink { return &chSink{ch: ch} }

type chSink struct{ ch store.Clickhouse }

var daySlotCols = []string{
	"run_id", "date", "machine_id", "stage", "ref", "denier",
	"kg", "posts", "operators", "hours", "split", "idle",
}

func (s *chSink) InsertDaySlots(ctx context.Context, runID string, slots []schedule.DaySlot) error {
	if len(slots) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(slots))
	for _, sl := range slots {
		rows = append(rows, []any{
			runID, string(sl.Date), sl.MachineID, string(sl.Stage), sl.Ref, sl.Denier,
			sl.Kg, int32(sl.Posts), int32(sl.Operators), int32(sl.Hours), sl.Split, sl.Idle,
		})
	}
	return s.ch.Insert(ctx, "plan_day_slots", daySlotCols, rows)
}
