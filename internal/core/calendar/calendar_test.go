package calendar

import (
	"testing"

	"telar/internal/core/schedule"
	perr "telar/internal/platform/errors"
)

func TestNewAndLookup(t *testing.T) {
	c, err := New([]schedule.Shift{
		{Date: "2026-03-02", Hours: 16},
		{Date: "2026-03-01", Hours: 8},
		{Date: "2026-03-03", Hours: 24},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if c.Start() != "2026-03-01" {
		t.Fatalf("Start = %s", c.Start())
	}
	if c.End() != "2026-03-03" {
		t.Fatalf("End = %s", c.End())
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d", c.Len())
	}

	h, err := c.Hours("2026-03-02")
	if err != nil || h != 16 {
		t.Fatalf("Hours = %d, %v", h, err)
	}

	days := c.Days()
	want := []schedule.Date{"2026-03-01", "2026-03-02", "2026-03-03"}
	for i, d := range want {
		if days[i] != d {
			t.Fatalf("Days[%d] = %s, want %s", i, days[i], d)
		}
	}
}

func TestMissingShift(t *testing.T) {
	c, err := New([]schedule.Shift{{Date: "2026-03-01", Hours: 8}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.Hours("2026-03-02")
	if !perr.IsCode(err, perr.ErrorCodeMissingShift) {
		t.Fatalf("err = %v, want missing shift", err)
	}
}

func TestRejectsBadInput(t *testing.T) {
	cases := []struct {
		name   string
		shifts []schedule.Shift
	}{
		{"empty table", nil},
		{"bad date", []schedule.Shift{{Date: "03/01/2026", Hours: 8}}},
		{"bad hours", []schedule.Shift{{Date: "2026-03-01", Hours: 10}}},
		{"zero hours", []schedule.Shift{{Date: "2026-03-01", Hours: 0}}},
		{"duplicate day", []schedule.Shift{
			{Date: "2026-03-01", Hours: 8},
			{Date: "2026-03-01", Hours: 12},
		}},
	}
	for _, tc := range cases {
		if _, err := New(tc.shifts); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("%s: err = %v, want invalid argument", tc.name, err)
		}
	}
}
