package capacity

import (
	"math"
	"testing"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestTorsionKgPerHour(t *testing.T) {
	// 6000 rpm at 120 twists/m is 50 m/min; denier 18000 doubles the
	// 9000 base weight, so 18 posts land at 83.808 kg/h after OEE and waste
	got := TorsionKgPerHour(18000, 6000, 120, 18)
	if !almost(got, 83.808) {
		t.Fatalf("TorsionKgPerHour = %v, want 83.808", got)
	}
}

func TestTorsionKgPerHourZeroInputs(t *testing.T) {
	cases := []struct {
		name           string
		denier         float64
		rpm, tpm, post int
	}{
		{"zero denier", 0, 6000, 120, 18},
		{"zero rpm", 18000, 0, 120, 18},
		{"zero twists", 18000, 6000, 0, 18},
		{"zero posts", 18000, 6000, 120, 0},
	}
	for _, tc := range cases {
		if got := TorsionKgPerHour(tc.denier, tc.rpm, tc.tpm, tc.post); got != 0 {
			t.Fatalf("%s: got %v, want 0", tc.name, got)
		}
	}
}

func TestRewinderKgPerHourPerPost(t *testing.T) {
	if got := RewinderKgPerHourPerPost(12); !almost(got, 4.0) {
		t.Fatalf("RewinderKgPerHourPerPost(12) = %v, want 4", got)
	}
	if got := RewinderKgPerHourPerPost(0); got != 0 {
		t.Fatalf("RewinderKgPerHourPerPost(0) = %v, want 0", got)
	}
}

func TestOptimalPostsPerOperator(t *testing.T) {
	cases := []struct {
		mpSeconds float64
		tmMinutes float64
		want      int
	}{
		{180, 12, 5},  // 3 min mount, 12 min cycle
		{60, 10, 11},  // fast mount covers many posts
		{600, 5, 1},   // mount longer than cycle still staffs one post
		{0, 12, 1},    // degenerate mount time
		{180, 0, 1},   // degenerate cycle time
	}
	for _, tc := range cases {
		got := OptimalPostsPerOperator(tc.mpSeconds, tc.tmMinutes)
		if got != tc.want {
			t.Fatalf("OptimalPostsPerOperator(%v, %v) = %d, want %d",
				tc.mpSeconds, tc.tmMinutes, got, tc.want)
		}
	}
}

func TestOperatorsFor(t *testing.T) {
	cases := []struct {
		posts, per, want int
	}{
		{14, 5, 3},
		{28, 5, 6},
		{28, 28, 1},
		{0, 5, 0},
		{10, 0, 10},
	}
	for _, tc := range cases {
		if got := OperatorsFor(tc.posts, tc.per); got != tc.want {
			t.Fatalf("OperatorsFor(%d, %d) = %d, want %d", tc.posts, tc.per, got, tc.want)
		}
	}
}

func TestRawInputKg(t *testing.T) {
	got := RawInputKg(97)
	if !almost(got, 100) {
		t.Fatalf("RawInputKg(97) = %v, want 100", got)
	}
	if got := RawInputKg(0); got != 0 {
		t.Fatalf("RawInputKg(0) = %v, want 0", got)
	}
}

func TestDenierValue(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"18000", 18000},
		{"6000 expo", 6000},
		{" 9000 ", 9000},
		{"1500.5", 1500.5},
		{"expo", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := DenierValue(tc.in); got != tc.want {
			t.Fatalf("DenierValue(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
