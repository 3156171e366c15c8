// Package capacity turns machine capability records into throughput
// numbers: kg per hour on the torsion side, per-post rates and operator
// optima on the rewinder side
package capacity

import (
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultOEE is the overall equipment effectiveness applied to all
	// theoretical rates
	DefaultOEE = 0.80

	// DefaultWaste is the mass fraction lost between raw input and
	// sellable output
	DefaultWaste = 0.03
)

// TorsionKgPerHour returns the effective hourly output of one torsion
// machine running a denier at the given rpm, twist density and post
// count. The 0.06 factor folds the minutes-to-hours and grams-to-kg
// conversions into one constant.
func TorsionKgPerHour(denier float64, rpm, twistsPerMeter, posts int) float64 {
	if denier <= 0 || rpm <= 0 || twistsPerMeter <= 0 || posts <= 0 {
		return 0
	}
	metersPerMinute := float64(rpm) / float64(twistsPerMeter)
	return metersPerMinute * (denier / 9000.0) * float64(posts) * 0.06 * DefaultOEE * (1 - DefaultWaste)
}

// RewinderKgPerHourPerPost returns the effective hourly output of a
// single rewinder post given the cycle time in minutes
func RewinderKgPerHourPerPost(tmMinutes float64) float64 {
	if tmMinutes <= 0 {
		return 0
	}
	return 60.0 / tmMinutes * DefaultOEE
}

// OptimalPostsPerOperator returns how many posts one operator can keep
// running: during one cycle of tmMinutes the operator has time for
// floor((mp + tm) / mp) mounts, with mp given in seconds
func OptimalPostsPerOperator(mpSeconds, tmMinutes float64) int {
	if mpSeconds <= 0 || tmMinutes <= 0 {
		return 1
	}
	mpMinutes := mpSeconds / 60.0
	n := int(math.Floor((mpMinutes + tmMinutes) / mpMinutes))
	if n < 1 {
		return 1
	}
	return n
}

// OperatorsFor returns the operators needed to staff posts posts at the
// given per-operator optimum
func OperatorsFor(posts, postsPerOperator int) int {
	if posts <= 0 {
		return 0
	}
	if postsPerOperator < 1 {
		postsPerOperator = 1
	}
	return (posts + postsPerOperator - 1) / postsPerOperator
}

// RawInputKg returns the raw material needed to yield netKg of sellable
// output after waste
func RawInputKg(netKg float64) float64 {
	if netKg <= 0 {
		return 0
	}
	return netKg / (1 - DefaultWaste)
}

// DenierValue extracts the numeric denier from a reference name such as
// "18000" or "6000 expo"; it returns 0 when no leading number is present
func DenierValue(name string) float64 {
	s := strings.TrimSpace(name)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}
