// Package planner builds the downstream demand schedule: one pass over
// the calendar allocating the rewinder hall to the backlog in priority
// order, splitting heavy references across two lines to keep the
// operator load inside the sustainable band
package planner

import (
	"sort"

	"telar/internal/core/calendar"
	"telar/internal/core/capacity"
	"telar/internal/core/schedule"
	perr "telar/internal/platform/errors"
)

// Epsilon is the mass tolerance below which a remaining target counts
// as done
const Epsilon = 1e-6

type item struct {
	order     schedule.Order
	remaining float64
}

// Plan walks day by day from the calendar start until the backlog is
// exhausted. Each day the highest-priority outstanding reference gets
// the line; a heavy reference is split into two streams on separate
// lines, with the second stream taking the next outstanding reference
// or idling when none exists.
func Plan(
	snap schedule.Snapshot,
	pol schedule.Policy,
	res *capacity.Resolver,
	cal *calendar.Calendar,
) ([]schedule.DaySlot, error) {
	lines := rewinderLines(snap)
	if len(lines) == 0 {
		return nil, perr.ConfigMissingf("snapshot has no rewinder lines")
	}

	items := make([]item, len(snap.Orders))
	for i, o := range snap.Orders {
		items[i] = item{order: o, remaining: o.TargetKg}
	}

	var slots []schedule.DaySlot
	day := cal.Start()

	for elapsed := 0; ; elapsed++ {
		idx := nextOutstanding(items, 0)
		if idx < 0 {
			break
		}
		if elapsed >= pol.MaxDays {
			return nil, perr.Infeasiblef("backlog not exhausted after %d days", pol.MaxDays)
		}

		hours, err := cal.Hours(day)
		if err != nil {
			return nil, err
		}

		first := &items[idx]
		d, err := res.Demand(first.order.Denier)
		if err != nil {
			return nil, err
		}

		if pol.Heavy(d.PostsRequired) {
			daySlots, err := splitDay(items, idx, day, hours, lines, pol, res, d)
			if err != nil {
				return nil, err
			}
			slots = append(slots, daySlots...)
		} else {
			posts := d.PostsRequired
			if posts > pol.LinePosts {
				posts = pol.LinePosts
			}
			if posts > lines[0].Posts {
				posts = lines[0].Posts
			}
			slots = append(slots, produce(first, day, lines[0].ID, hours, posts, d, false))
		}

		day = day.Next()
	}

	return slots, nil
}

// splitDay emits the two streams of a heavy day, each bounded by the
// policy width, the hosting line and the operator band. Stream one
// always carries the heavy reference; stream two carries the next
// outstanding reference when one exists, otherwise an explicit idle
// slot keeps the reserved capacity visible.
func splitDay(
	items []item,
	idx int,
	day schedule.Date,
	hours int,
	lines []schedule.Machine,
	pol schedule.Policy,
	res *capacity.Resolver,
	d capacity.DemandRate,
) ([]schedule.DaySlot, error) {
	first := &items[idx]
	if len(lines) < 2 {
		return nil, perr.ConfigMissingf(
			"splitting reference %s needs a second rewinder line", first.order.Ref)
	}

	out := []schedule.DaySlot{
		produce(first, day, lines[0].ID, hours, streamPosts(lines[0], pol, d), d, true),
	}

	next := nextOutstanding(items, idx+1)
	if next < 0 {
		idlePosts := pol.SplitStreamPosts
		if idlePosts > lines[1].Posts {
			idlePosts = lines[1].Posts
		}
		out = append(out, schedule.DaySlot{
			Date:      day,
			MachineID: lines[1].ID,
			Stage:     schedule.StageRewinder,
			Posts:     idlePosts,
			Hours:     hours,
			Split:     true,
			Idle:      true,
		})
		return out, nil
	}

	second := &items[next]
	d2, err := res.Demand(second.order.Denier)
	if err != nil {
		return nil, err
	}
	posts := streamPosts(lines[1], pol, d2)
	if d2.PostsRequired < posts {
		posts = d2.PostsRequired
	}
	out = append(out, produce(second, day, lines[1].ID, hours, posts, d2, true))
	return out, nil
}

// streamPosts bounds a split stream by the policy width, the hosting
// line's post capacity and the operator band
func streamPosts(line schedule.Machine, pol schedule.Policy, d capacity.DemandRate) int {
	posts := pol.SplitStreamPosts
	if posts > line.Posts {
		posts = line.Posts
	}
	if band := pol.OperatorBandMax * d.PostsPerOperator; posts > band {
		posts = band
	}
	return posts
}

// produce allocates up to posts*rate*hours against the item's remaining
// target and returns the resulting slot
func produce(
	it *item,
	day schedule.Date,
	machineID string,
	hours, posts int,
	d capacity.DemandRate,
	split bool,
) schedule.DaySlot {
	kg := float64(posts) * d.PerPostKgPerHour * float64(hours)
	if kg > it.remaining {
		kg = it.remaining
	}
	it.remaining -= kg

	return schedule.DaySlot{
		Date:      day,
		MachineID: machineID,
		Stage:     schedule.StageRewinder,
		Ref:       it.order.Ref,
		Denier:    it.order.Denier,
		Kg:        kg,
		Posts:     posts,
		Operators: capacity.OperatorsFor(posts, d.PostsPerOperator),
		Hours:     hours,
		Split:     split,
	}
}

func nextOutstanding(items []item, from int) int {
	for i := from; i < len(items); i++ {
		if items[i].remaining > Epsilon {
			return i
		}
	}
	return -1
}

func rewinderLines(snap schedule.Snapshot) []schedule.Machine {
	var lines []schedule.Machine
	for _, m := range snap.Machines {
		if m.Stage == schedule.StageRewinder {
			lines = append(lines, m)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines
}
