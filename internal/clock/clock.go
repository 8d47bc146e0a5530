// Package clock implements the match-period clock: a cursor that advances
// through a MatchPeriod, absorbing timed delays as it passes them, used by
// the match schedule and the automatic knockout scheduler to turn nominal
// slot counts into wall-clock start times.
package clock

import (
	"fmt"
	"sort"
	"time"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
)

// OutOfTimeError is returned when the clock is asked for a time beyond the
// end of its period (taking max_end_time and delays into account).
type OutOfTimeError struct {
	Period matchperiod.MatchPeriod
}

func (e *OutOfTimeError) Error() string {
	return fmt.Sprintf(
		"match period %q has no more time available (end %s, max end %s)",
		e.Period.Description, e.Period.EndTime, e.Period.MaxEndTime,
	)
}

// Clock walks a MatchPeriod's timeline, absorbing delays as the cursor
// passes them. The zero value is not usable; construct with New.
type Clock struct {
	period matchperiod.MatchPeriod

	cursor time.Time
	// rawCursor tracks where the cursor would be if no delay had ever
	// been absorbed, used for the "would have fit before delays" half of
	// the OutOfTime check.
	rawCursor time.Time

	pending []matchperiod.Delay // sorted by Time, ascending
}

// New builds a Clock for period, dropping any delay that falls before the
// period starts (such a delay can never become due within this period) and
// immediately absorbing any delay already due at the period's start.
func New(period matchperiod.MatchPeriod, delays []matchperiod.Delay) *Clock {
	c := &Clock{
		period:    period,
		cursor:    period.StartTime,
		rawCursor: period.StartTime,
	}

	for _, d := range delays {
		if d.Time.Before(period.StartTime) {
			continue
		}
		c.pending = append(c.pending, d)
	}
	sort.Slice(c.pending, func(i, j int) bool { return c.pending[i].Time.Before(c.pending[j].Time) })

	c.absorbDue()

	return c
}

// absorbDue repeatedly folds in any pending delay whose Time has been
// reached by the cursor, including delays revealed by absorbing an earlier
// one (overlapping/touching delays compound).
func (c *Clock) absorbDue() {
	for len(c.pending) > 0 {
		d := c.pending[0]
		if d.Time.After(c.cursor) {
			return
		}
		c.cursor = c.cursor.Add(d.Duration)
		c.pending = c.pending[1:]
	}
}

// CurrentTime returns the clock's current cursor, or an OutOfTimeError if
// the cursor has run past the period's allowance.
func (c *Clock) CurrentTime() (time.Time, error) {
	withinEnd := !c.cursor.After(c.period.EndTime)
	wouldHaveFit := !c.rawCursor.After(c.period.EndTime)
	withinMaxEnd := !c.cursor.After(c.period.MaxEndTime)

	if withinEnd || (wouldHaveFit && withinMaxEnd) {
		return c.cursor, nil
	}
	return time.Time{}, &OutOfTimeError{Period: c.period}
}

// AdvanceTime moves the cursor forward by d, then absorbs any delay now
// due. d is also added to the undelayed projection used by CurrentTime's
// overrun check.
func (c *Clock) AdvanceTime(d time.Duration) {
	c.cursor = c.cursor.Add(d)
	c.rawCursor = c.rawCursor.Add(d)
	c.absorbDue()
}

// Slots lazily yields slot start times spaced slot apart: each value is the
// pre-advance cursor, with AdvanceTime(slot) applied internally before
// computing the next one. Iteration stops (without error) the moment
// CurrentTime would fail.
//
// Go has no generator/yield syntax, so this is expressed as a visitor
// callback rather than the channel-based iterator some examples in this
// pack use elsewhere, to keep it a plain, inlineable loop for callers that
// need to interleave their own AdvanceTime calls between slots (see
// internal/schedule, which does exactly that for extra spacing).
func (c *Clock) Slots(slot time.Duration, visit func(t time.Time) (cont bool)) {
	first := true
	for {
		if !first {
			c.AdvanceTime(slot)
		}
		first = false

		t, err := c.CurrentTime()
		if err != nil {
			return
		}
		if !visit(t) {
			return
		}
	}
}
