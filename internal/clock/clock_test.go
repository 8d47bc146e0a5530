package clock

import (
	"testing"
	"time"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
)

func epoch(seconds int) time.Time {
	return time.Unix(0, 0).UTC().Add(time.Duration(seconds) * time.Second)
}

func period(start, end int, maxEnd ...int) matchperiod.MatchPeriod {
	e := epoch(end)
	me := e
	if len(maxEnd) > 0 {
		me = epoch(maxEnd[0])
	}
	return matchperiod.MatchPeriod{StartTime: epoch(start), EndTime: e, MaxEndTime: me}
}

func delay(at, dur int) matchperiod.Delay {
	return matchperiod.Delay{Time: epoch(at), Duration: time.Duration(dur) * time.Second}
}

func mustTime(t *testing.T, c *Clock) time.Time {
	t.Helper()
	got, err := c.CurrentTime()
	if err != nil {
		t.Fatalf("CurrentTime: %v", err)
	}
	return got
}

func TestAtStart(t *testing.T) {
	c := New(period(0, 4), nil)
	got := mustTime(t, c)
	if !got.Equal(epoch(0)) {
		t.Fatalf("got %v, want start of period", got)
	}
}

func TestAtStartDelayed(t *testing.T) {
	c := New(period(0, 4), []matchperiod.Delay{delay(0, 1)})
	got := mustTime(t, c)
	if !got.Equal(epoch(1)) {
		t.Fatalf("got %v, want 1", got)
	}
}

func TestAtStartDelayedTwice(t *testing.T) {
	c := New(period(0, 10), []matchperiod.Delay{delay(0, 2), delay(1, 3)})
	got := mustTime(t, c)
	if !got.Equal(epoch(5)) {
		t.Fatalf("got %v, want 5", got)
	}
}

func TestAtMaxEndWithDelay(t *testing.T) {
	c := New(period(0, 1, 2), []matchperiod.Delay{delay(1, 1)})
	c.AdvanceTime(1 * time.Second)
	got := mustTime(t, c)
	if !got.Equal(epoch(2)) {
		t.Fatalf("got %v, want 2", got)
	}
}

func TestBeyondEndNoDelay(t *testing.T) {
	c := New(period(0, 1), nil)
	c.AdvanceTime(5 * time.Second)
	if _, err := c.CurrentTime(); err == nil {
		t.Fatal("expected OutOfTimeError")
	}
}

func TestOverlappingDelays(t *testing.T) {
	c := New(period(0, 10), []matchperiod.Delay{delay(1, 2), delay(2, 1)})
	c.AdvanceTime(2 * time.Second)
	got := mustTime(t, c)
	if !got.Equal(epoch(5)) {
		t.Fatalf("got %v, want 5", got)
	}
}

func TestTouchingDelays(t *testing.T) {
	c := New(period(0, 10), []matchperiod.Delay{delay(1, 1), delay(2, 1)})
	c.AdvanceTime(2 * time.Second)
	got := mustTime(t, c)
	if !got.Equal(epoch(4)) {
		t.Fatalf("got %v, want 4", got)
	}
}

func TestSlotsNoDelays(t *testing.T) {
	c := New(period(0, 4), nil)
	var got []time.Time
	c.Slots(1*time.Second, func(tm time.Time) bool {
		got = append(got, tm)
		return true
	})
	if len(got) != 5 {
		t.Fatalf("got %d slots, want 5: %v", len(got), got)
	}
	for i, tm := range got {
		if !tm.Equal(epoch(i)) {
			t.Fatalf("slot %d = %v, want %v", i, tm, epoch(i))
		}
	}
}

func TestSlotsDelayBefore(t *testing.T) {
	c := New(period(0, 4), []matchperiod.Delay{delay(-1, 2)})
	got := mustTime(t, c)
	if !got.Equal(epoch(0)) {
		t.Fatalf("delay before period start should be dropped, got %v", got)
	}
}

func TestSlotsExtraGap(t *testing.T) {
	c := New(period(0, 6), nil)
	var got []time.Time
	first := true
	c.Slots(2*time.Second, func(tm time.Time) bool {
		got = append(got, tm)
		if first {
			c.AdvanceTime(3 * time.Second)
			first = false
		}
		return true
	})
	want := []time.Time{epoch(0), epoch(5)}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
