// Package matchperiod provides the clock used to lay out match slots within
// a single MatchPeriod, folding in delays as they occur.
package matchperiod

import (
	"errors"
	"time"

	"srcomp/internal/comp/model"
)

// ErrOutOfTime signals that a MatchPeriodClock has no more room for slots --
// either the period's scheduled duration or its hard maximum has been
// reached. Iterslots treats it as the end of the period. CurrentTime
// returns it to callers that drive the clock directly; the seeded knockout
// scheduler passes it on to its own caller, so a knockout period too short
// for its rounds fails the competition load.
var ErrOutOfTime = errors.New("matchperiod: out of time")

// Clock iterates monotonically over slot start-times within a MatchPeriod,
// automatically absorbing delays that fall inside the period.
type Clock struct {
	period      model.MatchPeriod
	delays      []model.Delay
	currentTime time.Time
	totalDelay  time.Duration
	hasDelay    bool
}

// NewClock creates a clock for the given period. Only delays at or after the
// period's start are considered; any that land at or before the initial
// current time are applied immediately.
func NewClock(period model.MatchPeriod, delays []model.Delay) *Clock {
	filtered := make([]model.Delay, 0, len(delays))
	for _, d := range delays {
		if !d.At.Before(period.StartTime) {
			filtered = append(filtered, d)
		}
	}
	sortDelays(filtered)

	c := &Clock{
		period:      period,
		delays:      filtered,
		currentTime: period.StartTime,
	}
	c.applyDelays()
	return c
}

// DelaysForPeriod returns the delays (sorted by time) that fall within the
// given period -- i.e. at or after its start -- for callers that need to
// inspect a period's delays without driving a Clock (e.g. Schedule.DelayAt).
func DelaysForPeriod(period model.MatchPeriod, delays []model.Delay) []model.Delay {
	filtered := make([]model.Delay, 0, len(delays))
	for _, d := range delays {
		if !d.At.Before(period.StartTime) {
			filtered = append(filtered, d)
		}
	}
	sortDelays(filtered)
	return filtered
}

func sortDelays(delays []model.Delay) {
	for i := 1; i < len(delays); i++ {
		for j := i; j > 0 && delays[j].At.Before(delays[j-1].At); j-- {
			delays[j], delays[j-1] = delays[j-1], delays[j]
		}
	}
}

func (c *Clock) applyDelay(amount time.Duration) {
	c.currentTime = c.currentTime.Add(amount)
	c.totalDelay += amount
	c.hasDelay = true
}

func (c *Clock) applyDelays() {
	for len(c.delays) > 0 && !c.delays[0].At.After(c.currentTime) {
		d := c.delays[0]
		c.delays = c.delays[1:]
		c.applyDelay(d.Amount)
	}
}

func (c *Clock) timeWithoutDelays() time.Time {
	if !c.hasDelay {
		return c.currentTime
	}
	return c.currentTime.Add(-c.totalDelay)
}

// CurrentTime returns the clock's apparent current time, or ErrOutOfTime if
// the period's maximum end has been passed, or the scheduled (undelayed)
// portion of the period has been filled.
func (c *Clock) CurrentTime() (time.Time, error) {
	ct := c.currentTime

	if ct.After(c.period.MaxEndTime) {
		return time.Time{}, ErrOutOfTime
	}

	if c.timeWithoutDelays().After(c.period.EndTime) {
		return time.Time{}, ErrOutOfTime
	}

	return ct, nil
}

// AdvanceTime moves the clock forward by d, then applies any delays that
// have now come due.
func (c *Clock) AdvanceTime(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
	c.applyDelays()
}

// Iterslots calls yield with each available slot start time of the given
// duration, advancing the clock by slotDuration between calls, until the
// period runs out of time.
func (c *Clock) Iterslots(slotDuration time.Duration, yield func(time.Time)) {
	for {
		t, err := c.CurrentTime()
		if err != nil {
			return
		}
		yield(t)
		c.AdvanceTime(slotDuration)
	}
}
