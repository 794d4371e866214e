package compstate

import (
	"time"

	"srcomp/internal/comp/matchperiod"
	"srcomp/internal/comp/model"
)

// StagingTimes is the set of staging deadlines computed for a single match,
// relative to that match's (pre-match-adjusted) start time.
type StagingTimes struct {
	Opens           time.Time
	Closes          time.Time
	Duration        time.Duration
	SignalTeams     time.Time
	SignalShepherds map[string]time.Time
}

// stagingOffsets holds the schedule-wide staging configuration, each value
// an offset to subtract from a match's adjusted start time.
type stagingOffsets struct {
	opens           time.Duration
	closes          time.Duration
	duration        time.Duration
	signalTeams     time.Duration
	signalShepherds map[string]time.Duration
}

// Schedule is the fully built set of match slots, periods and knockout
// rounds for a competition, along with the query surface named by the
// external interface contract.
type Schedule struct {
	Matches               []model.MatchSlot
	Periods               []model.MatchPeriod
	KnockoutRounds         [][]*model.Match
	Tiebreaker             *model.Match
	NPlannedLeagueMatches  int
	NLeagueMatches         int
	MatchDuration          time.Duration
	PreMatchDuration       time.Duration
	Delays                 []model.Delay
	staging                stagingOffsets
}

// NMatches returns the total number of matches scheduled so far across
// every stage.
func (s *Schedule) NMatches() int {
	return len(s.Matches)
}

// FinalMatch returns the last scheduled match -- the grand final, unless a
// tiebreaker has since been appended.
func (s *Schedule) FinalMatch() *model.Match {
	if len(s.Matches) == 0 {
		return nil
	}
	last := s.Matches[len(s.Matches)-1]
	for _, m := range last {
		return m
	}
	return nil
}

// MatchesAt returns every match (across arenas) whose slot covers the given
// instant.
func (s *Schedule) MatchesAt(date time.Time) []*model.Match {
	var result []*model.Match
	for _, slot := range s.Matches {
		for _, m := range slot {
			if !date.Before(m.StartTime) && date.Before(m.EndTime) {
				result = append(result, m)
			}
		}
	}
	return result
}

// PeriodAt returns the match period covering the given instant, or nil.
func (s *Schedule) PeriodAt(date time.Time) *model.MatchPeriod {
	for i := range s.Periods {
		p := &s.Periods[i]
		if !date.Before(p.StartTime) && date.Before(p.MaxEndTime) {
			return p
		}
	}
	return nil
}

// DelayAt returns the cumulative delay in effect at the given instant, for
// display purposes only -- scheduling itself always goes through a Clock.
func (s *Schedule) DelayAt(date time.Time) time.Duration {
	period := s.PeriodAt(date)
	if period == nil {
		return 0
	}

	var total time.Duration
	for _, d := range matchperiod.DelaysForPeriod(*period, s.Delays) {
		if d.At.After(date) {
			break
		}
		total += d.Amount
	}
	return total
}

// GetStagingTimes computes the staging deadlines for the given match,
// relative to its pre-match-adjusted start time.
func (s *Schedule) GetStagingTimes(match *model.Match) StagingTimes {
	matchStart := match.StartTime.Add(s.PreMatchDuration)

	shepherds := make(map[string]time.Time, len(s.staging.signalShepherds))
	for area, offset := range s.staging.signalShepherds {
		shepherds[area] = matchStart.Add(-offset)
	}

	return StagingTimes{
		Opens:           matchStart.Add(-s.staging.opens),
		Closes:          matchStart.Add(-s.staging.closes),
		Duration:        s.staging.duration,
		SignalTeams:     matchStart.Add(-s.staging.signalTeams),
		SignalShepherds: shepherds,
	}
}
