// Package validation produces non-fatal warnings about an otherwise
// successfully built competition: missing scores, schedules that don't
// have enough time for the matches planned, and teams referenced
// inconsistently between the schedule and the roster.
package validation

import (
	"fmt"
	"sort"

	"srcomp/internal/comp/knockout"
	"srcomp/internal/comp/model"
	"srcomp/internal/comp/scores"
)

// Warning is a single human-readable finding. It never blocks
// construction of the competition model.
type Warning struct {
	Category string
	Message  string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Category, w.Message)
}

// Report is the full set of warnings found for a competition.
type Report struct {
	Warnings []Warning
}

func (r *Report) add(category, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, Warning{Category: category, Message: fmt.Sprintf(format, args...)})
}

// CheckScheduleCount warns when the schedule doesn't contain enough time
// for every planned league match, or contains no matches at all.
func CheckScheduleCount(r *Report, nPlannedLeagueMatches, nLeagueMatches int) {
	if nPlannedLeagueMatches > nLeagueMatches {
		r.add("schedule", "only contains enough time for %d matches, %d are planned", nLeagueMatches, nPlannedLeagueMatches)
	}
	if nPlannedLeagueMatches == 0 {
		r.add("schedule", "doesn't contain any matches")
	}
}

// CheckMatchTeams warns about matches whose scheduled teams reference a
// TLA outside the roster, or appear more than once across the match's
// arenas. Empty and unknowable slots are ignored.
func CheckMatchTeams(r *Report, slot model.MatchSlot, knownTeams map[string]model.Team) {
	seen := map[string]int{}
	for _, match := range slot {
		for _, tla := range match.Teams {
			if tla == nil || *tla == knockout.UnknowableTeam {
				continue
			}
			seen[*tla]++
		}
	}

	var duplicates, extras []string
	for tla, count := range seen {
		if count > 1 {
			duplicates = append(duplicates, tla)
		}
		if _, ok := knownTeams[tla]; !ok {
			extras = append(extras, tla)
		}
	}
	sort.Strings(duplicates)
	sort.Strings(extras)

	if len(duplicates) > 0 {
		r.add("match", "teams %v appear more than once", duplicates)
	}
	if len(extras) > 0 {
		r.add("match", "teams %v do not exist", extras)
	}
}

// CheckScheduleTimings warns when more than one slot starts at the same
// instant; each slot is timed by one of its matches. matchDuration is not
// consulted, so slots that overlap without sharing a start time are not
// reported.
func CheckScheduleTimings(r *Report, slots []model.MatchSlot, matchDuration func() int64) {
	type timed struct {
		nums []int
	}
	byStart := map[int64]*timed{}
	var order []int64
	for _, slot := range slots {
		for _, m := range slot {
			t := m.StartTime.UnixNano()
			entry, ok := byStart[t]
			if !ok {
				entry = &timed{}
				byStart[t] = entry
				order = append(order, t)
			}
			entry.nums = append(entry.nums, m.Num)
			break
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	for _, t := range order {
		if len(byStart[t].nums) > 1 {
			r.add("schedule", "multiple matches scheduled for the same time: %v", byStart[t].nums)
		}
	}
}

// WarnMissingScores reports match numbers at or before the last scored
// match that are missing a league scoresheet for one or more arenas.
func WarnMissingScores(r *Report, league *scores.LeagueScores, schedule []model.MatchSlot) {
	lastScored := league.LastScoredMatch()
	if lastScored == nil {
		return
	}

	missing := map[int][]string{}
	for num, slot := range schedule {
		if num > *lastScored {
			break
		}
		for arena := range slot {
			id := model.MatchID{Arena: arena, Num: num}
			if _, ok := league.RankedPoints[id]; !ok {
				missing[num] = append(missing[num], arena)
			}
		}
	}

	nums := make([]int, 0, len(missing))
	for n := range missing {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	for _, n := range nums {
		arenas := missing[n]
		sort.Strings(arenas)
		r.add("scores", "match %d is missing scores for arenas %v", n, arenas)
	}
}
