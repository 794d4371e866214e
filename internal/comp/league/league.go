// Package league expands the planned league match list into absolute-time
// match slots across the configured league periods, folding in delays,
// extra inter-match spacing, and team drop-outs.
package league

import (
	"fmt"
	"sort"
	"time"

	"srcomp/internal/comp/matchperiod"
	"srcomp/internal/comp/model"
	"srcomp/internal/comp/rangeexpr"
)

// PlannedMatch is one row of the league plan: arena name to the ordered list
// of team TLAs competing in it.
type PlannedMatch map[string][]string

// MatchSlotLengths are the configured pre/match/post timings; Total must
// equal their sum.
type MatchSlotLengths struct {
	Pre   time.Duration
	Match time.Duration
	Post  time.Duration
	Total time.Duration
}

// ExtraSpacingEntry adds extra pause time before each of the named match
// numbers.
type ExtraSpacingEntry struct {
	MatchNumbers string
	Duration     time.Duration
}

// WrongNumberOfTeamsError reports a scheduled slot whose team list doesn't
// match the arena's capacity after drop-out substitution.
type WrongNumberOfTeamsError struct {
	MatchNum int
	Arena    string
	Got      int
	Want     int
}

func (e WrongNumberOfTeamsError) Error() string {
	return fmt.Sprintf("match %d arena %q has %d teams, want %d", e.MatchNum, e.Arena, e.Got, e.Want)
}

// MalformedInputError reports a structural problem with the league plan or
// slot-length configuration.
type MalformedInputError struct {
	Msg string
}

func (e MalformedInputError) Error() string {
	return "malformed input: " + e.Msg
}

// Result is the outcome of building the league schedule.
type Result struct {
	Matches                []model.MatchSlot
	Periods                []model.MatchPeriod
	NPlannedLeagueMatches  int
	NLeagueMatches         int
}

// Build validates the slot lengths and planned matches, then lays out match
// slots across the given periods.
func Build(
	periods []model.MatchPeriod,
	planned map[int]PlannedMatch,
	delays []model.Delay,
	slotLengths MatchSlotLengths,
	extraSpacing []ExtraSpacingEntry,
	teams map[string]model.Team,
	numTeamsPerArena int,
) (*Result, error) {
	if slotLengths.Total != slotLengths.Pre+slotLengths.Match+slotLengths.Post {
		return nil, MalformedInputError{Msg: "match slot lengths are inconsistent"}
	}
	matchDuration := slotLengths.Total

	spacing, err := buildSpacing(extraSpacing)
	if err != nil {
		return nil, err
	}

	nPlanned := len(planned)
	matchNumbers := make([]int, 0, nPlanned)
	for n := range planned {
		matchNumbers = append(matchNumbers, n)
	}
	sort.Ints(matchNumbers)
	for i, n := range matchNumbers {
		if n != i {
			return nil, MalformedInputError{Msg: "league matches are not a contiguous 0-N range"}
		}
	}

	queue := make([]PlannedMatch, len(matchNumbers))
	for i, n := range matchNumbers {
		queue[i] = planned[n]
	}

	var matches []model.MatchSlot
	builtPeriods := make([]model.MatchPeriod, 0, len(periods))
	matchN := 0

	for _, period := range periods {
		clock := matchperiod.NewClock(period, delays)
		built := period
		built.Matches = nil

		clock.Iterslots(matchDuration, func(start time.Time) {
			if len(queue) == 0 {
				return
			}
			arenas := queue[0]
			queue = queue[1:]

			end := start.Add(matchDuration)
			slot := model.MatchSlot{}
			for arenaName, teamList := range arenas {
				teamList = removeDropOuts(teamList, matchN, teams)
				if len(teamList) != numTeamsPerArena {
					err = WrongNumberOfTeamsError{MatchNum: matchN, Arena: arenaName, Got: len(teamList), Want: numTeamsPerArena}
					return
				}
				ptrTeams := make([]*string, len(teamList))
				for i, tla := range teamList {
					if tla == "" {
						continue
					}
					v := tla
					ptrTeams[i] = &v
				}
				match := &model.Match{
					Num:                matchN,
					DisplayName:        fmt.Sprintf("Match %d", matchN),
					Arena:              arenaName,
					Teams:              ptrTeams,
					StartTime:          start,
					EndTime:            end,
					Kind:               model.League,
					UseResolvedRanking: false,
				}
				slot[arenaName] = match
			}

			built.Matches = append(built.Matches, slot)
			matches = append(matches, slot)
			matchN++

			if d, ok := spacing[matchN]; ok {
				clock.AdvanceTime(d)
			}
		})

		if err != nil {
			return nil, err
		}

		builtPeriods = append(builtPeriods, built)
	}

	return &Result{
		Matches:               matches,
		Periods:                builtPeriods,
		NPlannedLeagueMatches: nPlanned,
		NLeagueMatches:        len(matches),
	}, nil
}

func buildSpacing(entries []ExtraSpacingEntry) (map[int]time.Duration, error) {
	spacing := map[int]time.Duration{}
	for _, e := range entries {
		nums, err := rangeexpr.Parse(e.MatchNumbers)
		if err != nil {
			return nil, MalformedInputError{Msg: err.Error()}
		}
		for n := range nums {
			if _, exists := spacing[n]; exists {
				return nil, MalformedInputError{Msg: fmt.Sprintf("duplicate extra_spacing entry for match %d", n)}
			}
			spacing[n] = e.Duration
		}
	}
	return spacing, nil
}

// removeDropOuts replaces TLAs of teams that have dropped out by the given
// match number with an empty string, standing in for None.
func removeDropOuts(teamList []string, sinceMatch int, teams map[string]model.Team) []string {
	result := make([]string, len(teamList))
	for i, tla := range teamList {
		if tla == "" {
			continue
		}
		if t, ok := teams[tla]; ok && t.IsStillAround(sinceMatch) {
			result[i] = tla
		}
	}
	return result
}
