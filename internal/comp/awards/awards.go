// Package awards derives the prizes handed out at the end of a
// competition: 1st/2nd/3rd from the final's game positions, the
// rookie award from league standings, and any caller-supplied overrides.
package awards

import (
	"fmt"
	"sort"

	"srcomp/internal/comp/model"
	"srcomp/internal/comp/scores"
)

// UnknownAwardError reports an override naming an award outside the
// enumerated set.
type UnknownAwardError struct {
	Name string
}

func (e UnknownAwardError) Error() string {
	return fmt.Sprintf("unknown award %q", e.Name)
}

func computeMainAwards(sc *scores.Scores, knockoutRounds [][]*model.Match) map[model.Award][]string {
	if len(knockoutRounds) == 0 {
		return nil
	}
	finalRound := knockoutRounds[len(knockoutRounds)-1]
	if len(finalRound) != 1 {
		return nil
	}
	final := finalRound[0]
	id := model.MatchID{Arena: final.Arena, Num: final.Num}
	positions, ok := sc.Knockout.GamePositions[id]
	if !ok {
		return nil
	}

	awards := map[model.Award][]string{}
	for award, place := range map[model.Award]int{
		model.AwardFirst:  1,
		model.AwardSecond: 2,
		model.AwardThird:  3,
	} {
		candidates := append([]string{}, positions[place]...)
		sort.Strings(candidates)
		awards[award] = candidates
	}
	return awards
}

func computeRookieAward(sc *scores.Scores, teams map[string]model.Team) map[model.Award][]string {
	bestPosition := -1
	rookiePositions := map[string]int{}
	for _, lp := range sc.League.Positions {
		team, ok := teams[lp.TLA]
		if !ok || !team.Rookie {
			continue
		}
		rookiePositions[lp.TLA] = lp.Position
		if bestPosition == -1 || lp.Position < bestPosition {
			bestPosition = lp.Position
		}
	}
	if len(rookiePositions) == 0 {
		return map[model.Award][]string{model.AwardRookie: {}}
	}

	var winners []string
	for tla, pos := range rookiePositions {
		if pos == bestPosition {
			winners = append(winners, tla)
		}
	}
	sort.Strings(winners)
	return map[model.Award][]string{model.AwardRookie: winners}
}

// ApplyOverrides merges caller-supplied explicit award entries into awards,
// replacing or adding to whatever was computed automatically. A single TLA
// string is treated as a one-element list. Unknown award names are
// rejected outright.
func ApplyOverrides(awards map[model.Award][]string, overrides map[string][]string) (map[model.Award][]string, error) {
	for name, tlas := range overrides {
		award := model.Award(name)
		if !model.ValidAwards[award] {
			return nil, UnknownAwardError{Name: name}
		}
		awards[award] = tlas
	}
	return awards, nil
}

// Compute derives every award determinable from the current state: the
// finals-derived placings (if the final has been scored), and the rookie
// award. Awards that can't yet be determined are simply absent from the
// result.
func Compute(sc *scores.Scores, knockoutRounds [][]*model.Match, teams map[string]model.Team) map[model.Award][]string {
	awards := map[model.Award][]string{}
	for award, winners := range computeMainAwards(sc, knockoutRounds) {
		awards[award] = winners
	}
	for award, winners := range computeRookieAward(sc, teams) {
		awards[award] = winners
	}
	return awards
}
