// Package tiebreaker detects an unresolved final (more than one team tied
// for first) and constructs the single rematch needed to settle it.
package tiebreaker

import (
	"errors"
	"fmt"
	"time"

	"srcomp/internal/comp/model"
	"srcomp/internal/comp/scores"
)

// permutation is the fixed reseeding applied to the tied finalists: start
// from the final's corner order, then apply this swap twice over so the
// rematch doesn't simply repeat the final's arrangement.
var permutation = [4]int{3, 2, 0, 1}

// ErrNotRequired is returned by Build when the final has a single winner
// and no tiebreaker match is needed.
var ErrNotRequired = errors.New("tiebreaker: final is already resolved")

// ErrFinalNotScored is returned when the final hasn't been scored yet, so
// whether a tiebreaker is required can't be determined.
var ErrFinalNotScored = errors.New("tiebreaker: final has not been scored")

// Build inspects the final (the sole match of the last knockout round) and,
// if more than one team is tied for first place, constructs the tiebreaker
// match and period starting at the given time.
func Build(sc *scores.Scores, knockoutRounds [][]*model.Match, startTime time.Time, matchDuration time.Duration, nextMatchNum int) (*model.Match, *model.MatchPeriod, error) {
	finalRound := knockoutRounds[len(knockoutRounds)-1]
	if len(finalRound) != 1 {
		return nil, nil, fmt.Errorf("tiebreaker: final round has %d matches, want 1", len(finalRound))
	}
	final := finalRound[0]

	id := model.MatchID{Arena: final.Arena, Num: final.Num}
	positions, ok := sc.Knockout.GamePositions[id]
	if !ok {
		return nil, nil, ErrFinalNotScored
	}

	winners := positions[1]
	if len(winners) == 0 {
		return nil, nil, errors.New("tiebreaker: final has no winner")
	}
	if len(winners) == 1 {
		return nil, nil, ErrNotRequired
	}

	winnerSet := map[string]struct{}{}
	for _, tla := range winners {
		winnerSet[tla] = struct{}{}
	}

	seeded := make([]*string, len(final.Teams))
	for i, team := range final.Teams {
		if team == nil {
			continue
		}
		if _, isWinner := winnerSet[*team]; isWinner {
			seeded[i] = team
		}
	}

	reseeded := make([]*string, len(permutation))
	for n := range permutation {
		reseeded[n] = seeded[permutation[permutation[n]]]
	}

	endTime := startTime.Add(matchDuration)
	match := &model.Match{
		Num:                nextMatchNum,
		DisplayName:        fmt.Sprintf("Tiebreaker (#%d)", nextMatchNum),
		Arena:              final.Arena,
		Teams:              reseeded,
		StartTime:          startTime,
		EndTime:            endTime,
		Kind:               model.Tiebreaker,
		UseResolvedRanking: false,
	}

	slot := model.MatchSlot{final.Arena: match}
	period := &model.MatchPeriod{
		StartTime:   startTime,
		EndTime:     endTime,
		MaxEndTime:  endTime,
		Description: "Tiebreaker",
		Matches:     []model.MatchSlot{slot},
		Kind:        model.Tiebreaker,
	}

	return match, period, nil
}
