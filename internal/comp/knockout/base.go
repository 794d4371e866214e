// Package knockout generates the knockout stage of a competition, either
// seeded automatically from league standings (see seeded.go) or read from a
// fixed bracket definition (see static.go).
package knockout

import (
	"fmt"

	"srcomp/internal/comp/model"
	"srcomp/internal/comp/scores"
)

// UnknowableTeam is the sentinel used in place of a team reference that
// cannot yet be resolved because the matches feeding it haven't been
// scored.
const UnknowableTeam = "???"

// GetMatchDisplayName builds a human-readable display name for a knockout
// match, following the same rounds-remaining convention used by both
// scheduler variants.
func GetMatchDisplayName(roundsRemaining, roundNum, globalNum int) string {
	switch roundsRemaining {
	case 0:
		return fmt.Sprintf("Final (#%d)", globalNum)
	case 1:
		return fmt.Sprintf("Semi %d (#%d)", roundNum+1, globalNum)
	case 2:
		return fmt.Sprintf("Quarter %d (#%d)", roundNum+1, globalNum)
	default:
		return fmt.Sprintf("Match %d", globalNum)
	}
}

// playedAllLeagueMatches reports whether every league match registered so
// far in the builder has a recorded score.
func playedAllLeagueMatches(builder *model.Builder, sc *scores.Scores) bool {
	for _, slot := range builder.Matches {
		for _, m := range slot {
			if m.Kind != model.League {
				continue
			}
			id := model.MatchID{Arena: m.Arena, Num: m.Num}
			if _, ok := sc.League.GamePoints[id]; !ok {
				return false
			}
		}
	}
	return true
}

// getRanking returns the resolved ranking for a knockout match, or a list
// of UnknowableTeam sentinels (of the given width) if the match hasn't
// been scored yet.
func getRanking(sc *scores.Scores, arena string, num, numTeamsPerArena int) []string {
	id := model.MatchID{Arena: arena, Num: num}
	if positions, ok := sc.Knockout.ResolvedPositions[id]; ok {
		return positions
	}
	result := make([]string, numTeamsPerArena)
	for i := range result {
		result[i] = UnknowableTeam
	}
	return result
}

// padWithEmpty pads teams up to width with "" (standing in for an empty
// zone) so that random zone shuffling operates over the full-width slice,
// matching the legacy scheduler's pad-then-shuffle order.
func padWithEmpty(teams []string, width int) []string {
	for len(teams) < width {
		teams = append(teams, "")
	}
	return teams
}

// toTeamPointers converts a full-width slice (with "" standing in for an
// empty zone) into the *string slots used by model.Match.
func toTeamPointers(teams []string) []*string {
	result := make([]*string, len(teams))
	for i, tla := range teams {
		if tla == "" {
			continue
		}
		v := tla
		result[i] = &v
	}
	return result
}
