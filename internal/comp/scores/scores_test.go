package scores

import (
	"testing"

	"srcomp/internal/comp/model"
	"srcomp/internal/comp/rational"
)

func mustRat(n int64) rational.Rat {
	return rational.FromInt(n)
}

func TestRankLeagueOrdersByScoreThenTLA(t *testing.T) {
	teams := map[string]*model.TeamScore{
		"ABC": {LeaguePoints: mustRat(10), GamePoints: mustRat(2)},
		"DEF": {LeaguePoints: mustRat(10), GamePoints: mustRat(2)},
		"GHI": {LeaguePoints: mustRat(20), GamePoints: mustRat(0)},
	}

	ordered, positionOf := RankLeague(teams)

	if ordered[0].TLA != "GHI" || ordered[0].Position != 1 {
		t.Errorf("first place = %+v, want GHI at position 1", ordered[0])
	}
	// ABC and DEF tie on (league, game) points; higher TLA sorts first.
	if ordered[1].TLA != "DEF" || ordered[1].Position != 2 {
		t.Errorf("second place = %+v, want DEF at position 2", ordered[1])
	}
	if ordered[2].TLA != "ABC" || ordered[2].Position != 2 {
		t.Errorf("third place = %+v, want ABC tied at position 2", ordered[2])
	}

	if positionOf["GHI"] != 1 || positionOf["DEF"] != 2 || positionOf["ABC"] != 2 {
		t.Errorf("positionOf = %v", positionOf)
	}
}

func TestResolvePositionsBreaksTiesByLeaguePosition(t *testing.T) {
	rankedPoints := map[string]rational.Rat{
		"ABC": mustRat(8),
		"DEF": mustRat(8),
	}
	leaguePositions := map[string]int{"ABC": 3, "DEF": 1}

	got := resolvePositions(rankedPoints, leaguePositions)
	want := []string{"DEF", "ABC"}
	if got[0] != want[0] || got[1] != want[1] {
		t.Errorf("resolvePositions() = %v, want %v", got, want)
	}
}
