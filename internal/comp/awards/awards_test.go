package awards

import (
	"reflect"
	"testing"

	"srcomp/internal/comp/model"
	"srcomp/internal/comp/scores"
)

func TestComputeRookieAwardPicksBestPlacedRookie(t *testing.T) {
	sc := &scores.Scores{
		League: &scores.LeagueScores{
			Positions: []scores.LeaguePosition{
				{TLA: "ABC", Position: 1},
				{TLA: "DEF", Position: 2},
				{TLA: "GHI", Position: 3},
			},
		},
	}
	teams := map[string]model.Team{
		"ABC": {TLA: "ABC", Rookie: false},
		"DEF": {TLA: "DEF", Rookie: true},
		"GHI": {TLA: "GHI", Rookie: true},
	}

	got := computeRookieAward(sc, teams)
	want := map[model.Award][]string{model.AwardRookie: {"DEF"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("computeRookieAward() = %v, want %v", got, want)
	}
}

func TestComputeRookieAwardEmptyWhenNoRookies(t *testing.T) {
	sc := &scores.Scores{
		League: &scores.LeagueScores{
			Positions: []scores.LeaguePosition{{TLA: "ABC", Position: 1}},
		},
	}
	teams := map[string]model.Team{"ABC": {TLA: "ABC", Rookie: false}}

	got := computeRookieAward(sc, teams)
	want := map[model.Award][]string{model.AwardRookie: {}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("computeRookieAward() = %v, want %v", got, want)
	}
}

func TestApplyOverridesRejectsUnknownAward(t *testing.T) {
	_, err := ApplyOverrides(map[model.Award][]string{}, map[string][]string{"best_dressed": {"ABC"}})
	if _, ok := err.(UnknownAwardError); !ok {
		t.Errorf("ApplyOverrides() error = %v, want UnknownAwardError", err)
	}
}

func TestApplyOverridesReplacesComputedAward(t *testing.T) {
	computed := map[model.Award][]string{model.AwardFirst: {"ABC"}}
	got, err := ApplyOverrides(computed, map[string][]string{"first": {"XYZ"}})
	if err != nil {
		t.Fatalf("ApplyOverrides() error = %v", err)
	}
	if !reflect.DeepEqual(got[model.AwardFirst], []string{"XYZ"}) {
		t.Errorf("AwardFirst = %v, want [XYZ]", got[model.AwardFirst])
	}
}
