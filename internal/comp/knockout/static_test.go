package knockout

import (
	"testing"
	"time"

	"srcomp/internal/comp/model"
	"srcomp/internal/comp/rational"
	"srcomp/internal/comp/scores"
)

func scoredScores(leaguePositions []scores.LeaguePosition, leagueMatchID model.MatchID) *scores.Scores {
	return &scores.Scores{
		League: &scores.LeagueScores{
			BaseScores: &scores.BaseScores{
				GamePoints: map[model.MatchID]map[string]rational.Rat{
					leagueMatchID: {"ABC": rational.FromInt(1), "DEF": rational.FromInt(2)},
				},
			},
			Positions: leaguePositions,
		},
		Knockout: &scores.KnockoutScores{
			BaseScores:        &scores.BaseScores{},
			ResolvedPositions: map[model.MatchID][]string{},
		},
	}
}

func TestStaticSchedulerResolvesSeedReferences(t *testing.T) {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	builder := &model.Builder{}
	builder.Matches = []model.MatchSlot{
		{"A": {Num: 0, Arena: "A", Kind: model.League}},
	}
	leagueMatchID := model.MatchID{Arena: "A", Num: 0}
	sc := scoredScores([]scores.LeaguePosition{{TLA: "DEF", Position: 1}, {TLA: "ABC", Position: 2}}, leagueMatchID)

	cfg := StaticConfig{
		Rounds: []map[int]StaticMatchConfig{
			{0: {Arena: "A", StartTime: start, Teams: []string{"S1", "S2"}}},
		},
	}
	sched := NewStaticScheduler(builder, sc, nil, model.MatchPeriod{}, 5*time.Minute, 2, cfg)

	if err := sched.AddKnockouts(); err != nil {
		t.Fatalf("AddKnockouts() error = %v", err)
	}

	rounds := sched.Rounds()
	if len(rounds) != 1 || len(rounds[0]) != 1 {
		t.Fatalf("Rounds() = %v", rounds)
	}
	match := rounds[0][0]
	if *match.Teams[0] != "DEF" || *match.Teams[1] != "ABC" {
		t.Errorf("match teams = %v %v, want DEF ABC", match.Teams[0], match.Teams[1])
	}
	if match.DisplayName != "Final (#1)" {
		t.Errorf("DisplayName = %q, want Final (#1)", match.DisplayName)
	}
}

func TestStaticSchedulerRejectsBadSeedReference(t *testing.T) {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	builder := &model.Builder{
		Matches: []model.MatchSlot{{"A": {Num: 0, Arena: "A", Kind: model.League}}},
	}
	leagueMatchID := model.MatchID{Arena: "A", Num: 0}
	sc := scoredScores([]scores.LeaguePosition{{TLA: "ABC", Position: 1}}, leagueMatchID)

	cfg := StaticConfig{
		Rounds: []map[int]StaticMatchConfig{
			{0: {Arena: "A", StartTime: start, Teams: []string{"S9"}}},
		},
	}
	sched := NewStaticScheduler(builder, sc, nil, model.MatchPeriod{}, 5*time.Minute, 1, cfg)

	err := sched.AddKnockouts()
	if _, ok := err.(BadReferenceError); !ok {
		t.Errorf("AddKnockouts() error = %v, want BadReferenceError", err)
	}
}

func TestStaticSchedulerUnknowableBeforeLeagueComplete(t *testing.T) {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	builder := &model.Builder{
		Matches: []model.MatchSlot{{"A": {Num: 0, Arena: "A", Kind: model.League}}},
	}
	sc := &scores.Scores{
		League: &scores.LeagueScores{BaseScores: &scores.BaseScores{GamePoints: map[model.MatchID]map[string]rational.Rat{}}},
	}

	cfg := StaticConfig{
		Rounds: []map[int]StaticMatchConfig{
			{0: {Arena: "A", StartTime: start, Teams: []string{"S1", "S2"}}},
		},
	}
	sched := NewStaticScheduler(builder, sc, nil, model.MatchPeriod{}, 5*time.Minute, 2, cfg)

	if err := sched.AddKnockouts(); err != nil {
		t.Fatalf("AddKnockouts() error = %v", err)
	}
	match := sched.Rounds()[0][0]
	if *match.Teams[0] != UnknowableTeam || *match.Teams[1] != UnknowableTeam {
		t.Errorf("match teams = %v %v, want both %q", match.Teams[0], match.Teams[1], UnknowableTeam)
	}
}
