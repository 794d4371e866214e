package api

import (
	"testing"
	"time"

	"srcomp/internal/comp/compstate"
	"srcomp/internal/comp/model"
	"srcomp/internal/comp/rational"
	"srcomp/internal/comp/scores"
	"srcomp/internal/comp/validation"
)

func sampleCompetition() *compstate.Competition {
	abc := "ABC"
	match := &model.Match{
		Num:       0,
		Arena:     "A",
		Kind:      model.League,
		Teams:     []*string{&abc},
		StartTime: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 4, 1, 9, 5, 0, 0, time.UTC),
	}

	return &compstate.Competition{
		StateCommit: "deadbeef",
		Teams: map[string]model.Team{
			"ABC": {TLA: "ABC", Name: "Team ABC"},
		},
		Arenas: map[string]model.Arena{
			"A": {Name: "A", DisplayName: "Arena A", Colour: "#ff0000"},
		},
		Scores: &scores.Scores{
			League: &scores.LeagueScores{
				BaseScores: &scores.BaseScores{
					RankedPoints: map[model.MatchID]map[string]rational.Rat{},
				},
				PositionOf: map[string]int{"ABC": 1},
			},
		},
		Schedule: &compstate.Schedule{
			Matches: []model.MatchSlot{{"A": match}},
		},
		Awards:   map[model.Award][]string{model.AwardFirst: {"ABC"}},
		Warnings: &validation.Report{Warnings: []validation.Warning{{Category: "schedule", Message: "doesn't contain any matches"}}},
	}
}

func TestTeamViewsIncludesLeaguePosition(t *testing.T) {
	views := teamViews(sampleCompetition())
	if len(views) != 1 {
		t.Fatalf("teamViews() returned %d teams, want 1", len(views))
	}
	if views[0].TLA != "ABC" || views[0].LeaguePosition != 1 {
		t.Errorf("teamViews()[0] = %+v", views[0])
	}
}

func TestArenaViews(t *testing.T) {
	views := arenaViews(sampleCompetition())
	if len(views) != 1 || views[0].DisplayName != "Arena A" {
		t.Errorf("arenaViews() = %+v", views)
	}
}

func TestScheduleAndMatchByNum(t *testing.T) {
	comp := sampleCompetition()

	schedule := scheduleViews(comp)
	if len(schedule) != 1 || schedule[0].Arena != "A" {
		t.Fatalf("scheduleViews() = %+v", schedule)
	}

	match, ok := matchByNum(comp, 0)
	if !ok {
		t.Fatal("matchByNum(0) not found")
	}
	if match.Kind != "league" {
		t.Errorf("matchByNum(0).Kind = %q, want league", match.Kind)
	}

	if _, ok := matchByNum(comp, 99); ok {
		t.Error("matchByNum(99) should not be found")
	}
}

func TestSummaryView(t *testing.T) {
	summary := summaryView(sampleCompetition())
	if summary.StateCommit != "deadbeef" || summary.TeamCount != 1 || summary.MatchCount != 1 {
		t.Errorf("summaryView() = %+v", summary)
	}
}

func TestAwardsAndWarningsViews(t *testing.T) {
	comp := sampleCompetition()

	awards := awardsView(comp)
	if len(awards["first"]) != 1 || awards["first"][0] != "ABC" {
		t.Errorf("awardsView() = %v", awards)
	}

	warnings := warningsView(comp)
	if len(warnings) != 1 {
		t.Errorf("warningsView() = %v", warnings)
	}
}
