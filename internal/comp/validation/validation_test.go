package validation

import (
	"testing"
	"time"

	"srcomp/internal/comp/model"
	"srcomp/internal/comp/rational"
	"srcomp/internal/comp/scores"
)

func TestCheckScheduleCountWarnsWhenUnderbooked(t *testing.T) {
	r := &Report{}
	CheckScheduleCount(r, 10, 5)
	if len(r.Warnings) != 1 || r.Warnings[0].Category != "schedule" {
		t.Fatalf("Warnings = %v", r.Warnings)
	}
}

func TestCheckScheduleCountWarnsWhenEmpty(t *testing.T) {
	r := &Report{}
	CheckScheduleCount(r, 0, 0)
	if len(r.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want 1 empty-schedule warning", r.Warnings)
	}
}

func TestCheckScheduleCountSilentWhenSufficient(t *testing.T) {
	r := &Report{}
	CheckScheduleCount(r, 5, 10)
	if len(r.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", r.Warnings)
	}
}

func TestCheckMatchTeamsWarnsOnDuplicatesAndUnknownTeams(t *testing.T) {
	abc, xyz := "ABC", "XYZ"
	slot := model.MatchSlot{
		"A": {Teams: []*string{&abc}},
		"B": {Teams: []*string{&abc, &xyz}},
	}
	known := map[string]model.Team{"ABC": {TLA: "ABC"}}

	r := &Report{}
	CheckMatchTeams(r, slot, known)

	if len(r.Warnings) != 2 {
		t.Fatalf("Warnings = %v, want 2", r.Warnings)
	}
}

func TestCheckMatchTeamsSilentForCleanSlot(t *testing.T) {
	abc := "ABC"
	slot := model.MatchSlot{"A": {Teams: []*string{&abc}}}
	known := map[string]model.Team{"ABC": {TLA: "ABC"}}

	r := &Report{}
	CheckMatchTeams(r, slot, known)
	if len(r.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", r.Warnings)
	}
}

func TestCheckScheduleTimingsWarnsOnCollision(t *testing.T) {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	slots := []model.MatchSlot{
		{"A": {Num: 0, StartTime: start}},
		{"A": {Num: 1, StartTime: start}},
	}

	r := &Report{}
	CheckScheduleTimings(r, slots, func() int64 { return 300 })
	if len(r.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want 1 collision warning", r.Warnings)
	}
}

func TestWarnMissingScoresReportsUnscoredArenas(t *testing.T) {
	league := &scores.LeagueScores{
		BaseScores: &scores.BaseScores{
			RankedPoints: map[model.MatchID]map[string]rational.Rat{
				{Arena: "A", Num: 0}: {"ABC": rational.FromInt(1)},
			},
		},
	}
	// Match 0 was scheduled on both arenas A and B, but only A has been scored.
	schedule := []model.MatchSlot{
		{"A": {Num: 0}, "B": {Num: 0}},
	}

	r := &Report{}
	WarnMissingScores(r, league, schedule)
	if len(r.Warnings) != 1 || r.Warnings[0].Category != "scores" {
		t.Fatalf("Warnings = %v", r.Warnings)
	}
}

func TestWarnMissingScoresSilentWhenNothingScoredYet(t *testing.T) {
	league := &scores.LeagueScores{
		BaseScores: &scores.BaseScores{RankedPoints: map[model.MatchID]map[string]rational.Rat{}},
	}
	schedule := []model.MatchSlot{{"A": {Num: 0}}}

	r := &Report{}
	WarnMissingScores(r, league, schedule)
	if len(r.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none when nothing scored yet", r.Warnings)
	}
}
