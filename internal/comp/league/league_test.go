package league

import (
	"testing"
	"time"

	"srcomp/internal/comp/model"
)

func onePeriod(start time.Time, nSlots int, slotDuration time.Duration) model.MatchPeriod {
	return model.MatchPeriod{
		StartTime:  start,
		EndTime:    start.Add(time.Duration(nSlots) * slotDuration),
		MaxEndTime: start.Add(time.Duration(nSlots) * slotDuration),
		Kind:       model.League,
	}
}

func TestBuildLaysOutMatchesSequentially(t *testing.T) {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	lengths := MatchSlotLengths{Pre: 0, Match: 5 * time.Minute, Post: 0, Total: 5 * time.Minute}
	periods := []model.MatchPeriod{onePeriod(start, 2, lengths.Total)}
	planned := map[int]PlannedMatch{
		0: {"A": {"ABC", "DEF"}},
		1: {"A": {"GHI", "JKL"}},
	}
	teams := map[string]model.Team{
		"ABC": {TLA: "ABC"}, "DEF": {TLA: "DEF"}, "GHI": {TLA: "GHI"}, "JKL": {TLA: "JKL"},
	}

	result, err := Build(periods, planned, nil, lengths, nil, teams, 2)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if result.NLeagueMatches != 2 || result.NPlannedLeagueMatches != 2 {
		t.Fatalf("NLeagueMatches = %d, NPlannedLeagueMatches = %d", result.NLeagueMatches, result.NPlannedLeagueMatches)
	}

	first := result.Matches[0]["A"]
	if first.Num != 0 || first.StartTime != start {
		t.Errorf("first match = %+v", first)
	}
	second := result.Matches[1]["A"]
	if second.Num != 1 || !second.StartTime.Equal(start.Add(lengths.Total)) {
		t.Errorf("second match = %+v", second)
	}
}

func TestBuildRejectsInconsistentSlotLengths(t *testing.T) {
	lengths := MatchSlotLengths{Pre: 1 * time.Minute, Match: 5 * time.Minute, Post: 0, Total: 10 * time.Minute}
	_, err := Build(nil, map[int]PlannedMatch{}, nil, lengths, nil, nil, 2)
	if _, ok := err.(MalformedInputError); !ok {
		t.Errorf("Build() error = %v, want MalformedInputError", err)
	}
}

func TestBuildRejectsNonContiguousMatchNumbers(t *testing.T) {
	lengths := MatchSlotLengths{Total: 5 * time.Minute, Match: 5 * time.Minute}
	planned := map[int]PlannedMatch{0: {"A": {"ABC", "DEF"}}, 2: {"A": {"GHI", "JKL"}}}
	_, err := Build(nil, planned, nil, lengths, nil, nil, 2)
	if _, ok := err.(MalformedInputError); !ok {
		t.Errorf("Build() error = %v, want MalformedInputError", err)
	}
}

func TestBuildRejectsWrongTeamCount(t *testing.T) {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	lengths := MatchSlotLengths{Total: 5 * time.Minute, Match: 5 * time.Minute}
	periods := []model.MatchPeriod{onePeriod(start, 1, lengths.Total)}
	planned := map[int]PlannedMatch{0: {"A": {"ABC"}}}
	teams := map[string]model.Team{"ABC": {TLA: "ABC"}}

	_, err := Build(periods, planned, nil, lengths, nil, teams, 2)
	if _, ok := err.(WrongNumberOfTeamsError); !ok {
		t.Errorf("Build() error = %v, want WrongNumberOfTeamsError", err)
	}
}

func TestBuildSubstitutesDroppedOutTeams(t *testing.T) {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	lengths := MatchSlotLengths{Total: 5 * time.Minute, Match: 5 * time.Minute}
	periods := []model.MatchPeriod{onePeriod(start, 1, lengths.Total)}
	planned := map[int]PlannedMatch{0: {"A": {"ABC", "DEF"}}}
	droppedAt := -1
	teams := map[string]model.Team{
		"ABC": {TLA: "ABC", DroppedOutAfter: &droppedAt},
		"DEF": {TLA: "DEF"},
	}

	result, err := Build(periods, planned, nil, lengths, nil, teams, 2)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	match := result.Matches[0]["A"]
	if match.Teams[0] != nil {
		t.Errorf("dropped-out team slot = %v, want nil", match.Teams[0])
	}
	if match.Teams[1] == nil || *match.Teams[1] != "DEF" {
		t.Errorf("remaining team slot = %v, want DEF", match.Teams[1])
	}
}
