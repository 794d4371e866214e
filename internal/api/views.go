// internal/api/views.go
// JSON view structs for the competition query surface. The compstate
// types themselves carry unexported fields and a *time.Location that do
// not serialize cleanly, so every response is built as a flat, explicit
// view rather than marshalling compstate.Competition directly.

package api

import (
	"sort"
	"time"

	"srcomp/internal/comp/compstate"
	"srcomp/internal/comp/model"
)

// TeamView is a single team as seen over the API.
type TeamView struct {
	TLA             string `json:"tla"`
	Name            string `json:"name"`
	Rookie          bool   `json:"rookie"`
	DroppedOutAfter *int   `json:"dropped_out_after,omitempty"`
	LeaguePosition  int    `json:"league_position,omitempty"`
}

func teamViews(comp *compstate.Competition) []TeamView {
	views := make([]TeamView, 0, len(comp.Teams))
	for tla, team := range comp.Teams {
		views = append(views, TeamView{
			TLA:             tla,
			Name:            team.Name,
			Rookie:          team.Rookie,
			DroppedOutAfter: team.DroppedOutAfter,
			LeaguePosition:  comp.Scores.League.PositionOf[tla],
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].TLA < views[j].TLA })
	return views
}

// ArenaView is a single arena as seen over the API.
type ArenaView struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Colour      string `json:"colour"`
}

func arenaViews(comp *compstate.Competition) []ArenaView {
	views := make([]ArenaView, 0, len(comp.Arenas))
	for name, arena := range comp.Arenas {
		views = append(views, ArenaView{Name: name, DisplayName: arena.DisplayName, Colour: arena.Colour})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	return views
}

// MatchView is a single arena's half of a scheduled slot.
type MatchView struct {
	Num       int        `json:"num"`
	Arena     string     `json:"arena"`
	Kind      string     `json:"kind"`
	Teams     []*string  `json:"teams"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
}

func matchView(m *model.Match) MatchView {
	return MatchView{
		Num:       m.Num,
		Arena:     m.Arena,
		Kind:      string(m.Kind),
		Teams:     m.Teams,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
	}
}

func scheduleViews(comp *compstate.Competition) []MatchView {
	var views []MatchView
	for _, slot := range comp.Schedule.Matches {
		arenaNames := make([]string, 0, len(slot))
		for arena := range slot {
			arenaNames = append(arenaNames, arena)
		}
		sort.Strings(arenaNames)
		for _, arena := range arenaNames {
			views = append(views, matchView(slot[arena]))
		}
	}
	return views
}

func matchByNum(comp *compstate.Competition, num int) (MatchView, bool) {
	for _, slot := range comp.Schedule.Matches {
		for _, m := range slot {
			if m.Num == num {
				return matchView(m), true
			}
		}
	}
	return MatchView{}, false
}

// KnockoutRoundView is one round of the knockout bracket.
type KnockoutRoundView struct {
	Round   int         `json:"round"`
	Matches []MatchView `json:"matches"`
}

func knockoutViews(comp *compstate.Competition) []KnockoutRoundView {
	rounds := make([]KnockoutRoundView, len(comp.Schedule.KnockoutRounds))
	for i, round := range comp.Schedule.KnockoutRounds {
		matches := make([]MatchView, 0, len(round))
		for _, m := range round {
			matches = append(matches, matchView(m))
		}
		sort.Slice(matches, func(a, b int) bool { return matches[a].Num < matches[b].Num })
		rounds[i] = KnockoutRoundView{Round: i + 1, Matches: matches}
	}
	return rounds
}

// CompetitionSummary is the top-level GET /competition response.
type CompetitionSummary struct {
	StateCommit     string `json:"state_commit"`
	TeamCount       int    `json:"team_count"`
	MatchCount      int    `json:"match_count"`
	LastScoredMatch *int   `json:"last_scored_match,omitempty"`
	HasTiebreaker   bool   `json:"has_tiebreaker"`
	HasVenueLayout  bool   `json:"has_venue_layout"`
}

func summaryView(comp *compstate.Competition) CompetitionSummary {
	return CompetitionSummary{
		StateCommit:     comp.StateCommit,
		TeamCount:       len(comp.Teams),
		MatchCount:      comp.Schedule.NMatches(),
		LastScoredMatch: comp.Scores.LastScoredMatch(),
		HasTiebreaker:   comp.Schedule.Tiebreaker != nil,
		HasVenueLayout:  comp.Venue != nil,
	}
}

func awardsView(comp *compstate.Competition) map[string][]string {
	out := make(map[string][]string, len(comp.Awards))
	for award, tlas := range comp.Awards {
		out[string(award)] = tlas
	}
	return out
}

func warningsView(comp *compstate.Competition) []string {
	out := make([]string, 0, len(comp.Warnings.Warnings))
	for _, w := range comp.Warnings.Warnings {
		out = append(out, w.String())
	}
	return out
}
