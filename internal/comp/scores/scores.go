// Package scores turns per-match result sheets into per-team aggregate
// scores, league rankings and (for knockouts) tie-broken match rankings.
//
// File I/O and YAML decoding are deliberately kept out of this package --
// they are the "out of core scope" collaborator named in the system
// specification. Callers (internal/comp/compstate) decode result sheets
// into Sheet values and hand them to Load*.
package scores

import (
	"fmt"
	"sort"

	"srcomp/internal/comp/model"
	"srcomp/internal/comp/ranker"
	"srcomp/internal/comp/rational"
)

// TeamSheetEntry is one team's row within a result sheet: the scorer-specific
// payload plus the disqualification/presence flags common to every sheet.
type TeamSheetEntry struct {
	Disqualified bool
	Present      bool
	Data         map[string]interface{}
}

// Sheet is a single decoded result sheet for one (arena, match) pair.
type Sheet struct {
	Arena       string
	MatchNumber int
	Teams       map[string]TeamSheetEntry
	ArenaZones  interface{}
	Other       interface{}
}

// Scorer computes game points from a sheet's team data. It is the per-game
// scorer plugin described in spec section 6, treated here as an injected
// pure function.
type Scorer interface {
	CalculateScores(teams map[string]TeamSheetEntry, arenaZones interface{}) (map[string]rational.Rat, error)
}

// Validator is optionally implemented by a Scorer to validate sheet data
// that isn't part of the scoring inputs themselves.
type Validator interface {
	Validate(other interface{}) error
}

// DuplicateScoresheetError reports a second result sheet for an
// (arena, match) pair that has already been loaded.
type DuplicateScoresheetError struct {
	ID model.MatchID
}

func (e DuplicateScoresheetError) Error() string {
	return fmt.Sprintf("scoresheet for arena %q match %d has already been added", e.ID.Arena, e.ID.Num)
}

// InvalidTeamError reports a result sheet mentioning a TLA absent from the
// team roster.
type InvalidTeamError struct {
	TLA string
}

func (e InvalidTeamError) Error() string {
	return fmt.Sprintf("team %s does not exist", e.TLA)
}

// BaseScores is the common per-match and per-team aggregation shared by the
// league, knockout and tiebreaker score buckets.
type BaseScores struct {
	GamePoints    map[model.MatchID]map[string]rational.Rat
	GamePositions map[model.MatchID]map[int][]string
	RankedPoints  map[model.MatchID]map[string]rational.Rat
	Teams         map[string]*model.TeamScore
}

func newBaseScores(teams []string) *BaseScores {
	b := &BaseScores{
		GamePoints:    map[model.MatchID]map[string]rational.Rat{},
		GamePositions: map[model.MatchID]map[int][]string{},
		RankedPoints:  map[model.MatchID]map[string]rational.Rat{},
		Teams:         map[string]*model.TeamScore{},
	}
	for _, tla := range teams {
		b.Teams[tla] = &model.TeamScore{}
	}
	return b
}

func loadBase(teams []string, sheets []Sheet, scorer Scorer) (*BaseScores, error) {
	b := newBaseScores(teams)

	for _, sheet := range sheets {
		id := model.MatchID{Arena: sheet.Arena, Num: sheet.MatchNumber}
		if _, exists := b.GamePoints[id]; exists {
			return nil, DuplicateScoresheetError{ID: id}
		}

		gamePoints, err := scorer.CalculateScores(sheet.Teams, sheet.ArenaZones)
		if err != nil {
			return nil, fmt.Errorf("scoring arena %q match %d: %w", sheet.Arena, sheet.MatchNumber, err)
		}
		if v, ok := scorer.(Validator); ok {
			if err := v.Validate(sheet.Other); err != nil {
				return nil, fmt.Errorf("validating arena %q match %d: %w", sheet.Arena, sheet.MatchNumber, err)
			}
		}

		dsq := ranker.TeamSet{}
		for tla, entry := range sheet.Teams {
			if entry.Disqualified || !entry.Present {
				dsq[tla] = struct{}{}
			}
		}

		b.GamePoints[id] = gamePoints
		positions := ranker.Positions(gamePoints, dsq)
		b.GamePositions[id] = positions
		b.RankedPoints[id] = ranker.RankedPoints(positions, dsq, ranker.DefaultPlacePoints)
	}

	for _, gamePoints := range b.GamePoints {
		for tla, score := range gamePoints {
			ts, ok := b.Teams[tla]
			if !ok {
				return nil, InvalidTeamError{TLA: tla}
			}
			ts.GamePoints = ts.GamePoints.Add(score)
		}
	}

	return b, nil
}

// LastScoredMatch returns the highest match number for which any score data
// has been recorded, or nil if none has.
func (b *BaseScores) LastScoredMatch() *int {
	if len(b.RankedPoints) == 0 {
		return nil
	}
	max := -1
	for id := range b.RankedPoints {
		if id.Num > max {
			max = id.Num
		}
	}
	return &max
}

// LeaguePosition pairs a TLA with its resolved league position.
type LeaguePosition struct {
	TLA      string
	Position int
}

// LeagueScores holds the scores accumulated across the league stage.
type LeagueScores struct {
	*BaseScores
	Positions  []LeaguePosition
	PositionOf map[string]int
}

// LoadLeague loads all league result sheets and ranks the competing teams.
func LoadLeague(teams []string, sheets []Sheet, scorer Scorer) (*LeagueScores, error) {
	base, err := loadBase(teams, sheets, scorer)
	if err != nil {
		return nil, err
	}

	for _, rankedPoints := range base.RankedPoints {
		for tla, pts := range rankedPoints {
			ts, ok := base.Teams[tla]
			if !ok {
				return nil, InvalidTeamError{TLA: tla}
			}
			ts.LeaguePoints = ts.LeaguePoints.Add(pts)
		}
	}

	ordered, positionOf := RankLeague(base.Teams)
	return &LeagueScores{BaseScores: base, Positions: ordered, PositionOf: positionOf}, nil
}

// RankLeague sorts teams by (TeamScore descending, TLA descending) and
// assigns positions, with teams tied on score sharing the same (lowest)
// position.
func RankLeague(teamScores map[string]*model.TeamScore) ([]LeaguePosition, map[string]int) {
	type pair struct {
		tla   string
		score model.TeamScore
	}
	pairs := make([]pair, 0, len(teamScores))
	for tla, ts := range teamScores {
		pairs = append(pairs, pair{tla, *ts})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if !pairs[i].score.Equal(pairs[j].score) {
			return pairs[j].score.Less(pairs[i].score)
		}
		return pairs[i].tla > pairs[j].tla
	})

	ordered := make([]LeaguePosition, len(pairs))
	positionOf := make(map[string]int, len(pairs))
	pos := 1
	haveLast := false
	var lastScore model.TeamScore
	for i, p := range pairs {
		if !haveLast || !p.score.Equal(lastScore) {
			pos = i + 1
		}
		ordered[i] = LeaguePosition{TLA: p.tla, Position: pos}
		positionOf[p.tla] = pos
		lastScore = p.score
		haveLast = true
	}
	return ordered, positionOf
}

// KnockoutScores holds the scores accumulated across the knockout stage,
// along with tie-broken match rankings that use league position to resolve
// ties on game points.
type KnockoutScores struct {
	*BaseScores
	ResolvedPositions map[model.MatchID][]string
}

// LoadKnockout loads all knockout result sheets and resolves each match's
// tied positions using the given league positions.
func LoadKnockout(teams []string, sheets []Sheet, scorer Scorer, leaguePositions map[string]int) (*KnockoutScores, error) {
	base, err := loadBase(teams, sheets, scorer)
	if err != nil {
		return nil, err
	}

	resolved := make(map[model.MatchID][]string, len(base.RankedPoints))
	for id, rankedPoints := range base.RankedPoints {
		resolved[id] = resolvePositions(rankedPoints, leaguePositions)
	}

	return &KnockoutScores{BaseScores: base, ResolvedPositions: resolved}, nil
}

// resolvePositions orders a knockout match's teams by ranked points
// descending, breaking ties by league position (better/smaller position
// wins), and finally by TLA for full determinism when both are equal (e.g.
// two not-yet-known teams).
func resolvePositions(rankedPoints map[string]rational.Rat, leaguePositions map[string]int) []string {
	type entry struct {
		tla       string
		points    rational.Rat
		leaguePos int
	}
	entries := make([]entry, 0, len(rankedPoints))
	for tla, pts := range rankedPoints {
		entries = append(entries, entry{tla: tla, points: pts, leaguePos: leaguePositions[tla]})
	}
	sort.Slice(entries, func(i, j int) bool {
		if c := entries[i].points.Cmp(entries[j].points); c != 0 {
			return c > 0
		}
		if entries[i].leaguePos != entries[j].leaguePos {
			return entries[i].leaguePos < entries[j].leaguePos
		}
		return entries[i].tla < entries[j].tla
	})

	ordered := make([]string, len(entries))
	for i, e := range entries {
		ordered[i] = e.tla
	}
	return ordered
}

// TiebreakerScores holds the scores for the (at most one) tiebreaker match.
type TiebreakerScores struct {
	*BaseScores
}

// LoadTiebreaker loads the tiebreaker result sheet, if any.
func LoadTiebreaker(teams []string, sheets []Sheet, scorer Scorer) (*TiebreakerScores, error) {
	base, err := loadBase(teams, sheets, scorer)
	if err != nil {
		return nil, err
	}
	return &TiebreakerScores{BaseScores: base}, nil
}

// Scores bundles the league, knockout and tiebreaker score buckets.
type Scores struct {
	League     *LeagueScores
	Knockout   *KnockoutScores
	Tiebreaker *TiebreakerScores
}

// LastScoredMatch returns the highest-numbered match that has been scored
// anywhere, checking tiebreaker, then knockout, then league.
func (s *Scores) LastScoredMatch() *int {
	if s.Tiebreaker != nil {
		if m := s.Tiebreaker.LastScoredMatch(); m != nil {
			return m
		}
	}
	if s.Knockout != nil {
		if m := s.Knockout.LastScoredMatch(); m != nil {
			return m
		}
	}
	if s.League != nil {
		if m := s.League.LastScoredMatch(); m != nil {
			return m
		}
	}
	return nil
}
