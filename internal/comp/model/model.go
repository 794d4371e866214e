// Package model holds the immutable data types shared across the scheduling
// and scoring pipeline: teams, arenas, matches, periods and scores. Every
// value here is constructed once during competition load (see
// internal/comp/compstate) and never mutated afterwards.
package model

import (
	"time"

	"srcomp/internal/comp/rational"
)

// Team is a competing team, keyed by its TLA (three-letter acronym).
type Team struct {
	TLA             string
	Name            string
	Rookie          bool
	DroppedOutAfter *int
}

// IsStillAround reports whether the team is expected to still be competing
// by the time the given match number is reached.
func (t Team) IsStillAround(matchNumber int) bool {
	return t.DroppedOutAfter == nil || matchNumber <= *t.DroppedOutAfter
}

// Arena is a named physical competition arena.
type Arena struct {
	Name        string
	DisplayName string
	Colour      string
}

// Corner is a numbered starting zone within an arena, with its signal colour.
type Corner struct {
	Number int
	Colour string
}

// Delay is a single delay event applied at a point in time.
type Delay struct {
	At     time.Time
	Amount time.Duration
}

// MatchKind discriminates the three kinds of match in a competition.
type MatchKind string

const (
	League     MatchKind = "league"
	Knockout   MatchKind = "knockout"
	Tiebreaker MatchKind = "tiebreaker"
)

// Match is a single arena's part of a scheduled slot. Teams is fixed-length
// (NumTeamsPerArena); an empty slot is represented by a nil entry.
type Match struct {
	Num                 int
	DisplayName         string
	Arena               string
	Teams               []*string
	StartTime           time.Time
	EndTime             time.Time
	Kind                MatchKind
	UseResolvedRanking  bool
}

// MatchSlot is one simultaneous group of matches, keyed by arena name.
type MatchSlot map[string]*Match

// MatchPeriod groups a run of slots sharing a time window.
type MatchPeriod struct {
	StartTime   time.Time
	EndTime     time.Time
	MaxEndTime  time.Time
	Description string
	Matches     []MatchSlot
	Kind        MatchKind
}

// TeamScore is a team's accumulated league and game points. The zero value
// is a score of zero league points and zero game points and compares equal
// to any other all-zero TeamScore; there is no separate value for a missing
// score.
type TeamScore struct {
	LeaguePoints rational.Rat
	GamePoints   rational.Rat
}

// Less reports whether a sorts before b under the (league, game) lexicographic
// ordering used for league ranking.
func (a TeamScore) Less(b TeamScore) bool {
	if c := a.LeaguePoints.Cmp(b.LeaguePoints); c != 0 {
		return c < 0
	}
	return a.GamePoints.Cmp(b.GamePoints) < 0
}

// Equal reports whether a and b carry the same league and game points.
func (a TeamScore) Equal(b TeamScore) bool {
	return a.LeaguePoints.Equal(b.LeaguePoints) && a.GamePoints.Equal(b.GamePoints)
}

// Award is a category of prize handed out at the end of a competition.
type Award string

const (
	AwardFirst     Award = "first"
	AwardSecond    Award = "second"
	AwardThird     Award = "third"
	AwardRookie    Award = "rookie"
	AwardCommittee Award = "committee"
	AwardImage     Award = "image"
	AwardMovement  Award = "movement"
	AwardWeb       Award = "web"
)

// ValidAwards enumerates every award name the system knows about.
var ValidAwards = map[Award]bool{
	AwardFirst: true, AwardSecond: true, AwardThird: true, AwardRookie: true,
	AwardCommittee: true, AwardImage: true, AwardMovement: true, AwardWeb: true,
}

// MatchID keys per-match data (scores, positions) by arena and global number.
type MatchID struct {
	Arena string
	Num   int
}

// Builder accumulates match slots as the league, knockout and tiebreaker
// stages are laid out in turn, so that each later stage numbers its matches
// on from wherever the previous stage left off.
type Builder struct {
	Matches []MatchSlot
}

// NextNum returns the match number the next slot appended to the builder
// will receive.
func (b *Builder) NextNum() int {
	return len(b.Matches)
}

// Append records a newly built slot, claiming the next match number.
func (b *Builder) Append(slot MatchSlot) {
	b.Matches = append(b.Matches, slot)
}
