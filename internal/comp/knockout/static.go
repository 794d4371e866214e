package knockout

import (
	"fmt"
	"sort"
	"time"

	"srcomp/internal/comp/model"
	"srcomp/internal/comp/scores"
)

// StaticMatchConfig is one fixed match definition within a static bracket:
// the arena and kickoff time it's played at, and the ordered team
// references that feed it (either "S<n>" for a league seed, or a 3-digit
// "<round><match><position>" reference into an earlier static round).
type StaticMatchConfig struct {
	Arena     string
	StartTime time.Time
	Teams     []string
}

// StaticConfig is a full static bracket: rounds, each a map of match number
// to its configuration, in the shape the YAML config file uses.
type StaticConfig struct {
	Rounds []map[int]StaticMatchConfig
}

// BadReferenceError reports a team reference that can't be resolved: an
// out-of-range seed, or a reference to a match/position that doesn't exist.
type BadReferenceError struct {
	Ref string
	Msg string
}

func (e BadReferenceError) Error() string {
	return fmt.Sprintf("reference %q: %s", e.Ref, e.Msg)
}

// StaticScheduler plays out a knockout bracket entirely fixed by
// configuration, rather than seeded automatically from league standings.
// It assumes a single arena's worth of matches per slot, following the
// config verbatim.
type StaticScheduler struct {
	builder          *model.Builder
	scores           *scores.Scores
	teams            map[string]model.Team
	config           StaticConfig
	matchDuration    time.Duration
	period           model.MatchPeriod
	numTeamsPerArena int
	rounds           [][]*model.Match
}

// NewStaticScheduler builds a scheduler for the given fixed bracket.
func NewStaticScheduler(
	builder *model.Builder,
	sc *scores.Scores,
	teams map[string]model.Team,
	periodConf model.MatchPeriod,
	matchDuration time.Duration,
	numTeamsPerArena int,
	cfg StaticConfig,
) *StaticScheduler {
	return &StaticScheduler{
		builder:          builder,
		scores:           sc,
		teams:            teams,
		config:           cfg,
		matchDuration:    matchDuration,
		period:           periodConf,
		numTeamsPerArena: numTeamsPerArena,
	}
}

// Period returns the (now populated) knockout match period.
func (s *StaticScheduler) Period() model.MatchPeriod {
	return s.period
}

// Rounds returns the knockout rounds generated, earliest first.
func (s *StaticScheduler) Rounds() [][]*model.Match {
	return s.rounds
}

// getTeam resolves a single team reference. Until every league match has
// been scored, every reference resolves to UnknowableTeam rather than
// guessing at a result.
func (s *StaticScheduler) getTeam(teamRef string) (string, error) {
	if !playedAllLeagueMatches(s.builder, s.scores) {
		return UnknowableTeam, nil
	}

	if len(teamRef) > 0 && teamRef[0] == 'S' {
		positions := s.scores.League.Positions
		var seed int
		if _, err := fmt.Sscanf(teamRef[1:], "%d", &seed); err != nil {
			return "", BadReferenceError{Ref: teamRef, Msg: "not a valid seed reference"}
		}
		seed--
		if seed < 0 || seed >= len(positions) {
			return "", BadReferenceError{Ref: teamRef, Msg: fmt.Sprintf("there are only %d teams", len(positions))}
		}
		return positions[seed].TLA, nil
	}

	if len(teamRef) != 3 {
		return "", BadReferenceError{Ref: teamRef, Msg: "must be a seed reference or a 3-digit round/match/position reference"}
	}
	var roundNum, matchNum, pos int
	if _, err := fmt.Sscanf(teamRef, "%1d%1d%1d", &roundNum, &matchNum, &pos); err != nil {
		return "", BadReferenceError{Ref: teamRef, Msg: "not a valid round/match/position reference"}
	}

	if roundNum < 0 || roundNum >= len(s.rounds) {
		return "", BadReferenceError{Ref: teamRef, Msg: "references an unscheduled round"}
	}
	round := s.rounds[roundNum]
	if matchNum < 0 || matchNum >= len(round) {
		return "", BadReferenceError{Ref: teamRef, Msg: "references an unscheduled match"}
	}

	ranking := getRanking(s.scores, round[matchNum].Arena, round[matchNum].Num, s.numTeamsPerArena)
	if pos < 0 || pos >= len(ranking) {
		return "", BadReferenceError{Ref: teamRef, Msg: "references an invalid ranking position"}
	}
	return ranking[pos], nil
}

func (s *StaticScheduler) addMatch(matchInfo StaticMatchConfig, roundsRemaining, roundNum int) error {
	num := s.builder.NextNum()
	startTime := matchInfo.StartTime
	endTime := startTime.Add(s.matchDuration)

	teams := make([]string, 0, len(matchInfo.Teams))
	for _, ref := range matchInfo.Teams {
		tla, err := s.getTeam(ref)
		if err != nil {
			return err
		}
		teams = append(teams, tla)
	}
	teams = padWithEmpty(teams, s.numTeamsPerArena)

	displayName := GetMatchDisplayName(roundsRemaining, roundNum, num)
	match := &model.Match{
		Num:                num,
		DisplayName:        displayName,
		Arena:              matchInfo.Arena,
		Teams:              toTeamPointers(teams),
		StartTime:          startTime,
		EndTime:            endTime,
		Kind:               model.Knockout,
		UseResolvedRanking: roundsRemaining != 0,
	}

	s.rounds[len(s.rounds)-1] = append(s.rounds[len(s.rounds)-1], match)

	slot := model.MatchSlot{matchInfo.Arena: match}
	s.builder.Append(slot)
	s.period.Matches = append(s.period.Matches, slot)

	return nil
}

// AddKnockouts lays out every configured round in order, resolving each
// match's team references against either the league seeding or the
// results of earlier static rounds.
func (s *StaticScheduler) AddKnockouts() error {
	for roundNum, round := range s.config.Rounds {
		s.rounds = append(s.rounds, []*model.Match{})
		roundsRemaining := len(s.config.Rounds) - roundNum - 1

		matchNums := make([]int, 0, len(round))
		for n := range round {
			matchNums = append(matchNums, n)
		}
		sort.Ints(matchNums)

		for _, matchNum := range matchNums {
			if err := s.addMatch(round[matchNum], roundsRemaining, matchNum); err != nil {
				return err
			}
		}
	}
	return nil
}
