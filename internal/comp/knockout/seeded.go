package knockout

import (
	"math/bits"
	"strings"
	"time"

	"srcomp/internal/comp/matchperiod"
	"srcomp/internal/comp/model"
	"srcomp/internal/comp/scores"
	"srcomp/internal/comp/seeding"
	"srcomp/internal/comp/stablerng"
)

// NumTeamsPerArena is fixed at four: the automatic bit-reversal seeding
// algorithm is only meaningful for four-team games (each match's top two
// progress to the next round).
const NumTeamsPerArena = 4

// SingleArenaConfig restricts late knockout rounds to a subset of arenas
// (e.g. so the final is played somewhere with better spectator visibility).
type SingleArenaConfig struct {
	Rounds int
	Arenas []string
}

// SeededConfig configures the automatically-seeded knockout scheduler.
type SeededConfig struct {
	RoundSpacing time.Duration
	FinalDelay   time.Duration
	SingleArena  SingleArenaConfig
	Arity        *int
}

// SeededScheduler generates a knockout bracket seeded from league
// standings, using the bit-reversal seeding pattern and progressing rounds
// by taking the top two of each parent match.
type SeededScheduler struct {
	builder       *model.Builder
	scores        *scores.Scores
	arenas        []string
	teams         map[string]model.Team
	config        SeededConfig
	matchDuration time.Duration
	period        model.MatchPeriod
	clock         *matchperiod.Clock
	rng           *stablerng.RNG
	rounds        [][]*model.Match
}

// NewSeededScheduler builds a scheduler for the given knockout period.
func NewSeededScheduler(
	builder *model.Builder,
	sc *scores.Scores,
	arenas []string,
	teams map[string]model.Team,
	periodConf model.MatchPeriod,
	delays []model.Delay,
	matchDuration time.Duration,
	cfg SeededConfig,
) *SeededScheduler {
	return &SeededScheduler{
		builder:       builder,
		scores:        sc,
		arenas:        arenas,
		teams:         teams,
		config:        cfg,
		matchDuration: matchDuration,
		period:        periodConf,
		clock:         matchperiod.NewClock(periodConf, delays),
	}
}

// Period returns the (now populated) knockout match period.
func (s *SeededScheduler) Period() model.MatchPeriod {
	return s.period
}

// Rounds returns the knockout rounds generated, earliest first, each a
// slice of matches in seeding order.
func (s *SeededScheduler) Rounds() [][]*model.Match {
	return s.rounds
}

// getRoundsRemaining returns log2(numMatches), the number of knockout
// rounds still to be scheduled once a round of this size has been added.
// numMatches is always a power of two (the bit-reversal seeding guarantees
// it), so this is exact.
func getRoundsRemaining(numMatches int) int {
	if numMatches <= 1 {
		return 0
	}
	return bits.Len(uint(numMatches)) - 1
}

func (s *SeededScheduler) getNonDroppedOutTeams(forMatch int) []string {
	teams := make([]string, 0, len(s.scores.League.Positions))
	for _, lp := range s.scores.League.Positions {
		if t, ok := s.teams[lp.TLA]; ok && t.IsStillAround(forMatch) {
			teams = append(teams, lp.TLA)
		}
	}
	return teams
}

func (s *SeededScheduler) getWinners(match *model.Match) []string {
	ranking := getRanking(s.scores, match.Arena, match.Num, NumTeamsPerArena)
	if len(ranking) < 2 {
		return ranking
	}
	return ranking[:2]
}

// AddKnockouts builds the full knockout bracket: the seeded first round,
// then successive rounds until a single final match remains.
func (s *SeededScheduler) AddKnockouts() error {
	s.rng = stablerng.New()

	if err := s.addFirstRound(); err != nil {
		return err
	}

	for len(s.rounds[len(s.rounds)-1]) > 1 {
		s.clock.AdvanceTime(s.config.RoundSpacing)

		roundsRemaining := getRoundsRemaining(len(s.rounds[len(s.rounds)-1]))

		arenas := s.arenas
		if roundsRemaining <= s.config.SingleArena.Rounds {
			arenas = s.config.SingleArena.Arenas
		}

		if len(s.rounds[len(s.rounds)-1]) == 2 {
			s.clock.AdvanceTime(s.config.FinalDelay)
		}

		if err := s.addRound(arenas, roundsRemaining-1); err != nil {
			return err
		}
	}

	return nil
}

func (s *SeededScheduler) addFirstRound() error {
	nextMatchNum := s.builder.NextNum()
	teams := s.getNonDroppedOutTeams(nextMatchNum)
	if !playedAllLeagueMatches(s.builder, s.scores) {
		for i := range teams {
			teams[i] = UnknowableTeam
		}
	}

	arity := len(teams)
	if s.config.Arity != nil && *s.config.Arity < arity {
		arity = *s.config.Arity
	}

	s.rng.Seed([]byte(strings.Join(teams, "")))

	groups := seeding.FirstRoundSeeding(arity)
	matches := make([][]string, len(groups))
	for i, group := range groups {
		matchTeams := make([]string, len(group))
		for j, seed := range group {
			matchTeams[j] = teams[seed]
		}
		matches[i] = matchTeams
	}

	roundsRemaining := getRoundsRemaining(len(matches))
	return s.addRoundOfMatches(matches, s.arenas, roundsRemaining)
}

func (s *SeededScheduler) addRound(arenas []string, roundsRemaining int) error {
	prevRound := s.rounds[len(s.rounds)-1]
	matches := make([][]string, 0, len(prevRound)/2)
	for i := 0; i < len(prevRound); i += 2 {
		winners := append(append([]string{}, s.getWinners(prevRound[i])...), s.getWinners(prevRound[i+1])...)
		matches = append(matches, winners)
	}
	return s.addRoundOfMatches(matches, arenas, roundsRemaining)
}

// addRoundOfMatches lays out one round's matches across the configured
// arenas. It stops and reports matchperiod.ErrOutOfTime the moment the
// knockout period runs out of scheduled time, rather than guessing at a
// slot for the matches that don't fit.
func (s *SeededScheduler) addRoundOfMatches(matches [][]string, arenas []string, roundsRemaining int) error {
	s.rounds = append(s.rounds, []*model.Match{})
	roundNum := 0

	for len(matches) > 0 {
		start, err := s.clock.CurrentTime()
		if err != nil {
			return err
		}
		end := start.Add(s.matchDuration)

		newMatches := model.MatchSlot{}
		for _, arena := range arenas {
			teams := padWithEmpty(matches[0], NumTeamsPerArena)
			matches = matches[1:]

			stablerng.Shuffle(s.rng, teams)

			num := s.builder.NextNum()
			displayName := GetMatchDisplayName(roundsRemaining, roundNum, num)

			match := &model.Match{
				Num:                num,
				DisplayName:        displayName,
				Arena:              arena,
				Teams:              toTeamPointers(teams),
				StartTime:          start,
				EndTime:            end,
				Kind:               model.Knockout,
				UseResolvedRanking: roundsRemaining != 0,
			}

			s.rounds[len(s.rounds)-1] = append(s.rounds[len(s.rounds)-1], match)
			newMatches[arena] = match

			if len(matches) == 0 {
				break
			}
		}

		s.clock.AdvanceTime(s.matchDuration)
		s.builder.Append(newMatches)
		s.period.Matches = append(s.period.Matches, newMatches)

		roundNum++
	}

	return nil
}
