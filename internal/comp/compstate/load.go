// Package compstate is the façade that ties every other internal/comp/*
// package together: it loads a competition state directory from disk,
// builds the league schedule, seeds and progresses the knockout bracket,
// injects a tiebreaker if required, computes awards, and cross-checks the
// venue layout -- exposing the single Competition query surface described
// by the system's external interface contract.
package compstate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"srcomp/internal/comp/awards"
	"srcomp/internal/comp/knockout"
	"srcomp/internal/comp/league"
	"srcomp/internal/comp/model"
	"srcomp/internal/comp/scores"
	"srcomp/internal/comp/tiebreaker"
	"srcomp/internal/comp/validation"
	"srcomp/internal/comp/venue"
)

// Competition is the fully resolved in-memory model built from a state
// directory: every sub-structure named by the query surface.
type Competition struct {
	Root        string
	StateCommit string

	Teams    map[string]model.Team
	Arenas   map[string]model.Arena
	Corners  map[int]model.Corner
	Timezone *time.Location

	Scores   *scores.Scores
	Schedule *Schedule
	Venue    *venue.Venue
	Awards   map[model.Award][]string
	Warnings *validation.Report
}

// Options configures a Load call.
type Options struct {
	Scorer         ScorerLoader
	StateInspector StateInspector
}

// Load reads every file of a competition state directory and builds the
// fully resolved model. Any MalformedInput, InvalidTeam, DuplicateScoresheet,
// WrongNumberOfTeams or UnknownAward error is fatal: no partial Competition
// is ever returned.
func Load(root string, opts Options) (*Competition, error) {
	if opts.Scorer == nil {
		opts.Scorer = DefaultScorerLoader
	}
	if opts.StateInspector == nil {
		opts.StateInspector = GitStateInspector{}
	}

	commit, err := opts.StateInspector.StateCommit(root)
	if err != nil {
		commit = ""
	}

	teams, err := loadTeams(filepath.Join(root, "teams.yaml"))
	if err != nil {
		return nil, err
	}

	arenas, corners, err := loadArenas(filepath.Join(root, "arenas.yaml"))
	if err != nil {
		return nil, err
	}

	var scheduleDoc ScheduleDoc
	if err := readYAML(filepath.Join(root, "schedule.yaml"), &scheduleDoc); err != nil {
		return nil, err
	}

	tz, err := loadTimezone(scheduleDoc.Timezone)
	if err != nil {
		return nil, err
	}

	var leagueDoc LeagueDoc
	if err := readYAML(filepath.Join(root, "league.yaml"), &leagueDoc); err != nil {
		return nil, err
	}

	scorer, err := opts.Scorer(root)
	if err != nil {
		return nil, fmt.Errorf("loading scorer: %w", err)
	}

	teamTLAs := make([]string, 0, len(teams))
	for tla := range teams {
		teamTLAs = append(teamTLAs, tla)
	}
	sort.Strings(teamTLAs)

	leagueSheets, err := loadSheets(filepath.Join(root, "league"))
	if err != nil {
		return nil, err
	}
	leagueScores, err := scores.LoadLeague(teamTLAs, leagueSheets, scorer)
	if err != nil {
		return nil, err
	}

	sched, builder, err := buildLeagueSchedule(scheduleDoc, leagueDoc, teams)
	if err != nil {
		return nil, err
	}

	sc := &scores.Scores{League: leagueScores}

	knockoutSheets, err := loadSheets(filepath.Join(root, "knockout"))
	if err != nil {
		return nil, err
	}
	knockoutScores, err := scores.LoadKnockout(teamTLAs, knockoutSheets, scorer, leagueScores.PositionOf)
	if err != nil {
		return nil, err
	}
	sc.Knockout = knockoutScores

	knockoutRounds, err := buildKnockout(builder, sc, arenas, teams, scheduleDoc)
	if err != nil {
		return nil, err
	}

	var tiebreakerMatch *model.Match
	if scheduleDoc.Tiebreaker != nil {
		match, period, err := tiebreaker.Build(sc, knockoutRounds, *scheduleDoc.Tiebreaker, sched.MatchDuration, builder.NextNum())
		switch err {
		case nil:
			tiebreakerMatch = match
			builder.Append(model.MatchSlot{match.Arena: match})
			sched.Periods = append(sched.Periods, *period)
			tiebreakerSheets, err := loadSheets(filepath.Join(root, "tiebreaker"))
			if err != nil {
				return nil, err
			}
			tbScores, err := scores.LoadTiebreaker(teamTLAs, tiebreakerSheets, scorer)
			if err != nil {
				return nil, err
			}
			sc.Tiebreaker = tbScores
		case tiebreaker.ErrNotRequired, tiebreaker.ErrFinalNotScored:
			// no tiebreaker needed (yet)
		default:
			return nil, err
		}
	}

	sched.Matches = builder.Matches
	sched.KnockoutRounds = knockoutRounds
	sched.Tiebreaker = tiebreakerMatch

	computedAwards := awards.Compute(sc, knockoutRounds, teams)
	if data, err := os.ReadFile(filepath.Join(root, "awards.yaml")); err == nil {
		var raw map[string]yaml.Node
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing awards.yaml: %w", err)
		}
		overrides := make(map[string][]string, len(raw))
		for name, node := range raw {
			var tlas []string
			if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str" {
				tlas = []string{node.Value}
			} else if err := node.Decode(&tlas); err != nil {
				return nil, fmt.Errorf("parsing awards.yaml: award %q: %w", name, err)
			}
			overrides[name] = tlas
		}
		computedAwards, err = awards.ApplyOverrides(computedAwards, overrides)
		if err != nil {
			return nil, err
		}
	}

	v, err := loadVenue(root, teamTLAs)
	if err != nil {
		return nil, err
	}

	warnings := &validation.Report{}
	validation.CheckScheduleCount(warnings, sched.NPlannedLeagueMatches, sched.NLeagueMatches)
	for _, slot := range sched.Matches {
		validation.CheckMatchTeams(warnings, slot, teams)
	}
	validation.WarnMissingScores(warnings, leagueScores, sched.Matches)

	return &Competition{
		Root:        root,
		StateCommit: commit,
		Teams:       teams,
		Arenas:      arenas,
		Corners:     corners,
		Timezone:    tz,
		Scores:      sc,
		Schedule:    sched,
		Venue:       v,
		Awards:      computedAwards,
		Warnings:    warnings,
	}, nil
}

func readYAML(path string, dest interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return MalformedInputError{Msg: fmt.Sprintf("reading %s: %v", path, err)}
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return MalformedInputError{Msg: fmt.Sprintf("parsing %s: %v", path, err)}
	}
	return nil
}

// MalformedInputError reports a structural problem discovered while loading
// the competition state directory.
type MalformedInputError struct {
	Msg string
}

func (e MalformedInputError) Error() string {
	return "malformed input: " + e.Msg
}

func loadTeams(path string) (map[string]model.Team, error) {
	var doc map[string]TeamConfig
	if err := readYAML(path, &doc); err != nil {
		return nil, err
	}
	teams := make(map[string]model.Team, len(doc))
	for tla, cfg := range doc {
		upper := strings.ToUpper(tla)
		teams[upper] = model.Team{
			TLA:             upper,
			Name:            cfg.Name,
			Rookie:          cfg.Rookie,
			DroppedOutAfter: cfg.DroppedOutAfter,
		}
	}
	return teams, nil
}

func loadArenas(path string) (map[string]model.Arena, map[int]model.Corner, error) {
	var doc ArenasDoc
	if err := readYAML(path, &doc); err != nil {
		return nil, nil, err
	}
	arenas := make(map[string]model.Arena, len(doc.Arenas))
	for name, cfg := range doc.Arenas {
		colour := cfg.Colour
		if colour == "" {
			colour = "#FFFFFF"
		}
		arenas[name] = model.Arena{Name: name, DisplayName: cfg.DisplayName, Colour: colour}
	}
	corners := make(map[int]model.Corner, len(doc.Corners))
	for num, cfg := range doc.Corners {
		corners[num] = model.Corner{Number: num, Colour: cfg.Colour}
	}
	return arenas, corners, nil
}

func loadTimezone(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, MalformedInputError{Msg: fmt.Sprintf("unknown timezone %q: %v", name, err)}
	}
	return loc, nil
}

// loadSheets reads every NNN.yaml result sheet under root/{kind}/{arena}/,
// as named by the persisted state layout.
func loadSheets(dir string) ([]scores.Sheet, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, MalformedInputError{Msg: err.Error()}
	}

	var sheets []scores.Sheet
	for _, arenaEntry := range entries {
		if !arenaEntry.IsDir() {
			continue
		}
		arenaDir := filepath.Join(dir, arenaEntry.Name())
		files, err := os.ReadDir(arenaDir)
		if err != nil {
			return nil, MalformedInputError{Msg: err.Error()}
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
				continue
			}
			var doc ResultSheetDoc
			if err := readYAML(filepath.Join(arenaDir, f.Name()), &doc); err != nil {
				return nil, err
			}

			teamEntries := make(map[string]scores.TeamSheetEntry, len(doc.Teams))
			for tla, entry := range doc.Teams {
				teamEntries[strings.ToUpper(tla)] = scores.TeamSheetEntry{
					Disqualified: entry.Disqualified,
					Present:      entry.IsPresent(),
					Data:         entry.Data,
				}
			}

			sheets = append(sheets, scores.Sheet{
				Arena:       arenaEntry.Name(),
				MatchNumber: doc.MatchNumber,
				Teams:       teamEntries,
				ArenaZones:  doc.ArenaZones,
				Other:       doc.Other,
			})
		}
	}
	return sheets, nil
}

func buildLeagueSchedule(doc ScheduleDoc, leagueDoc LeagueDoc, teams map[string]model.Team) (*Schedule, *model.Builder, error) {
	periods := make([]model.MatchPeriod, len(doc.MatchPeriods.League))
	for i, p := range doc.MatchPeriods.League {
		maxEnd := p.MaxEndTime
		if maxEnd.IsZero() {
			maxEnd = p.EndTime
		}
		periods[i] = model.MatchPeriod{
			StartTime:   p.StartTime,
			EndTime:     p.EndTime,
			MaxEndTime:  maxEnd,
			Description: p.Description,
			Kind:        model.League,
		}
	}

	slotLengths := league.MatchSlotLengths{
		Pre:   time.Duration(doc.MatchSlotLengths.Pre) * time.Second,
		Match: time.Duration(doc.MatchSlotLengths.Match) * time.Second,
		Post:  time.Duration(doc.MatchSlotLengths.Post) * time.Second,
		Total: time.Duration(doc.MatchSlotLengths.Total) * time.Second,
	}

	var extraSpacing []league.ExtraSpacingEntry
	for _, e := range doc.League.ExtraSpacing {
		extraSpacing = append(extraSpacing, league.ExtraSpacingEntry{
			MatchNumbers: e.MatchNumbers,
			Duration:     time.Duration(e.DurationSeconds) * time.Second,
		})
	}

	var delays []model.Delay
	for _, d := range doc.Delays {
		delays = append(delays, model.Delay{At: d.Time, Amount: time.Duration(d.DelaySeconds) * time.Second})
	}
	sort.Slice(delays, func(i, j int) bool { return delays[i].At.Before(delays[j].At) })

	planned := make(map[int]league.PlannedMatch, len(leagueDoc.Matches))
	for num, arenaMap := range leagueDoc.Matches {
		pm := league.PlannedMatch{}
		for arena, teamsList := range arenaMap {
			pm[arena] = teamsList
		}
		planned[num] = pm
	}

	result, err := league.Build(periods, planned, delays, slotLengths, extraSpacing, teams, numTeamsPerArena(leagueDoc))
	if err != nil {
		return nil, nil, err
	}

	builder := &model.Builder{Matches: result.Matches}

	staging, err := buildStagingOffsets(doc.Staging)
	if err != nil {
		return nil, nil, err
	}

	sched := &Schedule{
		Periods:               result.Periods,
		NPlannedLeagueMatches: result.NPlannedLeagueMatches,
		NLeagueMatches:        result.NLeagueMatches,
		MatchDuration:         slotLengths.Total,
		PreMatchDuration:      slotLengths.Pre,
		Delays:                delays,
		staging:               staging,
	}

	return sched, builder, nil
}

func numTeamsPerArena(doc LeagueDoc) int {
	for _, arenaMap := range doc.Matches {
		for _, teamsList := range arenaMap {
			return len(teamsList)
		}
	}
	return 4
}

func buildStagingOffsets(cfg StagingConfig) (stagingOffsets, error) {
	if cfg.Duration != cfg.Opens-cfg.Closes {
		return stagingOffsets{}, MalformedInputError{Msg: "staging timings are inconsistent"}
	}
	shepherds := make(map[string]time.Duration, len(cfg.SignalShepherds))
	for area, seconds := range cfg.SignalShepherds {
		shepherds[area] = time.Duration(seconds) * time.Second
	}
	return stagingOffsets{
		opens:           cfg.Opens,
		closes:          cfg.Closes,
		duration:        cfg.Duration,
		signalTeams:     cfg.SignalTeams,
		signalShepherds: shepherds,
	}, nil
}

func buildKnockout(builder *model.Builder, sc *scores.Scores, arenas map[string]model.Arena, teams map[string]model.Team, doc ScheduleDoc) ([][]*model.Match, error) {
	if len(doc.MatchPeriods.Knockout) == 0 {
		return nil, nil
	}
	p := doc.MatchPeriods.Knockout[0]
	period := model.MatchPeriod{
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		MaxEndTime:  p.EndTime,
		Description: p.Description,
		Kind:        model.Knockout,
	}

	matchDuration := time.Duration(doc.MatchSlotLengths.Total) * time.Second
	arenaNames := make([]string, 0, len(arenas))
	for name := range arenas {
		arenaNames = append(arenaNames, name)
	}
	sort.Strings(arenaNames)

	if doc.Knockout.Static {
		rounds, err := staticRoundsFromConfig(doc.StaticKnockout)
		if err != nil {
			return nil, err
		}
		sched := knockout.NewStaticScheduler(builder, sc, teams, period, matchDuration, knockout.NumTeamsPerArena, knockout.StaticConfig{Rounds: rounds})
		if err := sched.AddKnockouts(); err != nil {
			return nil, err
		}
		return sched.Rounds(), nil
	}

	cfg := knockout.SeededConfig{
		RoundSpacing: time.Duration(doc.Knockout.RoundSpacing) * time.Second,
		FinalDelay:   time.Duration(doc.Knockout.FinalDelay) * time.Second,
		SingleArena: knockout.SingleArenaConfig{
			Rounds: doc.Knockout.SingleArena.Rounds,
			Arenas: doc.Knockout.SingleArena.Arenas,
		},
		Arity: doc.Knockout.Arity,
	}
	sched := knockout.NewSeededScheduler(builder, sc, arenaNames, teams, period, nil, matchDuration, cfg)
	if err := sched.AddKnockouts(); err != nil {
		return nil, err
	}
	return sched.Rounds(), nil
}

func staticRoundsFromConfig(cfg StaticKnockoutConfig) ([]map[int]knockout.StaticMatchConfig, error) {
	roundNums := make([]int, 0, len(cfg.Matches))
	for n := range cfg.Matches {
		roundNums = append(roundNums, n)
	}
	sort.Ints(roundNums)

	rounds := make([]map[int]knockout.StaticMatchConfig, len(roundNums))
	for i, n := range roundNums {
		round := map[int]knockout.StaticMatchConfig{}
		for matchNum, ref := range cfg.Matches[n] {
			round[matchNum] = knockout.StaticMatchConfig{
				Arena:     ref.Arena,
				StartTime: ref.StartTime,
				Teams:     ref.Teams,
			}
		}
		rounds[i] = round
	}
	return rounds, nil
}

func loadVenue(root string, teams []string) (*venue.Venue, error) {
	layoutPath := filepath.Join(root, "layout.yaml")
	shepherdingPath := filepath.Join(root, "shepherding.yaml")
	if _, err := os.Stat(layoutPath); os.IsNotExist(err) {
		return nil, nil
	}

	var layoutDoc struct {
		Teams []struct {
			Name  string   `yaml:"name"`
			Teams []string `yaml:"teams"`
		} `yaml:"teams"`
	}
	if err := readYAML(layoutPath, &layoutDoc); err != nil {
		return nil, err
	}

	var shepherdingDoc struct {
		Shepherds []struct {
			Name    string   `yaml:"name"`
			Colour  string   `yaml:"colour"`
			Regions []string `yaml:"regions"`
		} `yaml:"shepherds"`
	}
	if err := readYAML(shepherdingPath, &shepherdingDoc); err != nil {
		return nil, err
	}

	locations := make([]venue.Location, len(layoutDoc.Teams))
	for i, loc := range layoutDoc.Teams {
		locations[i] = venue.Location{Name: loc.Name, Teams: loc.Teams}
	}
	areas := make([]venue.ShepherdingArea, len(shepherdingDoc.Shepherds))
	for i, a := range shepherdingDoc.Shepherds {
		areas[i] = venue.ShepherdingArea{Name: a.Name, Colour: a.Colour, Regions: a.Regions}
	}

	return venue.New(teams, locations, areas)
}
