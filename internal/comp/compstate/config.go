package compstate

import "time"

// TeamConfig is one entry of teams.yaml, keyed by TLA.
type TeamConfig struct {
	Name            string `yaml:"name"`
	Rookie          bool   `yaml:"rookie"`
	DroppedOutAfter *int   `yaml:"dropped_out_after"`
}

// ArenaConfig is one entry of arenas.yaml's arena map.
type ArenaConfig struct {
	DisplayName string `yaml:"display_name"`
	Colour      string `yaml:"colour"`
}

// CornerConfig is one entry of arenas.yaml's corners map.
type CornerConfig struct {
	Colour string `yaml:"colour"`
}

// ArenasDoc is the full decoded shape of arenas.yaml.
type ArenasDoc struct {
	Arenas  map[string]ArenaConfig  `yaml:"arenas"`
	Corners map[int]CornerConfig    `yaml:"corners"`
}

// MatchPeriodConfig is one entry of schedule.yaml's match_periods lists.
type MatchPeriodConfig struct {
	Description string    `yaml:"description"`
	StartTime   time.Time `yaml:"start_time"`
	EndTime     time.Time `yaml:"end_time"`
	MaxEndTime  time.Time `yaml:"max_end_time"`
}

// MatchSlotLengthsConfig is schedule.yaml's match_slot_lengths block, in
// seconds.
type MatchSlotLengthsConfig struct {
	Pre   int `yaml:"pre"`
	Match int `yaml:"match"`
	Post  int `yaml:"post"`
	Total int `yaml:"total"`
}

// DelayConfig is one entry of schedule.yaml's delays list.
type DelayConfig struct {
	Time         time.Time `yaml:"time"`
	DelaySeconds int       `yaml:"delay_seconds"`
}

// ExtraSpacingConfig is one entry of schedule.yaml's league.extra_spacing
// list.
type ExtraSpacingConfig struct {
	MatchNumbers    string `yaml:"match_numbers"`
	DurationSeconds int    `yaml:"duration_seconds"`
}

// LeagueScheduleConfig is schedule.yaml's league block.
type LeagueScheduleConfig struct {
	ExtraSpacing []ExtraSpacingConfig `yaml:"extra_spacing"`
}

// SingleArenaConfig is schedule.yaml's knockout.single_arena block.
type SingleArenaConfig struct {
	Rounds int      `yaml:"rounds"`
	Arenas []string `yaml:"arenas"`
}

// StaticMatchRef is one entry of a static knockout match's teams list or
// match definition, as decoded straight from YAML.
type StaticMatchRef struct {
	Arena     string    `yaml:"arena"`
	StartTime time.Time `yaml:"start_time"`
	Teams     []string  `yaml:"teams"`
}

// StaticKnockoutConfig is schedule.yaml's static_knockout block, present
// only when knockout.static is true.
type StaticKnockoutConfig struct {
	Matches map[int]map[int]StaticMatchRef `yaml:"matches"`
}

// KnockoutScheduleConfig is schedule.yaml's knockout block.
type KnockoutScheduleConfig struct {
	RoundSpacing    int                  `yaml:"round_spacing"`
	FinalDelay      int                  `yaml:"final_delay"`
	SingleArena     SingleArenaConfig    `yaml:"single_arena"`
	Arity           *int                 `yaml:"arity"`
	Static          bool                 `yaml:"static"`
	MatchPeriods    []MatchPeriodConfig  `yaml:"-"`
}

// StagingConfig is schedule.yaml's staging block.
type StagingConfig struct {
	Opens           time.Duration  `yaml:"opens"`
	Closes          time.Duration  `yaml:"closes"`
	Duration        time.Duration  `yaml:"duration"`
	SignalTeams     time.Duration  `yaml:"signal_teams"`
	SignalShepherds map[string]int `yaml:"signal_shepherds"`
}

// ScheduleDoc is the full decoded shape of schedule.yaml.
type ScheduleDoc struct {
	MatchPeriods struct {
		League   []MatchPeriodConfig `yaml:"league"`
		Knockout []MatchPeriodConfig `yaml:"knockout"`
	} `yaml:"match_periods"`
	MatchSlotLengths MatchSlotLengthsConfig `yaml:"match_slot_lengths"`
	Staging          StagingConfig          `yaml:"staging"`
	Delays           []DelayConfig          `yaml:"delays"`
	League           LeagueScheduleConfig   `yaml:"league"`
	Knockout         KnockoutScheduleConfig `yaml:"knockout"`
	StaticKnockout   StaticKnockoutConfig   `yaml:"static_knockout"`
	Tiebreaker       *time.Time             `yaml:"tiebreaker"`
	Timezone         string                 `yaml:"timezone"`
}

// LeagueDoc is the full decoded shape of league.yaml.
type LeagueDoc struct {
	Matches map[int]map[string][]string `yaml:"matches"`
}

// ResultSheetDoc is the decoded shape of a single result sheet YAML file.
type ResultSheetDoc struct {
	ArenaID     string                     `yaml:"arena_id"`
	MatchNumber int                        `yaml:"match_number"`
	Teams       map[string]ResultTeamEntry `yaml:"teams"`
	ArenaZones  map[string]interface{}     `yaml:"arena_zones"`
	Other       map[string]interface{}     `yaml:"other"`
}

// ResultTeamEntry is one team's row within a decoded result sheet.
type ResultTeamEntry struct {
	Disqualified bool                   `yaml:"disqualified"`
	Present      *bool                  `yaml:"present"`
	Data         map[string]interface{} `yaml:",inline"`
}

// IsPresent defaults to true per the wire contract ("present?=true").
func (e ResultTeamEntry) IsPresent() bool {
	if e.Present == nil {
		return true
	}
	return *e.Present
}
