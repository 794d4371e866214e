package compstate

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"srcomp/internal/comp/rational"
	"srcomp/internal/comp/scores"
)

// ScorerLoader builds a Scorer for a competition state root. The original
// project dynamically imports a sibling Python module to do this; Go has no
// equivalent, so callers supply this hook (DefaultScorerLoader is a
// reference implementation reading a static points table).
type ScorerLoader func(root string) (scores.Scorer, error)

// pointsTableScorer is a minimal reference Scorer: it looks each team's
// numeric "points" field up directly from the sheet data, with no
// positional ranking logic of its own (that's ranker's job, applied on top
// of whatever this returns). It stands in for the dynamically loaded
// per-game scorer the original project supports.
type pointsTableScorer struct {
	field string
}

func (s pointsTableScorer) CalculateScores(teams map[string]scores.TeamSheetEntry, arenaZones interface{}) (map[string]rational.Rat, error) {
	result := make(map[string]rational.Rat, len(teams))
	for tla, entry := range teams {
		raw, ok := entry.Data[s.field]
		if !ok {
			result[tla] = rational.Zero()
			continue
		}
		n, ok := toInt64(raw)
		if !ok {
			return nil, fmt.Errorf("team %s: field %q is not numeric", tla, s.field)
		}
		result[tla] = rational.FromInt(n)
	}
	return result, nil
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// scoringConfig is the shape of the reference scorer's scoring.yaml: the
// name of the sheet field to sum into game points.
type scoringConfig struct {
	PointsField string `yaml:"points_field"`
}

// DefaultScorerLoader reads root/scoring.yaml for a points_field name and
// returns a scorer that takes each team's value of that field as its game
// points (zero where the field is absent). It gives the façade a working
// scorer without a real plugin mechanism; production deployments are
// expected to supply their own ScorerLoader.
func DefaultScorerLoader(root string) (scores.Scorer, error) {
	path := filepath.Join(root, "scoring.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading scorer: %w", err)
	}

	var cfg scoringConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scoring.yaml: %w", err)
	}
	if cfg.PointsField == "" {
		cfg.PointsField = "points"
	}

	return pointsTableScorer{field: cfg.PointsField}, nil
}
