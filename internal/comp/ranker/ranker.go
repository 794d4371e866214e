// Package ranker turns a match's raw game points into standard-competition
// positions and then into normalised ("league") points, splitting place
// points evenly between teams that tie.
package ranker

import (
	"sort"

	"srcomp/internal/comp/rational"
)

// TeamSet is an unordered collection of TLAs.
type TeamSet map[string]struct{}

// NewTeamSet builds a TeamSet from the given TLAs.
func NewTeamSet(tlas ...string) TeamSet {
	s := make(TeamSet, len(tlas))
	for _, t := range tlas {
		s[t] = struct{}{}
	}
	return s
}

// DefaultPlacePoints is the place-points vector for a 4-corner game, as
// imported from the external ranker library the original project depended
// on (libproton-compatible scoring). See spec open question (b).
var DefaultPlacePoints = []int{8, 6, 4, 2}

// Positions computes standard competition ranking: DSQ'd teams share the
// lowest position (one past the number of non-DSQ teams); the rest are
// ranked by descending points, ties sharing a position and the next
// distinct value skipping the intervening positions.
func Positions(points map[string]rational.Rat, dsq TeamSet) map[int][]string {
	nonDSQ := make([]string, 0, len(points))
	for tla := range points {
		if _, out := dsq[tla]; !out {
			nonDSQ = append(nonDSQ, tla)
		}
	}
	sort.Slice(nonDSQ, func(i, j int) bool {
		return points[nonDSQ[i]].Cmp(points[nonDSQ[j]]) > 0
	})

	result := map[int][]string{}
	pos := 1
	for i, tla := range nonDSQ {
		if i > 0 && points[tla].Cmp(points[nonDSQ[i-1]]) != 0 {
			pos = i + 1
		}
		result[pos] = append(result[pos], tla)
	}

	if len(dsq) > 0 {
		dsqPos := len(nonDSQ) + 1
		dsqTeams := make([]string, 0, len(dsq))
		for tla := range dsq {
			dsqTeams = append(dsqTeams, tla)
		}
		sort.Strings(dsqTeams)
		result[dsqPos] = append(result[dsqPos], dsqTeams...)
	}

	return result
}

// RankedPoints converts grouped positions into normalised per-team points.
// Teams sharing a position split the sum of the place points they
// collectively occupy equally; DSQ'd teams score zero; positions beyond the
// end of placePoints contribute zero.
func RankedPoints(positions map[int][]string, dsq TeamSet, placePoints []int) map[string]rational.Rat {
	result := make(map[string]rational.Rat)
	for tla := range dsq {
		result[tla] = rational.Zero()
	}

	for pos, teams := range positions {
		n := len(teams)
		if n == 0 {
			continue
		}
		sum := rational.Zero()
		for i := 0; i < n; i++ {
			idx := pos - 1 + i
			if idx >= 0 && idx < len(placePoints) {
				sum = sum.Add(rational.FromInt(int64(placePoints[idx])))
			}
		}
		share := sum.DivInt(int64(n))
		for _, tla := range teams {
			result[tla] = share
		}
	}

	return result
}

// Degroup flattens a position->teams mapping into a team->position mapping.
// Teams that share a position all map to that same position.
func Degroup(grouped map[int][]string) map[string]int {
	positions := make(map[string]int, len(grouped))
	for pos, teams := range grouped {
		sorted := append([]string(nil), teams...)
		sort.Strings(sorted)
		for _, tla := range sorted {
			positions[tla] = pos
		}
	}
	return positions
}
