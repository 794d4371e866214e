package ranker

import (
	"reflect"
	"sort"
	"testing"

	"srcomp/internal/comp/rational"
)

func TestPositionsNoTies(t *testing.T) {
	points := map[string]rational.Rat{
		"ABC": rational.FromInt(10),
		"DEF": rational.FromInt(20),
		"GHI": rational.FromInt(5),
	}
	got := Positions(points, TeamSet{})
	want := map[int][]string{1: {"DEF"}, 2: {"ABC"}, 3: {"GHI"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Positions() = %v, want %v", got, want)
	}
}

func TestPositionsWithTieSkipsNextPosition(t *testing.T) {
	points := map[string]rational.Rat{
		"ABC": rational.FromInt(10),
		"DEF": rational.FromInt(10),
		"GHI": rational.FromInt(5),
	}
	got := Positions(points, TeamSet{})
	sort.Strings(got[1])
	want := map[int][]string{1: {"ABC", "DEF"}, 3: {"GHI"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Positions() = %v, want %v", got, want)
	}
}

func TestPositionsDSQGoesLast(t *testing.T) {
	points := map[string]rational.Rat{
		"ABC": rational.FromInt(10),
		"DEF": rational.FromInt(20),
	}
	dsq := NewTeamSet("DEF")
	got := Positions(points, dsq)
	want := map[int][]string{1: {"ABC"}, 2: {"DEF"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Positions() = %v, want %v", got, want)
	}
}

func TestRankedPointsSplitsTiedPlaces(t *testing.T) {
	positions := map[int][]string{1: {"ABC", "DEF"}, 3: {"GHI"}}
	got := RankedPoints(positions, TeamSet{}, DefaultPlacePoints)

	// ABC and DEF tie for 1st/2nd, sharing (8+6)/2 = 7 each.
	want := rational.FromInt(7)
	if !got["ABC"].Equal(want) || !got["DEF"].Equal(want) {
		t.Errorf("tied places got ABC=%v DEF=%v, want %v each", got["ABC"], got["DEF"], want)
	}
	if !got["GHI"].Equal(rational.FromInt(4)) {
		t.Errorf("GHI = %v, want 4", got["GHI"])
	}
}

func TestRankedPointsDSQScoresZero(t *testing.T) {
	dsq := NewTeamSet("ABC")
	got := RankedPoints(map[int][]string{}, dsq, DefaultPlacePoints)
	if !got["ABC"].Equal(rational.Zero()) {
		t.Errorf("DSQ'd team got %v, want 0", got["ABC"])
	}
}

func TestDegroupKeepsTiedTeamsOnSharedPosition(t *testing.T) {
	grouped := map[int][]string{1: {"ZZZ", "AAA"}}
	got := Degroup(grouped)
	if got["AAA"] != 1 || got["ZZZ"] != 1 {
		t.Errorf("Degroup() = %v", got)
	}
}
