package knockout

import (
	"reflect"
	"testing"
)

func TestGetMatchDisplayName(t *testing.T) {
	cases := []struct {
		roundsRemaining, roundNum, globalNum int
		want                                 string
	}{
		{0, 0, 7, "Final (#7)"},
		{1, 0, 5, "Semi 1 (#5)"},
		{1, 1, 6, "Semi 2 (#6)"},
		{2, 2, 3, "Quarter 3 (#3)"},
		{3, 0, 1, "Match 1"},
	}
	for _, c := range cases {
		got := GetMatchDisplayName(c.roundsRemaining, c.roundNum, c.globalNum)
		if got != c.want {
			t.Errorf("GetMatchDisplayName(%d, %d, %d) = %q, want %q", c.roundsRemaining, c.roundNum, c.globalNum, got, c.want)
		}
	}
}

func TestPadWithEmpty(t *testing.T) {
	got := padWithEmpty([]string{"ABC"}, 4)
	want := []string{"ABC", "", "", ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("padWithEmpty() = %v, want %v", got, want)
	}
}

func TestToTeamPointers(t *testing.T) {
	got := toTeamPointers([]string{"ABC", "", "DEF"})
	if len(got) != 3 {
		t.Fatalf("toTeamPointers() returned %d entries, want 3", len(got))
	}
	if got[0] == nil || *got[0] != "ABC" {
		t.Errorf("got[0] = %v, want ABC", got[0])
	}
	if got[1] != nil {
		t.Errorf("got[1] = %v, want nil", got[1])
	}
	if got[2] == nil || *got[2] != "DEF" {
		t.Errorf("got[2] = %v, want DEF", got[2])
	}
}
