package rational

import "testing"

func TestAdd(t *testing.T) {
	a := FromInt(3)
	b := FromFraction(1, 2)
	got := a.Add(b)
	want := FromFraction(7, 2)
	if !got.Equal(want) {
		t.Errorf("Add() = %v, want %v", got, want)
	}
}

func TestDivIntSplitsEvenly(t *testing.T) {
	sum := FromInt(14)
	got := sum.DivInt(2)
	want := FromInt(7)
	if !got.Equal(want) {
		t.Errorf("DivInt() = %v, want %v", got, want)
	}
}

func TestCmp(t *testing.T) {
	tests := []struct {
		name string
		a, b Rat
		want int
	}{
		{"equal", FromInt(1), FromFraction(2, 2), 0},
		{"less", FromInt(1), FromInt(2), -1},
		{"greater", FromInt(3), FromInt(2), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cmp(tt.b); got != tt.want {
				t.Errorf("Cmp() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestZeroValueBehavesAsZero(t *testing.T) {
	var a Rat
	if !a.Equal(Zero()) {
		t.Errorf("zero-value Rat should equal Zero(), got %v", a)
	}
	if got := a.Add(FromInt(5)); !got.Equal(FromInt(5)) {
		t.Errorf("zero-value Rat + 5 = %v, want 5", got)
	}
}
