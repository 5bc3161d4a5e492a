package repository

import "testing"

func TestContainsPattern(t *testing.T) {
	tests := map[string]string{
		"Bella":  "%bella%",
		"100%":   "%100!%%",
		"a_b":    "%a!_b%",
		"wow!":   "%wow!!%",
		"ÉCLAIR": "%éclair%",
	}
	for in, want := range tests {
		if got := containsPattern(in); got != want {
			t.Errorf("containsPattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsWildcard(t *testing.T) {
	for _, s := range []string{"", " ", "all", "ALL"} {
		if !isWildcard(s) {
			t.Errorf("isWildcard(%q) = false", s)
		}
	}
	if isWildcard("italian") {
		t.Errorf("isWildcard(italian) = true")
	}
}
