package ranking_test

import (
	"testing"

	"ucclean/internal/ranking"
)

func TestOverrideKeywordsWin(t *testing.T) {
	r := ranking.Default()
	cases := []string{
		"Owner",
		"OWNER",
		"co-founder",
		"Founder & CEO",
		"Managing Member / Owner",
		"President and Owner",
		"Vice President, FOUNDER",
	}
	for _, designation := range cases {
		if got := r.Rank(designation); got != ranking.OverridePriority {
			t.Fatalf("Rank(%q) = %d, want %d", designation, got, ranking.OverridePriority)
		}
	}
}

func TestSingleTitleReturnsPosition(t *testing.T) {
	r := ranking.Default()
	cases := []struct {
		designation string
		want        int
	}{
		{"CEO", 3},
		{"chairman of the board", 4},
		{"Chairperson of the Board", 5},
		{"Chief Financial Officer", 7},
		{"Chief Operating Officer", 8},
		{"President", 9},
		{"General Manager", 11},
		{"Treasurer", 13},
		{"Secretary", 14},
		{"Member", 16},
		{"  treasurer  ", 13},
	}
	for _, tc := range cases {
		if got := r.Rank(tc.designation); got != tc.want {
			t.Fatalf("Rank(%q) = %d, want %d", tc.designation, got, tc.want)
		}
	}
}

func TestFirstListedTitleWins(t *testing.T) {
	r := ranking.Default()
	cases := []struct {
		designation string
		want        int
		rule        string
	}{
		// "President" is listed before "Vice President" and is contained in it.
		{"Vice President", 9, "President"},
		// "Managing Member" precedes "Manager" and "Member".
		{"Managing Member", 10, "Managing Member"},
		// "General Manager" precedes "Manager".
		{"General Manager", 11, "General Manager"},
		// "Manager" precedes "Member".
		{"Manager and Member", 15, "Manager"},
		// "CEO" is listed ahead of "Chief Executive Officer".
		{"Chief Executive Officer (CEO)", 3, "CEO"},
		{"Secretary/Treasurer", 13, "Treasurer"},
	}
	for _, tc := range cases {
		m := r.Explain(tc.designation)
		if m.Priority != tc.want {
			t.Fatalf("Rank(%q) = %d, want %d", tc.designation, m.Priority, tc.want)
		}
		if m.Kind != ranking.MatchTitle || m.Rule != tc.rule {
			t.Fatalf("Explain(%q) = %+v, want title rule %q", tc.designation, m, tc.rule)
		}
	}
}

func TestUnmatchedShareDefaultBucket(t *testing.T) {
	r := ranking.Default()
	want := len(ranking.DefaultHierarchy) + 1
	if r.Unknown() != want {
		t.Fatalf("Unknown() = %d, want %d", r.Unknown(), want)
	}

	for _, designation := range []string{"", "Unknown Title", "Registered Agent", "nan", "Director"} {
		if got := r.Rank(designation); got != want {
			t.Fatalf("Rank(%q) = %d, want %d", designation, got, want)
		}
	}
	if got := r.RankMissing(); got != want {
		t.Fatalf("RankMissing() = %d, want %d", got, want)
	}
	if got := r.RankValue(nil); got != want {
		t.Fatalf("RankValue(nil) = %d, want %d", got, want)
	}
	var nilString *string
	if got := r.RankValue(nilString); got != want {
		t.Fatalf("RankValue((*string)(nil)) = %d, want %d", got, want)
	}
	if got := r.RankValue(42); got != want {
		t.Fatalf("RankValue(42) = %d, want %d", got, want)
	}
	if m := r.Explain("Agent"); m.Kind != ranking.MatchNone || m.Rule != "" {
		t.Fatalf("unexpected explain result %+v", m)
	}
}

func TestRankValueCoercesText(t *testing.T) {
	r := ranking.Default()
	title := "Treasurer"
	if got := r.RankValue(&title); got != 13 {
		t.Fatalf("RankValue(&title) = %d, want 13", got)
	}
	if got := r.RankValue("Owner"); got != 0 {
		t.Fatalf("RankValue(\"Owner\") = %d, want 0", got)
	}
}

func TestCustomHierarchy(t *testing.T) {
	r := ranking.New([]string{"Director", "Agent"}, []string{"Proprietor"})
	if got := r.Rank("managing director"); got != 1 {
		t.Fatalf("Rank(director) = %d, want 1", got)
	}
	if got := r.Rank("registered agent"); got != 2 {
		t.Fatalf("Rank(agent) = %d, want 2", got)
	}
	if got := r.Rank("sole PROPRIETOR"); got != 0 {
		t.Fatalf("Rank(proprietor) = %d, want 0", got)
	}
	if got := r.Rank("Owner"); got != 3 {
		t.Fatalf("custom overrides replace defaults; Rank(owner) = %d, want 3", got)
	}
}

func TestHierarchyReturnsCopy(t *testing.T) {
	r := ranking.Default()
	h := r.Hierarchy()
	h[0] = "changed"
	if r.Rank("Owner") != 0 || r.Hierarchy()[0] != "Owner" {
		t.Fatal("Hierarchy must return a defensive copy")
	}
}

func TestUnicodeCaseFolding(t *testing.T) {
	r := ranking.Default()
	if got := r.Rank("PRÉSIDENT / PRESIDENT"); got != 9 {
		t.Fatalf("Rank = %d, want 9", got)
	}
	if got := r.Rank("SECRETARY"); got != 14 {
		t.Fatalf("Rank = %d, want 14", got)
	}
}
