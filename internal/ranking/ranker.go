package ranking

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultHierarchy lists designation titles from highest to lowest authority.
// Order matters: a designation is ranked by the first title it contains, so
// earlier entries shadow later ones ("Vice President" contains "President").
var DefaultHierarchy = []string{
	"Owner",
	"Founder",
	"CEO",
	"Chairman of the Board",
	"Chairperson of the Board",
	"Chief Executive Officer",
	"Chief Financial Officer",
	"Chief Operating Officer",
	"President",
	"Managing Member",
	"General Manager",
	"Vice President",
	"Treasurer",
	"Secretary",
	"Manager",
	"Member",
}

// DefaultOverrideKeywords outrank every hierarchy title.
var DefaultOverrideKeywords = []string{"owner", "founder"}

// OverridePriority is returned for designations containing an override keyword.
const OverridePriority = 0

// missingText is the text form of a missing designation.
const missingText = "nan"

// MatchKind identifies which rule produced a priority.
type MatchKind string

const (
	MatchOverride MatchKind = "override"
	MatchTitle    MatchKind = "title"
	MatchNone     MatchKind = "none"
)

// Match describes how a designation was ranked.
type Match struct {
	Priority int       `json:"priority"`
	Kind     MatchKind `json:"kind"`
	Rule     string    `json:"rule,omitempty"`
}

// Ranker maps designation text to a priority. Lower values win.
type Ranker struct {
	hierarchy []string
	folded    []string
	overrides []string
	foldedOvr []string
}

// New builds a ranker from an ordered hierarchy and override keywords. Empty
// inputs fall back to the defaults.
func New(hierarchy, overrides []string) *Ranker {
	if len(hierarchy) == 0 {
		hierarchy = DefaultHierarchy
	}
	if len(overrides) == 0 {
		overrides = DefaultOverrideKeywords
	}
	r := &Ranker{
		hierarchy: append([]string(nil), hierarchy...),
		overrides: append([]string(nil), overrides...),
	}
	r.folded = make([]string, len(r.hierarchy))
	for i, title := range r.hierarchy {
		r.folded[i] = fold(title)
	}
	r.foldedOvr = make([]string, len(r.overrides))
	for i, kw := range r.overrides {
		r.foldedOvr[i] = fold(kw)
	}
	return r
}

// Default returns a ranker using DefaultHierarchy and DefaultOverrideKeywords.
func Default() *Ranker {
	return New(nil, nil)
}

// Hierarchy returns a copy of the ordered title list.
func (r *Ranker) Hierarchy() []string {
	return append([]string(nil), r.hierarchy...)
}

// Unknown is the priority shared by every designation matching no rule.
func (r *Ranker) Unknown() int {
	return len(r.hierarchy) + 1
}

// Rank returns the priority of designation.
func (r *Ranker) Rank(designation string) int {
	return r.Explain(designation).Priority
}

// RankValue coerces an arbitrary value to text before ranking. A nil value
// ranks like the text "nan".
func (r *Ranker) RankValue(value any) int {
	return r.Rank(textOf(value))
}

// RankMissing ranks a missing designation.
func (r *Ranker) RankMissing() int {
	return r.Rank(missingText)
}

// Explain returns the priority together with the rule that produced it.
func (r *Ranker) Explain(designation string) Match {
	text := fold(designation)

	for i, kw := range r.foldedOvr {
		if kw != "" && strings.Contains(text, kw) {
			return Match{Priority: OverridePriority, Kind: MatchOverride, Rule: r.overrides[i]}
		}
	}

	for i, title := range r.folded {
		if title != "" && strings.Contains(text, title) {
			return Match{Priority: i + 1, Kind: MatchTitle, Rule: r.hierarchy[i]}
		}
	}

	return Match{Priority: r.Unknown(), Kind: MatchNone}
}

func fold(s string) string {
	// Casers carry state, so one is built per call.
	return cases.Fold().String(s)
}

func textOf(value any) string {
	switch v := value.(type) {
	case nil:
		return missingText
	case string:
		return v
	case *string:
		if v == nil {
			return missingText
		}
		return *v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
