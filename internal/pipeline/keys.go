package pipeline

import (
	"cmp"
	"errors"
	"math"
	"strconv"
	"strings"

	"ucclean/internal/records"
)

// KeyOrder describes how filing identifiers compare.
type KeyOrder int

const (
	// KeyLexical compares identifiers as byte strings.
	KeyLexical KeyOrder = iota
	// KeyNumeric compares identifiers by floating-point value.
	KeyNumeric
	// KeyInteger compares identifiers as exact 64-bit integers.
	KeyInteger
)

func (o KeyOrder) String() string {
	switch o {
	case KeyInteger:
		return "integer"
	case KeyNumeric:
		return "numeric"
	default:
		return "lexical"
	}
}

// InferKeyOrder inspects every non-empty identifier in the column. All
// integers gives KeyInteger; integers and decimals gives KeyNumeric; anything
// else, including integers too large for int64, gives KeyLexical. A column
// with no identifiers at all is lexical.
func InferKeyOrder(recs []records.Record, idIndex int) KeyOrder {
	order := KeyInteger
	seen := false
	for _, rec := range recs {
		raw := strings.TrimSpace(rec.Field(idIndex))
		if raw == "" {
			continue
		}
		seen = true
		_, err := strconv.ParseInt(raw, 10, 64)
		switch {
		case err == nil:
		case errors.Is(err, strconv.ErrRange):
			return KeyLexical
		default:
			if _, ok := parseNumber(raw); !ok {
				return KeyLexical
			}
			order = KeyNumeric
		}
	}
	if !seen {
		return KeyLexical
	}
	return order
}

// filingKey is the comparable identity of a filing identifier. All empty
// identifiers share one key.
type filingKey struct {
	empty bool
	whole int64
	num   float64
	text  string
}

func makeKey(raw string, order KeyOrder) filingKey {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return filingKey{empty: true}
	}
	switch order {
	case KeyInteger:
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return filingKey{whole: n}
		}
	case KeyNumeric:
		if n, ok := parseNumber(trimmed); ok {
			if n == 0 {
				n = 0 // fold -0 into 0
			}
			return filingKey{num: n}
		}
	}
	return filingKey{text: raw}
}

func compareKeys(a, b filingKey) int {
	switch {
	case a.empty && b.empty:
		return 0
	case a.empty:
		return 1
	case b.empty:
		return -1
	}
	if c := cmp.Compare(a.whole, b.whole); c != 0 {
		return c
	}
	if c := cmp.Compare(a.num, b.num); c != 0 {
		return c
	}
	return strings.Compare(a.text, b.text)
}

func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
