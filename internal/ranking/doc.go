// Package ranking turns free-text official designations into integer
// priorities used to pick one record per filing.
//
// Override keywords (owner, founder) always rank 0. Otherwise the first
// hierarchy title contained in the case-folded designation determines the
// priority (1-based position). Designations that match nothing, including
// missing ones, share the bucket one past the last title.
package ranking
