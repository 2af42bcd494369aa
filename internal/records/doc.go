// Package records holds the in-memory table model shared by the CSV codec
// and the dedup pipeline.
//
// A Table is a header plus an ordered slice of positional records. It carries
// no hidden state: every pipeline step takes a table or record slice and
// returns a new one.
package records
