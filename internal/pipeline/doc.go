// Package pipeline turns a raw filing export into one record per filing
// identifier.
//
// Each step is a free function over explicit inputs: column validation, date
// parsing, the cutoff filter, priority annotation, a stable sort by
// identifier and priority, and first-wins deduplication. Process chains the
// steps over an in-memory table; Run adds file loading, atomic persistence
// and run history.
//
// Missing required columns surface as *SchemaError, which also matches
// ErrSchema. Unparseable dates are never errors; they are counted in Stats
// and the affected rows are dropped by the cutoff filter.
package pipeline
