// Package history records pipeline runs in a small SQLite database.
//
// Each run is inserted when the pipeline starts and updated with its counters
// and final status when it ends, so a crashed run stays visible as "running".
// The database lives in the configured state directory. Schema changes bump
// schemaVersion in schema.go; an older database must be deleted to adopt the
// new layout.
package history
