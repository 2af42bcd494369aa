// Package csvio loads and persists record tables as comma-separated files.
//
// Load expects a header row and strips a leading UTF-8 byte order mark. Save
// writes through a temp file in the target directory and renames it into
// place while holding an advisory flock kept outside the output directory,
// so readers never observe a partially written export.
package csvio
