// Package manifest loads exported playlist CSV snapshots into a
// unified record set with per-row playlist membership and provenance
// flags.
package manifest
