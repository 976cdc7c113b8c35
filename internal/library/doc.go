// Package library builds the local audio inventory: a walk over the
// music root that pairs each file with extracted or path-derived
// metadata and its canonical matching keys.
package library
