// Package textutil provides the canonical matching key and path-safe
// component helpers shared by the scanner, matcher, exporter, and
// import pipeline.
package textutil
