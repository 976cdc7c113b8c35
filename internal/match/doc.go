// Package match joins manifest records against the local inventory on
// canonical keys under a duration tolerance, and derives the shopping
// list, orphan list, and per-playlist completion statistics from the
// joined rows.
package match
