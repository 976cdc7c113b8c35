// Package history persists import run audit records in a SQLite
// database so past moves and skips stay reviewable after the staging
// directory has been emptied.
package history
