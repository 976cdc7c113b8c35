// Package logging constructs the application slog.Logger and provides
// shared attribute helpers so components log with consistent keys.
package logging
