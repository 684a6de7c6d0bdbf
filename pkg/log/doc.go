// Package log creates [slog.Handler] implementations from user-facing
// level and format strings.
//
// Handlers are backed by [github.com/charmbracelet/log], so every package
// can keep logging through [log/slog] while the CLI controls presentation.
package log
