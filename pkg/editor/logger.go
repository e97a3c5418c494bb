package editor

import "log/slog"

// Logger returns the editor's logger. It is never nil: without WithLogger
// it discards everything, the same default model.New uses.
//
// Log levels used by the editor:
//   - [slog.LevelDebug]: per-event diagnostics (pick misses, rebuild sizes)
//   - [slog.LevelInfo]: lifecycle events (models added and removed, mode changes)
//   - [slog.LevelWarn]: outline samples that matched no surface vertex
func (e *Editor) Logger() *slog.Logger {
	return e.logger
}
