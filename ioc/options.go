package ioc

import "log/slog"

// ── Options ───────────────────────────────────────────────────────────────────

// DefaultMaxDepth bounds resolution recursion. Well-formed dependency graphs
// sit far below it; only a cycle reaches it.
const DefaultMaxDepth = 64

type options struct {
	logger   *slog.Logger
	maxDepth int
}

// Option configures a Container at construction time.
type Option func(*options)

// WithLogger attaches a logger for debug-level resolution traces. Without
// it the container is silent.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMaxDepth overrides the resolution depth guard. Values below 1 are
// ignored.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxDepth = n
		}
	}
}
