package ai

import (
	"context"
	"fmt"
	"log/slog"
)

// fallbackCompleter wraps two Completer implementations. It calls the primary
// first; if that returns an error it logs the failure and tries the secondary.
// Chains longer than two are built by nesting (see Chain).
type fallbackCompleter struct {
	primary   Completer
	secondary Completer
	logger    *slog.Logger
}

// NewFallbackCompleter returns a Completer that calls primary and, on failure,
// falls back to secondary. Either argument may be nil: if primary is nil it
// goes straight to secondary; if secondary is nil and primary fails, the
// primary error is returned wrapped.
func NewFallbackCompleter(primary, secondary Completer, logger *slog.Logger) Completer {
	return &fallbackCompleter{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// Chain folds completers into nested fallbacks in the given order. Nil
// entries are skipped. It returns nil when nothing is configured, which
// callers treat as "no model available".
func Chain(logger *slog.Logger, completers ...Completer) Completer {
	var chain Completer
	for i := len(completers) - 1; i >= 0; i-- {
		c := completers[i]
		if c == nil {
			continue
		}
		if chain == nil {
			chain = c
			continue
		}
		chain = NewFallbackCompleter(c, chain, logger)
	}
	return chain
}

func (f *fallbackCompleter) Name() string {
	switch {
	case f.primary == nil && f.secondary == nil:
		return "none"
	case f.primary == nil:
		return f.secondary.Name()
	case f.secondary == nil:
		return f.primary.Name()
	default:
		return f.primary.Name() + ">" + f.secondary.Name()
	}
}

// Complete tries the primary Completer. If it fails and a secondary is
// configured, it logs the primary error and tries the secondary.
func (f *fallbackCompleter) Complete(ctx context.Context, req Request) (string, error) {
	if f.primary != nil {
		text, err := f.primary.Complete(ctx, req)
		if err == nil {
			return text, nil
		}
		f.logger.Warn("ai: primary completer failed, trying secondary",
			"provider", f.primary.Name(),
			"error", err,
		)
		if f.secondary == nil {
			return "", fmt.Errorf("ai: primary failed and no secondary configured: %w", err)
		}
	}
	if f.secondary == nil {
		return "", fmt.Errorf("ai: no completer configured")
	}

	return f.secondary.Complete(ctx, req)
}
