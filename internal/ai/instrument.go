package ai

import (
	"context"
	"time"
)

// Observer receives one event per provider call. *metrics.Metrics satisfies it.
type Observer interface {
	ObserveCompletion(provider string, took time.Duration, err error)
}

type instrumented struct {
	next Completer
	obs  Observer
}

// Instrument reports every call made through c to obs. It returns c unchanged
// when either argument is nil.
func Instrument(c Completer, obs Observer) Completer {
	if c == nil || obs == nil {
		return c
	}
	return &instrumented{next: c, obs: obs}
}

func (i *instrumented) Name() string { return i.next.Name() }

func (i *instrumented) Complete(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	text, err := i.next.Complete(ctx, req)
	i.obs.ObserveCompletion(i.next.Name(), time.Since(start), err)
	return text, err
}
