// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Tally Authors

package capture

import (
	"context"
	"sync"

	"github.com/tallyhq/tally/internal/logger"
)

// AdapterFactory creates a fresh adapter for one capture session. Adapters
// are single-shot, so every Select builds a new one.
type AdapterFactory func() (Adapter, error)

// Orchestrator owns the capture flow: at most one adapter runs at a time,
// Select starts one, Back cancels it and returns to the method menu. It is
// safe for concurrent use.
type Orchestrator struct {
	mu        sync.Mutex
	factories map[Method]AdapterFactory
	active    Adapter

	logger *logger.Logger
}

func NewOrchestrator(log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		factories: make(map[Method]AdapterFactory),
		logger:    log,
	}
}

// Register installs the factory for a method, replacing any previous one.
func (o *Orchestrator) Register(method Method, factory AdapterFactory) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.factories[method] = factory
}

// Select starts a capture with the given method. While an adapter is
// running every further Select fails with [ErrAdapterBusy]; the caller has
// to Back out first. The returned channel is the adapter's event stream;
// when it closes the orchestrator is idle again.
func (o *Orchestrator) Select(ctx context.Context, method Method) (<-chan Event, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.active != nil {
		return nil, ErrAdapterBusy
	}

	factory, ok := o.factories[method]
	if !ok {
		return nil, ErrUnknownMethod
	}

	adapter, err := factory()
	if err != nil {
		o.logger.Err(err).Str("method", method.String()).Msg("capture adapter construction failed")
		return nil, err
	}

	events, err := adapter.Start(ctx)
	if err != nil {
		adapter.Cancel()
		return nil, err
	}

	o.active = adapter
	o.logger.Debug().Str("method", method.String()).Msg("capture started")

	forwarded := make(chan Event)
	go func() {
		defer close(forwarded)
		for event := range events {
			forwarded <- event
		}
		o.mu.Lock()
		if o.active == adapter {
			o.active = nil
		}
		o.mu.Unlock()
	}()

	return forwarded, nil
}

// Back cancels the running adapter, if any, returning the flow to the
// method menu. Backing out of the menu itself is a no-op.
func (o *Orchestrator) Back() {
	o.mu.Lock()
	adapter := o.active
	o.active = nil
	o.mu.Unlock()

	if adapter != nil {
		adapter.Cancel()
		o.logger.Debug().Str("method", adapter.Method().String()).Msg("capture cancelled")
	}
}

// Cancel tears down any running capture. Used on shutdown; identical to
// Back.
func (o *Orchestrator) Cancel() { o.Back() }

// Active reports the running method, MethodNone when idle.
func (o *Orchestrator) Active() Method {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.active == nil {
		return MethodNone
	}
	return o.active.Method()
}
