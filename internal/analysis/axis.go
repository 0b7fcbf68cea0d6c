// Package analysis runs one résumé through extraction, classification,
// remote enhancement with local fallback, combination and scoring.
package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/cv-analyzer/internal/logger"
)

const DefaultTimeout = 8 * time.Second

// Axis pairs an eagerly computed local value with an optional remote
// enhancement. After a race it resolves to exactly one of them.
type Axis[T any] struct {
	Name   string
	Local  T
	Remote func(ctx context.Context) (T, error)

	mu       sync.Mutex
	remote   T
	err      error
	finished bool
	settled  bool
	value    T
	isRemote bool
}

// NewAxis returns an axis that resolves to local until a race says otherwise.
func NewAxis[T any](name string, local T, remote func(ctx context.Context) (T, error)) *Axis[T] {
	return &Axis[T]{Name: name, Local: local, Remote: remote, value: local}
}

// Value returns the resolved value. Before a race it is the local value.
func (a *Axis[T]) Value() T {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.settled {
		return a.Local
	}
	return a.value
}

// FromRemote reports whether the axis resolved to its remote value.
func (a *Axis[T]) FromRemote() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.isRemote
}

func (a *Axis[T]) name() string { return a.Name }

func (a *Axis[T]) hasRemote() bool { return a.Remote != nil }

// run calls the remote side. A result arriving after the axis settled is
// dropped.
func (a *Axis[T]) run(ctx context.Context) error {
	v, err := a.Remote(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.settled {
		return err
	}
	a.remote, a.err, a.finished = v, err, true
	return err
}

// settle fixes the value: the remote result when the race finished in time
// and the remote call succeeded, the local value otherwise.
func (a *Axis[T]) settle(inTime bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settled = true
	if inTime && a.finished && a.err == nil {
		a.value, a.isRemote = a.remote, true
		return
	}
	a.value, a.isRemote = a.Local, false
}

// Racer is implemented by *Axis of any type.
type Racer interface {
	FromRemote() bool
	name() string
	hasRemote() bool
	run(ctx context.Context) error
	settle(inTime bool)
}

// Outcome summarises a race.
type Outcome struct {
	TimedOut bool
	Elapsed  time.Duration
	// Err aggregates the remote failures observed before the race was decided.
	Err error
}

// Orchestrator races the remote sides of several axes against one timeout.
type Orchestrator struct {
	timeout time.Duration
	logger  *zap.Logger
}

func NewOrchestrator(timeout time.Duration, log *zap.Logger) *Orchestrator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Orchestrator{timeout: timeout, logger: logger.WithFields(log)}
}

// Race runs every remote concurrently and waits for all of them or for the
// timeout, whichever comes first. When all finish in time each axis takes
// its remote value, or its local one if that remote failed. On timeout or
// when ctx is done every axis takes its local value. Outstanding remote
// calls are cancelled before Race returns and their results are ignored.
func (o *Orchestrator) Race(ctx context.Context, axes ...Racer) Outcome {
	start := time.Now()

	remoteCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs error
	)
	for _, a := range axes {
		if !a.hasRemote() {
			continue
		}
		g.Go(func() error {
			if err := a.run(remoteCtx); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", a.name(), err))
				mu.Unlock()
			}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	timer := time.NewTimer(o.timeout)
	defer timer.Stop()

	inTime := false
	select {
	case <-done:
		inTime = true
	case <-timer.C:
	case <-ctx.Done():
	}
	if ctx.Err() != nil {
		inTime = false
	}
	cancel()

	for _, a := range axes {
		a.settle(inTime)
	}

	mu.Lock()
	out := Outcome{TimedOut: !inTime, Elapsed: time.Since(start), Err: errs}
	mu.Unlock()

	switch {
	case !inTime:
		o.logger.Warn("remote analysis did not finish in time, using local results",
			zap.Duration("elapsed", out.Elapsed),
			zap.Duration("timeout", o.timeout),
			zap.Error(out.Err),
		)
	case out.Err != nil:
		o.logger.Warn("remote analysis failed for some axes, using local results for them",
			zap.Error(out.Err),
			zap.Int("failed", len(multierr.Errors(out.Err))),
		)
	default:
		o.logger.Debug("remote analysis finished", zap.Duration("elapsed", out.Elapsed))
	}

	return out
}
