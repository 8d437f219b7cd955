// Package engine wraps the parallel beam search behind a small,
// thread-safe API: one active solve at a time, started asynchronously
// and halted (or awaited) on demand.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/herohde/former/pkg/grid"
	"github.com/herohde/former/pkg/search"
	"github.com/herohde/former/pkg/search/searchctl"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

var version = build.NewVersion(0, 1, 0)

// Options are default solve options, overridden per-call by any
// non-zero field supplied to Solve.
type Options struct {
	// BeamWidth is the number of candidate grids retained per depth.
	BeamWidth uint
	// MaxThreads is the number of parallel workers to run.
	MaxThreads uint
	// MaxDepth, if set, caps how many plies beyond the root are explored.
	MaxDepth uint
}

func (o Options) String() string {
	return fmt.Sprintf("{width=%v, threads=%v, depth=%v}", o.BeamWidth, o.MaxThreads, o.MaxDepth)
}

// Engine runs one puzzle solve at a time and exposes its progress via a
// Handle and result channel.
type Engine struct {
	name string
	opts Options

	active Handle
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets the default solve options, used whenever a Solve call
// leaves a field at its zero value.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// New returns a named Engine.
func New(ctx context.Context, name string, opts ...Option) *Engine {
	e := &Engine{name: name}
	for _, fn := range opts {
		fn(e)
	}

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Options returns the engine's default solve options.
func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

// Handle manages one in-flight solve. The engine spins it off and the
// caller halts or awaits it when no longer needed.
type Handle interface {
	// Halt cancels the solve, if still running, and returns its result.
	// Idempotent; blocks until the solve has actually stopped.
	Halt() search.BeamSolution
}

// Solve launches an asynchronous parallel beam search over g, merging
// opt over the engine's defaults for any zero field. It returns a Handle
// to halt the search early and a channel that receives exactly one
// BeamSolution when the search completes.
func (e *Engine) Solve(ctx context.Context, g grid.Grid, opt Options) (Handle, <-chan search.BeamSolution, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, nil, fmt.Errorf("search already active")
	}

	merged := merge(e.opts, opt)
	logw.Infof(ctx, "Solve %v, opt=%v", g, merged)

	out := make(chan search.BeamSolution, 1)
	h := &handle{init: iox.NewAsyncCloser(), quit: iox.NewAsyncCloser()}
	go h.process(ctx, g, toDriverOptions(merged), out)

	e.active = h
	return h, out, nil
}

// Halt halts the active solve, if any, and returns its result.
func (e *Engine) Halt(ctx context.Context) (search.BeamSolution, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return search.BeamSolution{}, fmt.Errorf("no active search")
	}

	logw.Infof(ctx, "Halt")
	sol := e.active.Halt()
	e.active = nil
	return sol, nil
}

func merge(defaults, override Options) Options {
	merged := defaults
	if override.BeamWidth != 0 {
		merged.BeamWidth = override.BeamWidth
	}
	if override.MaxThreads != 0 {
		merged.MaxThreads = override.MaxThreads
	}
	if override.MaxDepth != 0 {
		merged.MaxDepth = override.MaxDepth
	}
	return merged
}

type handle struct {
	init, quit iox.AsyncCloser

	sol search.BeamSolution
	mu  sync.Mutex
}

func (h *handle) process(ctx context.Context, g grid.Grid, opt searchctl.Options, out chan search.BeamSolution) {
	defer h.init.Close()
	defer close(out)

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	sol, err := searchctl.Solve(wctx, g, opt)
	if err != nil {
		logw.Errorf(ctx, "Solve failed on %v: %v", g, err)
		return
	}

	h.mu.Lock()
	h.sol = sol
	h.mu.Unlock()

	select {
	case out <- sol:
	default:
	}
}

func (h *handle) Halt() search.BeamSolution {
	h.quit.Close()
	<-h.init.Closed()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.sol
}
