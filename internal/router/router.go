// Package router is the route data layer of the storefront. Each navigable
// screen is bound to zero or more loaders (pre-render data fetches) and at
// most one action (a form submission that mutates remote state). A screen
// moves through a small state machine: Pending while its loaders are in
// flight, then Resolved with their data or Errored with the failure.
//
// Navigating away from a pending screen abandons interest in its result:
// the navigation's context is cancelled and any result that still arrives
// carries a stale generation number, which Accept drops. That is the one
// correctness property this layer exists to guarantee.
package router

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// State is the lifecycle of the active route.
type State int

const (
	StateIdle State = iota
	StatePending
	StateResolved
	StateErrored
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	case StateErrored:
		return "errored"
	default:
		return "idle"
	}
}

// Route identifies a navigable screen.
type Route string

const (
	RouteHome     Route = "home"
	RouteMenu     Route = "menu"
	RouteCart     Route = "cart"
	RouteNewOrder Route = "order/new"
	RouteOrder    Route = "order"
)

// LoaderFunc is the loader-equivalent: the data-fetch step a route runs
// before its screen renders.
type LoaderFunc func(ctx context.Context) (any, error)

// Result is the outcome of one navigation's loaders. Gen ties it to the
// navigation that started it; a Result whose Gen is no longer current is
// stale and must be dropped.
type Result struct {
	Route  Route
	Gen    uint64
	LoadID string
	Data   []any
	Err    error
}

// Navigator owns the active route and its loader lifecycle. It is safe for
// concurrent use, though in the TUI all calls happen on the update loop.
type Navigator struct {
	mu      sync.Mutex
	log     *zap.SugaredLogger
	route   Route
	state   State
	gen     uint64
	cancel  context.CancelFunc
	data    []any
	err     error
	results chan Result
	wg      sync.WaitGroup
}

// New returns a Navigator with no active route.
func New(log *zap.SugaredLogger) *Navigator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Navigator{
		log:     log,
		results: make(chan Result, 4),
	}
}

// Results delivers loader outcomes. The presentation layer reads from it
// and hands each Result back through Accept.
func (n *Navigator) Results() <-chan Result {
	return n.results
}

// Go navigates to a route. The previous navigation's context is cancelled
// immediately. With no loaders the route resolves synchronously; otherwise
// it goes Pending and the loaders run concurrently in one errgroup whose
// combined outcome arrives on Results.
func (n *Navigator) Go(route Route, loaders ...LoaderFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.gen++
	n.route = route
	n.data = nil
	n.err = nil

	if len(loaders) == 0 {
		n.state = StateResolved
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	n.cancel = cancel
	n.state = StatePending

	gen := n.gen
	loadID := uuid.NewString()
	n.log.Debugw("route pending", "route", route, "gen", gen, "load_id", loadID, "loaders", len(loaders))

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		g, gctx := errgroup.WithContext(ctx)
		data := make([]any, len(loaders))
		for i, loader := range loaders {
			g.Go(func() error {
				v, err := loader(gctx)
				if err != nil {
					return err
				}
				data[i] = v
				return nil
			})
		}
		err := g.Wait()
		cancel()

		n.deliver(Result{Route: route, Gen: gen, LoadID: loadID, Data: data, Err: err})
	}()
}

// deliver hands a result to the consumer unless the navigation it belongs
// to has already been left behind.
func (n *Navigator) deliver(r Result) {
	n.mu.Lock()
	stale := r.Gen != n.gen
	n.mu.Unlock()

	if stale {
		n.log.Debugw("dropping stale route result", "route", r.Route, "gen", r.Gen, "load_id", r.LoadID)
		return
	}
	select {
	case n.results <- r:
	default:
		// Consumer gone; dropping beats blocking the loader goroutine.
		n.log.Warnw("route result dropped, results channel full", "route", r.Route, "load_id", r.LoadID)
	}
}

// Accept applies a loader result if it belongs to the current navigation.
// Stale results are rejected and change nothing.
func (n *Navigator) Accept(r Result) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if r.Gen != n.gen {
		n.log.Debugw("stale route result rejected", "route", r.Route, "gen", r.Gen, "current", n.gen)
		return false
	}
	if r.Err != nil {
		n.state = StateErrored
		n.err = r.Err
		n.log.Infow("route errored", "route", r.Route, "error", r.Err)
		return true
	}
	n.state = StateResolved
	n.data = r.Data
	n.log.Debugw("route resolved", "route", r.Route, "gen", r.Gen)
	return true
}

// Route returns the active route.
func (n *Navigator) Route() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.route
}

// State returns the active route's lifecycle state.
func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Err returns the failure that put the route into Errored, if any.
func (n *Navigator) Err() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.err
}

// Data returns the loader results of the resolved route, positionally
// matching the loaders passed to Go.
func (n *Navigator) Data() []any {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.data
}

// Shutdown cancels any in-flight navigation and waits for its loader
// goroutine to finish. Call before exiting to keep the process leak-free.
func (n *Navigator) Shutdown() {
	n.mu.Lock()
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.gen++ // orphan anything still in flight
	n.mu.Unlock()

	n.wg.Wait()
}
