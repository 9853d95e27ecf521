package router

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func staticLoader(v any) LoaderFunc {
	return func(ctx context.Context) (any, error) {
		return v, nil
	}
}

func failingLoader(err error) LoaderFunc {
	return func(ctx context.Context) (any, error) {
		return nil, err
	}
}

// blockingLoader blocks until its context is cancelled, then reports the
// cancellation. Stands in for a hung backend request.
func blockingLoader(started chan<- struct{}) LoaderFunc {
	return func(ctx context.Context) (any, error) {
		if started != nil {
			close(started)
		}
		<-ctx.Done()
		return nil, ctx.Err()
	}
}

func awaitResult(t *testing.T, n *Navigator) Result {
	t.Helper()
	select {
	case r := <-n.Results():
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a route result")
		return Result{}
	}
}

func TestGo_NoLoadersResolvesSynchronously(t *testing.T) {
	n := New(nil)
	defer n.Shutdown()

	n.Go(RouteHome)

	assert.Equal(t, RouteHome, n.Route())
	assert.Equal(t, StateResolved, n.State())
}

func TestGo_LoaderResolves(t *testing.T) {
	n := New(nil)
	defer n.Shutdown()

	n.Go(RouteMenu, staticLoader("the menu"))
	assert.Equal(t, StatePending, n.State())

	r := awaitResult(t, n)
	require.True(t, n.Accept(r))

	assert.Equal(t, StateResolved, n.State())
	require.Len(t, n.Data(), 1)
	assert.Equal(t, "the menu", n.Data()[0])
	assert.NotEmpty(t, r.LoadID)
}

func TestGo_LoaderFailureErrorsRoute(t *testing.T) {
	n := New(nil)
	defer n.Shutdown()

	boom := errors.New("backend down")
	n.Go(RouteMenu, failingLoader(boom))

	r := awaitResult(t, n)
	require.True(t, n.Accept(r))

	assert.Equal(t, StateErrored, n.State())
	assert.ErrorIs(t, n.Err(), boom)
}

func TestGo_MultipleLoadersPositionalData(t *testing.T) {
	n := New(nil)
	defer n.Shutdown()

	n.Go(RouteNewOrder, staticLoader("first"), staticLoader("second"))

	r := awaitResult(t, n)
	require.True(t, n.Accept(r))
	require.Len(t, n.Data(), 2)
	assert.Equal(t, "first", n.Data()[0])
	assert.Equal(t, "second", n.Data()[1])
}

func TestGo_OneFailingLoaderFailsTheRoute(t *testing.T) {
	n := New(nil)
	defer n.Shutdown()

	boom := errors.New("geocoder exploded")
	n.Go(RouteNewOrder, staticLoader("fine"), failingLoader(boom))

	r := awaitResult(t, n)
	require.True(t, n.Accept(r))
	assert.Equal(t, StateErrored, n.State())
}

// Navigating away from a pending route must cancel its loader and discard
// its eventual result: the new route's state is never clobbered.
func TestGo_NavigationAwayCancelsPendingLoader(t *testing.T) {
	n := New(nil)
	defer n.Shutdown()

	started := make(chan struct{})
	n.Go(RouteMenu, blockingLoader(started))
	<-started

	n.Go(RouteCart) // resolves synchronously, cancels the menu loader

	assert.Equal(t, RouteCart, n.Route())
	assert.Equal(t, StateResolved, n.State())

	// The cancelled loader's result must never surface.
	select {
	case r := <-n.Results():
		t.Fatalf("stale result delivered: %+v", r)
	case <-time.After(100 * time.Millisecond):
	}
	assert.Equal(t, StateResolved, n.State())
	assert.NoError(t, n.Err())
}

func TestAccept_RejectsStaleGeneration(t *testing.T) {
	n := New(nil)
	defer n.Shutdown()

	n.Go(RouteMenu, staticLoader("menu data"))
	r := awaitResult(t, n)

	// User navigated on before the result was applied.
	n.Go(RouteCart)

	assert.False(t, n.Accept(r), "a result from a left-behind navigation must be rejected")
	assert.Equal(t, RouteCart, n.Route())
	assert.Equal(t, StateResolved, n.State())
	assert.Empty(t, n.Data())
}

func TestShutdown_ReleasesPendingLoader(t *testing.T) {
	n := New(nil)

	started := make(chan struct{})
	n.Go(RouteOrder, blockingLoader(started))
	<-started

	done := make(chan struct{})
	go func() {
		n.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not release the pending loader")
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "resolved", StateResolved.String())
	assert.Equal(t, "errored", StateErrored.String())
}
