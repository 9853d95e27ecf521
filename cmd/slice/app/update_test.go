// Tests for the Update loop: screen transitions, route result handling and
// the submission flow.
package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"slice/internal/api"
	"slice/internal/router"
	"slice/internal/store"
)

// newTestModel builds a model pointed at the given API base URL.
func newTestModel(apiURL string) Model {
	cfg := testConfig(apiURL)
	m := New(cfg, nil)
	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return newModel.(Model)
}

// nextRoute drains the navigator's result channel with a deadline.
func nextRoute(t *testing.T, m Model) router.Result {
	t.Helper()
	select {
	case r := <-m.nav.Results():
		return r
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for route result")
		return router.Result{}
	}
}

func writeEnvelope(w http.ResponseWriter, data any) {
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": data})
}

// =============================================================================
// WINDOW SIZE
// =============================================================================

func TestUpdate_WindowSize(t *testing.T) {
	t.Parallel()
	m := New(testConfig("http://unused.invalid"), nil)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	result := newModel.(Model)

	if result.width != 120 {
		t.Errorf("Expected width 120, got %d", result.width)
	}
	if result.height != 40 {
		t.Errorf("Expected height 40, got %d", result.height)
	}
	if !result.ready {
		t.Error("Expected model to be ready after first window size")
	}
}

func TestUpdate_WindowSize_Zero(t *testing.T) {
	t.Parallel()
	m := New(testConfig("http://unused.invalid"), nil)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Panic on zero window size: %v", r)
		}
	}()
	_, _ = m.Update(tea.WindowSizeMsg{Width: 0, Height: 0})
}

// =============================================================================
// HOME SCREEN
// =============================================================================

func TestHome_EmptyNameDoesNotNavigate(t *testing.T) {
	t.Parallel()
	m := newTestModel("http://unused.invalid")

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)

	if got := result.nav.Route(); got != router.RouteHome {
		t.Errorf("Expected to stay on home, got %q", got)
	}
}

func TestHome_EnterLoadsMenu(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, []api.MenuItem{
			{ID: "p1", Name: "Margherita", UnitPrice: 12},
			{ID: "p2", Name: "Funghi", UnitPrice: 14, SoldOut: true},
		})
	}))
	defer srv.Close()

	m := newTestModel(srv.URL)
	defer m.Shutdown()

	m.nameInput.SetValue("Ada")
	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newModel.(Model)

	if got := m.st.UserName(); got != "Ada" {
		t.Fatalf("Expected username Ada, got %q", got)
	}
	if got := m.nav.Route(); got != router.RouteMenu {
		t.Fatalf("Expected menu route, got %q", got)
	}

	newModel, _ = m.Update(routeMsg(nextRoute(t, m)))
	m = newModel.(Model)

	if m.nav.State() != router.StateResolved {
		t.Fatalf("Expected resolved menu, got %v (err: %v)", m.nav.State(), m.nav.Err())
	}
	if len(m.menu) != 2 {
		t.Errorf("Expected 2 menu items, got %d", len(m.menu))
	}
	if len(m.menuList.Items()) != 2 {
		t.Errorf("Expected 2 list entries, got %d", len(m.menuList.Items()))
	}
}

// =============================================================================
// ORDER LOOKUP
// =============================================================================

func TestOrderLookup_NotFoundIsDistinguishable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	m := newTestModel(srv.URL)
	defer m.Shutdown()

	m.goOrder("XYZ")
	newModel, _ := m.Update(routeMsg(nextRoute(t, m)))
	m = newModel.(Model)

	if m.nav.State() != router.StateErrored {
		t.Fatalf("Expected errored route, got %v", m.nav.State())
	}

	view := m.View()
	if !strings.Contains(view, "Couldn't find order #XYZ") {
		t.Errorf("Expected not-found message in view, got:\n%s", view)
	}
}

// =============================================================================
// SUBMISSION FLOW
// =============================================================================

func TestSubmit_EmptyPhoneMakesNoNetworkCall(t *testing.T) {
	t.Parallel()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	m := newTestModel(srv.URL)
	defer m.Shutdown()
	m.st.AddItem(store.LineItem{ID: "p1", Name: "Margherita", UnitPrice: 12})

	m.form.inputs[fieldCustomer].SetValue("Ada")
	m.form.inputs[fieldAddress].SetValue("Main Street 1")

	msg := m.submitOrder(m.form.collect(""))()
	failed, ok := msg.(orderFailedMsg)
	if !ok {
		t.Fatalf("Expected orderFailedMsg, got %T", msg)
	}

	newModel, _ := m.Update(failed)
	m = newModel.(Model)

	if m.formErrors.Field("phone") == "" {
		t.Error("Expected a phone validation error")
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("Expected no network call on invalid input, got %d", got)
	}
}

func TestOrderPlaced_RedirectsToOrderRoute(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, api.Order{ID: "NEW42", Status: "preparing"})
	}))
	defer srv.Close()

	m := newTestModel(srv.URL)
	defer m.Shutdown()
	m.isSubmitting = true

	newModel, _ := m.Update(orderPlacedMsg(api.Order{ID: "NEW42"}))
	m = newModel.(Model)

	if m.isSubmitting {
		t.Error("Expected submission to be finished")
	}
	if got := m.nav.Route(); got != router.RouteOrder {
		t.Fatalf("Expected order route, got %q", got)
	}

	newModel, _ = m.Update(routeMsg(nextRoute(t, m)))
	m = newModel.(Model)

	if m.order == nil || m.order.ID != "NEW42" {
		t.Errorf("Expected refetched order NEW42, got %+v", m.order)
	}
}

// =============================================================================
// PRIORITY UPGRADE
// =============================================================================

func TestPriority_NilResultLeavesOrderUnchanged(t *testing.T) {
	t.Parallel()
	m := newTestModel("http://unused.invalid")

	m.order = &api.Order{ID: "A1", Priority: false}
	newModel, _ := m.Update(priorityMsg{order: nil})
	m = newModel.(Model)

	if m.order.Priority {
		t.Error("Priority toggle must not change when the backend never confirmed")
	}
}

func TestPriority_ConfirmedResultUpdatesOrder(t *testing.T) {
	t.Parallel()
	m := newTestModel("http://unused.invalid")

	m.order = &api.Order{ID: "A1", Priority: false}
	newModel, _ := m.Update(priorityMsg{order: &api.Order{ID: "A1", Priority: true}})
	m = newModel.(Model)

	if !m.order.Priority {
		t.Error("Expected confirmed priority upgrade to be reflected")
	}
}

// =============================================================================
// STALE RESULTS
// =============================================================================

func TestStaleRouteResult_DoesNotSurface(t *testing.T) {
	t.Parallel()
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(50 * time.Millisecond):
		}
		writeEnvelope(w, []api.MenuItem{{ID: "p1", Name: "Margherita", UnitPrice: 12}})
	}))
	defer slow.Close()

	m := newTestModel(slow.URL)
	defer m.Shutdown()

	m.goMenu()
	// Navigate away while the menu fetch is still in flight.
	m.nav.Go(router.RouteCart)

	if got := m.nav.Route(); got != router.RouteCart {
		t.Fatalf("Expected cart route, got %q", got)
	}
	if m.nav.State() != router.StateResolved {
		t.Errorf("Expected cart to resolve synchronously, got %v", m.nav.State())
	}

	// The abandoned fetch must never repopulate the menu.
	select {
	case r := <-m.nav.Results():
		newModel, _ := m.Update(routeMsg(r))
		m = newModel.(Model)
		if len(m.menu) != 0 {
			t.Error("Stale menu result must not update state")
		}
	case <-time.After(300 * time.Millisecond):
		// Dropped before delivery, which is also correct.
	}
}
