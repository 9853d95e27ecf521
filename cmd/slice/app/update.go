package app

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"slice/internal/api"
	"slice/internal/router"
	"slice/internal/store"
)

// Init starts the blink and spinner tickers and the route listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.waitForRoute(),
	)
}

// loading reports whether the global activity indicator should show.
func (m Model) loading() bool {
	return m.isSubmitting || m.nav.State() == router.StatePending
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		listWidth := msg.Width - 4
		listHeight := msg.Height - 8
		if listWidth < 1 {
			listWidth = 1
		}
		if listHeight < 1 {
			listHeight = 1
		}
		m.menuList.SetSize(listWidth, listHeight)
		return m, nil

	case spinner.TickMsg:
		if m.loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case routeMsg:
		return m.handleRouteResult(router.Result(msg))

	case orderPlacedMsg:
		m.isSubmitting = false
		m.formErrors = nil
		m.submitErr = ""
		order := api.Order(msg)
		m.order = &order
		m.form.reset()
		m.log.Infow("order placed, redirecting", "id", order.ID)
		m.goOrder(order.ID)
		return m, m.spinner.Tick

	case orderFailedMsg:
		m.isSubmitting = false
		var verrs router.ValidationErrors
		if errors.As(msg.err, &verrs) {
			m.formErrors = verrs
			return m, nil
		}
		var svcErr *api.ServiceError
		if errors.As(msg.err, &svcErr) {
			m.submitErr = svcErr.Message()
		} else {
			m.submitErr = msg.err.Error()
		}
		return m, nil

	case priorityMsg:
		// A nil order means the backend never confirmed; the toggle stays
		// as it was.
		if msg.order != nil {
			m.order = msg.order
		}
		return m, nil
	}

	return m, nil
}

// handleRouteResult applies a loader outcome, re-arms the listener, and
// distributes resolved data to the owning screen.
func (m Model) handleRouteResult(r router.Result) (tea.Model, tea.Cmd) {
	listen := m.waitForRoute()
	if !m.nav.Accept(r) || r.Err != nil {
		return m, listen
	}

	switch r.Route {
	case router.RouteMenu:
		if items, ok := r.Data[0].([]api.MenuItem); ok {
			m.menu = items
			entries := make([]list.Item, len(items))
			for i, it := range items {
				entries[i] = menuEntry{item: it}
			}
			m.menuList.SetItems(entries)
		}

	case router.RouteNewOrder:
		if addr, ok := r.Data[0].(api.Address); ok {
			m.suggestion = addr
			m.form.prefill(fieldAddress, addr.String())
		}

	case router.RouteOrder:
		if o, ok := r.Data[0].(api.Order); ok {
			m.order = &o
		}
	}
	return m, listen
}

// ============================================================================
// KEY HANDLING
// ============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global bindings first.
	switch msg.Type {
	case tea.KeyCtrlC:
		m.Shutdown()
		return m, tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "esc", "q", "?":
			m.showHelp = false
		}
		return m, nil
	}

	if m.focus == FocusSearch {
		return m.handleSearchKey(msg)
	}

	// "/" opens the order search from any browsing screen. The home and
	// checkout screens own free text input, so it types there instead.
	route := m.nav.Route()
	if msg.String() == "/" && route != router.RouteHome && route != router.RouteNewOrder {
		m.focus = FocusSearch
		m.searchInput.Focus()
		return m, textinput.Blink
	}
	if msg.String() == "?" && route != router.RouteHome && route != router.RouteNewOrder {
		m.showHelp = true
		return m, nil
	}

	// An errored route offers one way out: back to the menu.
	if m.nav.State() == router.StateErrored && msg.String() == "esc" {
		m.goMenu()
		return m, m.spinner.Tick
	}

	switch route {
	case router.RouteHome:
		return m.handleHomeKey(msg)
	case router.RouteMenu:
		return m.handleMenuKey(msg)
	case router.RouteCart:
		return m.handleCartKey(msg)
	case router.RouteNewOrder:
		return m.handleFormKey(msg)
	case router.RouteOrder:
		return m.handleOrderKey(msg)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.focus = FocusScreen
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m, nil
	case tea.KeyEnter:
		id := strings.TrimSpace(m.searchInput.Value())
		if id == "" {
			return m, nil
		}
		m.focus = FocusScreen
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.goOrder(id)
		return m, m.spinner.Tick
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			return m, nil
		}
		m.st.SetUserName(name)
		m.nameInput.Blur()
		m.log.Infow("username set", "name", name)
		m.goMenu()
		return m, m.spinner.Tick
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "+", "a":
		if entry, ok := m.menuList.SelectedItem().(menuEntry); ok {
			if entry.item.SoldOut {
				return m, nil
			}
			if m.st.IsItemInCart(entry.item.ID) {
				m.st.IncreaseQuantity(entry.item.ID)
			} else {
				m.st.AddItem(store.LineItem{
					ID:        entry.item.ID,
					Name:      entry.item.Name,
					UnitPrice: entry.item.UnitPrice,
				})
			}
		}
		return m, nil
	case "-":
		if entry, ok := m.menuList.SelectedItem().(menuEntry); ok {
			m.st.DecreaseQuantity(entry.item.ID)
		}
		return m, nil
	case "c":
		m.nav.Go(router.RouteCart)
		return m, nil
	case "r":
		m.goMenu()
		return m, m.spinner.Tick
	case "esc", "q":
		m.Shutdown()
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.menuList, cmd = m.menuList.Update(msg)
	return m, cmd
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.st.Items()
	switch msg.String() {
	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case "down", "j":
		if m.cartCursor < len(items)-1 {
			m.cartCursor++
		}
	case "+":
		if m.cartCursor < len(items) {
			m.st.IncreaseQuantity(items[m.cartCursor].ID)
		}
	case "-":
		if m.cartCursor < len(items) {
			m.st.DecreaseQuantity(items[m.cartCursor].ID)
			m.clampCartCursor()
		}
	case "x", "d":
		if m.cartCursor < len(items) {
			m.st.RemoveItem(items[m.cartCursor].ID)
			m.clampCartCursor()
		}
	case "enter", "o":
		if m.st.TotalQuantity() > 0 {
			return m.goCheckout()
		}
	case "esc", "m":
		m.nav.Go(router.RouteMenu, router.MenuLoader(m.client))
		return m, m.spinner.Tick
	}
	return m, nil
}

func (m *Model) clampCartCursor() {
	if n := len(m.st.Items()); m.cartCursor >= n && n > 0 {
		m.cartCursor = n - 1
	} else if n == 0 {
		m.cartCursor = 0
	}
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.nav.Go(router.RouteCart)
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.form.next()
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.form.prev()
		return m, nil
	case tea.KeyCtrlP:
		m.form.priority = !m.form.priority
		return m, nil
	case tea.KeyEnter:
		if m.isSubmitting {
			return m, nil
		}
		m.isSubmitting = true
		m.submitErr = ""
		form := m.form.collect(m.cfg.Geo.PositionString())
		return m, tea.Batch(m.spinner.Tick, m.submitOrder(form))
	}
	cmd := m.form.update(msg)
	return m, cmd
}

func (m Model) handleOrderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "p":
		if m.order != nil && !m.order.Priority {
			return m, tea.Batch(m.spinner.Tick, m.makePriority(m.order.ID))
		}
	case "m", "esc":
		m.goMenu()
		return m, m.spinner.Tick
	case "q":
		m.Shutdown()
		return m, tea.Quit
	}
	return m, nil
}

// ============================================================================
// NAVIGATION HELPERS
// ============================================================================

func (m *Model) goMenu() {
	m.nav.Go(router.RouteMenu, router.MenuLoader(m.client))
}

func (m *Model) goOrder(id string) {
	m.nav.Go(router.RouteOrder, router.OrderLoader(m.client, id))
}

// goCheckout opens the new-order form. With a configured position the
// reverse geocode runs as a best-effort loader to prefill the address.
func (m Model) goCheckout() (tea.Model, tea.Cmd) {
	m.formErrors = nil
	m.submitErr = ""
	m.form.prefill(fieldCustomer, m.st.UserName())

	if m.cfg.Geo.HasPosition() {
		m.nav.Go(router.RouteNewOrder,
			router.GeocodeLoader(m.geo, m.cfg.Geo.Latitude, m.cfg.Geo.Longitude, m.log))
		return m, m.spinner.Tick
	}
	m.nav.Go(router.RouteNewOrder)
	return m, nil
}
