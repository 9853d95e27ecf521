// Package app provides the interactive TUI storefront for slice.
// The functionality is split across multiple files:
//   - model.go: Types, constructor, Shutdown (this file)
//   - update.go: Init, Update loop, key handling
//   - form.go: New-order form field management
//   - view.go: Rendering functions
//   - help.go: Help overlay
package app

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"slice/cmd/slice/ui"
	"slice/internal/api"
	"slice/internal/config"
	"slice/internal/logging"
	"slice/internal/router"
	"slice/internal/store"
)

// Focus determines which input component receives keystrokes.
type Focus int

const (
	FocusScreen Focus = iota // keys drive the active screen
	FocusSearch              // header order-id search box
)

// Model is the main model for the interactive storefront.
type Model struct {
	// UI Components
	nameInput   textinput.Model
	searchInput textinput.Model
	menuList    list.Model
	spinner     spinner.Model
	styles      ui.Styles
	renderer    *glamour.TermRenderer

	// New-order form
	form       orderFormState
	formErrors router.ValidationErrors
	submitErr  string

	focus    Focus
	showHelp bool

	// State
	width  int
	height int
	ready  bool

	menu         []api.MenuItem
	order        *api.Order
	suggestion   api.Address
	cartCursor   int
	isSubmitting bool

	// Backend
	cfg     *config.Config
	st      *store.Store
	nav     *router.Navigator
	actions *router.Actions
	client  *api.Client
	geo     *api.Geocoder
	log     *zap.SugaredLogger

	// Shutdown coordination. Pointer so Model copies share the Once.
	shutdownOnce *sync.Once
}

// Messages for tea updates
type (
	// routeMsg carries a loader outcome from the navigator.
	routeMsg router.Result

	// orderPlacedMsg carries the backend-created order after a successful
	// submission.
	orderPlacedMsg api.Order

	// orderFailedMsg carries a rejected or failed submission. Validation
	// failures and backend failures are told apart with errors.As.
	orderFailedMsg struct{ err error }

	// priorityMsg carries the outcome of the priority upgrade. A nil order
	// means the backend never confirmed and the toggle stays unchanged.
	priorityMsg struct{ order *api.Order }
)

// New assembles the storefront model from its backend pieces.
func New(cfg *config.Config, base *zap.Logger) Model {
	styles := ui.DefaultStyles()

	client := api.NewClient(cfg.API.BaseURL, logging.Get(base, logging.CategoryAPI))
	geo := api.NewGeocoder(cfg.Geo.BaseURL, logging.Get(base, logging.CategoryGeo))
	st := store.New()
	nav := router.New(logging.Get(base, logging.CategoryRouter))
	nav.Go(router.RouteHome)
	actions := router.NewActions(client, st, logging.Get(base, logging.CategoryRouter))

	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 40
	name.Focus()

	search := textinput.New()
	search.Placeholder = "Order #"
	search.CharLimit = 12

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	menuList := list.New(nil, newMenuDelegate(styles), 0, 0)
	menuList.Title = "Our menu"
	menuList.SetShowStatusBar(false)
	menuList.SetFilteringEnabled(false)
	menuList.SetShowHelp(false)

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)

	return Model{
		nameInput:    name,
		searchInput:  search,
		menuList:     menuList,
		spinner:      sp,
		styles:       styles,
		renderer:     renderer,
		form:         newOrderFormState(),
		cfg:          cfg,
		st:           st,
		nav:          nav,
		actions:      actions,
		client:       client,
		geo:          geo,
		log:          logging.Get(base, logging.CategoryUI),
		shutdownOnce: &sync.Once{},
	}
}

// Shutdown stops in-flight navigations and waits for their goroutines.
// Safe to call multiple times. MUST be called before tea.Quit.
func (m Model) Shutdown() {
	m.shutdownOnce.Do(func() {
		if m.nav != nil {
			m.nav.Shutdown()
		}
	})
}

// waitForRoute listens for the next loader outcome.
func (m Model) waitForRoute() tea.Cmd {
	return func() tea.Msg {
		return routeMsg(<-m.nav.Results())
	}
}

// submitOrder runs the new-order action off the update loop.
func (m Model) submitOrder(form router.OrderForm) tea.Cmd {
	return func() tea.Msg {
		order, err := m.actions.SubmitOrder(context.Background(), form)
		if err != nil {
			return orderFailedMsg{err: err}
		}
		return orderPlacedMsg(order)
	}
}

// makePriority runs the priority upgrade off the update loop.
func (m Model) makePriority(id string) tea.Cmd {
	return func() tea.Msg {
		return priorityMsg{order: m.actions.MakePriority(context.Background(), id)}
	}
}

// Run starts the interactive storefront session.
func Run(cfg *config.Config, base *zap.Logger) error {
	model := New(cfg, base)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
