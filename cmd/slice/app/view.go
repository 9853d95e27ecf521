// View rendering for the storefront screens.
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"slice/cmd/slice/ui"
	"slice/internal/api"
	"slice/internal/router"
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	var content string
	switch {
	case m.nav.State() == router.StateErrored:
		content = m.renderRouteError()
	default:
		switch m.nav.Route() {
		case router.RouteHome:
			content = m.renderHome()
		case router.RouteMenu:
			content = m.renderMenu()
		case router.RouteCart:
			content = m.renderCart()
		case router.RouteNewOrder:
			content = m.renderForm()
		case router.RouteOrder:
			content = m.renderOrder()
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.styles.Content.Render(content),
		footer,
	)
}

// renderHeader is the persistent top bar: brand, order search, username and
// cart badge.
func (m Model) renderHeader() string {
	brand := m.styles.Header.Render(" 🍕 slice ")

	var search string
	if m.focus == FocusSearch {
		search = m.searchInput.View()
	} else {
		search = m.styles.Muted.Render("/ search order")
	}

	var user string
	if name := m.st.UserName(); name != "" {
		user = m.styles.Bold.Render(name)
	}

	var cart string
	if qty := m.st.TotalQuantity(); qty > 0 {
		cart = m.styles.CartBadge.Render(fmt.Sprintf("🛒 %d · €%.2f", qty, m.st.TotalPrice()))
	}

	var busy string
	if m.loading() {
		busy = m.spinner.View()
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, brand, "  ", search, "  ", user, "  ", cart, " ", busy)
}

func (m Model) renderFooter() string {
	var hints string
	switch m.nav.Route() {
	case router.RouteHome:
		hints = "enter: start ordering · ctrl+c: quit"
	case router.RouteMenu:
		hints = "↑/↓: browse · enter/+: add · -: remove · c: cart · /: find order · ?: help · q: quit"
	case router.RouteCart:
		hints = "↑/↓: select · +/-: quantity · x: delete · enter: checkout · esc: menu"
	case router.RouteNewOrder:
		hints = "tab: next field · ctrl+p: priority · enter: place order · esc: back"
	case router.RouteOrder:
		hints = "p: make priority · m: menu · /: find another · q: quit"
	}
	return m.styles.Footer.Render(hints)
}

func (m Model) renderHome() string {
	var sb strings.Builder
	sb.WriteString(ui.Logo(m.styles))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Title.Render("The best pizza."))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtitle.Render("Straight out of the oven, straight to you."))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Body.Render("👋 Welcome! Please start by telling us your name:"))
	sb.WriteString("\n\n")
	sb.WriteString(m.nameInput.View())
	return sb.String()
}

func (m Model) renderMenu() string {
	if m.nav.State() == router.StatePending {
		return m.styles.Muted.Render("Loading menu...")
	}

	var sb strings.Builder
	sb.WriteString(m.menuList.View())

	if entry, ok := m.menuList.SelectedItem().(menuEntry); ok {
		sb.WriteString("\n")
		sb.WriteString(m.renderMenuDetail(entry.item))
	}
	return sb.String()
}

func (m Model) renderMenuDetail(item api.MenuItem) string {
	var sb strings.Builder
	if len(item.Ingredients) > 0 {
		sb.WriteString(m.styles.Muted.Render(strings.Join(item.Ingredients, ", ")))
		sb.WriteString("\n")
	}
	if item.SoldOut {
		sb.WriteString(m.styles.SoldOut.Render("SOLD OUT"))
	} else if li, ok := m.st.Item(item.ID); ok {
		sb.WriteString(m.styles.Success.Render(fmt.Sprintf("In cart: %d", li.Quantity)))
	} else {
		sb.WriteString(m.styles.Price.Render(fmt.Sprintf("€%.2f", item.UnitPrice)))
	}
	return sb.String()
}

func (m Model) renderCart() string {
	items := m.st.Items()

	var sb strings.Builder
	name := m.st.UserName()
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("Your cart, %s", name)))
	sb.WriteString("\n")

	if len(items) == 0 {
		sb.WriteString(m.styles.Muted.Render("Your cart is still empty. Head back to the menu. 🙂"))
		return sb.String()
	}

	for i, li := range items {
		line := fmt.Sprintf("%d× %-24s €%.2f", li.Quantity, li.Name, li.Subtotal())
		if i == m.cartCursor {
			sb.WriteString(m.styles.Selected.Render("› " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.RenderDivider(40))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Price.Render(fmt.Sprintf("Total: €%.2f", m.st.TotalPrice())))
	return sb.String()
}

func (m Model) renderForm() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Ready to order? Let's go!"))
	sb.WriteString("\n")

	for i := range m.form.inputs {
		sb.WriteString(m.styles.FieldLabel.Render(fieldLabels[i]))
		sb.WriteString("\n")
		sb.WriteString(m.form.inputs[i].View())
		sb.WriteString("\n")
		if msg := m.formErrors.Field(fieldNames[i]); msg != "" {
			sb.WriteString(m.styles.FieldError.Render(msg))
			sb.WriteString("\n")
		}
	}

	priority := "[ ]"
	if m.form.priority {
		priority = "[x]"
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Body.Render(fmt.Sprintf("%s Want to give your order priority? (ctrl+p)", priority)))
	sb.WriteString("\n\n")

	if msg := m.formErrors.Field("cart"); msg != "" {
		sb.WriteString(m.styles.Error.Render(msg))
		sb.WriteString("\n")
	}
	if m.submitErr != "" {
		sb.WriteString(m.styles.Error.Render(m.submitErr))
		sb.WriteString("\n")
	}

	if m.isSubmitting {
		sb.WriteString(m.styles.Muted.Render("Placing order..."))
	} else {
		sb.WriteString(m.styles.Badge.Render(fmt.Sprintf(" Order now for €%.2f ", m.checkoutTotal())))
	}
	return sb.String()
}

// checkoutTotal previews the price including the 20% priority surcharge.
func (m Model) checkoutTotal() float64 {
	total := m.st.TotalPrice()
	if m.form.priority {
		total += total * 0.2
	}
	return total
}

func (m Model) renderOrder() string {
	if m.order == nil || m.nav.State() == router.StatePending {
		return m.styles.Muted.Render("Fetching order...")
	}
	o := *m.order

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("Order #%s — %s", o.ID, o.Status)))
	sb.WriteString("\n")

	if o.Priority {
		sb.WriteString(m.styles.Badge.Render(" PRIORITY "))
		sb.WriteString("\n")
	}

	if !o.EstimatedDelivery.IsZero() {
		if mins := int(time.Until(o.EstimatedDelivery).Minutes()); mins > 0 {
			sb.WriteString(m.styles.Body.Render(fmt.Sprintf("Only %d minutes left 😃", mins)))
		} else {
			sb.WriteString(m.styles.Muted.Render("Order should have arrived"))
		}
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render("(Estimated delivery: " + o.EstimatedDelivery.Format("15:04") + ")"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	for _, item := range o.Cart {
		sb.WriteString(fmt.Sprintf("%d× %-24s €%.2f\n", item.Quantity, item.Name, item.TotalPrice))
	}
	sb.WriteString(m.styles.RenderDivider(40))
	sb.WriteString("\n")

	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("Price pizza: €%.2f", o.OrderPrice)))
	sb.WriteString("\n")
	if o.PriorityPrice > 0 {
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("Price priority: €%.2f", o.PriorityPrice)))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Price.Render(fmt.Sprintf("To pay on delivery: €%.2f", o.TotalPrice())))
	return sb.String()
}

// renderRouteError is the error boundary: it renders the errored route's
// message in place of the screen, scoped to that screen only.
func (m Model) renderRouteError() string {
	err := m.nav.Err()
	if err == nil {
		return ""
	}

	msg := err.Error()
	var svcErr *api.ServiceError
	if errors.As(err, &svcErr) {
		msg = svcErr.Message()
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Error.Render("Something went wrong 😢"))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Body.Render(msg))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Muted.Render("Press esc to go back to the menu."))
	return sb.String()
}
