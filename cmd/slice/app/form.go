package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"slice/cmd/slice/ui"
	"slice/internal/api"
	"slice/internal/router"
)

// Field indexes into the new-order form inputs.
const (
	fieldCustomer = iota
	fieldPhone
	fieldAddress
	fieldCount
)

var fieldNames = [fieldCount]string{"customer", "phone", "address"}
var fieldLabels = [fieldCount]string{"Name", "Phone", "Address"}

// orderFormState holds the checkout form's inputs and the priority toggle.
type orderFormState struct {
	inputs   [fieldCount]textinput.Model
	focused  int
	priority bool
}

func newOrderFormState() orderFormState {
	var f orderFormState
	placeholders := [fieldCount]string{"Jane Doe", "+1 555 0123", "Main Street 1"}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 80
		f.inputs[i] = in
	}
	f.inputs[fieldCustomer].Focus()
	return f
}

// next moves focus to the following field, wrapping past the last one.
func (f *orderFormState) next() {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + 1) % fieldCount
	f.inputs[f.focused].Focus()
}

// prev moves focus to the preceding field.
func (f *orderFormState) prev() {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused - 1 + fieldCount) % fieldCount
	f.inputs[f.focused].Focus()
}

// update forwards a message to the focused input.
func (f *orderFormState) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

// collect turns the field state into the submission form.
func (f orderFormState) collect(position string) router.OrderForm {
	return router.OrderForm{
		Customer: f.inputs[fieldCustomer].Value(),
		Phone:    f.inputs[fieldPhone].Value(),
		Address:  f.inputs[fieldAddress].Value(),
		Priority: f.priority,
		Position: position,
	}
}

// prefill fills the given field if the user hasn't typed into it yet.
func (f *orderFormState) prefill(field int, value string) {
	if value != "" && f.inputs[field].Value() == "" {
		f.inputs[field].SetValue(value)
	}
}

// reset clears all fields and returns focus to the first one.
func (f *orderFormState) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focused = fieldCustomer
	f.priority = false
	f.inputs[fieldCustomer].Focus()
}

// menuEntry adapts an api.MenuItem to the bubbles list.
type menuEntry struct {
	item api.MenuItem
}

func (e menuEntry) Title() string       { return e.item.Name }
func (e menuEntry) FilterValue() string { return e.item.Name }

func (e menuEntry) Description() string {
	if e.item.SoldOut {
		return "Sold out"
	}
	return fmt.Sprintf("€%.2f", e.item.UnitPrice)
}

// newMenuDelegate styles menu rows to the storefront palette.
func newMenuDelegate(styles ui.Styles) list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(styles.Theme.Primary).BorderForeground(styles.Theme.Primary)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(styles.Theme.Primary).BorderForeground(styles.Theme.Primary)
	return d
}
