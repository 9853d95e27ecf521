package app

// helpText is rendered through glamour as the help overlay.
const helpText = `# slice — keyboard reference

## Everywhere
| Key | Action |
|-----|--------|
| / | Search for an order by id |
| ? | Toggle this help |
| ctrl+c | Quit |

## Menu
| Key | Action |
|-----|--------|
| ↑ / ↓ | Browse pizzas |
| enter, + | Add selected pizza to the cart |
| - | Remove one from the cart |
| r | Refresh the menu |
| c | Open the cart |

## Cart
| Key | Action |
|-----|--------|
| + / - | Change quantity |
| x | Delete the line |
| enter | Go to checkout |

## Checkout
| Key | Action |
|-----|--------|
| tab | Next field |
| ctrl+p | Toggle priority (+20%) |
| enter | Place the order |

## Order status
| Key | Action |
|-----|--------|
| p | Upgrade to priority |
| m | Back to the menu |
`

// renderHelp draws the help overlay. Falls back to the raw markdown when
// the renderer is unavailable.
func (m Model) renderHelp() string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(helpText); err == nil {
			return out
		}
	}
	return helpText
}
