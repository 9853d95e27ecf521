package store

// Cart invariant: no line item is ever stored with Quantity <= 0. Every
// transition below preserves it; DecreaseQuantity deletes the line instead
// of letting it reach zero.

// AddItem appends a new line item with quantity 1. Adding an id that is
// already in the cart increments that line's quantity instead of creating
// a duplicate entry.
func (s *Store) AddItem(item LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ID == item.ID {
			s.cart[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	s.cart = append(s.cart, item)
}

// RemoveItem deletes the line item with the given id. No-op if absent.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

func (s *Store) removeLocked(id string) {
	for i := range s.cart {
		if s.cart[i].ID == id {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return
		}
	}
}

// IncreaseQuantity bumps the line's quantity by one. No-op if absent.
func (s *Store) IncreaseQuantity(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ID == id {
			s.cart[i].Quantity++
			return
		}
	}
}

// DecreaseQuantity lowers the line's quantity by one. Decreasing below 1
// removes the line entirely. No-op if absent.
func (s *Store) DecreaseQuantity(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ID == id {
			if s.cart[i].Quantity <= 1 {
				s.removeLocked(id)
			} else {
				s.cart[i].Quantity--
			}
			return
		}
	}
}

// ClearCart empties the cart. Called once, after a confirmed successful
// order submission.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]LineItem, len(s.cart))
	copy(items, s.cart)
	return items
}

// Item returns the line item for id, if present.
func (s *Store) Item(id string) (LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, li := range s.cart {
		if li.ID == id {
			return li, true
		}
	}
	return LineItem{}, false
}

// IsItemInCart reports whether a line with the given id exists.
func (s *Store) IsItemInCart(id string) bool {
	_, ok := s.Item(id)
	return ok
}

// TotalQuantity is the sum of all line quantities. Derived, never stored.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, li := range s.cart {
		total += li.Quantity
	}
	return total
}

// TotalPrice is the sum over all lines of quantity times unit price.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, li := range s.cart {
		total += li.Subtotal()
	}
	return total
}
