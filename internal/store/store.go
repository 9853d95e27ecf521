// Package store holds the client-side session state for the storefront:
// the user identity and the cart. Transitions are pure state changes with
// no side effects, applied atomically and in dispatch order. Nothing is
// persisted; state resets when the process exits.
package store

import "sync"

// LineItem is one cart entry: a menu item id plus the quantity ordered.
type LineItem struct {
	ID        string
	Name      string
	Quantity  int
	UnitPrice float64
}

// Subtotal returns quantity times unit price for this line.
func (li LineItem) Subtotal() float64 {
	return float64(li.Quantity) * li.UnitPrice
}

// Store is the single shared mutable resource of the application. All
// mutations go through its transition methods, which lock so that reads
// never observe a torn cart.
type Store struct {
	mu       sync.Mutex
	userName string
	cart     []LineItem
}

// New returns an empty store: no user name, no cart entries.
func New() *Store {
	return &Store{}
}

// SetUserName replaces the user's name. Validation (non-empty) is the
// presentation layer's job.
func (s *Store) SetUserName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userName = name
}

// UserName returns the current user name, empty until set.
func (s *Store) UserName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userName
}
