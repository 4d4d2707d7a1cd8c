package impl

import (
	"sync"

	"github.com/google/uuid"
)

// CartGuard serializes in-flight mutating operations per cart. Two rapid add
// taps from the same session must not interleave their lookup-then-mutate
// sequences, and a checkout must not snapshot a cart while an add is mid-flight;
// the later caller waits for the earlier one, so operations apply in issue order.
type CartGuard struct {
	guards sync.Map // cart ID -> *sync.Mutex
}

// NewCartGuard creates the guard shared by every service that mutates carts.
func NewCartGuard() *CartGuard {
	return &CartGuard{}
}

// Lock acquires the per-cart mutex and returns the release function.
func (g *CartGuard) Lock(cartID uuid.UUID) func() {
	muAny, _ := g.guards.LoadOrStore(cartID, &sync.Mutex{})
	mu := muAny.(*sync.Mutex)
	mu.Lock()

	return mu.Unlock
}
