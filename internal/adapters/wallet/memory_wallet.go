package wallet

import (
	"fmt"
	"sync"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
)

var _ domain.Wallet = (*InMemoryWallet)(nil)

// InMemoryWallet holds the diamond balance for the life of the process.
type InMemoryWallet struct {
	balance int

	mu sync.Mutex
}

func NewInMemoryWallet(initial int) *InMemoryWallet {
	return &InMemoryWallet{balance: initial}
}

func (w *InMemoryWallet) Credit(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.balance += amount
	return nil
}

func (w *InMemoryWallet) Balance() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.balance
}
