package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownUnit   = errors.New("unknown purchasable unit")
	ErrInvalidAmount = errors.New("credit amount must be positive")
)

// PurchasableUnit is a diamond bundle on sale in the shop. Reference data only.
type PurchasableUnit struct {
	ID              string  `json:"id"`
	Price           float64 `json:"price"`
	Diamonds        int     `json:"diamonds"`
	Popular         bool    `json:"popular"`
	DiscountPercent *int    `json:"discount_percent,omitempty"`
}

// Wallet holds the diamond balance. It belongs to the purchase flow, not to the
// journal.
type Wallet interface {
	Credit(amount int) error
	Balance() int
}

func Catalog() []PurchasableUnit {
	discount := 15
	return []PurchasableUnit{
		{ID: "fragment-1200", Price: 8.00, Diamonds: 1200},
		{ID: "fragment-2888", Price: 15.00, Diamonds: 2888, Popular: true, DiscountPercent: &discount},
		{ID: "fragment-3600", Price: 22.00, Diamonds: 3600},
		{ID: "fragment-5000", Price: 28.00, Diamonds: 5000},
	}
}

func FindUnit(id string) (PurchasableUnit, error) {
	for _, u := range Catalog() {
		if u.ID == id {
			return u, nil
		}
	}
	return PurchasableUnit{}, fmt.Errorf("%w: %s", ErrUnknownUnit, id)
}
