package services

import (
	"time"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
)

// DefaultPurchaseDelay is how long a purchase takes to credit the wallet.
const DefaultPurchaseDelay = 1500 * time.Millisecond

type CreditScheduler interface {
	Schedule(amount int, delay time.Duration) (string, error)
	Cancel(id string) bool
}

// ShopService sells diamond bundles. No payment is processed: a purchase only
// schedules a credit.
type ShopService struct {
	wallet    domain.Wallet
	scheduler CreditScheduler
	delay     time.Duration
}

func NewShopService(wallet domain.Wallet, scheduler CreditScheduler, delay time.Duration) *ShopService {
	if delay <= 0 {
		delay = DefaultPurchaseDelay
	}
	return &ShopService{
		wallet:    wallet,
		scheduler: scheduler,
		delay:     delay,
	}
}

func (s *ShopService) Catalog() []domain.PurchasableUnit {
	return domain.Catalog()
}

// Purchase returns the id of the pending credit.
func (s *ShopService) Purchase(unitID string) (string, error) {
	unit, err := domain.FindUnit(unitID)
	if err != nil {
		return "", err
	}
	return s.scheduler.Schedule(unit.Diamonds, s.delay)
}

// Cancel is best-effort: it reports false when the credit already fired.
func (s *ShopService) Cancel(purchaseID string) bool {
	return s.scheduler.Cancel(purchaseID)
}

func (s *ShopService) Balance() int {
	return s.wallet.Balance()
}
