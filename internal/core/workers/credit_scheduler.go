package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
	"github.com/comitanigiacomo/capsule-journal/internal/logger"
)

var ErrQueueFull = errors.New("credit queue is full")

type CreditJob struct {
	ID     string
	Amount int
	Delay  time.Duration
}

// pendingCredit is nil-timer until the loop has armed it.
type pendingCredit struct {
	timer *time.Timer
}

// CreditScheduler credits the wallet after a delay, once per scheduled job.
// A job cancelled before it fires never credits. Pending jobs are dropped when
// the context passed to Start ends.
type CreditScheduler struct {
	wallet domain.Wallet
	jobs   chan CreditJob

	mu      sync.Mutex
	pending map[string]*pendingCredit
}

func NewCreditScheduler(wallet domain.Wallet) *CreditScheduler {
	return &CreditScheduler{
		wallet:  wallet,
		jobs:    make(chan CreditJob, 100),
		pending: make(map[string]*pendingCredit),
	}
}

func (s *CreditScheduler) Start(ctx context.Context) {
	go func() {
		logger.Info("[WORKER] Credit scheduler started")
		for {
			select {
			case job := <-s.jobs:
				s.arm(ctx, job)
			case <-ctx.Done():
				s.dropAll()
				logger.Info("[WORKER] Credit scheduler shutting down")
				return
			}
		}
	}()
}

// Schedule queues a credit of amount and returns its id for Cancel.
func (s *CreditScheduler) Schedule(amount int, delay time.Duration) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}

	job := CreditJob{ID: uuid.NewString(), Amount: amount, Delay: delay}

	s.mu.Lock()
	s.pending[job.ID] = &pendingCredit{}
	s.mu.Unlock()

	select {
	case s.jobs <- job:
		return job.ID, nil
	default:
		s.mu.Lock()
		delete(s.pending, job.ID)
		s.mu.Unlock()
		logger.Warn("[WORKER] Credit queue full, dropping job", "amount", amount)
		return "", ErrQueueFull
	}
}

// Cancel reports whether the job was still pending.
func (s *CreditScheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[id]
	if !ok {
		return false
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	delete(s.pending, id)
	return true
}

// Pending returns the number of jobs not yet fired or cancelled.
func (s *CreditScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.pending)
}

func (s *CreditScheduler) arm(ctx context.Context, job CreditJob) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[job.ID]
	if !ok {
		return // cancelled while queued
	}
	p.timer = time.AfterFunc(job.Delay, func() { s.fire(ctx, job) })
}

func (s *CreditScheduler) fire(ctx context.Context, job CreditJob) {
	s.mu.Lock()
	_, ok := s.pending[job.ID]
	delete(s.pending, job.ID)
	s.mu.Unlock()

	if !ok || ctx.Err() != nil {
		return
	}

	if err := s.wallet.Credit(job.Amount); err != nil {
		logger.Error("[WORKER] Credit failed", "job", job.ID, "err", err)
		return
	}
	logger.Info("[WORKER] Credited wallet", "job", job.ID, "amount", job.Amount)
}

func (s *CreditScheduler) dropAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.pending {
		if p.timer != nil {
			p.timer.Stop()
		}
		delete(s.pending, id)
	}
}
