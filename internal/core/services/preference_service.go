package services

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
)

// PreferenceService applies one change at a time: load, mutate, save. A change
// rejected by validation never reaches the repository.
type PreferenceService struct {
	repo domain.PreferenceRepository

	lock *sync.Mutex
}

func NewPreferenceService(repo domain.PreferenceRepository) *PreferenceService {
	return &PreferenceService{repo: repo, lock: new(sync.Mutex)}
}

func (s *PreferenceService) Get(ctx context.Context) (domain.Preferences, error) {
	return s.repo.Get(ctx)
}

func (s *PreferenceService) SetDarkMode(ctx context.Context, on bool) (domain.Preferences, error) {
	return s.mutate(ctx, func(p *domain.Preferences) error {
		p.SetDarkMode(on)
		return nil
	})
}

func (s *PreferenceService) SetDisplayName(ctx context.Context, name string) (domain.Preferences, error) {
	return s.mutate(ctx, func(p *domain.Preferences) error {
		return p.SetDisplayName(name)
	})
}

// SetAvatar replaces the avatar; nil removes it.
func (s *PreferenceService) SetAvatar(ctx context.Context, image []byte) (domain.Preferences, error) {
	return s.mutate(ctx, func(p *domain.Preferences) error {
		p.SetAvatar(image)
		return nil
	})
}

func (s *PreferenceService) mutate(ctx context.Context, fn func(*domain.Preferences) error) (domain.Preferences, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	prefs, err := s.repo.Get(ctx)
	if err != nil {
		return domain.Preferences{}, err
	}
	if err := fn(&prefs); err != nil {
		return domain.Preferences{}, err
	}
	if err := s.repo.Save(ctx, prefs); err != nil {
		return domain.Preferences{}, err
	}
	return prefs, nil
}
