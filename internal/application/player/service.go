package player

import (
	"context"
	"errors"

	"github.com/swinglens/swinglens-api/internal/domain"
)

type Service interface {
	Get(ctx context.Context, playerID string) (*domain.Player, error)
	Update(ctx context.Context, playerID string, req domain.UpdatePlayerRequest) (*domain.Player, error)
	// ListRoster returns the players assigned to a coach.
	ListRoster(ctx context.Context, coachID string) ([]domain.Player, error)
	// GetForCoach loads a player only if they belong to the coach's roster.
	GetForCoach(ctx context.Context, coachID, playerID string) (*domain.Player, error)
}

type playerStore interface {
	Get(ctx context.Context, playerID string) (*domain.Player, error)
	Update(ctx context.Context, playerID string, req domain.UpdatePlayerRequest) (*domain.Player, error)
	ListByCoach(ctx context.Context, coachID string) ([]domain.Player, error)
}

type service struct {
	repo playerStore
}

func NewService(repo playerStore) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, playerID string) (*domain.Player, error) {
	p, err := s.repo.Get(ctx, playerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Player not found")
		}
		return nil, domain.Storage("database unavailable")
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, playerID string, req domain.UpdatePlayerRequest) (*domain.Player, error) {
	p, err := s.repo.Update(ctx, playerID, req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Player not found")
		}
		return nil, domain.Storage("database unavailable")
	}
	return p, nil
}

func (s *service) ListRoster(ctx context.Context, coachID string) ([]domain.Player, error) {
	players, err := s.repo.ListByCoach(ctx, coachID)
	if err != nil {
		return nil, domain.Storage("database unavailable")
	}
	return players, nil
}

func (s *service) GetForCoach(ctx context.Context, coachID, playerID string) (*domain.Player, error) {
	p, err := s.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	// Off-roster players are reported as absent, not forbidden, so the
	// response does not reveal whether the id exists.
	if p.CoachID == nil || *p.CoachID != coachID {
		return nil, domain.NotFound("Player not found")
	}
	return p, nil
}
