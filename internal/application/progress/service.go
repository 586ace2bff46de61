package progress

import (
	"context"
	"errors"
	"time"

	"github.com/swinglens/swinglens-api/internal/domain"
)

type Service interface {
	// ListForPlayer returns the player's own snapshots.
	ListForPlayer(ctx context.Context, playerID string) ([]domain.ProgressSnapshot, error)
	// ListForCoach returns a roster player's snapshots.
	ListForCoach(ctx context.Context, coachID, playerID string) ([]domain.ProgressSnapshot, error)
	// Create records a snapshot for a roster player.
	Create(ctx context.Context, coachID, playerID string, req domain.CreateProgressSnapshotRequest) (*domain.ProgressSnapshot, error)
}

type progressStore interface {
	Create(ctx context.Context, s *domain.ProgressSnapshot) error
	ListByPlayer(ctx context.Context, playerID string) ([]domain.ProgressSnapshot, error)
}

type playerStore interface {
	Get(ctx context.Context, playerID string) (*domain.Player, error)
}

type service struct {
	progressRepo progressStore
	playerRepo   playerStore
}

func NewService(progressRepo progressStore, playerRepo playerStore) Service {
	return &service{progressRepo: progressRepo, playerRepo: playerRepo}
}

func (s *service) ListForPlayer(ctx context.Context, playerID string) ([]domain.ProgressSnapshot, error) {
	snapshots, err := s.progressRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, domain.Storage("database unavailable")
	}
	return snapshots, nil
}

func (s *service) ListForCoach(ctx context.Context, coachID, playerID string) ([]domain.ProgressSnapshot, error) {
	if err := s.checkRoster(ctx, coachID, playerID); err != nil {
		return nil, err
	}
	return s.ListForPlayer(ctx, playerID)
}

func (s *service) Create(ctx context.Context, coachID, playerID string, req domain.CreateProgressSnapshotRequest) (*domain.ProgressSnapshot, error) {
	if err := s.checkRoster(ctx, coachID, playerID); err != nil {
		return nil, err
	}

	// Validated upstream with datetime=2006-01-02; parse cannot fail here
	// except on a programming error, which we surface as-is.
	date, err := time.Parse("2006-01-02", req.SnapshotDate)
	if err != nil {
		return nil, domain.Validation("snapshot_date must be YYYY-MM-DD")
	}

	snapshot := &domain.ProgressSnapshot{
		PlayerID:         playerID,
		SnapshotDate:     date,
		AnglesAvgJSON:    req.AnglesAvgJSON,
		ConsistencyScore: req.ConsistencyScore,
		TotalSwings:      req.TotalSwings,
		CoachNotes:       req.CoachNotes,
	}
	if err := s.progressRepo.Create(ctx, snapshot); err != nil {
		return nil, domain.Storage("database unavailable")
	}
	return snapshot, nil
}

func (s *service) checkRoster(ctx context.Context, coachID, playerID string) error {
	p, err := s.playerRepo.Get(ctx, playerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("Player not found")
		}
		return domain.Storage("database unavailable")
	}
	if p.CoachID == nil || *p.CoachID != coachID {
		return domain.NotFound("Player not found")
	}
	return nil
}
