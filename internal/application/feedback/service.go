package feedback

import (
	"context"
	"errors"

	"github.com/swinglens/swinglens-api/internal/domain"
)

type Service interface {
	// Create attaches coach feedback to a video. The video must belong to a
	// player on the coach's roster; the player id is derived from the video.
	Create(ctx context.Context, coachID, videoID string, req domain.CreateFeedbackRequest) (*domain.Feedback, error)
	// ListForPlayer returns a player's feedback inbox, unread first.
	ListForPlayer(ctx context.Context, playerID string) ([]domain.Feedback, error)
	// MarkAsRead flips is_read on a feedback entry owned by the player.
	MarkAsRead(ctx context.Context, playerID, feedbackID string) (*domain.Feedback, error)
}

type feedbackStore interface {
	Create(ctx context.Context, f *domain.Feedback) error
	Get(ctx context.Context, feedbackID string) (*domain.Feedback, error)
	ListByPlayer(ctx context.Context, playerID string) ([]domain.Feedback, error)
	MarkAsRead(ctx context.Context, feedbackID string) (*domain.Feedback, error)
}

type videoStore interface {
	Get(ctx context.Context, videoID string) (*domain.Video, error)
}

type playerStore interface {
	Get(ctx context.Context, playerID string) (*domain.Player, error)
}

type service struct {
	feedbackRepo feedbackStore
	videoRepo    videoStore
	playerRepo   playerStore
}

func NewService(feedbackRepo feedbackStore, videoRepo videoStore, playerRepo playerStore) Service {
	return &service{feedbackRepo: feedbackRepo, videoRepo: videoRepo, playerRepo: playerRepo}
}

func (s *service) Create(ctx context.Context, coachID, videoID string, req domain.CreateFeedbackRequest) (*domain.Feedback, error) {
	v, err := s.videoRepo.Get(ctx, videoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Video not found")
		}
		return nil, domain.Storage("database unavailable")
	}

	owner, err := s.playerRepo.Get(ctx, v.PlayerID)
	if err != nil {
		return nil, domain.Storage("database unavailable")
	}
	if owner.CoachID == nil || *owner.CoachID != coachID {
		return nil, domain.NotFound("Video not found")
	}

	f := &domain.Feedback{
		VideoID:              v.ID,
		PlayerID:             v.PlayerID,
		CoachID:              &coachID,
		FeedbackType:         req.FeedbackType,
		Summary:              req.Summary,
		DrillRecommendations: req.DrillRecommendations,
		PriorityFixes:        req.PriorityFixes,
	}
	if err := s.feedbackRepo.Create(ctx, f); err != nil {
		return nil, domain.Storage("database unavailable")
	}
	return f, nil
}

func (s *service) ListForPlayer(ctx context.Context, playerID string) ([]domain.Feedback, error) {
	entries, err := s.feedbackRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, domain.Storage("database unavailable")
	}
	return entries, nil
}

func (s *service) MarkAsRead(ctx context.Context, playerID, feedbackID string) (*domain.Feedback, error) {
	f, err := s.feedbackRepo.Get(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Feedback not found")
		}
		return nil, domain.Storage("database unavailable")
	}
	if f.PlayerID != playerID {
		return nil, domain.NotFound("Feedback not found")
	}

	updated, err := s.feedbackRepo.MarkAsRead(ctx, feedbackID)
	if err != nil {
		return nil, domain.Storage("database unavailable")
	}
	return updated, nil
}
