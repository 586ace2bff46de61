package video

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/swinglens/swinglens-api/internal/domain"
)

// presignTTL bounds how long a media link handed to a client stays valid.
const presignTTL = 15 * time.Minute

type UploadRequest struct {
	Filename    string
	ContentType string
	CameraAngle *string
	ClubType    *string
}

// VideoView is a video row plus a presigned URL for the underlying object.
type VideoView struct {
	domain.Video
	URL string `json:"url"`
}

// FrameView is a frame row plus presigned URLs for whichever renders exist.
type FrameView struct {
	domain.Frame
	RawURL      *string `json:"raw_url"`
	OverlayURL  *string `json:"overlay_url"`
	SkeletonURL *string `json:"skeleton_url"`
}

type Service interface {
	// Upload stores the media object and creates the metadata row in
	// processing state.
	Upload(ctx context.Context, playerID string, body io.Reader, req UploadRequest) (*domain.Video, error)
	ListByPlayer(ctx context.Context, playerID string) ([]domain.Video, error)
	// Get returns a video with a presigned URL. Players see their own videos;
	// coaches see their roster's.
	Get(ctx context.Context, actorID, actorRole, videoID string) (*VideoView, error)
	ListFrames(ctx context.Context, actorID, actorRole, videoID string) ([]FrameView, error)
	ListComparisons(ctx context.Context, actorID, actorRole, frameID string) ([]domain.Comparison, error)
}

type videoStore interface {
	Create(ctx context.Context, v *domain.Video) error
	Get(ctx context.Context, videoID string) (*domain.Video, error)
	ListByPlayer(ctx context.Context, playerID string) ([]domain.Video, error)
	UpdateStatus(ctx context.Context, videoID, status string, errorMessage *string) error
}

type frameStore interface {
	Get(ctx context.Context, frameID string) (*domain.Frame, error)
	ListByVideo(ctx context.Context, videoID string) ([]domain.Frame, error)
}

type comparisonStore interface {
	ListByFrame(ctx context.Context, frameID string) ([]domain.Comparison, error)
}

type playerStore interface {
	Get(ctx context.Context, playerID string) (*domain.Player, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	videoRepo      videoStore
	frameRepo      frameStore
	comparisonRepo comparisonStore
	playerRepo     playerStore
	objects        objectStore
}

type ServiceDeps struct {
	VideoRepo      videoStore
	FrameRepo      frameStore
	ComparisonRepo comparisonStore
	PlayerRepo     playerStore
	Objects        objectStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		videoRepo:      deps.VideoRepo,
		frameRepo:      deps.FrameRepo,
		comparisonRepo: deps.ComparisonRepo,
		playerRepo:     deps.PlayerRepo,
		objects:        deps.Objects,
	}
}

func (s *service) Upload(ctx context.Context, playerID string, body io.Reader, req UploadRequest) (*domain.Video, error) {
	ext := strings.ToLower(path.Ext(req.Filename))
	if ext == "" {
		ext = ".mp4"
	}
	key := "videos/" + ulid.MustNew(ulid.Now(), rand.Reader).String() + ext

	v := &domain.Video{
		PlayerID:    playerID,
		S3Key:       key,
		CameraAngle: req.CameraAngle,
		ClubType:    req.ClubType,
		Status:      domain.VideoStatusUploading,
	}
	if err := s.videoRepo.Create(ctx, v); err != nil {
		return nil, domain.Storage("database unavailable")
	}

	if err := s.objects.Upload(ctx, key, body, req.ContentType); err != nil {
		msg := "media upload failed"
		if uerr := s.videoRepo.UpdateStatus(ctx, v.ID, domain.VideoStatusFailed, &msg); uerr != nil {
			slog.Warn("mark video failed", "video_id", v.ID, "err", uerr)
		}
		return nil, domain.Storage("media storage unavailable")
	}

	if err := s.videoRepo.UpdateStatus(ctx, v.ID, domain.VideoStatusProcessing, nil); err != nil {
		// The row is stuck at uploading and the client will retry from
		// scratch, so the stored object is an orphan. Cleanup is best-effort.
		if derr := s.objects.Delete(ctx, key); derr != nil {
			slog.Warn("orphaned media cleanup failed", "key", key, "err", derr)
		}
		return nil, domain.Storage("database unavailable")
	}
	v.Status = domain.VideoStatusProcessing
	return v, nil
}

func (s *service) ListByPlayer(ctx context.Context, playerID string) ([]domain.Video, error) {
	videos, err := s.videoRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, domain.Storage("database unavailable")
	}
	return videos, nil
}

func (s *service) Get(ctx context.Context, actorID, actorRole, videoID string) (*VideoView, error) {
	v, err := s.authorizedVideo(ctx, actorID, actorRole, videoID)
	if err != nil {
		return nil, err
	}
	url, err := s.objects.PresignedURL(ctx, v.S3Key, presignTTL)
	if err != nil {
		return nil, domain.Storage("media storage unavailable")
	}
	return &VideoView{Video: *v, URL: url}, nil
}

func (s *service) ListFrames(ctx context.Context, actorID, actorRole, videoID string) ([]FrameView, error) {
	if _, err := s.authorizedVideo(ctx, actorID, actorRole, videoID); err != nil {
		return nil, err
	}
	frames, err := s.frameRepo.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, domain.Storage("database unavailable")
	}

	views := make([]FrameView, 0, len(frames))
	for _, f := range frames {
		view := FrameView{Frame: f}
		if view.RawURL, err = s.presignOptional(ctx, f.S3KeyRaw); err != nil {
			return nil, err
		}
		if view.OverlayURL, err = s.presignOptional(ctx, f.S3KeyOverlay); err != nil {
			return nil, err
		}
		if view.SkeletonURL, err = s.presignOptional(ctx, f.S3KeySkeleton); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *service) presignOptional(ctx context.Context, key *string) (*string, error) {
	if key == nil || *key == "" {
		return nil, nil
	}
	url, err := s.objects.PresignedURL(ctx, *key, presignTTL)
	if err != nil {
		return nil, domain.Storage("media storage unavailable")
	}
	return &url, nil
}

func (s *service) ListComparisons(ctx context.Context, actorID, actorRole, frameID string) ([]domain.Comparison, error) {
	frame, err := s.frameRepo.Get(ctx, frameID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Frame not found")
		}
		return nil, domain.Storage("database unavailable")
	}
	if _, err := s.authorizedVideo(ctx, actorID, actorRole, frame.VideoID); err != nil {
		return nil, err
	}
	comparisons, err := s.comparisonRepo.ListByFrame(ctx, frameID)
	if err != nil {
		return nil, domain.Storage("database unavailable")
	}
	return comparisons, nil
}

// authorizedVideo loads a video and checks the actor may see it: the owning
// player, or the coach the owner is assigned to. Everyone else gets the same
// not-found answer as a nonexistent id.
func (s *service) authorizedVideo(ctx context.Context, actorID, actorRole, videoID string) (*domain.Video, error) {
	v, err := s.videoRepo.Get(ctx, videoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Video not found")
		}
		return nil, domain.Storage("database unavailable")
	}

	switch actorRole {
	case domain.RolePlayer:
		if v.PlayerID != actorID {
			return nil, domain.NotFound("Video not found")
		}
	case domain.RoleCoach:
		owner, err := s.playerRepo.Get(ctx, v.PlayerID)
		if err != nil {
			return nil, domain.Storage("database unavailable")
		}
		if owner.CoachID == nil || *owner.CoachID != actorID {
			return nil, domain.NotFound("Video not found")
		}
	default:
		return nil, domain.Forbidden("Forbidden")
	}
	return v, nil
}
