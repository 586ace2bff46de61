package video

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/swinglens/swinglens-api/internal/domain"
)

// --- mocks ---

type mockVideoStore struct{ mock.Mock }

func (m *mockVideoStore) Create(ctx context.Context, v *domain.Video) error {
	args := m.Called(ctx, v)
	if args.Error(0) == nil {
		v.ID = "new-video-id"
	}
	return args.Error(0)
}
func (m *mockVideoStore) Get(ctx context.Context, videoID string) (*domain.Video, error) {
	args := m.Called(ctx, videoID)
	if v, _ := args.Get(0).(*domain.Video); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockVideoStore) ListByPlayer(ctx context.Context, playerID string) ([]domain.Video, error) {
	args := m.Called(ctx, playerID)
	if v, _ := args.Get(0).([]domain.Video); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockVideoStore) UpdateStatus(ctx context.Context, videoID, status string, errorMessage *string) error {
	return m.Called(ctx, videoID, status, errorMessage).Error(0)
}

type mockFrameStore struct{ mock.Mock }

func (m *mockFrameStore) Get(ctx context.Context, frameID string) (*domain.Frame, error) {
	args := m.Called(ctx, frameID)
	if f, _ := args.Get(0).(*domain.Frame); f != nil {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockFrameStore) ListByVideo(ctx context.Context, videoID string) ([]domain.Frame, error) {
	args := m.Called(ctx, videoID)
	if f, _ := args.Get(0).([]domain.Frame); f != nil {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockComparisonStore struct{ mock.Mock }

func (m *mockComparisonStore) ListByFrame(ctx context.Context, frameID string) ([]domain.Comparison, error) {
	args := m.Called(ctx, frameID)
	if c, _ := args.Get(0).([]domain.Comparison); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPlayerStore struct{ mock.Mock }

func (m *mockPlayerStore) Get(ctx context.Context, playerID string) (*domain.Player, error) {
	args := m.Called(ctx, playerID)
	if p, _ := args.Get(0).(*domain.Player); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	return m.Called(ctx, key, r, contentType).Error(0)
}
func (m *mockObjectStore) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}
func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// --- builder ---

func newService(vs *mockVideoStore, fs *mockFrameStore, cs *mockComparisonStore, ps *mockPlayerStore, os *mockObjectStore) Service {
	return NewService(ServiceDeps{
		VideoRepo:      vs,
		FrameRepo:      fs,
		ComparisonRepo: cs,
		PlayerRepo:     ps,
		Objects:        os,
	})
}

func strPtr(s string) *string { return &s }

// --- Upload ---

func TestUpload_StoresObjectAndAdvancesStatus(t *testing.T) {
	os := &mockObjectStore{}
	os.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) > len("videos/") && key[:7] == "videos/" && key[len(key)-4:] == ".mp4"
	}), mock.Anything, "video/mp4").Return(nil)
	vs := &mockVideoStore{}
	vs.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.Video) bool {
		return v.PlayerID == "p1" && v.Status == domain.VideoStatusUploading
	})).Return(nil)
	vs.On("UpdateStatus", mock.Anything, "new-video-id", domain.VideoStatusProcessing, (*string)(nil)).Return(nil)

	svc := newService(vs, nil, nil, nil, os)
	v, err := svc.Upload(context.Background(), "p1", bytes.NewReader([]byte("data")), UploadRequest{
		Filename:    "swing.mp4",
		ContentType: "video/mp4",
	})

	require.NoError(t, err)
	assert.Equal(t, "new-video-id", v.ID)
	assert.Equal(t, domain.VideoStatusProcessing, v.Status)
	os.AssertExpectations(t)
	vs.AssertExpectations(t)
}

func TestUpload_ObjectStoreFailureMarksVideoFailed(t *testing.T) {
	os := &mockObjectStore{}
	os.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("s3 down"))
	vs := &mockVideoStore{}
	vs.On("Create", mock.Anything, mock.Anything).Return(nil)
	vs.On("UpdateStatus", mock.Anything, "new-video-id", domain.VideoStatusFailed, mock.Anything).Return(nil)

	svc := newService(vs, nil, nil, nil, os)
	_, err := svc.Upload(context.Background(), "p1", bytes.NewReader(nil), UploadRequest{Filename: "a.mp4"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorage))
	vs.AssertExpectations(t)
}

func TestUpload_StatusAdvanceFailureDeletesObject(t *testing.T) {
	os := &mockObjectStore{}
	os.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	os.On("Delete", mock.Anything, mock.MatchedBy(func(key string) bool {
		return key[:7] == "videos/"
	})).Return(nil)
	vs := &mockVideoStore{}
	vs.On("Create", mock.Anything, mock.Anything).Return(nil)
	vs.On("UpdateStatus", mock.Anything, "new-video-id", domain.VideoStatusProcessing, (*string)(nil)).
		Return(errors.New("db down"))

	svc := newService(vs, nil, nil, nil, os)
	_, err := svc.Upload(context.Background(), "p1", bytes.NewReader(nil), UploadRequest{Filename: "a.mp4"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorage))
	os.AssertExpectations(t)
}

// --- Get / access control ---

func rosterVideo() *domain.Video {
	return &domain.Video{ID: "v1", PlayerID: "p1", S3Key: "videos/abc.mp4"}
}

func TestGet_OwnerSeesPresignedURL(t *testing.T) {
	vs := &mockVideoStore{}
	vs.On("Get", mock.Anything, "v1").Return(rosterVideo(), nil)
	os := &mockObjectStore{}
	os.On("PresignedURL", mock.Anything, "videos/abc.mp4", mock.Anything).
		Return("https://media.example/videos/abc.mp4?sig=x", nil)

	svc := newService(vs, nil, nil, nil, os)
	view, err := svc.Get(context.Background(), "p1", domain.RolePlayer, "v1")

	require.NoError(t, err)
	assert.Equal(t, "v1", view.ID)
	assert.Contains(t, view.URL, "sig=")
}

func TestGet_OtherPlayerGetsNotFound(t *testing.T) {
	vs := &mockVideoStore{}
	vs.On("Get", mock.Anything, "v1").Return(rosterVideo(), nil)

	svc := newService(vs, nil, nil, nil, nil)
	_, err := svc.Get(context.Background(), "p2", domain.RolePlayer, "v1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "Video not found", err.Error())
}

func TestGet_RosterCoachAllowed(t *testing.T) {
	vs := &mockVideoStore{}
	vs.On("Get", mock.Anything, "v1").Return(rosterVideo(), nil)
	ps := &mockPlayerStore{}
	ps.On("Get", mock.Anything, "p1").Return(&domain.Player{ID: "p1", CoachID: strPtr("c1")}, nil)
	os := &mockObjectStore{}
	os.On("PresignedURL", mock.Anything, "videos/abc.mp4", mock.Anything).Return("https://u", nil)

	svc := newService(vs, nil, nil, ps, os)
	view, err := svc.Get(context.Background(), "c1", domain.RoleCoach, "v1")

	require.NoError(t, err)
	assert.Equal(t, "v1", view.ID)
}

func TestGet_OffRosterCoachGetsNotFound(t *testing.T) {
	vs := &mockVideoStore{}
	vs.On("Get", mock.Anything, "v1").Return(rosterVideo(), nil)
	ps := &mockPlayerStore{}
	ps.On("Get", mock.Anything, "p1").Return(&domain.Player{ID: "p1", CoachID: strPtr("c1")}, nil)

	svc := newService(vs, nil, nil, ps, nil)
	_, err := svc.Get(context.Background(), "c2", domain.RoleCoach, "v1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGet_UnknownVideo(t *testing.T) {
	vs := &mockVideoStore{}
	vs.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := newService(vs, nil, nil, nil, nil)
	_, err := svc.Get(context.Background(), "p1", domain.RolePlayer, "missing")

	require.Error(t, err)
	assert.Equal(t, "Video not found", err.Error())
}

// --- ListFrames / ListComparisons ---

func TestListFrames_OwnerGetsPresignedRenders(t *testing.T) {
	vs := &mockVideoStore{}
	vs.On("Get", mock.Anything, "v1").Return(rosterVideo(), nil)
	fs := &mockFrameStore{}
	fs.On("ListByVideo", mock.Anything, "v1").Return([]domain.Frame{
		{ID: "f1", VideoID: "v1", S3KeyRaw: strPtr("frames/f1_raw.jpg")},
		{ID: "f2", VideoID: "v1"},
	}, nil)
	os := &mockObjectStore{}
	os.On("PresignedURL", mock.Anything, "frames/f1_raw.jpg", mock.Anything).Return("https://u/f1", nil)

	svc := newService(vs, fs, nil, nil, os)
	frames, err := svc.ListFrames(context.Background(), "p1", domain.RolePlayer, "v1")

	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, "f1", frames[0].ID)
	require.NotNil(t, frames[0].RawURL)
	assert.Equal(t, "https://u/f1", *frames[0].RawURL)
	assert.Nil(t, frames[1].RawURL)
}

func TestListComparisons_ChecksOwnershipThroughFrame(t *testing.T) {
	fs := &mockFrameStore{}
	fs.On("Get", mock.Anything, "f1").Return(&domain.Frame{ID: "f1", VideoID: "v1"}, nil)
	vs := &mockVideoStore{}
	vs.On("Get", mock.Anything, "v1").Return(rosterVideo(), nil)

	svc := newService(vs, fs, nil, nil, nil)
	_, err := svc.ListComparisons(context.Background(), "p2", domain.RolePlayer, "f1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListComparisons_Success(t *testing.T) {
	fs := &mockFrameStore{}
	fs.On("Get", mock.Anything, "f1").Return(&domain.Frame{ID: "f1", VideoID: "v1"}, nil)
	vs := &mockVideoStore{}
	vs.On("Get", mock.Anything, "v1").Return(rosterVideo(), nil)
	cs := &mockComparisonStore{}
	cs.On("ListByFrame", mock.Anything, "f1").Return([]domain.Comparison{{ID: "cmp1", FrameID: "f1"}}, nil)

	svc := newService(vs, fs, cs, nil, nil)
	comparisons, err := svc.ListComparisons(context.Background(), "p1", domain.RolePlayer, "f1")

	require.NoError(t, err)
	require.Len(t, comparisons, 1)
	assert.Equal(t, "cmp1", comparisons[0].ID)
}
