package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"lessonhub/internal/model"
	"lessonhub/internal/supabase"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MaxAvatarBytes caps uploaded avatar images.
const MaxAvatarBytes = 5 << 20

var (
	ErrStorageDisabled       = errors.New("avatar storage is not configured")
	ErrUnsupportedAvatarType = errors.New("unsupported avatar content type")
	ErrAvatarTooLarge        = errors.New("avatar image is too large")
)

var avatarExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

type ProfileService interface {
	GetUserProfile(ctx context.Context, userID, accessToken string) (*model.UserProfile, error)
	GetUserStatistics(ctx context.Context, userID, accessToken string) (*model.UserStatistics, error)
	UpdateAvatar(ctx context.Context, userID, avatarURL, accessToken string) error
	UpdateUsername(ctx context.Context, userID, username, accessToken string) error
	UploadAvatar(ctx context.Context, userID, contentType string, data []byte, accessToken string) (string, error)
}

type profileService struct {
	client *supabase.Client
	store  AvatarStore
	logger zerolog.Logger
}

// NewProfileService creates a ProfileService. store may be nil, in which case
// UploadAvatar fails with ErrStorageDisabled.
func NewProfileService(client *supabase.Client, store AvatarStore, logger zerolog.Logger) ProfileService {
	return &profileService{
		client: client,
		store:  store,
		logger: logger.With().Str("service", "ProfileService").Logger(),
	}
}

type completedLesson struct {
	LessonID string `json:"lesson_id"`
	Lessons  *struct {
		XPReward int `json:"xp_reward"`
	} `json:"lessons"`
}

// GetUserProfile returns the profile row with total_xp and level computed from the
// user's completed lessons. If the XP query fails the profile reports zero XP.
func (s *profileService) GetUserProfile(ctx context.Context, userID, accessToken string) (*model.UserProfile, error) {
	endpoint := supabase.From("profiles").Select("*").Eq("id", userID).String()
	rows, err := supabase.Rest[[]model.UserProfile](ctx, s.client, http.MethodGet, endpoint, accessToken, nil)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("Profile not found")
	}
	profile := rows[0]

	xpEndpoint := supabase.From("user_progress").
		Select("lesson_id,lessons(xp_reward)").
		Eq("user_id", userID).
		Eq("status", model.StatusCompleted).
		String()
	completed, err := supabase.Rest[[]completedLesson](ctx, s.client, http.MethodGet, xpEndpoint, accessToken, nil)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("XP query failed, reporting zero XP")
		completed = nil
	}

	totalXP := 0
	for _, c := range completed {
		if c.Lessons != nil {
			totalXP += c.Lessons.XPReward
		}
	}
	level := model.LevelForXP(totalXP)
	profile.TotalXP = &totalXP
	profile.Level = &level
	return &profile, nil
}

// GetUserStatistics counts completed lessons and the minutes spent on them.
// Course completion is not tracked yet and is always zero.
func (s *profileService) GetUserStatistics(ctx context.Context, userID, accessToken string) (*model.UserStatistics, error) {
	endpoint := supabase.From("user_progress").
		Select("*").
		Eq("user_id", userID).
		Eq("status", model.StatusCompleted).
		String()
	rows, err := supabase.Rest[[]model.UserProgress](ctx, s.client, http.MethodGet, endpoint, accessToken, nil)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Statistics query failed")
		rows = nil
	}

	seconds := 0
	for _, p := range rows {
		if p.TimeSpentSeconds != nil {
			seconds += *p.TimeSpentSeconds
		}
	}
	return &model.UserStatistics{
		TotalLessonsCompleted: len(rows),
		TotalCoursesCompleted: 0,
		TotalMinutesSpent:     seconds / 60,
	}, nil
}

func (s *profileService) UpdateAvatar(ctx context.Context, userID, avatarURL, accessToken string) error {
	return s.patchProfile(ctx, userID, map[string]string{"avatar_url": avatarURL}, accessToken)
}

func (s *profileService) UpdateUsername(ctx context.Context, userID, username, accessToken string) error {
	return s.patchProfile(ctx, userID, map[string]string{"username": username}, accessToken)
}

// UploadAvatar stores the image under <userID>/<random>.<ext> and points the
// profile at it. It returns the public URL.
func (s *profileService) UploadAvatar(ctx context.Context, userID, contentType string, data []byte, accessToken string) (string, error) {
	if s.store == nil {
		return "", ErrStorageDisabled
	}
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAvatarType, contentType)
	}
	if len(data) == 0 {
		return "", errors.New("avatar image is empty")
	}
	if len(data) > MaxAvatarBytes {
		return "", ErrAvatarTooLarge
	}

	key := fmt.Sprintf("%s/%s.%s", userID, uuid.NewString(), ext)
	avatarURL, err := s.store.Put(ctx, key, contentType, data)
	if err != nil {
		return "", err
	}
	if err := s.UpdateAvatar(ctx, userID, avatarURL, accessToken); err != nil {
		return "", err
	}
	s.logger.Info().Str("user_id", userID).Str("key", key).Msg("Avatar uploaded")
	return avatarURL, nil
}

func (s *profileService) patchProfile(ctx context.Context, userID string, body map[string]string, accessToken string) error {
	endpoint := supabase.From("profiles").Eq("id", userID).String()
	_, err := supabase.Rest[supabase.Unit](ctx, s.client, http.MethodPatch, endpoint, accessToken, body)
	return err
}
