package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"lessonhub/internal/supabase/supabasetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryAvatarStore struct {
	keys         []string
	contentTypes []string
	err          error
}

func (m *memoryAvatarStore) Put(_ context.Context, key, contentType string, _ []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.keys = append(m.keys, key)
	m.contentTypes = append(m.contentTypes, contentType)
	return "https://cdn.test/" + key, nil
}

func TestGetUserProfileComputesXP(t *testing.T) {
	fake := newFake(t)
	fake.Seed("profiles", map[string]any{"id": "u1", "username": "ada", "email": "ada@example.com"})
	fake.Seed("user_progress",
		map[string]any{"user_id": "u1", "lesson_id": "l1", "status": "completed", "lessons": map[string]any{"xp_reward": 600}},
		map[string]any{"user_id": "u1", "lesson_id": "l2", "status": "completed", "lessons": map[string]any{"xp_reward": 500}},
		map[string]any{"user_id": "u1", "lesson_id": "l3", "status": "in_progress", "lessons": map[string]any{"xp_reward": 900}},
		map[string]any{"user_id": "u2", "lesson_id": "l1", "status": "completed", "lessons": map[string]any{"xp_reward": 600}},
	)

	profile, err := NewProfileService(fake.Client(), nil, nopLogger).GetUserProfile(t.Context(), "u1", testToken)
	require.NoError(t, err)
	require.NotNil(t, profile.TotalXP)
	require.NotNil(t, profile.Level)
	assert.Equal(t, 1100, *profile.TotalXP)
	assert.Equal(t, 2, *profile.Level)
	require.NotNil(t, profile.Username)
	assert.Equal(t, "ada", *profile.Username)

	xpQuery := fake.Requests()[1].Query
	assert.Equal(t, "lesson_id,lessons(xp_reward)", xpQuery.Get("select"))
	assert.Equal(t, "eq.completed", xpQuery.Get("status"))
}

func TestGetUserProfileXPQueryFailure(t *testing.T) {
	fake := newFake(t)
	fake.Seed("profiles", map[string]any{"id": "u1"})
	fake.On(http.MethodGet, "/rest/v1/user_progress", func(w http.ResponseWriter, r *http.Request) {
		supabasetest.WriteJSON(w, http.StatusInternalServerError, map[string]any{"message": "down"})
	})

	profile, err := NewProfileService(fake.Client(), nil, nopLogger).GetUserProfile(t.Context(), "u1", testToken)
	require.NoError(t, err)
	assert.Equal(t, 0, *profile.TotalXP)
	assert.Equal(t, 1, *profile.Level)
}

func TestGetUserProfileMissing(t *testing.T) {
	fake := newFake(t)
	_, err := NewProfileService(fake.Client(), nil, nopLogger).GetUserProfile(t.Context(), "ghost", testToken)
	assert.EqualError(t, err, "Profile not found")
}

func TestGetUserStatistics(t *testing.T) {
	fake := newFake(t)
	fake.Seed("user_progress",
		map[string]any{"user_id": "u1", "lesson_id": "l1", "status": "completed", "time_spent_seconds": 90},
		map[string]any{"user_id": "u1", "lesson_id": "l2", "status": "completed", "time_spent_seconds": 100},
		map[string]any{"user_id": "u1", "lesson_id": "l3", "status": "completed"},
		map[string]any{"user_id": "u1", "lesson_id": "l4", "status": "in_progress", "time_spent_seconds": 600},
	)

	stats, err := NewProfileService(fake.Client(), nil, nopLogger).GetUserStatistics(t.Context(), "u1", testToken)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalLessonsCompleted)
	assert.Equal(t, 3, stats.TotalMinutesSpent)
	assert.Equal(t, 0, stats.TotalCoursesCompleted)
}

func TestUpdateAvatarAndUsername(t *testing.T) {
	fake := newFake(t)
	fake.Seed("profiles", map[string]any{"id": "u1", "username": "old"})
	svc := NewProfileService(fake.Client(), nil, nopLogger)

	require.NoError(t, svc.UpdateUsername(t.Context(), "u1", "new", testToken))
	require.NoError(t, svc.UpdateAvatar(t.Context(), "u1", "https://img/1.png", testToken))

	row := fake.Rows("profiles")[0]
	assert.Equal(t, "new", row["username"])
	assert.Equal(t, "https://img/1.png", row["avatar_url"])
}

func TestUploadAvatar(t *testing.T) {
	fake := newFake(t)
	fake.Seed("profiles", map[string]any{"id": "u1"})
	store := &memoryAvatarStore{}
	svc := NewProfileService(fake.Client(), store, nopLogger)

	url, err := svc.UploadAvatar(t.Context(), "u1", "image/png", []byte{0x89, 'P', 'N', 'G'}, testToken)
	require.NoError(t, err)
	require.Len(t, store.keys, 1)
	assert.True(t, strings.HasPrefix(store.keys[0], "u1/"))
	assert.True(t, strings.HasSuffix(store.keys[0], ".png"))
	assert.Equal(t, "https://cdn.test/"+store.keys[0], url)
	assert.Equal(t, url, fake.Rows("profiles")[0]["avatar_url"])
}

func TestUploadAvatarRejects(t *testing.T) {
	fake := newFake(t)
	svc := NewProfileService(fake.Client(), &memoryAvatarStore{}, nopLogger)

	_, err := svc.UploadAvatar(t.Context(), "u1", "application/pdf", []byte("x"), testToken)
	assert.ErrorIs(t, err, ErrUnsupportedAvatarType)

	_, err = svc.UploadAvatar(t.Context(), "u1", "image/png", make([]byte, MaxAvatarBytes+1), testToken)
	assert.ErrorIs(t, err, ErrAvatarTooLarge)

	_, err = svc.UploadAvatar(t.Context(), "u1", "image/png", nil, testToken)
	assert.Error(t, err)

	_, err = NewProfileService(fake.Client(), nil, nopLogger).UploadAvatar(t.Context(), "u1", "image/png", []byte("x"), testToken)
	assert.ErrorIs(t, err, ErrStorageDisabled)

	failing := NewProfileService(fake.Client(), &memoryAvatarStore{err: errors.New("bucket missing")}, nopLogger)
	_, err = failing.UploadAvatar(t.Context(), "u1", "image/png", []byte("x"), testToken)
	assert.EqualError(t, err, "bucket missing")
	assert.Empty(t, fake.Requests())
}
