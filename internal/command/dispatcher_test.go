package command

import (
	"encoding/json"
	"errors"
	"net/http"
	"os/exec"
	"testing"

	"lessonhub/internal/config"
	"lessonhub/internal/model"
	"lessonhub/internal/service"
	"lessonhub/internal/supabase/supabasetest"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCommands = []string{
	"check_is_admin", "create_course", "create_lesson", "create_module",
	"delete_course", "delete_lesson", "delete_module", "exchange_code_for_session",
	"get_all_courses", "get_available_achievements", "get_lesson_by_id", "get_user_achievements",
	"get_user_profile", "get_user_progress", "get_user_statistics", "google_sign_in_url",
	"login_user", "register_user", "search_lessons", "session_info", "sign_in", "sign_out",
	"sign_up", "update_course", "update_lesson", "update_lesson_progress", "update_module",
	"update_user_avatar", "update_user_username", "upload_user_avatar", "validate_code",
}

func newDispatcher(t *testing.T) (*Dispatcher, *supabasetest.Server) {
	t.Helper()
	fake := supabasetest.New(t)
	client := fake.Client()
	log := zerolog.Nop()
	svc := Services{
		Auth:         service.NewAuthService(client, "", "", log),
		Content:      service.NewContentService(client, log),
		Search:       service.NewSearchService(client, log),
		Progress:     service.NewProgressService(client, nil, "", log),
		Profile:      service.NewProfileService(client, nil, log),
		Achievements: service.NewAchievementService(client),
		Runner:       service.NewCodeRunner("python3", "node", log),
	}
	return NewDispatcher(svc, nil, nil, log), fake
}

func TestCatalogue(t *testing.T) {
	d, _ := newDispatcher(t)
	assert.Equal(t, allCommands, d.Commands())
	assert.True(t, d.Configured())
}

func TestUnknownCommand(t *testing.T) {
	d, _ := newDispatcher(t)
	_, err := d.Dispatch(t.Context(), "drop_database", nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestArgumentErrors(t *testing.T) {
	d, fake := newDispatcher(t)

	_, err := d.Dispatch(t.Context(), "get_all_courses", json.RawMessage(`{}`))
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Contains(t, err.Error(), "accessToken")

	_, err = d.Dispatch(t.Context(), "get_all_courses", json.RawMessage(`{"accessToken": 5}`))
	require.ErrorAs(t, err, &argErr)
	assert.Contains(t, err.Error(), "Invalid JSON payload")

	_, err = d.Dispatch(t.Context(), "get_user_profile", nil)
	require.ErrorAs(t, err, &argErr)

	assert.Empty(t, fake.Requests())
}

func TestLessonCommandsRoundTrip(t *testing.T) {
	d, _ := newDispatcher(t)

	res, err := d.Dispatch(t.Context(), "create_lesson", json.RawMessage(`{
		"accessToken": "tok",
		"lesson": {
			"moduleId": "m1",
			"title": "Lists",
			"lessonType": "theory",
			"content": {"markdown": "# Lists"},
			"xpReward": 50,
			"orderIndex": 1,
			"isLocked": false,
			"language": "python"
		}
	}`))
	require.NoError(t, err)
	created := res.(*model.Lesson)
	assert.Equal(t, "m1", created.ModuleID)

	res, err = d.Dispatch(t.Context(), "get_lesson_by_id", json.RawMessage(`{"lessonId": "`+created.ID+`", "accessToken": "tok"}`))
	require.NoError(t, err)
	got := res.(*model.Lesson)
	assert.Equal(t, "Lists", got.Title)
	assert.Equal(t, 50, got.XPReward)

	res, err = d.Dispatch(t.Context(), "delete_lesson", json.RawMessage(`{"lessonId": "`+created.ID+`", "accessToken": "tok"}`))
	require.NoError(t, err)
	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestOperationErrorPassesThrough(t *testing.T) {
	d, _ := newDispatcher(t)
	_, err := d.Dispatch(t.Context(), "get_lesson_by_id", json.RawMessage(`{"lessonId": "nope", "accessToken": "tok"}`))
	assert.EqualError(t, err, "Lesson nope not found")

	var argErr *ArgumentError
	assert.False(t, errors.As(err, &argErr))
}

func TestEmptyUpstreamErrorBodyKeepsMessage(t *testing.T) {
	d, fake := newDispatcher(t)
	fake.On(http.MethodGet, "/rest/v1/courses", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := d.Dispatch(t.Context(), "get_all_courses", json.RawMessage(`{"accessToken": "tok"}`))
	require.Error(t, err)
	assert.Equal(t, "HTTP 502 Bad Gateway", err.Error())
}

func TestAliasesShareHandler(t *testing.T) {
	d, fake := newDispatcher(t)
	fake.On(http.MethodPost, "/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		supabasetest.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_grant", "error_description": "Invalid login credentials"})
	})

	for _, name := range []string{"sign_in", "login_user"} {
		res, err := d.Dispatch(t.Context(), name, json.RawMessage(`{"email": "a@b.c", "password": "x"}`))
		require.NoError(t, err)
		result := res.(model.AuthResult)
		assert.False(t, result.Success)
		assert.Equal(t, "Invalid login credentials", result.Message)
	}
}

func TestCheckIsAdminCommand(t *testing.T) {
	d, fake := newDispatcher(t)
	fake.On(http.MethodGet, "/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		supabasetest.WriteJSON(w, http.StatusOK, map[string]any{"id": "u1"})
	})
	fake.Seed("profiles", map[string]any{"id": "u1", "role": "super_admin"})

	res, err := d.Dispatch(t.Context(), "check_is_admin", json.RawMessage(`{"accessToken": "tok"}`))
	require.NoError(t, err)
	assert.Equal(t, true, res)
}

func TestMissingConfiguration(t *testing.T) {
	log := zerolog.Nop()
	_, _, cfgErr := (&config.Config{}).SupabaseCredentials()
	require.Error(t, cfgErr)

	sh, lookErr := exec.LookPath("sh")
	svc := Services{Runner: service.NewCodeRunner(sh, sh, log), JWTSecret: "secret"}
	d := NewDispatcher(svc, cfgErr, nil, log)
	assert.False(t, d.Configured())

	for _, name := range []string{"sign_in", "get_all_courses", "google_sign_in_url", "search_lessons"} {
		_, err := d.Dispatch(t.Context(), name, json.RawMessage(`{"accessToken": "tok"}`))
		assert.EqualError(t, err, "SUPABASE_URL not set in environment", name)
	}

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{Subject: "u1"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	res, err := d.Dispatch(t.Context(), "session_info", json.RawMessage(`{"accessToken": "`+tok+`"}`))
	require.NoError(t, err)
	info := res.(model.SessionInfo)
	assert.Equal(t, "u1", info.UserID)
	assert.True(t, info.Verified)

	if lookErr != nil {
		t.Skip("sh is not available")
	}
	res, err = d.Dispatch(t.Context(), "validate_code", json.RawMessage(`{"code": "echo hi", "language": "python", "expectedOutput": "hi"}`))
	require.NoError(t, err)
	assert.True(t, res.(*model.CodeValidation).IsCorrect)
}
