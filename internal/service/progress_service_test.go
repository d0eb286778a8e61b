package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"lessonhub/internal/model"
	"lessonhub/internal/supabase/supabasetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, topic string, payload []byte) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return "msg", nil
}

func TestUpdateLessonProgressIsIdempotent(t *testing.T) {
	fake := newFake(t)
	svc := NewProgressService(fake.Client(), nil, "", nopLogger)
	in := model.CreateProgressInput{UserID: "u1", LessonID: "l1", Status: model.StatusInProgress, Attempts: 1}

	first, err := svc.UpdateLessonProgress(t.Context(), in, testToken)
	require.NoError(t, err)
	require.NotNil(t, first.ID)

	in.Attempts = 2
	second, err := svc.UpdateLessonProgress(t.Context(), in, testToken)
	require.NoError(t, err)
	require.NotNil(t, second.ID)
	assert.Equal(t, *first.ID, *second.ID)
	assert.Equal(t, 2, second.Attempts)

	assert.Len(t, fake.Rows("user_progress"), 1)

	var methods []string
	for _, r := range fake.Requests() {
		methods = append(methods, r.Method)
	}
	assert.Equal(t, []string{http.MethodGet, http.MethodPost, http.MethodGet, http.MethodPatch}, methods)
}

func TestUpdateLessonProgressPatchBody(t *testing.T) {
	fake := newFake(t)
	fake.Seed("user_progress", map[string]any{"id": "p1", "user_id": "u1", "lesson_id": "l1", "status": "in_progress", "attempts": 1})
	svc := NewProgressService(fake.Client(), nil, "", nopLogger)

	_, err := svc.UpdateLessonProgress(t.Context(), model.CreateProgressInput{
		UserID: "u1", LessonID: "l1", Status: model.StatusInProgress, Attempts: 3, Score: ptr(80),
	}, testToken)
	require.NoError(t, err)

	patch := fake.Requests()[1]
	assert.Equal(t, "eq.p1", patch.Query.Get("id"))
	body := decodeBody(t, patch.Body)
	assert.ElementsMatch(t, []string{"status", "score", "attempts", "completed_at", "time_spent_seconds"}, keys(body))
}

func TestUpdateLessonProgressLookupFailureInserts(t *testing.T) {
	fake := newFake(t)
	fake.On(http.MethodGet, "/rest/v1/user_progress", func(w http.ResponseWriter, r *http.Request) {
		supabasetest.WriteJSON(w, http.StatusInternalServerError, map[string]any{"message": "down"})
	})
	svc := NewProgressService(fake.Client(), nil, "", nopLogger)

	p, err := svc.UpdateLessonProgress(t.Context(), model.CreateProgressInput{UserID: "u1", LessonID: "l1", Status: model.StatusNotStarted}, testToken)
	require.NoError(t, err)
	assert.NotNil(t, p.ID)
	assert.Len(t, fake.Rows("user_progress"), 1)
}

func TestUpdateLessonProgressEmptyInsert(t *testing.T) {
	fake := newFake(t)
	fake.On(http.MethodPost, "/rest/v1/user_progress", func(w http.ResponseWriter, r *http.Request) {
		supabasetest.WriteJSON(w, http.StatusCreated, []any{})
	})
	svc := NewProgressService(fake.Client(), nil, "", nopLogger)

	_, err := svc.UpdateLessonProgress(t.Context(), model.CreateProgressInput{UserID: "u1", LessonID: "l1"}, testToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to create progress")
}

func TestCompletedProgressPublishesEvent(t *testing.T) {
	fake := newFake(t)
	pub := &fakePublisher{}
	svc := NewProgressService(fake.Client(), pub, "progress-events", nopLogger)

	_, err := svc.UpdateLessonProgress(t.Context(), model.CreateProgressInput{UserID: "u1", LessonID: "l1", Status: model.StatusInProgress}, testToken)
	require.NoError(t, err)
	assert.Empty(t, pub.topics)

	_, err = svc.UpdateLessonProgress(t.Context(), model.CreateProgressInput{UserID: "u1", LessonID: "l1", Status: model.StatusCompleted, Score: ptr(100)}, testToken)
	require.NoError(t, err)
	require.Len(t, pub.payloads, 1)
	assert.Equal(t, "progress-events", pub.topics[0])

	var event model.ProgressEvent
	require.NoError(t, json.Unmarshal(pub.payloads[0], &event))
	assert.Equal(t, model.EventLessonCompleted, event.Type)
	assert.Equal(t, "u1", event.UserID)
	assert.Equal(t, "l1", event.LessonID)
	require.NotNil(t, event.Score)
	assert.Equal(t, 100, *event.Score)
	assert.NotEmpty(t, event.OccurredAt)
}

func TestPublishFailureDoesNotFailUpdate(t *testing.T) {
	fake := newFake(t)
	pub := &fakePublisher{err: errors.New("unavailable")}
	svc := NewProgressService(fake.Client(), pub, "progress-events", nopLogger)

	p, err := svc.UpdateLessonProgress(t.Context(), model.CreateProgressInput{UserID: "u1", LessonID: "l1", Status: model.StatusCompleted}, testToken)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, p.Status)
}

func TestGetUserProgress(t *testing.T) {
	fake := newFake(t)
	fake.Seed("user_progress",
		map[string]any{"user_id": "u1", "lesson_id": "l1", "status": "completed"},
		map[string]any{"user_id": "u2", "lesson_id": "l1", "status": "completed"},
	)

	rows, err := NewProgressService(fake.Client(), nil, "", nopLogger).GetUserProgress(t.Context(), "u1", testToken)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "l1", rows[0].LessonID)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
