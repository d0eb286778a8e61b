package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lessonhub/internal/model"
	"lessonhub/internal/pubsub"
	"lessonhub/internal/supabase"

	"github.com/rs/zerolog"
)

type ProgressService interface {
	GetUserProgress(ctx context.Context, userID, accessToken string) ([]model.UserProgress, error)
	UpdateLessonProgress(ctx context.Context, in model.CreateProgressInput, accessToken string) (*model.UserProgress, error)
}

type progressService struct {
	client    *supabase.Client
	publisher pubsub.Publisher
	topic     string
	logger    zerolog.Logger
}

// NewProgressService creates a ProgressService. Completion events are published to
// topic; an empty topic disables them.
func NewProgressService(client *supabase.Client, publisher pubsub.Publisher, topic string, logger zerolog.Logger) ProgressService {
	if publisher == nil || topic == "" {
		publisher = pubsub.NopPublisher{}
	}
	return &progressService{
		client:    client,
		publisher: publisher,
		topic:     topic,
		logger:    logger.With().Str("service", "ProgressService").Logger(),
	}
}

func (s *progressService) GetUserProgress(ctx context.Context, userID, accessToken string) ([]model.UserProgress, error) {
	endpoint := supabase.From("user_progress").Select("*").Eq("user_id", userID).String()
	rows, err := supabase.Rest[[]model.UserProgress](ctx, s.client, http.MethodGet, endpoint, accessToken, nil)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.UserProgress{}
	}
	return rows, nil
}

// UpdateLessonProgress updates the (user, lesson) row if one exists and inserts it
// otherwise. The lookup and the write are separate requests, so two concurrent calls
// for the same pair can still insert twice.
func (s *progressService) UpdateLessonProgress(ctx context.Context, in model.CreateProgressInput, accessToken string) (*model.UserProgress, error) {
	lookup := supabase.From("user_progress").
		Select("*").
		Eq("user_id", in.UserID).
		Eq("lesson_id", in.LessonID).
		String()
	existing, err := supabase.Rest[[]model.UserProgress](ctx, s.client, http.MethodGet, lookup, accessToken, nil)
	if err != nil {
		s.logger.Warn().Err(err).Str("lesson_id", in.LessonID).Msg("Progress lookup failed, inserting")
		existing = nil
	}

	var rows []model.UserProgress
	var msg string
	if len(existing) > 0 && existing[0].ID != nil {
		endpoint := supabase.From("user_progress").Eq("id", *existing[0].ID).String()
		rows, err = supabase.Rest[[]model.UserProgress](ctx, s.client, http.MethodPatch, endpoint, accessToken, in.Update())
		msg = "Failed to update progress"
	} else {
		rows, err = supabase.Rest[[]model.UserProgress](ctx, s.client, http.MethodPost, "user_progress", accessToken, in)
		msg = "Failed to create progress"
	}
	if err != nil {
		return nil, err
	}
	progress, err := supabase.First(rows, msg)
	if err != nil {
		return nil, err
	}

	if progress.Status == model.StatusCompleted {
		s.publishCompleted(ctx, progress)
	}
	return &progress, nil
}

func (s *progressService) publishCompleted(ctx context.Context, p model.UserProgress) {
	event := model.ProgressEvent{
		Type:       model.EventLessonCompleted,
		UserID:     p.UserID,
		LessonID:   p.LessonID,
		Status:     p.Status,
		Score:      p.Score,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	id, err := pubsub.PublishJSON(ctx, s.publisher, s.topic, event)
	if err != nil {
		s.logger.Error().Err(fmt.Errorf("publish %s: %w", event.Type, err)).Str("lesson_id", p.LessonID).Msg("Failed to publish progress event")
		return
	}
	if id != "" {
		s.logger.Debug().Str("message_id", id).Str("lesson_id", p.LessonID).Msg("Progress event published")
	}
}
