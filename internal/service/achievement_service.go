package service

import (
	"context"
	"net/http"

	"lessonhub/internal/model"
	"lessonhub/internal/supabase"
)

type AchievementService interface {
	GetUserAchievements(ctx context.Context, userID, accessToken string) ([]model.UserAchievement, error)
	GetAvailableAchievements(ctx context.Context, accessToken string) ([]model.Achievement, error)
}

type achievementService struct {
	client *supabase.Client
}

func NewAchievementService(client *supabase.Client) AchievementService {
	return &achievementService{client: client}
}

func (s *achievementService) GetUserAchievements(ctx context.Context, userID, accessToken string) ([]model.UserAchievement, error) {
	endpoint := supabase.From("user_achievements").Select("*,achievements(*)").Eq("user_id", userID).String()
	rows, err := supabase.Rest[[]model.UserAchievement](ctx, s.client, http.MethodGet, endpoint, accessToken, nil)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.UserAchievement{}
	}
	return rows, nil
}

func (s *achievementService) GetAvailableAchievements(ctx context.Context, accessToken string) ([]model.Achievement, error) {
	endpoint := supabase.From("achievements").Select("*").String()
	rows, err := supabase.Rest[[]model.Achievement](ctx, s.client, http.MethodGet, endpoint, accessToken, nil)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.Achievement{}
	}
	return rows, nil
}
