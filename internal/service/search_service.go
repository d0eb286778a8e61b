package service

import (
	"context"
	"net/http"
	"strings"

	"lessonhub/internal/model"
	"lessonhub/internal/supabase"

	"github.com/rs/zerolog"
)

const (
	searchCourseLimit = 5
	searchLessonLimit = 10
)

type SearchService interface {
	SearchLessons(ctx context.Context, query, accessToken string) []model.SearchResult
}

type searchService struct {
	client *supabase.Client
	logger zerolog.Logger
}

func NewSearchService(client *supabase.Client, logger zerolog.Logger) SearchService {
	return &searchService{
		client: client,
		logger: logger.With().Str("service", "SearchService").Logger(),
	}
}

type courseHit struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type lessonHit struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Language    *string `json:"language"`
	ModuleID    string  `json:"module_id"`
	Modules     *struct {
		Title    string `json:"title"`
		CourseID string `json:"course_id"`
		Courses  *struct {
			Title string `json:"title"`
		} `json:"courses"`
	} `json:"modules"`
}

// SearchLessons matches courses and lessons by title or description. Courses come
// first. A failing sub-query contributes no results; the search itself never fails.
func (s *searchService) SearchLessons(ctx context.Context, query, accessToken string) []model.SearchResult {
	results := []model.SearchResult{}
	term := strings.TrimSpace(query)
	if term == "" {
		return results
	}

	coursesEndpoint := supabase.From("courses").
		Select("id,title,description").
		ILikeAny(term, "title", "description").
		Eq("is_published", "true").
		Limit(searchCourseLimit).
		String()
	courses, err := supabase.Rest[[]courseHit](ctx, s.client, http.MethodGet, coursesEndpoint, accessToken, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Course search failed")
		courses = nil
	}
	for _, c := range courses {
		results = append(results, model.SearchResult{
			Type:        model.SearchResultCourse,
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
		})
	}

	lessonsEndpoint := supabase.From("lessons").
		Select("id,title,description,language,module_id,modules(title,course_id,courses(title))").
		ILikeAny(term, "title", "description").
		Limit(searchLessonLimit).
		String()
	lessons, err := supabase.Rest[[]lessonHit](ctx, s.client, http.MethodGet, lessonsEndpoint, accessToken, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Lesson search failed")
		lessons = nil
	}
	for _, l := range lessons {
		r := model.SearchResult{
			Type:        model.SearchResultLesson,
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
		}
		if l.Modules != nil {
			moduleName := l.Modules.Title
			r.ModuleName = &moduleName
			if l.Modules.Courses != nil {
				courseName := l.Modules.Courses.Title
				r.CourseName = &courseName
			}
		}
		results = append(results, r)
	}

	return results
}
