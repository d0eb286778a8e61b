package service

import (
	"context"
	"fmt"
	"net/http"

	"lessonhub/internal/model"
	"lessonhub/internal/supabase"

	"github.com/rs/zerolog"
)

// ContentService manages the course catalog: courses, their modules and lessons.
type ContentService interface {
	GetAllCourses(ctx context.Context, accessToken string) ([]model.Course, error)
	GetLessonByID(ctx context.Context, lessonID, accessToken string) (*model.Lesson, error)

	CreateCourse(ctx context.Context, in model.CreateCourseInput, accessToken string) (*model.Course, error)
	UpdateCourse(ctx context.Context, courseID string, u model.CourseUpdate, accessToken string) (*model.Course, error)
	DeleteCourse(ctx context.Context, courseID, accessToken string) error

	CreateModule(ctx context.Context, in model.CreateModuleInput, accessToken string) (*model.Module, error)
	UpdateModule(ctx context.Context, moduleID string, u model.ModuleUpdate, accessToken string) (*model.Module, error)
	DeleteModule(ctx context.Context, moduleID, accessToken string) error

	CreateLesson(ctx context.Context, in model.CreateLessonInput, accessToken string) (*model.Lesson, error)
	UpdateLesson(ctx context.Context, lessonID string, u model.LessonUpdate, accessToken string) (*model.Lesson, error)
	DeleteLesson(ctx context.Context, lessonID, accessToken string) error
}

type contentService struct {
	client *supabase.Client
	logger zerolog.Logger
}

func NewContentService(client *supabase.Client, logger zerolog.Logger) ContentService {
	return &contentService{
		client: client,
		logger: logger.With().Str("service", "ContentService").Logger(),
	}
}

// GetAllCourses returns published courses with their modules and lessons embedded,
// each level sorted by order_index.
func (s *contentService) GetAllCourses(ctx context.Context, accessToken string) ([]model.Course, error) {
	endpoint := supabase.From("courses").
		Select("*,modules(*,lessons(*))").
		Eq("is_published", "true").
		Order("order_index").
		OrderEmbedded("modules", "order_index").
		OrderEmbedded("modules.lessons", "order_index").
		String()
	courses, err := supabase.Rest[[]model.Course](ctx, s.client, http.MethodGet, endpoint, accessToken, nil)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

func (s *contentService) GetLessonByID(ctx context.Context, lessonID, accessToken string) (*model.Lesson, error) {
	endpoint := supabase.From("lessons").Select("*").Eq("id", lessonID).String()
	lessons, err := supabase.Rest[[]model.Lesson](ctx, s.client, http.MethodGet, endpoint, accessToken, nil)
	if err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		return nil, fmt.Errorf("Lesson %s not found", lessonID)
	}
	return &lessons[0], nil
}

func (s *contentService) CreateCourse(ctx context.Context, in model.CreateCourseInput, accessToken string) (*model.Course, error) {
	rows, err := supabase.Rest[[]model.Course](ctx, s.client, http.MethodPost, "courses", accessToken, in)
	if err != nil {
		return nil, err
	}
	course, err := supabase.First(rows, "No course returned")
	if err != nil {
		return nil, err
	}
	course.Modules = []model.Module{}
	s.logger.Info().Str("course_id", course.ID).Msg("Course created")
	return &course, nil
}

func (s *contentService) UpdateCourse(ctx context.Context, courseID string, u model.CourseUpdate, accessToken string) (*model.Course, error) {
	endpoint := supabase.From("courses").Eq("id", courseID).String()
	rows, err := supabase.Rest[[]model.Course](ctx, s.client, http.MethodPatch, endpoint, accessToken, u)
	if err != nil {
		return nil, err
	}
	course, err := supabase.First(rows, "No course returned")
	if err != nil {
		return nil, err
	}
	if course.Modules == nil {
		course.Modules = []model.Module{}
	}
	return &course, nil
}

func (s *contentService) DeleteCourse(ctx context.Context, courseID, accessToken string) error {
	return s.delete(ctx, "courses", courseID, accessToken)
}

func (s *contentService) CreateModule(ctx context.Context, in model.CreateModuleInput, accessToken string) (*model.Module, error) {
	rows, err := supabase.Rest[[]model.Module](ctx, s.client, http.MethodPost, "modules", accessToken, in)
	if err != nil {
		return nil, err
	}
	module, err := supabase.First(rows, "No module returned")
	if err != nil {
		return nil, err
	}
	module.Lessons = []model.Lesson{}
	s.logger.Info().Str("module_id", module.ID).Str("course_id", module.CourseID).Msg("Module created")
	return &module, nil
}

func (s *contentService) UpdateModule(ctx context.Context, moduleID string, u model.ModuleUpdate, accessToken string) (*model.Module, error) {
	endpoint := supabase.From("modules").Eq("id", moduleID).String()
	rows, err := supabase.Rest[[]model.Module](ctx, s.client, http.MethodPatch, endpoint, accessToken, u)
	if err != nil {
		return nil, err
	}
	module, err := supabase.First(rows, "No module returned")
	if err != nil {
		return nil, err
	}
	if module.Lessons == nil {
		module.Lessons = []model.Lesson{}
	}
	return &module, nil
}

func (s *contentService) DeleteModule(ctx context.Context, moduleID, accessToken string) error {
	return s.delete(ctx, "modules", moduleID, accessToken)
}

func (s *contentService) CreateLesson(ctx context.Context, in model.CreateLessonInput, accessToken string) (*model.Lesson, error) {
	rows, err := supabase.Rest[[]model.Lesson](ctx, s.client, http.MethodPost, "lessons", accessToken, in)
	if err != nil {
		return nil, err
	}
	lesson, err := supabase.First(rows, "No lesson returned")
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("lesson_id", lesson.ID).Str("module_id", lesson.ModuleID).Msg("Lesson created")
	return &lesson, nil
}

func (s *contentService) UpdateLesson(ctx context.Context, lessonID string, u model.LessonUpdate, accessToken string) (*model.Lesson, error) {
	endpoint := supabase.From("lessons").Eq("id", lessonID).String()
	rows, err := supabase.Rest[[]model.Lesson](ctx, s.client, http.MethodPatch, endpoint, accessToken, u)
	if err != nil {
		return nil, err
	}
	lesson, err := supabase.First(rows, "No lesson returned")
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (s *contentService) DeleteLesson(ctx context.Context, lessonID, accessToken string) error {
	return s.delete(ctx, "lessons", lessonID, accessToken)
}

// delete discards whatever body the remote store sends back.
func (s *contentService) delete(ctx context.Context, table, id, accessToken string) error {
	endpoint := supabase.From(table).Eq("id", id).String()
	_, err := supabase.Rest[supabase.Unit](ctx, s.client, http.MethodDelete, endpoint, accessToken, nil)
	if err != nil {
		return err
	}
	s.logger.Info().Str("table", table).Str("id", id).Msg("Row deleted")
	return nil
}
