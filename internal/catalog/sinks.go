package catalog

import (
	"context"
	"errors"
	"fmt"

	"lessonhub/internal/model"
	"lessonhub/internal/repository"
	"lessonhub/internal/service"

	"github.com/rs/zerolog"
)

// RESTSink creates content through the content service with an admin token. Module
// and lesson failures are counted and skipped; a course failure skips its subtree.
type RESTSink struct {
	content     service.ContentService
	accessToken string
	logger      zerolog.Logger
}

func NewRESTSink(content service.ContentService, accessToken string, logger zerolog.Logger) *RESTSink {
	return &RESTSink{
		content:     content,
		accessToken: accessToken,
		logger:      logger.With().Str("sink", "rest").Logger(),
	}
}

func (s *RESTSink) WriteCourseTree(ctx context.Context, tree model.CourseTree) (model.MigrationCounts, error) {
	var counts model.MigrationCounts

	course, err := s.content.CreateCourse(ctx, tree.Course, s.accessToken)
	if err != nil {
		counts.Errors++
		return counts, fmt.Errorf("create course %q: %w", tree.Course.Title, err)
	}
	counts.Courses++

	var errs []error
	for _, mt := range tree.Modules {
		in := mt.Module
		in.CourseID = course.ID
		module, err := s.content.CreateModule(ctx, in, s.accessToken)
		if err != nil {
			counts.Errors++
			errs = append(errs, fmt.Errorf("create module %q: %w", in.Title, err))
			continue
		}
		counts.Modules++

		for _, lesson := range mt.Lessons {
			lesson.ModuleID = module.ID
			if _, err := s.content.CreateLesson(ctx, lesson, s.accessToken); err != nil {
				counts.Errors++
				errs = append(errs, fmt.Errorf("create lesson %q: %w", lesson.Title, err))
				continue
			}
			counts.Lessons++
		}
	}

	for _, err := range errs {
		s.logger.Warn().Err(err).Str("course_id", course.ID).Msg("Skipped catalog item")
	}
	return counts, errors.Join(errs...)
}

// PostgresSink inserts each course tree in a single transaction.
type PostgresSink struct {
	repo repository.CatalogRepository
}

func NewPostgresSink(repo repository.CatalogRepository) *PostgresSink {
	return &PostgresSink{repo: repo}
}

func (s *PostgresSink) WriteCourseTree(ctx context.Context, tree model.CourseTree) (model.MigrationCounts, error) {
	counts, err := s.repo.InsertCourseTree(ctx, tree)
	if err != nil {
		return model.MigrationCounts{Errors: 1}, err
	}
	return counts, nil
}
