package repository

import (
	"context"
	"database/sql"
	"fmt"

	"lessonhub/internal/model"

	"github.com/rs/zerolog"
)

// CatalogRepository writes course trees straight into the catalog tables.
type CatalogRepository interface {
	// InsertCourseTree creates the course, its modules and lessons in one transaction.
	InsertCourseTree(ctx context.Context, tree model.CourseTree) (model.MigrationCounts, error)
}

type catalogRepo struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewCatalogRepository(db *sql.DB, logger zerolog.Logger) CatalogRepository {
	return &catalogRepo{db: db, logger: logger.With().Str("repository", "CatalogRepository").Logger()}
}

const insertCourseSQL = `
	INSERT INTO courses (title, description, difficulty, language, color, order_index, is_published, estimated_hours, icon_url)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id
`

const insertModuleSQL = `
	INSERT INTO modules (course_id, title, description, order_index, icon_emoji)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
`

const insertLessonSQL = `
	INSERT INTO lessons (module_id, title, lesson_type, content, xp_reward, order_index, is_locked, description, language, estimated_minutes)
	VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7, $8, $9, $10)
	RETURNING id
`

func (r *catalogRepo) InsertCourseTree(ctx context.Context, tree model.CourseTree) (model.MigrationCounts, error) {
	var counts model.MigrationCounts

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return counts, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	c := tree.Course
	var courseID string
	if err := tx.QueryRowContext(ctx, insertCourseSQL,
		c.Title, c.Description, c.Difficulty, c.Language, c.Color, c.OrderIndex, c.IsPublished, c.EstimatedHours, c.IconURL,
	).Scan(&courseID); err != nil {
		return model.MigrationCounts{}, fmt.Errorf("failed to insert course %q: %w", c.Title, err)
	}
	counts.Courses++

	for _, mt := range tree.Modules {
		m := mt.Module
		var moduleID string
		if err := tx.QueryRowContext(ctx, insertModuleSQL,
			courseID, m.Title, m.Description, m.OrderIndex, m.IconEmoji,
		).Scan(&moduleID); err != nil {
			return model.MigrationCounts{}, fmt.Errorf("failed to insert module %q: %w", m.Title, err)
		}
		counts.Modules++

		for _, l := range mt.Lessons {
			var lessonID string
			if err := tx.QueryRowContext(ctx, insertLessonSQL,
				moduleID, l.Title, l.LessonType, lessonContent(l.Content), l.XPReward, l.OrderIndex, l.IsLocked, l.Description, l.Language, l.EstimatedMinutes,
			).Scan(&lessonID); err != nil {
				return model.MigrationCounts{}, fmt.Errorf("failed to insert lesson %q: %w", l.Title, err)
			}
			counts.Lessons++
		}
	}

	if err := tx.Commit(); err != nil {
		return model.MigrationCounts{}, fmt.Errorf("failed to commit course %q: %w", c.Title, err)
	}
	r.logger.Info().Str("course_id", courseID).Int("modules", counts.Modules).Int("lessons", counts.Lessons).Msg("Course tree inserted")
	return counts, nil
}

func lessonContent(raw []byte) string {
	if len(raw) == 0 || string(raw) == "null" {
		return "{}"
	}
	return string(raw)
}
