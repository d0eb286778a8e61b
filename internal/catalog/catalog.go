// Package catalog seeds courses, modules and lessons from a catalog file.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"lessonhub/internal/model"

	"github.com/rs/zerolog"
)

// Sink creates one course tree and reports what it created. A non-nil error with
// partial counts means some items were created before the failure.
type Sink interface {
	WriteCourseTree(ctx context.Context, tree model.CourseTree) (model.MigrationCounts, error)
}

// Load decodes a catalog file. The document is either a list of courses or an object
// with a "courses" list.
func Load(r io.Reader) ([]model.CourseTree, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var trees []model.CourseTree
	if err := json.Unmarshal(raw, &trees); err == nil {
		return trees, nil
	}

	var doc struct {
		Courses []model.CourseTree `json:"courses"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return doc.Courses, nil
}

// Run writes every tree to the sink. A failing tree is counted as an error and the
// migration moves on to the next one.
func Run(ctx context.Context, trees []model.CourseTree, sink Sink, logger zerolog.Logger) model.MigrationCounts {
	var total model.MigrationCounts
	for i, tree := range trees {
		if err := ctx.Err(); err != nil {
			logger.Warn().Err(err).Int("remaining", len(trees)-i).Msg("Migration cancelled")
			total.Errors += len(trees) - i
			break
		}

		counts, err := sink.WriteCourseTree(ctx, tree)
		total.Add(counts)
		if err != nil {
			if counts.Errors == 0 {
				total.Errors++
			}
			logger.Error().Err(err).Str("course", tree.Course.Title).Msg("Failed to migrate course")
			continue
		}
		logger.Info().
			Str("course", tree.Course.Title).
			Int("modules", counts.Modules).
			Int("lessons", counts.Lessons).
			Msg("Course migrated")
	}
	return total
}
