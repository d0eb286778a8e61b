package repository

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"lessonhub/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		name, dsn, env, want string
	}{
		{"dev url", "postgres://u:p@localhost:5432/db", "development", "postgres://u:p@localhost:5432/db?sslmode=disable"},
		{"dev url with params", "postgres://u:p@localhost:5432/db?x=1", "development", "postgres://u:p@localhost:5432/db?x=1&sslmode=disable"},
		{"dev keyword", "host=localhost dbname=db", "development", "host=localhost dbname=db sslmode=disable"},
		{"dev explicit ssl", "postgres://h/db?sslmode=require", "development", "postgres://h/db?sslmode=require"},
		{"prod url", "postgres://u:p@pooler:6543/db", "production", "postgres://u:p@pooler:6543/db?default_query_exec_mode=simple_protocol"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeDSN(tc.dsn, tc.env))
		})
	}
}

func TestGetPortFromDSN(t *testing.T) {
	assert.Equal(t, "6543", getPortFromDSN("postgres://u:p@pooler:6543/db"))
	assert.Equal(t, "not_found", getPortFromDSN("host=localhost"))
}

func TestOpenRequiresConnString(t *testing.T) {
	_, err := Open(context.Background(), "", "development", zerolog.Nop())
	assert.Error(t, err)
}

func TestInsertCourseTreeWithDatabase(t *testing.T) {
	dsn := os.Getenv("TEST_DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("TEST_DB_CONNECTION_STRING is not set, skip database integration test")
	}
	ctx := context.Background()
	db, err := Open(ctx, dsn, "development", zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	tree := model.CourseTree{
		Course: model.CreateCourseInput{Title: "Integration", Difficulty: "beginner", Language: "python"},
		Modules: []model.ModuleTree{{
			Module: model.CreateModuleInput{Title: "M1"},
			Lessons: []model.CreateLessonInput{
				{Title: "L1", LessonType: model.LessonTheory, Content: json.RawMessage(`{"markdown":"x"}`), Language: "python"},
				{Title: "L2", LessonType: model.LessonQuiz, Language: "python"},
			},
		}},
	}
	counts, err := NewCatalogRepository(db, zerolog.Nop()).InsertCourseTree(ctx, tree)
	require.NoError(t, err)
	assert.Equal(t, model.MigrationCounts{Courses: 1, Modules: 1, Lessons: 2}, counts)
}
