package model

const (
	SearchResultCourse = "course"
	SearchResultLesson = "lesson"
)

// SearchResult is one hit of the combined course/lesson search.
type SearchResult struct {
	Type        string  `json:"type"`
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	CourseName  *string `json:"courseName"`
	ModuleName  *string `json:"moduleName"`
}
