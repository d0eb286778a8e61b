package model

// Course mirrors a row of the courses table. Modules is only populated when the
// course is fetched with an embedded select.
type Course struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Difficulty     string   `json:"difficulty"`
	Language       string   `json:"language"`
	Color          string   `json:"color"`
	OrderIndex     int      `json:"order_index"`
	IsPublished    bool     `json:"is_published"`
	EstimatedHours *int     `json:"estimated_hours"`
	IconURL        *string  `json:"icon_url"`
	Modules        []Module `json:"modules"`
}

// Module mirrors a row of the modules table.
type Module struct {
	ID          string   `json:"id"`
	CourseID    string   `json:"course_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	OrderIndex  int      `json:"order_index"`
	IconEmoji   *string  `json:"icon_emoji"`
	Lessons     []Lesson `json:"lessons"`
}

// CreateCourseInput is the body of a course insert.
type CreateCourseInput struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Difficulty     string  `json:"difficulty"`
	Language       string  `json:"language"`
	Color          string  `json:"color"`
	OrderIndex     int     `json:"order_index"`
	IsPublished    bool    `json:"is_published"`
	EstimatedHours *int    `json:"estimated_hours"`
	IconURL        *string `json:"icon_url"`
}

func (in *CreateCourseInput) UnmarshalJSON(data []byte) error {
	type plain CreateCourseInput
	return decodeAliased(data, (*plain)(in))
}

// CourseUpdate is a partial course update; nil fields are left untouched.
type CourseUpdate struct {
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
	Difficulty     *string `json:"difficulty,omitempty"`
	Language       *string `json:"language,omitempty"`
	Color          *string `json:"color,omitempty"`
	OrderIndex     *int    `json:"order_index,omitempty"`
	IsPublished    *bool   `json:"is_published,omitempty"`
	EstimatedHours *int    `json:"estimated_hours,omitempty"`
	IconURL        *string `json:"icon_url,omitempty"`
}

func (in *CourseUpdate) UnmarshalJSON(data []byte) error {
	type plain CourseUpdate
	return decodeAliased(data, (*plain)(in))
}

// CreateModuleInput is the body of a module insert.
type CreateModuleInput struct {
	CourseID    string  `json:"course_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	OrderIndex  int     `json:"order_index"`
	IconEmoji   *string `json:"icon_emoji"`
}

func (in *CreateModuleInput) UnmarshalJSON(data []byte) error {
	type plain CreateModuleInput
	return decodeAliased(data, (*plain)(in))
}

type ModuleUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	OrderIndex  *int    `json:"order_index,omitempty"`
	IconEmoji   *string `json:"icon_emoji,omitempty"`
}

func (in *ModuleUpdate) UnmarshalJSON(data []byte) error {
	type plain ModuleUpdate
	return decodeAliased(data, (*plain)(in))
}
