package model

import "encoding/json"

// CourseTree is a course with the modules and lessons to create under it, as found in
// a catalog file.
type CourseTree struct {
	Course  CreateCourseInput
	Modules []ModuleTree
}

type ModuleTree struct {
	Module  CreateModuleInput
	Lessons []CreateLessonInput
}

func (t *CourseTree) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &t.Course); err != nil {
		return err
	}
	var children struct {
		Modules []ModuleTree `json:"modules"`
	}
	if err := json.Unmarshal(data, &children); err != nil {
		return err
	}
	t.Modules = children.Modules
	return nil
}

func (t *ModuleTree) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &t.Module); err != nil {
		return err
	}
	var children struct {
		Lessons []CreateLessonInput `json:"lessons"`
	}
	if err := json.Unmarshal(data, &children); err != nil {
		return err
	}
	t.Lessons = children.Lessons
	return nil
}

// MigrationCounts tallies what a catalog migration created.
type MigrationCounts struct {
	Courses int `json:"courses"`
	Modules int `json:"modules"`
	Lessons int `json:"lessons"`
	Errors  int `json:"errors"`
}

func (c *MigrationCounts) Add(o MigrationCounts) {
	c.Courses += o.Courses
	c.Modules += o.Modules
	c.Lessons += o.Lessons
	c.Errors += o.Errors
}
