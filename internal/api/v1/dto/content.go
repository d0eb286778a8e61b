package dto

import "lessonhub/internal/model"

type CreateCourseDTO struct {
	Course      model.CreateCourseInput `json:"course"`
	AccessToken string                  `json:"accessToken" validate:"required"`
}

type UpdateCourseDTO struct {
	CourseID    string             `json:"courseId" validate:"required"`
	Updates     model.CourseUpdate `json:"updates"`
	AccessToken string             `json:"accessToken" validate:"required"`
}

type CourseIDDTO struct {
	CourseID    string `json:"courseId" validate:"required"`
	AccessToken string `json:"accessToken" validate:"required"`
}

type CreateModuleDTO struct {
	Module      model.CreateModuleInput `json:"module"`
	AccessToken string                  `json:"accessToken" validate:"required"`
}

type UpdateModuleDTO struct {
	ModuleID    string             `json:"moduleId" validate:"required"`
	Updates     model.ModuleUpdate `json:"updates"`
	AccessToken string             `json:"accessToken" validate:"required"`
}

type ModuleIDDTO struct {
	ModuleID    string `json:"moduleId" validate:"required"`
	AccessToken string `json:"accessToken" validate:"required"`
}

type CreateLessonDTO struct {
	Lesson      model.CreateLessonInput `json:"lesson"`
	AccessToken string                  `json:"accessToken" validate:"required"`
}

type UpdateLessonDTO struct {
	LessonID    string             `json:"lessonId" validate:"required"`
	Updates     model.LessonUpdate `json:"updates"`
	AccessToken string             `json:"accessToken" validate:"required"`
}

type LessonIDDTO struct {
	LessonID    string `json:"lessonId" validate:"required"`
	AccessToken string `json:"accessToken" validate:"required"`
}

type SearchDTO struct {
	Query       string `json:"query"`
	AccessToken string `json:"accessToken" validate:"required"`
}

type UpdateProgressDTO struct {
	Progress    model.CreateProgressInput `json:"progress"`
	AccessToken string                    `json:"accessToken" validate:"required"`
}
