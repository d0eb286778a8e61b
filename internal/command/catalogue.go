package command

import (
	"context"

	"lessonhub/internal/api/v1/dto"
	"lessonhub/internal/model"
	"lessonhub/internal/util"
)

type urlResult struct {
	URL string `json:"url"`
}

func (d *Dispatcher) registerAuth() {
	handle(d, "sign_in", true, func(ctx context.Context, a dto.SignInDTO) (model.AuthResult, error) {
		return d.svc.Auth.SignIn(ctx, a.Email, a.Password), nil
	})
	d.alias("login_user", "sign_in")

	handle(d, "sign_up", true, func(ctx context.Context, a dto.SignUpDTO) (model.AuthResult, error) {
		return d.svc.Auth.SignUp(ctx, a.Email, a.Password, a.Username), nil
	})
	d.alias("register_user", "sign_up")

	handle(d, "google_sign_in_url", true, func(ctx context.Context, _ struct{}) (string, error) {
		return d.svc.Auth.GoogleSignInURL(), nil
	})
	handle(d, "exchange_code_for_session", true, func(ctx context.Context, a dto.ExchangeCodeDTO) (model.AuthResult, error) {
		return d.svc.Auth.ExchangeCodeForSession(ctx, a.AuthCode, a.CodeVerifier), nil
	})
	handle(d, "sign_out", true, func(ctx context.Context, a dto.TokenDTO) (*none, error) {
		return unit(d.svc.Auth.SignOut(ctx, a.AccessToken))
	})
	handle(d, "check_is_admin", true, func(ctx context.Context, a dto.TokenDTO) (bool, error) {
		return d.svc.Auth.IsAdmin(ctx, a.AccessToken)
	})
	handle(d, "session_info", false, func(ctx context.Context, a dto.TokenDTO) (model.SessionInfo, error) {
		if d.svc.Auth == nil {
			return util.ParseSession(a.AccessToken, d.svc.JWTSecret)
		}
		return d.svc.Auth.SessionInfo(a.AccessToken)
	})
	handle(d, "validate_code", false, func(ctx context.Context, a dto.ValidateCodeDTO) (*model.CodeValidation, error) {
		return d.svc.Runner.ValidateCode(ctx, a.Code, a.Language, a.ExpectedOutput)
	})
}

func (d *Dispatcher) registerContent() {
	handle(d, "get_all_courses", true, func(ctx context.Context, a dto.TokenDTO) ([]model.Course, error) {
		return d.svc.Content.GetAllCourses(ctx, a.AccessToken)
	})
	handle(d, "get_lesson_by_id", true, func(ctx context.Context, a dto.LessonIDDTO) (*model.Lesson, error) {
		return d.svc.Content.GetLessonByID(ctx, a.LessonID, a.AccessToken)
	})

	handle(d, "create_course", true, func(ctx context.Context, a dto.CreateCourseDTO) (*model.Course, error) {
		return d.svc.Content.CreateCourse(ctx, a.Course, a.AccessToken)
	})
	handle(d, "update_course", true, func(ctx context.Context, a dto.UpdateCourseDTO) (*model.Course, error) {
		return d.svc.Content.UpdateCourse(ctx, a.CourseID, a.Updates, a.AccessToken)
	})
	handle(d, "delete_course", true, func(ctx context.Context, a dto.CourseIDDTO) (*none, error) {
		return unit(d.svc.Content.DeleteCourse(ctx, a.CourseID, a.AccessToken))
	})

	handle(d, "create_module", true, func(ctx context.Context, a dto.CreateModuleDTO) (*model.Module, error) {
		return d.svc.Content.CreateModule(ctx, a.Module, a.AccessToken)
	})
	handle(d, "update_module", true, func(ctx context.Context, a dto.UpdateModuleDTO) (*model.Module, error) {
		return d.svc.Content.UpdateModule(ctx, a.ModuleID, a.Updates, a.AccessToken)
	})
	handle(d, "delete_module", true, func(ctx context.Context, a dto.ModuleIDDTO) (*none, error) {
		return unit(d.svc.Content.DeleteModule(ctx, a.ModuleID, a.AccessToken))
	})

	handle(d, "create_lesson", true, func(ctx context.Context, a dto.CreateLessonDTO) (*model.Lesson, error) {
		return d.svc.Content.CreateLesson(ctx, a.Lesson, a.AccessToken)
	})
	handle(d, "update_lesson", true, func(ctx context.Context, a dto.UpdateLessonDTO) (*model.Lesson, error) {
		return d.svc.Content.UpdateLesson(ctx, a.LessonID, a.Updates, a.AccessToken)
	})
	handle(d, "delete_lesson", true, func(ctx context.Context, a dto.LessonIDDTO) (*none, error) {
		return unit(d.svc.Content.DeleteLesson(ctx, a.LessonID, a.AccessToken))
	})

	handle(d, "search_lessons", true, func(ctx context.Context, a dto.SearchDTO) ([]model.SearchResult, error) {
		return d.svc.Search.SearchLessons(ctx, a.Query, a.AccessToken), nil
	})
}

func (d *Dispatcher) registerProgress() {
	handle(d, "get_user_progress", true, func(ctx context.Context, a dto.UserDTO) ([]model.UserProgress, error) {
		return d.svc.Progress.GetUserProgress(ctx, a.UserID, a.AccessToken)
	})
	handle(d, "update_lesson_progress", true, func(ctx context.Context, a dto.UpdateProgressDTO) (*model.UserProgress, error) {
		return d.svc.Progress.UpdateLessonProgress(ctx, a.Progress, a.AccessToken)
	})

	handle(d, "get_user_profile", true, func(ctx context.Context, a dto.UserDTO) (*model.UserProfile, error) {
		return d.svc.Profile.GetUserProfile(ctx, a.UserID, a.AccessToken)
	})
	handle(d, "get_user_statistics", true, func(ctx context.Context, a dto.UserDTO) (*model.UserStatistics, error) {
		return d.svc.Profile.GetUserStatistics(ctx, a.UserID, a.AccessToken)
	})
	handle(d, "update_user_avatar", true, func(ctx context.Context, a dto.UpdateAvatarDTO) (*none, error) {
		return unit(d.svc.Profile.UpdateAvatar(ctx, a.UserID, a.AvatarURL, a.AccessToken))
	})
	handle(d, "upload_user_avatar", true, func(ctx context.Context, a dto.UploadAvatarDTO) (urlResult, error) {
		url, err := d.svc.Profile.UploadAvatar(ctx, a.UserID, a.ContentType, a.Data, a.AccessToken)
		return urlResult{URL: url}, err
	})
	handle(d, "update_user_username", true, func(ctx context.Context, a dto.UpdateUsernameDTO) (*none, error) {
		return unit(d.svc.Profile.UpdateUsername(ctx, a.UserID, a.Username, a.AccessToken))
	})

	handle(d, "get_user_achievements", true, func(ctx context.Context, a dto.UserDTO) ([]model.UserAchievement, error) {
		return d.svc.Achievements.GetUserAchievements(ctx, a.UserID, a.AccessToken)
	})
	handle(d, "get_available_achievements", true, func(ctx context.Context, a dto.TokenDTO) ([]model.Achievement, error) {
		return d.svc.Achievements.GetAvailableAchievements(ctx, a.AccessToken)
	})
}
