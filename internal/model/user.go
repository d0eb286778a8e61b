package model

// XPPerLevel is the amount of XP needed to advance one level.
const XPPerLevel = 1000

// Roles that may use the admin panel.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// UserProfile mirrors a row of profiles. TotalXP and Level are computed when the
// profile is read and are not stored.
type UserProfile struct {
	ID        string  `json:"id"`
	Email     *string `json:"email"`
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
	TotalXP   *int    `json:"total_xp"`
	Level     *int    `json:"level"`
}

// LevelForXP returns floor(xp / XPPerLevel) + 1.
func LevelForXP(xp int) int {
	return xp/XPPerLevel + 1
}

// IsAdminRole reports whether role grants admin access.
func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

type UserStatistics struct {
	TotalLessonsCompleted int `json:"total_lessons_completed"`
	TotalCoursesCompleted int `json:"total_courses_completed"`
	TotalMinutesSpent     int `json:"total_minutes_spent"`
}

type Achievement struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	IconURL     *string `json:"icon_url"`
	Category    string  `json:"category"`
	Requirement int     `json:"requirement"`
	XPReward    int     `json:"xp_reward"`
}

// UserAchievement is a user_achievements row with its achievement embedded.
type UserAchievement struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	AchievementID string       `json:"achievement_id"`
	UnlockedAt    *string      `json:"unlocked_at"`
	Achievement   *Achievement `json:"achievements"`
}
