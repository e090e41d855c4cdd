package constants

const (
	// Session and context keys
	SessionCookieName = "allocation_session"
	ContextKeyUserID  = "user_id"
	ContextKeyRole    = "role"

	MinPasswordLength = 8

	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Skill ratings are self-assessed on a 1-5 scale
	MinSkillRating = 1
	MaxSkillRating = 5

	MaxAIGeneratedProjects = 20
)
