package constants

import "time"

const (
	AppName           = "st"
	Version           = "v0.3.0"
	DefaultConfigPath = "~/.config/st/config.toml"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DefaultBackHour is the hour of day used when a return date is given without a time
	DefaultBackHour = 7

	// DNDFallbackMinutes is the snooze length when no usable return time exists
	DNDFallbackMinutes = 1440

	// Lunch return is rounded up to the next quarter hour, then extended by LunchLength
	LunchQuarterMin = 15
	LunchLength     = 60 * time.Minute

	// Control keywords trigger transitions instead of a plain status announcement
	KeywordClear = "clear"
	KeywordBack  = "back"
	KeywordLunch = "lunch"

	// HTTPTimeout bounds every request made by a service adapter
	HTTPTimeout = 15 * time.Second
)

// Service names as shown in the dispatch report
const (
	ServiceSlack  = "Slack"
	ServiceGitHub = "GitHub"
	ServiceAsana  = "Asana"
)

// Credential environment variables
const (
	EnvSlackToken  = "SLACK_PAT"
	EnvGitHubToken = "GITHUB_PAT"
	EnvAsanaToken  = "ASANA_PAT"

	EnvGitHubOrgID  = "ST_GITHUB_ORG_ID"
	EnvAsanaUserGID = "ST_ASANA_USER_GID"
)

// DateExamples is appended to date parse errors
const DateExamples = "Examples: friday, 3/10, 3-10-2026, tomorrow"
