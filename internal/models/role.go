package models

import "time"

// Role is a job opening, the candidate record scored and ranked against
// profiles. Missing optional fields keep their zero value and degrade to
// neutral scoring, never to an error.
type Role struct {
	ID              string    `json:"id"`
	Title           string    `json:"title,omitempty"`
	Startup         string    `json:"startup,omitempty"`
	Description     string    `json:"description,omitempty"`
	SkillsRequired  []string  `json:"skills_required,omitempty"`
	ExperienceLevel string    `json:"experience_level,omitempty"`
	Location        string    `json:"location,omitempty"`
	RemoteAllowed   bool      `json:"remote_allowed"`
	IsStartup       bool      `json:"is_startup,omitempty"`
	PostedAt        time.Time `json:"posted_at"`
}

// SortMode selects the ordering applied by the ranker.
type SortMode string

const (
	// SortBestMatch orders by match score descending, ties by posting time.
	SortBestMatch SortMode = "best_match"
	// SortNewest orders by posting time descending, ignoring score.
	SortNewest SortMode = "newest"
)

// ParseSortMode maps a request string to a SortMode, defaulting to best match.
func ParseSortMode(s string) SortMode {
	if SortMode(s) == SortNewest {
		return SortNewest
	}
	return SortBestMatch
}
