package models

import "time"

// MatchResult is the outcome of scoring one candidate against a profile.
// Produced fresh per scoring call and never mutated afterward.
type MatchResult struct {
	// Score is the clamped match score on the 0–1 scale, rounded to 2 decimals.
	Score float64 `json:"match_score"`
	// MatchedSkills are required skills present in the profile, title-cased.
	MatchedSkills []string `json:"matched_skills"`
	// MissingSkills are required skills absent from the profile, capped at 5.
	MissingSkills []string `json:"missing_skills"`
	// WhyRecommended is a short human-readable explanation of the score.
	WhyRecommended string `json:"why_recommended"`
}

// RankedRole pairs a candidate role with its match result.
type RankedRole struct {
	Role  *Role       `json:"role"`
	Match MatchResult `json:"match"`
}

// ParseStatus tracks the lifecycle of an uploaded resume.
type ParseStatus string

const (
	// ParsePending means the resume is stored but not yet parsed.
	ParsePending ParseStatus = "pending"
	// ParseDone means parsing succeeded and Profile is populated.
	ParseDone ParseStatus = "parsed"
	// ParseFailed means text extraction failed; Error holds the reason.
	ParseFailed ParseStatus = "failed"
)

// Resume is a stored resume upload with its parse state. Parsing runs in the
// background after upload; callers poll Status until it leaves ParsePending.
type Resume struct {
	ID         string         `json:"id"`
	Filename   string         `json:"filename"`
	FileType   string         `json:"file_type"`
	Status     ParseStatus    `json:"status"`
	Error      string         `json:"error,omitempty"`
	Profile    *ResumeProfile `json:"profile,omitempty"`
	UploadedAt time.Time      `json:"uploaded_at"`
	ParsedAt   time.Time      `json:"parsed_at,omitempty"`
}
