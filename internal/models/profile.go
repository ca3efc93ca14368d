// Package models defines core data structures for resume profiles, roles, and match results.
package models

// ContactInfo holds contact fields extracted from the resume header area.
// Every field is optional; extraction that finds nothing leaves it empty.
type ContactInfo struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// EducationEntry is one degree or school stay.
// Institution is set whenever an entry is recognized; the rest is best effort.
type EducationEntry struct {
	Institution  string   `json:"institution"`
	Degree       string   `json:"degree,omitempty"`
	Field        string   `json:"field,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Year         string   `json:"year,omitempty"`
	GPA          string   `json:"gpa,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// ExperienceEntry is one job. Dates are free-form strings as they appeared
// in the document; IsCurrent is set when the end date reads "Present",
// "Current", or "Now".
type ExperienceEntry struct {
	Company      string   `json:"company,omitempty"`
	Title        string   `json:"title,omitempty"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	IsCurrent    bool     `json:"is_current"`
	Achievements []string `json:"achievements,omitempty"`
}

// ProjectEntry is one project from the projects section.
type ProjectEntry struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// CertificationEntry is one certification or license.
type CertificationEntry struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty"`
}

// ResumeProfile is the structured result of parsing one resume.
// It is immutable once produced: every parse allocates a fresh value.
type ResumeProfile struct {
	Contact              ContactInfo          `json:"contact"`
	Summary              string               `json:"summary,omitempty"`
	Skills               []string             `json:"skills,omitempty"`
	Education            []EducationEntry     `json:"education,omitempty"`
	Experience           []ExperienceEntry    `json:"experience,omitempty"`
	Projects             []ProjectEntry       `json:"projects,omitempty"`
	Certifications       []CertificationEntry `json:"certifications,omitempty"`
	Languages            []string             `json:"languages,omitempty"`
	TotalYearsExperience float64              `json:"total_years_experience"`
}

// MatchProfile is the profile side of scoring: plain fields supplied by the
// caller, with no requirement that they came from a parsed resume.
type MatchProfile struct {
	Skills             []string `json:"skills,omitempty"`
	YearsExperience    float64  `json:"years_experience,omitempty"`
	ExperienceLevel    string   `json:"experience_level,omitempty"`
	PreferredRoles     []string `json:"preferred_roles,omitempty"`
	PreferredLocations []string `json:"preferred_locations,omitempty"`
	WorkPreference     string   `json:"work_preference,omitempty"`
}

// MatchProfileFrom builds a MatchProfile from a parsed resume, carrying over
// the fields the scorer understands.
func MatchProfileFrom(p *ResumeProfile) MatchProfile {
	if p == nil {
		return MatchProfile{}
	}
	return MatchProfile{
		Skills:          append([]string(nil), p.Skills...),
		YearsExperience: p.TotalYearsExperience,
	}
}
