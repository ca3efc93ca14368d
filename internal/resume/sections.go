package resume

import "strings"

// SectionKind identifies one canonical resume section.
type SectionKind string

const (
	SectionSummary        SectionKind = "summary"
	SectionExperience     SectionKind = "experience"
	SectionEducation      SectionKind = "education"
	SectionSkills         SectionKind = "skills"
	SectionProjects       SectionKind = "projects"
	SectionCertifications SectionKind = "certifications"
	SectionLanguages      SectionKind = "languages"
)

// sectionHeaders maps each kind to its header synonyms. Order matters twice:
// kinds are probed in this order per line, and within a kind the first
// matching synonym wins, so segmentation is deterministic.
var sectionHeaders = []struct {
	Kind     SectionKind
	Synonyms []string
}{
	{SectionSummary, []string{"summary", "objective", "about", "about me", "profile", "professional summary"}},
	{SectionExperience, []string{"experience", "work experience", "employment", "work history", "professional experience", "career history"}},
	{SectionEducation, []string{"education", "academic background", "qualifications", "academics"}},
	{SectionSkills, []string{"skills", "technical skills", "core competencies", "technologies", "tech stack", "expertise"}},
	{SectionProjects, []string{"projects", "personal projects", "side projects", "portfolio"}},
	{SectionCertifications, []string{"certifications", "certificates", "licenses", "credentials"}},
	{SectionLanguages, []string{"languages", "language proficiency"}},
}

// sectionLineCaps bound how many lines each section may claim when no later
// header terminates it. They keep a missing trailing header from letting one
// section swallow the rest of the document.
var sectionLineCaps = map[SectionKind]int{
	SectionSummary:        10,
	SectionExperience:     60,
	SectionEducation:      20,
	SectionSkills:         30,
	SectionProjects:       40,
	SectionCertifications: 15,
	SectionLanguages:      5,
}

// segmentSections scans lines top to bottom and records the first line index
// at which each section header appears. A line is a header when, lowercased
// and trimmed, it equals a synonym or starts with a synonym followed by ":"
// or a space. Later occurrences of the same kind are ignored.
func segmentSections(lines []string) map[SectionKind]int {
	sections := make(map[SectionKind]int)
	for i, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		if lower == "" {
			continue
		}
		for _, header := range sectionHeaders {
			if _, seen := sections[header.Kind]; seen {
				continue
			}
			for _, syn := range header.Synonyms {
				if lower == syn || strings.HasPrefix(lower, syn+":") || strings.HasPrefix(lower, syn+" ") {
					sections[header.Kind] = i
					break
				}
			}
		}
	}
	return sections
}

// sectionLines returns the body of a section: the lines after its header up
// to the nearest following header of any other kind, further bounded by the
// section's line cap. Sections never overlap because every later header
// terminates the current one.
func sectionLines(lines []string, sections map[SectionKind]int, kind SectionKind) []string {
	start, ok := sections[kind]
	if !ok {
		return nil
	}
	start++
	end := len(lines)
	for _, idx := range sections {
		if idx >= start && idx < end {
			end = idx
		}
	}
	if cap, ok := sectionLineCaps[kind]; ok && start+cap < end {
		end = start + cap
	}
	if start >= end {
		return nil
	}
	return lines[start:end]
}
