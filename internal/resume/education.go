package resume

import (
	"strings"

	"github.com/hyperjump/tsunagu/internal/models"
)

// extractEducation builds education entries from the education section.
// A line naming an institution or a degree opens a new entry; following
// lines fill in achievements, GPA, and a degree if the opening line had
// none. The in-flight entry is always flushed at the end so a resume whose
// education is the last section still yields its final entry.
func extractEducation(lines []string, sections map[SectionKind]int, maxEntries int) []models.EducationEntry {
	var (
		entries []models.EducationEntry
		current *models.EducationEntry
	)

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
		}
		current = nil
	}

	for _, line := range sectionLines(lines, sections, SectionEducation) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if opensEducationEntry(line) {
			flush()
			entry := models.EducationEntry{
				Institution: cleanLine(line),
				Degree:      extractDegree(line),
				Field:       extractField(line),
				Year:        extractYear(line),
				GPA:         extractGPA(line),
			}
			if m := dateRangePattern.FindStringSubmatch(line); len(m) > 2 {
				entry.StartDate = m[1]
				entry.EndDate = m[2]
			}
			current = &entry
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case isBullet(line):
			if text := cleanBullet(line); text != "" {
				current.Achievements = append(current.Achievements, text)
			}
		case strings.Contains(strings.ToLower(line), "gpa"):
			current.GPA = extractGPA(line)
		case current.Degree == "":
			current.Degree = extractDegree(line)
		}
	}
	flush()

	if maxEntries > 0 && len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	return entries
}

// opensEducationEntry reports whether a line starts a new education entry:
// it names an institution or carries a degree in any spelling.
func opensEducationEntry(line string) bool {
	if containsAny(strings.ToLower(line), institutionKeywords) {
		return true
	}
	if degreeAbbrevPattern.MatchString(line) {
		return true
	}
	for _, pattern := range degreePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

func extractDegree(line string) string {
	for _, pattern := range degreePatterns {
		if m := pattern.FindStringSubmatch(line); len(m) > 1 {
			return m[1]
		}
	}
	if m := degreeAbbrevPattern.FindStringSubmatch(line); len(m) > 1 {
		return m[1]
	}
	return ""
}

func extractField(line string) string {
	for _, pattern := range fieldPatterns {
		if m := pattern.FindStringSubmatch(line); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

// extractYear returns the last year on the line, which for education lines
// is the graduation year.
func extractYear(line string) string {
	years := yearPattern.FindAllString(line, -1)
	if len(years) == 0 {
		return ""
	}
	return years[len(years)-1]
}

func extractGPA(line string) string {
	if m := gpaPattern.FindStringSubmatch(line); len(m) > 1 {
		return m[1]
	}
	return ""
}
