package resume

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hyperjump/tsunagu/internal/models"
)

// extractExperience builds work history from the experience section.
//
// The layout heuristic: a line carrying a date opens a new entry and
// doubles as the title line; the next non-bullet line names the company,
// optionally with a trailing "City, ST" location; bullet lines become
// achievements; longer non-bullet prose continues the previous achievement.
// The entry in flight when the section ends is flushed unconditionally.
func extractExperience(lines []string, sections map[SectionKind]int, maxEntries int) []models.ExperienceEntry {
	var (
		entries       []models.ExperienceEntry
		current       *models.ExperienceEntry
		expectCompany bool
	)

	flush := func() {
		if current != nil && (current.Title != "" || current.Company != "" || len(current.Achievements) > 0) {
			entries = append(entries, *current)
		}
		current = nil
		expectCompany = false
	}

	for _, line := range sectionLines(lines, sections, SectionExperience) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		bullet := isBullet(line)

		// A dated non-bullet line opens a new entry and doubles as the
		// title line.
		if !bullet && (dateRangePattern.MatchString(line) || datePattern.MatchString(line)) {
			flush()
			current = newEntryFromTitleLine(line)
			expectCompany = true
			continue
		}

		if current == nil {
			continue
		}

		if bullet {
			expectCompany = false
			if text := cleanBullet(line); text != "" {
				current.Achievements = append(current.Achievements, text)
			}
			continue
		}

		if expectCompany {
			expectCompany = false
			company := line
			if m := cityStatePattern.FindStringSubmatch(line); len(m) > 1 {
				current.Location = m[1]
				company = strings.TrimSpace(strings.Replace(line, m[1], "", 1))
				company = strings.TrimRight(company, ", ")
			}
			current.Company = cleanLine(company)
			continue
		}

		// Wrapped prose: continue the previous achievement when one exists,
		// otherwise treat it as overflow from the company line.
		if len(line) > 20 {
			if n := len(current.Achievements); n > 0 {
				current.Achievements[n-1] += " " + line
			} else if current.Company == "" {
				current.Company = cleanLine(line)
			}
		}
	}
	flush()

	// A one-line entry has its only text in the title slot; treat it as
	// the company so downstream display never shows an employer-less job.
	for i := range entries {
		if entries[i].Company == "" && entries[i].Title != "" {
			entries[i].Company = entries[i].Title
			entries[i].Title = ""
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entryStartYear(entries[i]) > entryStartYear(entries[j])
	})
	if maxEntries > 0 && len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	return entries
}

// newEntryFromTitleLine builds an entry from the dated title line: dates are
// parsed out, the leftover text is the title.
func newEntryFromTitleLine(line string) *models.ExperienceEntry {
	entry := &models.ExperienceEntry{Title: cleanLine(line)}
	if m := dateRangePattern.FindStringSubmatch(line); len(m) > 2 {
		entry.StartDate = m[1]
		entry.EndDate = m[2]
		entry.IsCurrent = isOngoing(m[2])
		if entry.IsCurrent {
			entry.EndDate = "Present"
		}
		entry.Duration = entry.StartDate + " - " + m[2]
	} else if m := datePattern.FindString(line); m != "" {
		entry.StartDate = m
	}
	return entry
}

// isOngoing reports whether an end date marker means the job is current.
func isOngoing(end string) bool {
	switch strings.ToLower(strings.TrimSpace(end)) {
	case "present", "current", "now":
		return true
	}
	return false
}

// entryStartYear returns the numeric start year, or 0 when none parses.
func entryStartYear(e models.ExperienceEntry) int {
	if m := yearPattern.FindString(e.StartDate); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			return y
		}
	}
	return 0
}

// cleanLine strips date ranges and bare dates from a line, collapses the
// leftover whitespace and separators, and caps the result at 150 characters.
func cleanLine(line string) string {
	line = dateRangePattern.ReplaceAllString(line, "")
	line = datePattern.ReplaceAllString(line, "")
	line = whitespaceRunPattern.ReplaceAllString(line, " ")
	line = strings.Trim(line, " \t|,-–")
	if len(line) > 150 {
		line = line[:150]
	}
	return strings.TrimSpace(line)
}
