package resume

import (
	"strings"

	"github.com/hyperjump/tsunagu/internal/models"
	"github.com/hyperjump/tsunagu/pkg/utils"
)

const (
	maxProjects            = 8
	maxProjectTechnologies = 10
	maxCertifications      = 10
)

// extractProjects builds project entries from the projects section. A short
// non-bullet line opens a project; bullets under it become achievements and
// longer prose becomes the description. Technologies are vocabulary hits
// within the project's own lines.
func extractProjects(lines []string, sections map[SectionKind]int) []models.ProjectEntry {
	var (
		entries []models.ProjectEntry
		current *models.ProjectEntry
	)

	flush := func() {
		if current != nil && current.Name != "" {
			entries = append(entries, *current)
		}
		current = nil
	}

	addTechnologies := func(line string) {
		if current == nil || len(current.Technologies) >= maxProjectTechnologies {
			return
		}
		for i, pattern := range skillPatterns {
			if !pattern.MatchString(line) {
				continue
			}
			tech := utils.TitleCase(commonSkills[i])
			if !containsFold(current.Technologies, tech) {
				current.Technologies = append(current.Technologies, tech)
				if len(current.Technologies) >= maxProjectTechnologies {
					return
				}
			}
		}
	}

	for _, line := range sectionLines(lines, sections, SectionProjects) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if opensProject(line) {
			flush()
			current = &models.ProjectEntry{}
			if url := urlPattern.FindString(line); url != "" {
				current.URL = url
				line = strings.TrimSpace(strings.Replace(line, url, "", 1))
			}
			current.Name = cleanLine(line)
			addTechnologies(line)
			continue
		}
		if current == nil {
			continue
		}

		addTechnologies(line)
		if isBullet(line) {
			if text := cleanBullet(line); text != "" {
				current.Achievements = append(current.Achievements, text)
			}
		} else if current.Description == "" {
			current.Description = utils.Truncate(line, 300)
		}
	}
	flush()

	if len(entries) > maxProjects {
		entries = entries[:maxProjects]
	}
	return entries
}

// extractCertifications turns each substantive line of the certifications
// section into an entry, splitting out issuer and year when recognizable.
func extractCertifications(lines []string, sections map[SectionKind]int) []models.CertificationEntry {
	var entries []models.CertificationEntry

	for _, line := range sectionLines(lines, sections, SectionCertifications) {
		line = strings.TrimSpace(line)
		if isBullet(line) {
			line = cleanBullet(line)
		}
		if len(line) < 5 {
			continue
		}

		entry := models.CertificationEntry{Name: cleanLine(line)}
		for _, pattern := range issuerPatterns {
			if m := pattern.FindStringSubmatch(line); len(m) > 1 {
				entry.Issuer = strings.TrimSpace(m[1])
				break
			}
		}
		if year := yearPattern.FindString(line); year != "" {
			entry.Date = year
		}
		if url := urlPattern.FindString(line); url != "" {
			entry.URL = url
		}
		entries = append(entries, entry)
		if len(entries) >= maxCertifications {
			break
		}
	}
	return entries
}

// opensProject reports whether a line starts a new project: a short
// non-bullet line that carries a URL, a date, or starts capitalized.
func opensProject(line string) bool {
	if isBullet(line) || len(line) >= 80 {
		return false
	}
	if urlPattern.MatchString(line) || datePattern.MatchString(line) {
		return true
	}
	runes := []rune(line)
	return len(runes) > 0 && runes[0] >= 'A' && runes[0] <= 'Z'
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
