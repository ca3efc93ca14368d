package resume

import (
	"sort"
	"strings"

	"github.com/hyperjump/tsunagu/pkg/utils"
)

// extractSkills merges two sources: vocabulary hits anywhere in the document
// and free-form tokens from the skills section. Results are deduplicated
// case-insensitively, title-cased, sorted, and capped, so parsing the same
// text twice yields the same list in the same order.
func extractSkills(text string, lines []string, sections map[SectionKind]int, maxSkills int) []string {
	seen := make(map[string]bool)
	var skills []string

	add := func(raw string) {
		skill := utils.TitleCase(strings.TrimSpace(raw))
		key := strings.ToLower(skill)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		skills = append(skills, skill)
	}

	for i, pattern := range skillPatterns {
		if pattern.MatchString(text) {
			add(commonSkills[i])
		}
	}

	for _, line := range sectionLines(lines, sections, SectionSkills) {
		for _, token := range skillDelimiters.Split(line, -1) {
			token = strings.TrimSpace(token)
			if len(token) <= 2 || len(token) >= 30 {
				continue
			}
			add(token)
		}
	}

	sort.Slice(skills, func(i, j int) bool {
		return strings.ToLower(skills[i]) < strings.ToLower(skills[j])
	})
	if maxSkills > 0 && len(skills) > maxSkills {
		skills = skills[:maxSkills]
	}
	return skills
}
