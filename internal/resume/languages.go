package resume

import "strings"

const maxLanguages = 10

// extractLanguages lists spoken languages from the languages section.
// Proficiency qualifiers are stripped whether they arrive in parentheses
// ("Spanish (Fluent)") or as a dash suffix ("Spanish - Fluent").
func extractLanguages(lines []string, sections map[SectionKind]int) []string {
	seen := make(map[string]bool)
	var languages []string

	for _, line := range sectionLines(lines, sections, SectionLanguages) {
		for _, token := range languageDelimiters.Split(line, -1) {
			token = strings.TrimSpace(token)
			token = parenQualifier.ReplaceAllString(token, " ")
			token = proficiencySuffix.ReplaceAllString(token, "")
			token = strings.TrimSpace(token)
			if len(token) <= 2 || len(token) >= 30 {
				continue
			}
			key := strings.ToLower(token)
			if seen[key] {
				continue
			}
			seen[key] = true
			languages = append(languages, token)
			if len(languages) >= maxLanguages {
				return languages
			}
		}
	}
	return languages
}
