package resume

import (
	"strings"

	"github.com/hyperjump/tsunagu/internal/models"
)

// nameStopwords disqualify a header line from being the candidate's name.
var nameStopwords = []string{"resume", "cv", "curriculum", "http", "www"}

// extractContact pulls contact details out of the full text plus the header
// lines. Every field is best effort; an empty string means not found.
func extractContact(text string, lines []string, headerLines int) models.ContactInfo {
	var contact models.ContactInfo

	if m := emailPattern.FindString(text); m != "" {
		contact.Email = m
	}
	if m := phonePattern.FindString(text); m != "" {
		contact.Phone = strings.TrimSpace(m)
	}
	if m := linkedinPattern.FindStringSubmatch(text); len(m) > 1 {
		contact.LinkedIn = "linkedin.com/in/" + m[1]
	}
	if m := githubPattern.FindStringSubmatch(text); len(m) > 1 {
		contact.GitHub = "github.com/" + m[1]
	}
	for _, url := range urlPattern.FindAllString(text, -1) {
		lower := strings.ToLower(url)
		if strings.Contains(lower, "linkedin") || strings.Contains(lower, "github") {
			continue
		}
		contact.Portfolio = url
		break
	}

	contact.Location = extractHeaderLocation(lines, headerLines)
	contact.Name = extractName(lines)
	return contact
}

// extractHeaderLocation looks for a "City, ST" or "City, State" fragment in
// the top of the document, where contact blocks live.
func extractHeaderLocation(lines []string, headerLines int) string {
	if headerLines <= 0 || headerLines > len(lines) {
		headerLines = min(len(lines), 10)
	}
	for _, line := range lines[:headerLines] {
		if m := cityStatePattern.FindStringSubmatch(line); len(m) > 1 {
			return m[1]
		}
	}
	for _, line := range lines[:headerLines] {
		if m := cityRegionPattern.FindStringSubmatch(line); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

// extractName picks the candidate's name from the first five non-empty
// lines. A line qualifies when it is a plausible human-name length, carries
// no contact details or document boilerplate, and is mostly alphabetic.
func extractName(lines []string) string {
	checked := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		checked++
		if checked > 5 {
			break
		}
		if len(line) <= 2 || len(line) >= 50 {
			continue
		}
		if emailPattern.MatchString(line) || phonePattern.MatchString(line) {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "@") || containsAny(lower, nameStopwords) {
			continue
		}
		if !mostlyAlpha(line) {
			continue
		}
		return line
	}
	return ""
}

// mostlyAlpha reports whether over 80% of the runes are letters or spaces.
func mostlyAlpha(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	alpha := 0
	for _, r := range runes {
		if isLetter(r) || r == ' ' {
			alpha++
		}
	}
	return float64(alpha)/float64(len(runes)) > 0.8
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
