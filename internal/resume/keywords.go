package resume

import (
	"regexp"
	"strings"
)

// commonSkills is the fixed vocabulary scanned with word boundaries over the
// whole document. Matching is case-insensitive; results are title-cased.
// The table is read-only after init, so concurrent parses are safe.
var commonSkills = []string{
	"python", "javascript", "typescript", "react", "vue", "angular", "node.js", "nodejs",
	"java", "c++", "c#", "go", "golang", "rust", "ruby", "php", "swift", "kotlin",
	"sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch",
	"aws", "gcp", "azure", "docker", "kubernetes", "terraform", "jenkins", "ci/cd",
	"git", "linux", "bash", "rest api", "graphql", "microservices",
	"machine learning", "ml", "ai", "deep learning", "tensorflow", "pytorch",
	"data analysis", "pandas", "numpy", "data science", "statistics",
	"html", "css", "sass", "tailwind", "bootstrap",
	"agile", "scrum", "jira", "product management", "project management",
	"figma", "sketch", "ui/ux", "design", "photoshop",
	"communication", "leadership", "problem solving", "teamwork",
	"excel", "powerpoint", "word", "google analytics",
	"fastapi", "django", "flask", "express", "spring boot",
	"nextjs", "next.js", "gatsby", "webpack", "vite",
}

// skillPatterns holds a compiled word-boundary pattern per vocabulary entry.
var skillPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(commonSkills))
	for i, skill := range commonSkills {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
	}
	return patterns
}()

// bulletMarkers are the characters that open an achievement bullet line.
var bulletMarkers = []rune{'•', '●', '○', '◦', '▪', '▸', '►', '-', '*', '→', '»', '›'}

const monthPattern = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)`

var (
	emailPattern    = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phonePattern    = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinPattern = regexp.MustCompile(`(?i)(?:linkedin\.com/in/|linkedin:?\s*)([a-zA-Z0-9_-]+)`)
	githubPattern   = regexp.MustCompile(`(?i)(?:github\.com/|github:?\s*)([a-zA-Z0-9_-]+)`)
	urlPattern      = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^`\\[\\]]+")

	datePattern      = regexp.MustCompile(`(?i)` + monthPattern + `[.\s]+\d{4}|20\d{2}`)
	dateRangePattern = regexp.MustCompile(`(?i)(` + monthPattern + `[.\s]*\d{4}|20\d{2})\s*[-–to]+\s*(` + monthPattern + `[.\s]*\d{4}|20\d{2}|present|current|now)`)
	yearPattern      = regexp.MustCompile(`20\d{2}`)

	// cityStatePattern matches "City, ST"; cityRegionPattern the looser "City, State".
	cityStatePattern  = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*[A-Z]{2})\b`)
	cityRegionPattern = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*[A-Z][a-z]+)`)

	gpaPattern = regexp.MustCompile(`(?i)(?:GPA|Grade)[\s:]*(\d+\.?\d*(?:/\d+\.?\d*)?)`)

	// skillDelimiters splits skills-section lines into candidate tokens.
	skillDelimiters = regexp.MustCompile(`[,;|•●○▪►\-*]`)
	// languageDelimiters is narrower: hyphens stay attached so "- Fluent"
	// proficiency suffixes survive to be stripped explicitly.
	languageDelimiters = regexp.MustCompile(`[,;|•●]`)

	parenQualifier       = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	proficiencySuffix    = regexp.MustCompile(`(?i)\s*-\s*(Native|Fluent|Advanced|Intermediate|Basic).*$`)
	whitespaceRunPattern = regexp.MustCompile(`\s+`)
)

// degreePatterns recognize degree names inside an education line.
var degreePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(Bachelor(?:'s)?\s+(?:of\s+)?(?:Science|Arts|Engineering|Business))`),
	regexp.MustCompile(`(?i)(Master(?:'s)?\s+(?:of\s+)?(?:Science|Arts|Business|Engineering))`),
	regexp.MustCompile(`(?i)(Ph\.?D\.?|Doctor(?:ate)?)`),
	regexp.MustCompile(`(?i)(MBA|M\.B\.A\.)`),
	regexp.MustCompile(`(B\.S\.|B\.A\.|M\.S\.|M\.A\.)`),
	regexp.MustCompile(`(?i)(Associate(?:'s)?\s+(?:of\s+)?(?:Science|Arts))`),
}

// fieldPatterns recognize a field of study ("B.S. in Computer Science").
var fieldPatterns = []*regexp.Regexp{
	regexp.MustCompile(`in\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	regexp.MustCompile(`(?:Science|Arts|Engineering)\s+in\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
}

// issuerPatterns recognize a certification issuer ("issued by Amazon", "- Google 2021").
var issuerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:from|by|issued by)\s+([A-Z][a-zA-Z\s]+)`),
	regexp.MustCompile(`-\s*([A-Z][a-zA-Z\s]+?)(?:\s*(?:20\d{2}|$))`),
}

// institutionKeywords mark a line as the start of an education entry.
var institutionKeywords = []string{
	"university", "college", "institute", "school",
	"bachelor", "master", "phd", "mba", "b.s.", "b.a.", "m.s.", "m.a.",
}

// degreeAbbrevPattern catches undotted degree tokens ("MIT, BS Computer
// Science") that the keyword list misses.
var degreeAbbrevPattern = regexp.MustCompile(`\b(BSc|MSc|BS|BA|MS|MA|PhD|MBA)\b`)

// isBullet reports whether a trimmed line starts with a bullet marker.
func isBullet(line string) bool {
	if line == "" {
		return false
	}
	first := []rune(line)[0]
	for _, marker := range bulletMarkers {
		if first == marker {
			return true
		}
	}
	return false
}

// cleanBullet strips the leading bullet marker and surrounding space.
func cleanBullet(line string) string {
	runes := []rune(line)
	if len(runes) == 0 {
		return line
	}
	for _, marker := range bulletMarkers {
		if runes[0] == marker {
			return strings.TrimSpace(string(runes[1:]))
		}
	}
	return strings.TrimSpace(line)
}
