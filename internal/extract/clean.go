package extract

import (
	"regexp"
	"strings"
)

var (
	// mergedWords matches a lowercase letter glued to an uppercase one,
	// the classic symptom of PDF extractors dropping inter-word spacing.
	mergedWords = regexp.MustCompile(`([a-z])([A-Z])`)
	// tightPunct matches a period or comma glued to the following letter.
	tightPunct = regexp.MustCompile(`([.,])([A-Za-z])`)
	// spaceRuns collapses runs of spaces and tabs (not newlines).
	spaceRuns = regexp.MustCompile(`[ \t]+`)
	// newlineRuns collapses runs of blank lines to a single newline.
	newlineRuns = regexp.MustCompile(`\n+`)
)

// CleanText repairs common PDF extraction artifacts: merged words
// ("SeniorEngineer"), missing space after punctuation ("Corp,San"), and
// whitespace runs. It must run before segmentation; the line-based
// heuristics downstream assume words are separated.
func CleanText(text string) string {
	text = mergedWords.ReplaceAllString(text, "$1 $2")
	text = tightPunct.ReplaceAllString(text, "$1 $2")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
