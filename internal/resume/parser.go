// Package resume turns extracted document text into a structured profile.
// All extraction is heuristic and best effort: a field the heuristics cannot
// find is left empty, never reported as an error.
package resume

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/tsunagu/internal/extract"
	"github.com/hyperjump/tsunagu/internal/models"
	"github.com/hyperjump/tsunagu/pkg/utils"
)

// timeNow is stubbed in tests so ongoing-job math stays deterministic.
var timeNow = time.Now

// ExtractionError reports that a document yielded no usable text. It wraps
// the extractor's error so callers can still inspect the cause.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract text from %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Parser parses resume documents into profiles. The zero value is not
// usable; construct with NewParser.
type Parser struct {
	extractor   *extract.Extractor
	enricher    Enricher
	logger      *zap.Logger
	maxSkills   int
	maxEdu      int
	maxExp      int
	headerLines int
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// WithEnricher sets the post-parse enrichment hook.
func WithEnricher(e Enricher) Option {
	return func(p *Parser) { p.enricher = e }
}

// WithLimits overrides the per-field entry caps.
func WithLimits(maxSkills, maxEducation, maxExperience, headerLines int) Option {
	return func(p *Parser) {
		p.maxSkills = maxSkills
		p.maxEdu = maxEducation
		p.maxExp = maxExperience
		p.headerLines = headerLines
	}
}

// NewParser builds a Parser with default caps of 30 skills, 5 education
// entries, 10 experience entries, and a 10-line contact header window.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		extractor:   extract.NewExtractor(),
		enricher:    NoopEnricher(),
		logger:      zap.NewNop(),
		maxSkills:   30,
		maxEdu:      5,
		maxExp:      10,
		headerLines: 10,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts text from the document bytes and parses it into a profile.
// The filename's extension selects the extraction strategy. An
// *ExtractionError is returned when no text can be recovered; heuristic
// gaps in an extracted document are not errors.
func (p *Parser) Parse(ctx context.Context, content []byte, filename string) (*models.ResumeProfile, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	text, err := p.extractor.ExtractBytes(content, ext)
	if err != nil {
		return nil, &ExtractionError{Filename: filename, Err: err}
	}

	profile := p.ParseText(text)
	if err := p.enricher.Enrich(ctx, profile); err != nil {
		p.logger.Warn("profile enrichment failed, keeping rule-based profile",
			zap.String("filename", filename),
			zap.Error(err))
	}

	p.logger.Debug("parsed resume",
		zap.String("filename", filename),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("experience_entries", len(profile.Experience)),
		zap.Float64("total_years", profile.TotalYearsExperience))
	return profile, nil
}

// ParseText parses already-extracted text. It never fails: the worst case
// is a profile with only empty fields.
func (p *Parser) ParseText(text string) *models.ResumeProfile {
	lines := splitLines(text)
	sections := segmentSections(lines)

	profile := &models.ResumeProfile{
		Contact:        extractContact(text, lines, p.headerLines),
		Summary:        extractSummary(lines, sections),
		Skills:         extractSkills(text, lines, sections, p.maxSkills),
		Education:      extractEducation(lines, sections, p.maxEdu),
		Experience:     extractExperience(lines, sections, p.maxExp),
		Projects:       extractProjects(lines, sections),
		Certifications: extractCertifications(lines, sections),
		Languages:      extractLanguages(lines, sections),
	}
	profile.TotalYearsExperience = totalYears(profile.Experience)
	return profile
}

// splitLines breaks text into trimmed lines, dropping empty ones so line
// indices downstream always refer to content.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// extractSummary joins the summary section into a single paragraph.
func extractSummary(lines []string, sections map[SectionKind]int) string {
	body := sectionLines(lines, sections, SectionSummary)
	if len(body) == 0 {
		return ""
	}
	return utils.Truncate(strings.TrimSpace(strings.Join(body, " ")), 500)
}

// totalYears sums (end year - start year + 1) across entries, counting an
// ongoing job up to the current year. Overlapping jobs are summed naively;
// the one-decimal rounding keeps JSON output stable.
func totalYears(entries []models.ExperienceEntry) float64 {
	currentYear := timeNow().Year()
	total := 0.0
	for _, e := range entries {
		start := entryStartYear(e)
		if start == 0 {
			continue
		}
		end := 0
		if e.IsCurrent {
			end = currentYear
		} else if m := yearPattern.FindString(e.EndDate); m != "" {
			end, _ = strconv.Atoi(m)
		} else {
			end = start
		}
		if end < start {
			continue
		}
		total += float64(end - start + 1)
	}
	return math.Round(total*10) / 10
}
