package match

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/tsunagu/internal/models"
)

const (
	// neutralExperience is the experience sub-score when either side's
	// level is unknown: neither reward nor strong penalty.
	neutralExperience = 0.45

	// maxMissingSkills caps the missing-skills list in results.
	maxMissingSkills = 5

	// maxWhySkills caps how many matched skills the explanation names.
	maxWhySkills = 3
)

// levelRange is the experience band for one role level, in years.
type levelRange struct{ min, max float64 }

// levelRanges maps normalized role levels to year ranges.
var levelRanges = map[string]levelRange{
	"intern":    {0, 1},
	"junior":    {0, 2},
	"entry":     {0, 2},
	"mid":       {2, 5},
	"senior":    {5, 10},
	"lead":      {7, 15},
	"principal": {10, 30},
}

// levelBands groups levels into coarse seniority bands for the qualitative
// comparison used when the profile carries a level but no year count.
var levelBands = map[string]int{
	"intern": 1, "internship": 1, "junior": 1, "entry": 1, "entry-level": 1, "associate": 1,
	"mid": 2, "mid-level": 2, "intermediate": 2,
	"senior": 3, "lead": 3, "principal": 3, "staff": 3,
}

// Scorer computes match scores between a candidate profile and roles.
type Scorer struct {
	weights Weights
	logger  *zap.Logger
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithWeights overrides the default component weights.
func WithWeights(w Weights) ScorerOption {
	return func(s *Scorer) { s.weights = w }
}

// WithScorerLogger sets the logger used for score diagnostics.
func WithScorerLogger(logger *zap.Logger) ScorerOption {
	return func(s *Scorer) { s.logger = logger }
}

// NewScorer builds a Scorer with default weights.
func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{
		weights: DefaultWeights(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the weighted match between profile and role. The result's
// score is clamped to [0,1] and rounded to two decimals; matched and missing
// skills preserve the role's declared casing and order.
func (s *Scorer) Score(profile models.MatchProfile, role *models.Role) models.MatchResult {
	skillsScore, matched, missing := scoreSkills(profile.Skills, role.SkillsRequired)
	expScore := scoreExperience(profile, role.ExperienceLevel)
	locScore := scoreLocation(profile.PreferredLocations, role)
	prefScore := scoreWorkPreference(profile.WorkPreference, role.RemoteAllowed)

	total := skillsScore*s.weights.Skills +
		expScore*s.weights.Experience +
		locScore*s.weights.Location +
		prefScore*s.weights.WorkPreference
	total = math.Round(clamp01(total)*100) / 100

	if len(missing) > maxMissingSkills {
		missing = missing[:maxMissingSkills]
	}

	return models.MatchResult{
		Score:          total,
		MatchedSkills:  matched,
		MissingSkills:  missing,
		WhyRecommended: buildWhy(profile, role, matched, expScore, s.weights.Experience),
	}
}

// scoreSkills returns the skill overlap ratio plus matched/missing lists.
// An empty required set is a full match: the role asks for nothing specific.
func scoreSkills(profileSkills, required []string) (float64, []string, []string) {
	if len(required) == 0 {
		return 1.0, nil, nil
	}
	have := make(map[string]bool, len(profileSkills))
	for _, skill := range profileSkills {
		have[strings.ToLower(strings.TrimSpace(skill))] = true
	}

	var matched, missing []string
	for _, skill := range required {
		if have[strings.ToLower(strings.TrimSpace(skill))] {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return float64(len(matched)) / float64(len(required)), matched, missing
}

// scoreExperience compares the candidate's experience to the role level.
// With a year count it uses the per-level year range; with only a
// qualitative level it compares seniority bands; with neither side known it
// returns the neutral score.
func scoreExperience(profile models.MatchProfile, roleLevel string) float64 {
	rng, ok := levelRanges[normalizeLevel(roleLevel)]
	if !ok {
		return neutralExperience
	}

	years := profile.YearsExperience
	if years <= 0 {
		band, ok := levelBands[normalizeLevel(profile.ExperienceLevel)]
		if !ok {
			return neutralExperience
		}
		roleBand := levelBands[normalizeLevel(roleLevel)]
		switch diff := abs(band - roleBand); diff {
		case 0:
			return 1.0
		case 1:
			return 0.6
		default:
			return 0.2
		}
	}

	switch {
	case years >= rng.min && years <= rng.max:
		return 1.0
	case years < rng.min:
		// Linear decay: a 3-year shortfall scores zero.
		return math.Max(0, 1.0-(rng.min-years)/3.0)
	default:
		// Overqualified is a mild penalty, not a rejection.
		return 0.8
	}
}

// scoreLocation is full for remote roles and for candidates with no stated
// preference; otherwise the role's location must appear in the preferences.
func scoreLocation(preferred []string, role *models.Role) float64 {
	if role.RemoteAllowed {
		return 1.0
	}
	if len(preferred) == 0 || role.Location == "" {
		return 1.0
	}
	roleLoc := strings.ToLower(role.Location)
	for _, loc := range preferred {
		loc = strings.ToLower(strings.TrimSpace(loc))
		if loc == "" {
			continue
		}
		if strings.Contains(roleLoc, loc) || strings.Contains(loc, roleLoc) {
			return 1.0
		}
	}
	return 0.3
}

// scoreWorkPreference matches the candidate's stated work style against the
// role's remote policy. Hybrid is compatible with everything at a discount.
func scoreWorkPreference(pref string, remoteAllowed bool) float64 {
	switch strings.ToLower(strings.TrimSpace(pref)) {
	case "", "any":
		return 1.0
	case "remote":
		if remoteAllowed {
			return 1.0
		}
		return 0.3
	case "onsite", "on-site", "office":
		if !remoteAllowed {
			return 1.0
		}
		return 0.3
	case "hybrid":
		return 0.8
	default:
		// Unrecognized preference strings read as no preference.
		return 1.0
	}
}

// buildWhy assembles the recommendation text from clauses that cleared
// their thresholds, joined with ". ". The generic fallback keeps the field
// non-empty for even the weakest matches.
func buildWhy(profile models.MatchProfile, role *models.Role, matched []string, expScore, expWeight float64) string {
	var clauses []string

	if len(matched) > 0 {
		shown := matched
		if len(shown) > maxWhySkills {
			shown = shown[:maxWhySkills]
		}
		clauses = append(clauses, fmt.Sprintf("Matches %d of %d required skills (%s)",
			len(matched), len(role.SkillsRequired), strings.Join(shown, ", ")))
	}

	if expWeight > 0 && expScore >= 0.8 {
		if role.ExperienceLevel != "" {
			clauses = append(clauses, fmt.Sprintf("Experience fits the %s level", strings.ToLower(role.ExperienceLevel)))
		} else {
			clauses = append(clauses, "Experience fits the role")
		}
	}

	roleTitle := strings.ToLower(role.Title)
	for _, pr := range profile.PreferredRoles {
		pr = strings.TrimSpace(pr)
		if pr != "" && strings.Contains(roleTitle, strings.ToLower(pr)) {
			clauses = append(clauses, fmt.Sprintf("Aligns with your preferred role: %s", pr))
			break
		}
	}

	if role.RemoteAllowed && strings.EqualFold(strings.TrimSpace(profile.WorkPreference), "remote") {
		clauses = append(clauses, "Offers the remote work you prefer")
	}

	if len(clauses) == 0 {
		return "Potential match based on overall profile"
	}
	return strings.Join(clauses, ". ")
}

func normalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
