package match

import (
	"testing"
	"time"

	"github.com/hyperjump/tsunagu/internal/models"
)

func testRole(id, title string, skills []string, postedAt time.Time) *models.Role {
	return &models.Role{
		ID:             id,
		Title:          title,
		SkillsRequired: skills,
		RemoteAllowed:  true,
		PostedAt:       postedAt,
	}
}

func TestRank_BestMatch(t *testing.T) {
	ranker := NewRanker(nil, nil)
	now := time.Now()
	profile := models.MatchProfile{Skills: []string{"Go", "Python"}}
	roles := []*models.Role{
		testRole("weak", "Analyst", []string{"Excel", "SAS"}, now),
		testRole("strong", "Backend Engineer", []string{"Go", "Python"}, now.Add(-time.Hour)),
		testRole("partial", "Data Engineer", []string{"Python", "Spark"}, now),
	}

	ranked := ranker.Rank(profile, roles, models.SortBestMatch)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 results, got %d", len(ranked))
	}
	want := []string{"strong", "partial", "weak"}
	for i, id := range want {
		if ranked[i].Role.ID != id {
			t.Errorf("position %d = %q, want %q", i, ranked[i].Role.ID, id)
		}
	}
}

func TestRank_BestMatchTieBreaksByPostedAt(t *testing.T) {
	ranker := NewRanker(nil, nil)
	now := time.Now()
	profile := models.MatchProfile{Skills: []string{"Go"}}
	roles := []*models.Role{
		testRole("older", "Engineer", []string{"Go"}, now.Add(-48*time.Hour)),
		testRole("newer", "Engineer", []string{"Go"}, now),
	}

	ranked := ranker.Rank(profile, roles, models.SortBestMatch)
	if ranked[0].Role.ID != "newer" {
		t.Errorf("tie should go to the newer posting, got %q first", ranked[0].Role.ID)
	}
}

// Sorting by newest must depend only on posting time. Permuting the
// profile's skills changes scores but never the order.
func TestRank_NewestIgnoresScore(t *testing.T) {
	ranker := NewRanker(nil, nil)
	now := time.Now()
	roles := []*models.Role{
		testRole("old-perfect", "Engineer", []string{"Go"}, now.Add(-72*time.Hour)),
		testRole("new-poor", "Analyst", []string{"Excel"}, now),
		testRole("mid", "Engineer", []string{"Go", "Rust"}, now.Add(-24*time.Hour)),
	}

	for _, skills := range [][]string{{"Go"}, {"Excel"}, nil} {
		ranked := ranker.Rank(models.MatchProfile{Skills: skills}, roles, models.SortNewest)
		want := []string{"new-poor", "mid", "old-perfect"}
		for i, id := range want {
			if ranked[i].Role.ID != id {
				t.Errorf("skills %v: position %d = %q, want %q", skills, i, ranked[i].Role.ID, id)
			}
		}
	}
}

func TestRank_SkipsNilRoles(t *testing.T) {
	ranker := NewRanker(nil, nil)
	roles := []*models.Role{nil, testRole("a", "Engineer", nil, time.Now()), nil}
	ranked := ranker.Rank(models.MatchProfile{}, roles, models.SortBestMatch)
	if len(ranked) != 1 || ranked[0].Role.ID != "a" {
		t.Errorf("ranked = %v, want just role a", ranked)
	}
}

func TestFilterByMinScore(t *testing.T) {
	ranked := []models.RankedRole{
		{Match: models.MatchResult{Score: 0.9}},
		{Match: models.MatchResult{Score: 0.3}},
		{Match: models.MatchResult{Score: 0.29}},
	}
	filtered := FilterByMinScore(ranked, 0.3)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 results at or above threshold, got %d", len(filtered))
	}
	if filtered[1].Match.Score != 0.3 {
		t.Error("the threshold itself should be inclusive")
	}
}

func TestTopN(t *testing.T) {
	ranked := make([]models.RankedRole, 5)
	if got := TopN(ranked, 3); len(got) != 3 {
		t.Errorf("TopN(5, 3) = %d results", len(got))
	}
	if got := TopN(ranked, 0); len(got) != 5 {
		t.Errorf("TopN(5, 0) = %d results, want all", len(got))
	}
	if got := TopN(ranked, 10); len(got) != 5 {
		t.Errorf("TopN(5, 10) = %d results, want all", len(got))
	}
}
