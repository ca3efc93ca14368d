package keyword

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hyperjump/tsunagu/internal/models"
)

func newTestIndex(t *testing.T) *BleveIndex {
	t.Helper()
	idx, err := NewBleveIndex(filepath.Join(t.TempDir(), "roles.bleve"))
	if err != nil {
		t.Fatalf("NewBleveIndex: %v", err)
	}
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func indexRole(t *testing.T, idx *BleveIndex, role *models.Role) {
	t.Helper()
	if err := idx.Index(context.Background(), role); err != nil {
		t.Fatalf("Index %s: %v", role.ID, err)
	}
}

func TestMatchingAny(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	indexRole(t, idx, &models.Role{ID: "go-role", Title: "Backend Engineer", SkillsRequired: []string{"Go", "PostgreSQL"}})
	indexRole(t, idx, &models.Role{ID: "py-role", Title: "Data Engineer", SkillsRequired: []string{"Python", "Spark"}})
	indexRole(t, idx, &models.Role{ID: "design-role", Title: "Product Designer", SkillsRequired: []string{"Figma"}})

	ids, err := idx.MatchingAny(ctx, []string{"python"}, 10)
	if err != nil {
		t.Fatalf("MatchingAny: %v", err)
	}
	if len(ids) != 1 || ids[0] != "py-role" {
		t.Errorf("ids = %v, want [py-role]", ids)
	}

	ids, err = idx.MatchingAny(ctx, []string{"Go", "Python"}, 10)
	if err != nil {
		t.Fatalf("MatchingAny: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("ids = %v, want both engineering roles", ids)
	}
	for _, id := range ids {
		if id == "design-role" {
			t.Error("design role should not match")
		}
	}
}

func TestMatchingAny_TitleMatches(t *testing.T) {
	idx := newTestIndex(t)
	indexRole(t, idx, &models.Role{ID: "r1", Title: "Kubernetes Platform Engineer"})

	ids, err := idx.MatchingAny(context.Background(), []string{"Kubernetes"}, 10)
	if err != nil {
		t.Fatalf("MatchingAny: %v", err)
	}
	if len(ids) != 1 || ids[0] != "r1" {
		t.Errorf("ids = %v, want title hit", ids)
	}
}

func TestMatchingAny_EmptySkills(t *testing.T) {
	idx := newTestIndex(t)
	ids, err := idx.MatchingAny(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("MatchingAny: %v", err)
	}
	if ids != nil {
		t.Errorf("ids = %v, want nil for an empty query", ids)
	}

	ids, err = idx.MatchingAny(context.Background(), []string{"  ", ""}, 10)
	if err != nil {
		t.Fatalf("MatchingAny: %v", err)
	}
	if ids != nil {
		t.Errorf("ids = %v, want nil for blank skills", ids)
	}
}

func TestMatchingAny_Limit(t *testing.T) {
	idx := newTestIndex(t)
	for _, id := range []string{"a", "b", "c"} {
		indexRole(t, idx, &models.Role{ID: id, SkillsRequired: []string{"Go"}})
	}
	ids, err := idx.MatchingAny(context.Background(), []string{"Go"}, 2)
	if err != nil {
		t.Fatalf("MatchingAny: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("got %d ids, want limit of 2", len(ids))
	}
}

func TestIndexAndDelete(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	indexRole(t, idx, &models.Role{ID: "r1", SkillsRequired: []string{"Rust"}})
	count, err := idx.DocCount()
	if err != nil {
		t.Fatalf("DocCount: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	if err := idx.Delete(ctx, "r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	ids, err := idx.MatchingAny(ctx, []string{"Rust"}, 10)
	if err != nil {
		t.Fatalf("MatchingAny: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want none after delete", ids)
	}
}

func TestIndex_RequiresID(t *testing.T) {
	idx := newTestIndex(t)
	if err := idx.Index(context.Background(), &models.Role{}); err == nil {
		t.Error("expected an error for a role without an ID")
	}
	if err := idx.Index(context.Background(), nil); err == nil {
		t.Error("expected an error for a nil role")
	}
}
