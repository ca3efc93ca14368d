package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/hyperjump/tsunagu/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	st, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStorage: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestResumeCRUD(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	resume := &models.Resume{
		ID:       "r1",
		Filename: "jane.pdf",
		FileType: "pdf",
		Status:   models.ParsePending,
	}
	if err := st.CreateResume(ctx, resume); err != nil {
		t.Fatalf("CreateResume: %v", err)
	}

	got, err := st.GetResume(ctx, "r1")
	if err != nil {
		t.Fatalf("GetResume: %v", err)
	}
	if got.Filename != "jane.pdf" || got.Status != models.ParsePending {
		t.Errorf("got %+v", got)
	}
	if got.Profile != nil {
		t.Error("profile should be nil before parsing")
	}

	resume.Status = models.ParseDone
	resume.ParsedAt = time.Now()
	resume.Profile = &models.ResumeProfile{
		Skills: []string{"Python", "Go"},
	}
	if err := st.UpdateResume(ctx, resume); err != nil {
		t.Fatalf("UpdateResume: %v", err)
	}

	got, err = st.GetResume(ctx, "r1")
	if err != nil {
		t.Fatalf("GetResume after update: %v", err)
	}
	if got.Status != models.ParseDone {
		t.Errorf("status = %q", got.Status)
	}
	if got.Profile == nil || !reflect.DeepEqual(got.Profile.Skills, []string{"Python", "Go"}) {
		t.Errorf("profile = %+v", got.Profile)
	}
	if got.ParsedAt.IsZero() {
		t.Error("parsed_at should be set")
	}

	if err := st.DeleteResume(ctx, "r1"); err != nil {
		t.Fatalf("DeleteResume: %v", err)
	}
	if _, err := st.GetResume(ctx, "r1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete err = %v, want ErrNotFound", err)
	}
}

func TestGetResume_NotFound(t *testing.T) {
	st := newTestStorage(t)
	if _, err := st.GetResume(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateResume_NotFound(t *testing.T) {
	st := newTestStorage(t)
	err := st.UpdateResume(context.Background(), &models.Resume{ID: "missing", Status: models.ParseDone})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListResumes_NewestFirst(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()
	now := time.Now()

	for i, id := range []string{"old", "mid", "new"} {
		resume := &models.Resume{
			ID:         id,
			Filename:   id + ".txt",
			Status:     models.ParsePending,
			UploadedAt: now.Add(time.Duration(i) * time.Hour),
		}
		if err := st.CreateResume(ctx, resume); err != nil {
			t.Fatalf("CreateResume %s: %v", id, err)
		}
	}

	resumes, err := st.ListResumes(ctx, 0, 10)
	if err != nil {
		t.Fatalf("ListResumes: %v", err)
	}
	if len(resumes) != 3 || resumes[0].ID != "new" || resumes[2].ID != "old" {
		ids := make([]string, len(resumes))
		for i, r := range resumes {
			ids[i] = r.ID
		}
		t.Errorf("order = %v, want [new mid old]", ids)
	}

	page, err := st.ListResumes(ctx, 1, 1)
	if err != nil {
		t.Fatalf("ListResumes page: %v", err)
	}
	if len(page) != 1 || page[0].ID != "mid" {
		t.Errorf("page = %v, want just mid", page)
	}
}

func TestRoleCRUD(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	role := &models.Role{
		ID:              "j1",
		Title:           "Backend Engineer",
		Startup:         "Initech",
		SkillsRequired:  []string{"Go", "PostgreSQL"},
		ExperienceLevel: "senior",
		Location:        "Berlin",
		RemoteAllowed:   true,
		IsStartup:       true,
		PostedAt:        time.Now().Add(-time.Hour),
	}
	if err := st.CreateRole(ctx, role); err != nil {
		t.Fatalf("CreateRole: %v", err)
	}

	got, err := st.GetRole(ctx, "j1")
	if err != nil {
		t.Fatalf("GetRole: %v", err)
	}
	if got.Title != "Backend Engineer" || !got.RemoteAllowed || !got.IsStartup {
		t.Errorf("got %+v", got)
	}
	if !reflect.DeepEqual(got.SkillsRequired, []string{"Go", "PostgreSQL"}) {
		t.Errorf("skills = %v", got.SkillsRequired)
	}

	if err := st.DeleteRole(ctx, "j1"); err != nil {
		t.Fatalf("DeleteRole: %v", err)
	}
	if _, err := st.GetRole(ctx, "j1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete err = %v, want ErrNotFound", err)
	}
}

func TestGetRoles_PreservesInputOrder(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := st.CreateRole(ctx, &models.Role{ID: id, Title: id}); err != nil {
			t.Fatalf("CreateRole %s: %v", id, err)
		}
	}

	roles, err := st.GetRoles(ctx, []string{"c", "missing", "a"})
	if err != nil {
		t.Fatalf("GetRoles: %v", err)
	}
	if len(roles) != 2 || roles[0].ID != "c" || roles[1].ID != "a" {
		ids := make([]string, len(roles))
		for i, r := range roles {
			ids[i] = r.ID
		}
		t.Errorf("order = %v, want [c a]", ids)
	}

	empty, err := st.GetRoles(ctx, nil)
	if err != nil {
		t.Fatalf("GetRoles(nil): %v", err)
	}
	if empty != nil {
		t.Errorf("GetRoles(nil) = %v, want nil", empty)
	}
}

func TestBatchCreateRoles(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	roles := []*models.Role{
		{ID: "b1", Title: "One", SkillsRequired: []string{"Go"}},
		{ID: "b2", Title: "Two"},
		{ID: "b3", Title: "Three"},
	}
	if err := st.BatchCreateRoles(ctx, roles); err != nil {
		t.Fatalf("BatchCreateRoles: %v", err)
	}

	count, err := st.CountRoles(ctx)
	if err != nil {
		t.Fatalf("CountRoles: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	got, err := st.GetRole(ctx, "b1")
	if err != nil {
		t.Fatalf("GetRole: %v", err)
	}
	if got.PostedAt.IsZero() {
		t.Error("batch insert should default posted_at")
	}
}

func TestBatchCreateRoles_DuplicateRollsBack(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	roles := []*models.Role{
		{ID: "dup", Title: "First"},
		{ID: "dup", Title: "Second"},
	}
	if err := st.BatchCreateRoles(ctx, roles); err == nil {
		t.Fatal("expected a primary key violation")
	}
	count, err := st.CountRoles(ctx)
	if err != nil {
		t.Fatalf("CountRoles: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0 after rollback", count)
	}
}

func TestCounts(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	resumes, err := st.CountResumes(ctx)
	if err != nil || resumes != 0 {
		t.Errorf("CountResumes = %d, %v", resumes, err)
	}
	if err := st.CreateResume(ctx, &models.Resume{ID: "r", Filename: "r.txt", Status: models.ParsePending}); err != nil {
		t.Fatalf("CreateResume: %v", err)
	}
	resumes, err = st.CountResumes(ctx)
	if err != nil || resumes != 1 {
		t.Errorf("CountResumes = %d, %v", resumes, err)
	}
}
