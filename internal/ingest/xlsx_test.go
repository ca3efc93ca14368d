package ingest

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// writeSheet builds an xlsx file from rows and returns its path.
func writeSheet(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i, err)
		}
	}

	path := filepath.Join(t.TempDir(), "roles.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func TestReadRoles(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"Title", "Startup", "Skills", "Experience_Level", "Location", "Remote", "Is_Startup", "Posted_At"},
		{"Backend Engineer", "Initech", "Go, PostgreSQL; Docker", "Senior", "Berlin", "yes", "true", "2026-01-15"},
		{"Data Analyst", "", "SQL", "", "", "no", "", ""},
	})

	roles, err := ReadRoles(path)
	if err != nil {
		t.Fatalf("ReadRoles: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(roles))
	}

	first := roles[0]
	if first.ID == "" {
		t.Error("expected a generated ID")
	}
	if first.Title != "Backend Engineer" || first.Startup != "Initech" {
		t.Errorf("role = %+v", first)
	}
	if want := []string{"Go", "PostgreSQL", "Docker"}; !reflect.DeepEqual(first.SkillsRequired, want) {
		t.Errorf("skills = %v, want %v", first.SkillsRequired, want)
	}
	if first.ExperienceLevel != "senior" {
		t.Errorf("level = %q, want lowercased senior", first.ExperienceLevel)
	}
	if !first.RemoteAllowed || !first.IsStartup {
		t.Errorf("flags = remote:%v startup:%v", first.RemoteAllowed, first.IsStartup)
	}
	if want := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC); !first.PostedAt.Equal(want) {
		t.Errorf("posted_at = %v, want %v", first.PostedAt, want)
	}

	second := roles[1]
	if second.RemoteAllowed || second.IsStartup {
		t.Errorf("flags should default false, got %+v", second)
	}
	if second.PostedAt.IsZero() {
		t.Error("unparseable posted_at should fall back to now")
	}
	if first.ID == second.ID {
		t.Error("IDs must be unique per row")
	}
}

func TestReadRoles_SkipsRowsWithoutTitle(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"title", "skills"},
		{"", "Go"},
		{"Platform Engineer", "Kubernetes"},
	})

	roles, err := ReadRoles(path)
	if err != nil {
		t.Fatalf("ReadRoles: %v", err)
	}
	if len(roles) != 1 || roles[0].Title != "Platform Engineer" {
		t.Errorf("roles = %v", roles)
	}
}

func TestReadRoles_MissingTitleColumn(t *testing.T) {
	path := writeSheet(t, [][]any{
		{"name", "skills"},
		{"Engineer", "Go"},
	})

	if _, err := ReadRoles(path); err == nil {
		t.Fatal("expected an error for a sheet without a title column")
	}
}

func TestReadRoles_HeaderOnly(t *testing.T) {
	path := writeSheet(t, [][]any{{"title"}})
	roles, err := ReadRoles(path)
	if err != nil {
		t.Fatalf("ReadRoles: %v", err)
	}
	if roles != nil {
		t.Errorf("roles = %v, want nil for a header-only sheet", roles)
	}
}

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"Go", []string{"Go"}},
		{"Go, Python; Rust", []string{"Go", "Python", "Rust"}},
		{" , ; ", []string{}},
	}
	for _, tt := range tests {
		if got := splitSkills(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitSkills(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
