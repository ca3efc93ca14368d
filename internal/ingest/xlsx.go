// Package ingest loads role catalogs from spreadsheet files.
package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/tsunagu/internal/models"
)

// column headers recognized in the first row, matched case-insensitively.
const (
	colTitle       = "title"
	colStartup     = "startup"
	colDescription = "description"
	colSkills      = "skills"
	colLevel       = "experience_level"
	colLocation    = "location"
	colRemote      = "remote"
	colIsStartup   = "is_startup"
	colPostedAt    = "posted_at"
)

// postedAtFormats are tried in order when parsing the posted_at column.
var postedAtFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// ReadRoles reads roles from the first sheet of an xlsx file. The first row
// must be a header row; unknown columns are ignored and missing optional
// cells leave zero values. Rows without a title are skipped.
func ReadRoles(path string) ([]*models.Role, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}
	if _, ok := columns[colTitle]; !ok {
		return nil, fmt.Errorf("sheet %s: missing %q header column", sheet, colTitle)
	}

	cell := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var roles []*models.Role
	for _, row := range rows[1:] {
		title := cell(row, colTitle)
		if title == "" {
			continue
		}
		role := &models.Role{
			ID:              uuid.New().String(),
			Title:           title,
			Startup:         cell(row, colStartup),
			Description:     cell(row, colDescription),
			SkillsRequired:  splitSkills(cell(row, colSkills)),
			ExperienceLevel: strings.ToLower(cell(row, colLevel)),
			Location:        cell(row, colLocation),
			RemoteAllowed:   parseBool(cell(row, colRemote)),
			IsStartup:       parseBool(cell(row, colIsStartup)),
			PostedAt:        parsePostedAt(cell(row, colPostedAt)),
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// splitSkills breaks a skills cell on commas and semicolons.
func splitSkills(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}

// parsePostedAt parses the posting time, falling back to now so newly
// imported roles sort as fresh rather than as epoch-zero stragglers.
func parsePostedAt(raw string) time.Time {
	for _, format := range postedAtFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t
		}
	}
	return time.Now()
}
