// Package storage provides SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/tsunagu/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS resumes (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		file_type TEXT,
		status TEXT NOT NULL,
		error TEXT,
		profile TEXT,
		uploaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		parsed_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_resumes_uploaded_at ON resumes(uploaded_at);

	CREATE TABLE IF NOT EXISTS roles (
		id TEXT PRIMARY KEY,
		title TEXT,
		startup TEXT,
		description TEXT,
		skills_required TEXT,
		experience_level TEXT,
		location TEXT,
		remote_allowed INTEGER NOT NULL DEFAULT 0,
		is_startup INTEGER NOT NULL DEFAULT 0,
		posted_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_roles_posted_at ON roles(posted_at);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateResume inserts a resume record.
func (s *SQLiteStorage) CreateResume(ctx context.Context, resume *models.Resume) error {
	profileJSON, err := marshalProfile(resume.Profile)
	if err != nil {
		return err
	}
	if resume.UploadedAt.IsZero() {
		resume.UploadedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO resumes (id, filename, file_type, status, error, profile, uploaded_at, parsed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		resume.ID, resume.Filename, resume.FileType, string(resume.Status),
		resume.Error, profileJSON, resume.UploadedAt, nullableTime(resume.ParsedAt),
	)
	return err
}

// GetResume returns a resume by ID.
func (s *SQLiteStorage) GetResume(ctx context.Context, id string) (*models.Resume, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, file_type, status, error, profile, uploaded_at, parsed_at
		 FROM resumes WHERE id = ?`, id,
	)
	resume, err := scanResume(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return resume, nil
}

// UpdateResume updates an existing resume record.
func (s *SQLiteStorage) UpdateResume(ctx context.Context, resume *models.Resume) error {
	profileJSON, err := marshalProfile(resume.Profile)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE resumes SET filename = ?, file_type = ?, status = ?, error = ?, profile = ?, parsed_at = ?
		 WHERE id = ?`,
		resume.Filename, resume.FileType, string(resume.Status), resume.Error,
		profileJSON, nullableTime(resume.ParsedAt), resume.ID,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("resume %s: %w", resume.ID, ErrNotFound)
	}
	return nil
}

// DeleteResume removes a resume by ID.
func (s *SQLiteStorage) DeleteResume(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = ?`, id)
	return err
}

// ListResumes returns resumes ordered by upload time descending.
func (s *SQLiteStorage) ListResumes(ctx context.Context, offset, limit int) ([]*models.Resume, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, file_type, status, error, profile, uploaded_at, parsed_at
		 FROM resumes ORDER BY uploaded_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumes []*models.Resume
	for rows.Next() {
		resume, err := scanResume(rows.Scan)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, resume)
	}
	return resumes, rows.Err()
}

// CreateRole inserts a role.
func (s *SQLiteStorage) CreateRole(ctx context.Context, role *models.Role) error {
	skillsJSON, err := json.Marshal(role.SkillsRequired)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	if role.PostedAt.IsZero() {
		role.PostedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO roles (id, title, startup, description, skills_required, experience_level, location, remote_allowed, is_startup, posted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		role.ID, role.Title, role.Startup, role.Description, string(skillsJSON),
		role.ExperienceLevel, role.Location, boolToInt(role.RemoteAllowed),
		boolToInt(role.IsStartup), role.PostedAt,
	)
	return err
}

// GetRole returns a role by ID.
func (s *SQLiteStorage) GetRole(ctx context.Context, id string) (*models.Role, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, startup, description, skills_required, experience_level, location, remote_allowed, is_startup, posted_at
		 FROM roles WHERE id = ?`, id,
	)
	role, err := scanRole(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("role %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return role, nil
}

// GetRoles returns the roles matching the given IDs, skipping unknown ones.
// Order follows the input IDs so callers keep index-ranked ordering intact.
func (s *SQLiteStorage) GetRoles(ctx context.Context, ids []string) ([]*models.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimRight(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, startup, description, skills_required, experience_level, location, remote_allowed, is_startup, posted_at
		 FROM roles WHERE id IN (`+placeholders+`)`, args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*models.Role, len(ids))
	for rows.Next() {
		role, err := scanRole(rows.Scan)
		if err != nil {
			return nil, err
		}
		byID[role.ID] = role
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	roles := make([]*models.Role, 0, len(byID))
	for _, id := range ids {
		if role, ok := byID[id]; ok {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

// DeleteRole removes a role by ID.
func (s *SQLiteStorage) DeleteRole(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, id)
	return err
}

// ListRoles returns roles ordered by posting time descending.
func (s *SQLiteStorage) ListRoles(ctx context.Context, offset, limit int) ([]*models.Role, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, startup, description, skills_required, experience_level, location, remote_allowed, is_startup, posted_at
		 FROM roles ORDER BY posted_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		role, err := scanRole(rows.Scan)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// BatchCreateRoles inserts roles in a single transaction.
func (s *SQLiteStorage) BatchCreateRoles(ctx context.Context, roles []*models.Role) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO roles (id, title, startup, description, skills_required, experience_level, location, remote_allowed, is_startup, posted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, role := range roles {
		skillsJSON, err := json.Marshal(role.SkillsRequired)
		if err != nil {
			return fmt.Errorf("failed to marshal skills for %s: %w", role.ID, err)
		}
		if role.PostedAt.IsZero() {
			role.PostedAt = time.Now()
		}
		if _, err := stmt.ExecContext(ctx,
			role.ID, role.Title, role.Startup, role.Description, string(skillsJSON),
			role.ExperienceLevel, role.Location, boolToInt(role.RemoteAllowed),
			boolToInt(role.IsStartup), role.PostedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CountResumes returns the total number of stored resumes.
func (s *SQLiteStorage) CountResumes(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resumes`).Scan(&count)
	return count, err
}

// CountRoles returns the total number of stored roles.
func (s *SQLiteStorage) CountRoles(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roles`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func marshalProfile(profile *models.ResumeProfile) (string, error) {
	if profile == nil {
		return "", nil
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile: %w", err)
	}
	return string(data), nil
}

func scanResume(scan func(dest ...any) error) (*models.Resume, error) {
	var (
		resume      models.Resume
		status      string
		errText     sql.NullString
		profileJSON sql.NullString
		parsedAt    sql.NullTime
	)
	if err := scan(&resume.ID, &resume.Filename, &resume.FileType, &status,
		&errText, &profileJSON, &resume.UploadedAt, &parsedAt); err != nil {
		return nil, err
	}
	resume.Status = models.ParseStatus(status)
	resume.Error = errText.String
	if parsedAt.Valid {
		resume.ParsedAt = parsedAt.Time
	}
	if profileJSON.Valid && profileJSON.String != "" {
		var profile models.ResumeProfile
		if err := json.Unmarshal([]byte(profileJSON.String), &profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		resume.Profile = &profile
	}
	return &resume, nil
}

func scanRole(scan func(dest ...any) error) (*models.Role, error) {
	var (
		role          models.Role
		skillsJSON    sql.NullString
		remoteAllowed int
		isStartup     int
	)
	if err := scan(&role.ID, &role.Title, &role.Startup, &role.Description,
		&skillsJSON, &role.ExperienceLevel, &role.Location,
		&remoteAllowed, &isStartup, &role.PostedAt); err != nil {
		return nil, err
	}
	role.RemoteAllowed = remoteAllowed != 0
	role.IsStartup = isStartup != 0
	if skillsJSON.Valid && skillsJSON.String != "" {
		_ = json.Unmarshal([]byte(skillsJSON.String), &role.SkillsRequired)
	}
	return &role, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
