package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/tsunagu/internal/match"
	"github.com/hyperjump/tsunagu/internal/models"
	"github.com/hyperjump/tsunagu/internal/storage"
)

const (
	// prefilterLimit bounds how many candidates the keyword index returns
	// before scoring. Scoring is cheap but not free; 500 is far beyond
	// what any result page shows.
	prefilterLimit = 500

	defaultMatchLimit = 20
	defaultListLimit  = 50
)

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.Storage.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	if !s.allowedExtension(header.Filename) {
		s.respondError(w, http.StatusUnsupportedMediaType, "unsupported file type")
		return
	}
	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	s.logger.Debug("resume upload", zap.String("filename", header.Filename), zap.Int("bytes", len(content)))
	rec, err := s.intake.Upload(r.Context(), header.Filename, content)
	if err != nil {
		s.logger.Error("resume upload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusAccepted, rec)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.storage.GetResume(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "resume not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	offset, limit := paginate(r, defaultListLimit)
	resumes, err := s.storage.ListResumes(r.Context(), offset, limit)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"resumes": resumes, "count": len(resumes)})
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.storage.DeleteResume(r.Context(), id); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	var role models.Role
	if err := json.NewDecoder(r.Body).Decode(&role); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(role.Title) == "" {
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if role.ID == "" {
		role.ID = uuid.New().String()
	}
	if role.PostedAt.IsZero() {
		role.PostedAt = time.Now()
	}

	if err := s.storage.CreateRole(r.Context(), &role); err != nil {
		s.logger.Error("create role failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.roleIndex.Index(r.Context(), &role); err != nil {
		s.logger.Error("index role failed", zap.String("id", role.ID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, role)
}

func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	role, err := s.storage.GetRole(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "role not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, role)
}

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	offset, limit := paginate(r, defaultListLimit)
	roles, err := s.storage.ListRoles(r.Context(), offset, limit)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"roles": roles, "count": len(roles)})
}

func (s *Server) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.storage.DeleteRole(r.Context(), id); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.roleIndex.Delete(r.Context(), id); err != nil {
		s.logger.Warn("failed to remove role from index", zap.String("id", id), zap.Error(err))
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type matchRolesRequest struct {
	ResumeID string               `json:"resume_id,omitempty"`
	Profile  *models.MatchProfile `json:"profile,omitempty"`
	Sort     string               `json:"sort,omitempty"`
	Limit    int                  `json:"limit,omitempty"`
	MinScore *float64             `json:"min_score,omitempty"`
}

// handleMatchRoles is the candidate search path: resolve a profile, narrow
// candidates through the keyword index, score, filter by the minimum score,
// and return the top of the ranking.
func (s *Server) handleMatchRoles(w http.ResponseWriter, r *http.Request) {
	var req matchRolesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, status, errMsg := s.resolveProfile(r, &req)
	if errMsg != "" {
		s.respondError(w, status, errMsg)
		return
	}

	roles, err := s.candidateRoles(r, profile)
	if err != nil {
		s.logger.Error("candidate lookup failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	mode := models.ParseSortMode(req.Sort)
	ranked := s.ranker.Rank(profile, roles, mode)

	minScore := s.config.Match.MinScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}
	ranked = match.FilterByMinScore(ranked, minScore)

	limit := req.Limit
	if limit <= 0 {
		limit = defaultMatchLimit
	}
	ranked = match.TopN(ranked, limit)

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"results": ranked,
		"count":   len(ranked),
		"sort":    string(mode),
	})
}

type matchScoreRequest struct {
	ResumeID string               `json:"resume_id,omitempty"`
	Profile  *models.MatchProfile `json:"profile,omitempty"`
	RoleID   string               `json:"role_id,omitempty"`
	Role     *models.Role         `json:"role,omitempty"`
}

// handleMatchScore scores one profile against one role with no minimum
// score threshold: a direct score request always gets its number.
func (s *Server) handleMatchScore(w http.ResponseWriter, r *http.Request) {
	var req matchScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, status, errMsg := s.resolveProfile(r, &matchRolesRequest{ResumeID: req.ResumeID, Profile: req.Profile})
	if errMsg != "" {
		s.respondError(w, status, errMsg)
		return
	}

	role := req.Role
	if role == nil {
		if req.RoleID == "" {
			s.respondError(w, http.StatusBadRequest, "role or role_id is required")
			return
		}
		var err error
		role, err = s.storage.GetRole(r.Context(), req.RoleID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				s.respondError(w, http.StatusNotFound, "role not found")
				return
			}
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	result := s.scorer.Score(profile, role)
	s.respondJSON(w, http.StatusOK, models.RankedRole{Role: role, Match: result})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resumeCount, err := s.storage.CountResumes(ctx)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	roleCount, err := s.storage.CountRoles(ctx)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	indexed, err := s.roleIndex.DocCount()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"resumes":       resumeCount,
		"roles":         roleCount,
		"indexed_roles": indexed,
	})
}

// resolveProfile picks the match profile from the request: an explicit
// profile wins, otherwise the resume_id's stored parse result is used.
func (s *Server) resolveProfile(r *http.Request, req *matchRolesRequest) (models.MatchProfile, int, string) {
	if req.Profile != nil {
		return *req.Profile, 0, ""
	}
	if req.ResumeID == "" {
		return models.MatchProfile{}, http.StatusBadRequest, "profile or resume_id is required"
	}

	rec, err := s.storage.GetResume(r.Context(), req.ResumeID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.MatchProfile{}, http.StatusNotFound, "resume not found"
		}
		return models.MatchProfile{}, http.StatusInternalServerError, err.Error()
	}
	switch rec.Status {
	case models.ParsePending:
		return models.MatchProfile{}, http.StatusConflict, "resume is still being parsed"
	case models.ParseFailed:
		return models.MatchProfile{}, http.StatusUnprocessableEntity, "resume parsing failed: " + rec.Error
	}
	return models.MatchProfileFrom(rec.Profile), 0, ""
}

// candidateRoles narrows the role set through the keyword index when the
// profile names skills, and falls back to a plain listing otherwise or when
// the index returns nothing.
func (s *Server) candidateRoles(r *http.Request, profile models.MatchProfile) ([]*models.Role, error) {
	ctx := r.Context()
	if len(profile.Skills) > 0 {
		ids, err := s.roleIndex.MatchingAny(ctx, profile.Skills, prefilterLimit)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			return s.storage.GetRoles(ctx, ids)
		}
	}
	return s.storage.ListRoles(ctx, 0, prefilterLimit)
}

func (s *Server) allowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range s.config.Intake.Extensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

func paginate(r *http.Request, defaultLimit int) (offset, limit int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return offset, limit
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
