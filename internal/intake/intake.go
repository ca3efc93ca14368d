// Package intake runs the resume ingestion pipeline: store the upload as
// pending, parse it in the background, and record the outcome.
package intake

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/tsunagu/internal/models"
	"github.com/hyperjump/tsunagu/internal/resume"
	"github.com/hyperjump/tsunagu/internal/storage"
)

// Service accepts resume documents and drives them through parsing.
// Uploads return immediately with a pending record; callers poll the
// record's status until parsing settles it.
type Service struct {
	storage storage.Storage
	parser  *resume.Parser
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewService builds an intake service.
func NewService(st storage.Storage, parser *resume.Parser, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		storage: st,
		parser:  parser,
		logger:  logger,
	}
}

// Upload stores content as a pending resume and parses it in the
// background. The returned record carries the generated ID; its status is
// ParsePending until the background parse finishes.
func (s *Service) Upload(ctx context.Context, filename string, content []byte) (*models.Resume, error) {
	rec := &models.Resume{
		ID:         uuid.New().String(),
		Filename:   filepath.Base(filename),
		FileType:   strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."),
		Status:     models.ParsePending,
		UploadedAt: time.Now(),
	}
	if err := s.storage.CreateResume(ctx, rec); err != nil {
		return nil, err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// Detached from the request context: the upload response has
		// already been sent when parsing runs.
		s.parse(context.Background(), rec, content)
	}()

	result := *rec
	return &result, nil
}

// IngestFile reads a file dropped into an intake directory and uploads it.
// Used by the directory watcher.
func (s *Service) IngestFile(ctx context.Context, path string) (*models.Resume, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.Upload(ctx, filepath.Base(path), content)
}

// parse runs the parser and records the outcome on the stored record.
// Extraction failure marks the record failed; anything the heuristics
// cannot fill simply stays empty on a parsed profile.
func (s *Service) parse(ctx context.Context, rec *models.Resume, content []byte) {
	profile, err := s.parser.Parse(ctx, content, rec.Filename)
	rec.ParsedAt = time.Now()
	if err != nil {
		rec.Status = models.ParseFailed
		rec.Error = err.Error()
		var extErr *resume.ExtractionError
		if errors.As(err, &extErr) {
			s.logger.Warn("resume text extraction failed",
				zap.String("id", rec.ID),
				zap.String("filename", rec.Filename),
				zap.Error(extErr.Err))
		} else {
			s.logger.Error("resume parse failed",
				zap.String("id", rec.ID),
				zap.Error(err))
		}
	} else {
		rec.Status = models.ParseDone
		rec.Profile = profile
		s.logger.Info("resume parsed",
			zap.String("id", rec.ID),
			zap.String("filename", rec.Filename),
			zap.Int("skills", len(profile.Skills)),
			zap.Float64("total_years", profile.TotalYearsExperience))
	}

	if err := s.storage.UpdateResume(ctx, rec); err != nil {
		s.logger.Error("failed to persist parse result",
			zap.String("id", rec.ID),
			zap.Error(err))
	}
}

// Wait blocks until all background parses have finished. Used on shutdown
// and in tests.
func (s *Service) Wait() {
	s.wg.Wait()
}
