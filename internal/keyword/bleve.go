// Package keyword provides Bleve implementation of RoleIndex.
package keyword

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/hyperjump/tsunagu/internal/models"
)

// roleDoc is the shape stored in the index: searchable text fields only,
// the authoritative record stays in storage.
type roleDoc struct {
	Title    string `json:"title"`
	Skills   string `json:"skills"`
	Location string `json:"location"`
	Level    string `json:"level"`
}

// BleveIndex implements RoleIndex using Bleve.
type BleveIndex struct {
	index bleve.Index
}

// NewBleveIndex creates or opens a Bleve index at path. An existing index is
// reused; remove the directory to force a rebuild after a mapping change.
func NewBleveIndex(path string) (*BleveIndex, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer: lowercase + tokenize, no stemming. Skill tokens
	// like "Kubernetes" must match exactly, not via stems.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	docMapping.AddFieldMappingsAt("skills", textFieldMapping)
	docMapping.AddFieldMappingsAt("location", textFieldMapping)
	docMapping.AddFieldMappingsAt("level", textFieldMapping)
	im.AddDocumentMapping("role", docMapping)
	im.DefaultType = "role"
	im.DefaultMapping = docMapping

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open Bleve index: %w", openErr)
		}
		return &BleveIndex{index: index}, nil
	}

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// Index adds or replaces a role in the index.
func (b *BleveIndex) Index(ctx context.Context, role *models.Role) error {
	if role == nil || role.ID == "" {
		return fmt.Errorf("role must have an ID")
	}
	return b.index.Index(role.ID, roleDoc{
		Title:    role.Title,
		Skills:   strings.Join(role.SkillsRequired, " "),
		Location: role.Location,
		Level:    role.ExperienceLevel,
	})
}

// MatchingAny returns IDs of roles whose title or required skills match any
// of the given skills. An empty skill list matches nothing; callers fall
// back to a full role listing in that case.
func (b *BleveIndex) MatchingAny(ctx context.Context, skills []string, limit int) ([]string, error) {
	if len(skills) == 0 {
		return nil, nil
	}

	disjuncts := make([]blevequery.Query, 0, 2*len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		sq := bleve.NewMatchQuery(skill)
		sq.SetField("skills")
		tq := bleve.NewMatchQuery(skill)
		tq.SetField("title")
		disjuncts = append(disjuncts, sq, tq)
	}
	if len(disjuncts) == 0 {
		return nil, nil
	}

	search := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(disjuncts...))
	search.Size = limit
	results, err := b.index.Search(search)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}

	ids := make([]string, len(results.Hits))
	for i, hit := range results.Hits {
		ids[i] = hit.ID
	}
	return ids, nil
}

// Delete removes a role from the index.
func (b *BleveIndex) Delete(ctx context.Context, id string) error {
	return b.index.Delete(id)
}

// DocCount returns the total number of indexed roles.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// Close closes the index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
