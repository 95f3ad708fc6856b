package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/meilisearch/meilisearch-go"

	"github.com/bframe197/MilMedMatch/internal/dto"
	"github.com/bframe197/MilMedMatch/internal/model"
)

const programIndexName = "programs"

// ProgramSearchService maintains the free-text catalog index. The index is
// advisory: the filtered catalog listing never depends on it.
type ProgramSearchService interface {
	Index(p model.ResidencyProgram) error
	Delete(id string) error
	Search(query string, limit int) ([]dto.ProgramSearchHit, error)
}

type programSearchService struct {
	client meilisearch.ServiceManager
}

func NewProgramSearchService(client meilisearch.ServiceManager) ProgramSearchService {
	s := &programSearchService{client: client}
	s.initIndex()
	return s
}

func (s *programSearchService) initIndex() {
	if s.client == nil {
		return
	}
	filterable := []any{"branch", "specialty"}
	if _, err := s.client.Index(programIndexName).UpdateFilterableAttributes(&filterable); err != nil {
		slog.Warn("failed to update programs filterable attributes", "error", err)
	}
	sortable := []string{"name"}
	if _, err := s.client.Index(programIndexName).UpdateSortableAttributes(&sortable); err != nil {
		slog.Warn("failed to update programs sortable attributes", "error", err)
	}
}

type meiliProgramDoc struct {
	// Meilisearch document ids only allow [a-zA-Z0-9_-]; derived slugs
	// already comply.
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Branch    string   `json:"branch"`
	Specialty string   `json:"specialty"`
	Location  string   `json:"location"`
	Strengths []string `json:"strengths"`
}

func (s *programSearchService) Index(p model.ResidencyProgram) error {
	if s.client == nil {
		return nil
	}
	doc := meiliProgramDoc{
		ID:        p.ID,
		Name:      p.Name,
		Branch:    string(p.Branch),
		Specialty: p.Specialty,
		Location:  p.Location,
		Strengths: p.Strengths,
	}
	if _, err := s.client.Index(programIndexName).AddDocuments([]meiliProgramDoc{doc}, strPtr("id")); err != nil {
		return fmt.Errorf("failed to index program %q: %w", p.ID, err)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}

func (s *programSearchService) Delete(id string) error {
	if s.client == nil {
		return nil
	}
	if _, err := s.client.Index(programIndexName).DeleteDocument(id); err != nil {
		return fmt.Errorf("failed to delete program %q from index: %w", id, err)
	}
	return nil
}

func (s *programSearchService) Search(query string, limit int) ([]dto.ProgramSearchHit, error) {
	if limit <= 0 {
		limit = 20
	}
	if s.client == nil {
		return []dto.ProgramSearchHit{}, nil
	}
	resp, err := s.client.Index(programIndexName).Search(strings.TrimSpace(query), &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("program search failed: %w", err)
	}

	hits := make([]dto.ProgramSearchHit, 0, len(resp.Hits))
	for _, raw := range resp.Hits {
		b, err := json.Marshal(raw)
		if err != nil {
			continue
		}
		var doc meiliProgramDoc
		if err := json.Unmarshal(b, &doc); err != nil {
			continue
		}
		hits = append(hits, dto.ProgramSearchHit{
			ID:        doc.ID,
			Name:      doc.Name,
			Branch:    doc.Branch,
			Specialty: doc.Specialty,
			Location:  doc.Location,
		})
	}
	return hits, nil
}
