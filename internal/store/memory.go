package store

import (
	"context"
	"sort"
	"sync"

	"github.com/surveyforge/surveyforge/internal/models"
)

// MemoryStore keeps surveys and responses in process memory. Values are
// deep-copied on the way in and out so callers can keep mutating their
// drafts without reaching into stored state.
type MemoryStore struct {
	mu        sync.RWMutex
	surveys   map[string]*models.Survey
	responses []*models.SurveyResponse
	baseURL   string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		surveys: map[string]*models.Survey{},
		baseURL: baseURL,
	}
}

func (s *MemoryStore) ListSurveys(ctx context.Context) ([]*models.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Survey, 0, len(s.surveys))
	for _, sv := range s.surveys {
		out = append(out, sv.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) GetSurvey(ctx context.Context, id string) (*models.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.surveys[id].Clone(), nil
}

func (s *MemoryStore) PutSurvey(ctx context.Context, sv *models.Survey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surveys[sv.ID] = sv.Clone()
	return nil
}

func (s *MemoryStore) DeleteSurvey(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.surveys, id)
	return nil
}

func (s *MemoryStore) ListResponses(ctx context.Context, surveyID string) ([]*models.SurveyResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.SurveyResponse{}
	for _, r := range s.responses {
		if r.SurveyID == surveyID {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (s *MemoryStore) PutResponse(ctx context.Context, r *models.SurveyResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sv, ok := s.surveys[r.SurveyID]
	if !ok {
		return ErrUnknownSurvey
	}
	s.responses = append(s.responses, r.Clone())
	sv.CompletionCount++
	return nil
}

func (s *MemoryStore) GenerateShareLink(ctx context.Context, surveyID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sv, ok := s.surveys[surveyID]
	if !ok {
		return "", ErrUnknownSurvey
	}
	if sv.ShareableLink == "" {
		sv.ShareableLink = ShareLink(s.baseURL, surveyID)
	}
	return sv.ShareableLink, nil
}

// ClearAll drops every survey and response; test helper mirroring the
// original store's reset operation.
func (s *MemoryStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surveys = map[string]*models.Survey{}
	s.responses = nil
}
