package store

import (
	"context"
	"time"

	"github.com/surveyforge/surveyforge/internal/models"
)

// LatencyStore decorates another Store with an artificial delay before every
// operation, simulating the feel of remote persistence over a purely local
// backend. The delay respects context cancellation.
type LatencyStore struct {
	next  Store
	delay time.Duration
}

var _ Store = (*LatencyStore)(nil)

func NewLatencyStore(next Store, delay time.Duration) *LatencyStore {
	return &LatencyStore{next: next, delay: delay}
}

func (s *LatencyStore) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *LatencyStore) ListSurveys(ctx context.Context) ([]*models.Survey, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.next.ListSurveys(ctx)
}

func (s *LatencyStore) GetSurvey(ctx context.Context, id string) (*models.Survey, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.next.GetSurvey(ctx, id)
}

func (s *LatencyStore) PutSurvey(ctx context.Context, sv *models.Survey) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.next.PutSurvey(ctx, sv)
}

func (s *LatencyStore) DeleteSurvey(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.next.DeleteSurvey(ctx, id)
}

func (s *LatencyStore) ListResponses(ctx context.Context, surveyID string) ([]*models.SurveyResponse, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.next.ListResponses(ctx, surveyID)
}

func (s *LatencyStore) PutResponse(ctx context.Context, r *models.SurveyResponse) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.next.PutResponse(ctx, r)
}

func (s *LatencyStore) GenerateShareLink(ctx context.Context, surveyID string) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	return s.next.GenerateShareLink(ctx, surveyID)
}
