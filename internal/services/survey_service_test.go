package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"

	"github.com/surveyforge/surveyforge/internal/models"
)

type stubSurveyStore struct {
	surveys map[string]*models.Survey
	links   map[string]string
}

func newStubSurveyStore() *stubSurveyStore {
	return &stubSurveyStore{surveys: map[string]*models.Survey{}, links: map[string]string{}}
}

func (s *stubSurveyStore) ListSurveys(ctx context.Context) ([]*models.Survey, error) {
	out := []*models.Survey{}
	for _, sv := range s.surveys {
		out = append(out, sv)
	}
	return out, nil
}

func (s *stubSurveyStore) GetSurvey(ctx context.Context, id string) (*models.Survey, error) {
	return s.surveys[id], nil
}

func (s *stubSurveyStore) PutSurvey(ctx context.Context, sv *models.Survey) error {
	s.surveys[sv.ID] = sv
	return nil
}

func (s *stubSurveyStore) DeleteSurvey(ctx context.Context, id string) error {
	delete(s.surveys, id)
	return nil
}

func (s *stubSurveyStore) GenerateShareLink(ctx context.Context, surveyID string) (string, error) {
	if link, ok := s.links[surveyID]; ok {
		return link, nil
	}
	link := "https://example.test/survey/" + surveyID + "/take"
	s.links[surveyID] = link
	return link, nil
}

func TestSurveyServiceGetNotFound(t *testing.T) {
	svc := NewSurveyService(newStubSurveyStore())
	_, err := svc.Get(context.Background(), "missing")
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestSurveyServicePublishGatesOnValidation(t *testing.T) {
	store := newStubSurveyStore()
	svc := NewSurveyService(store)
	b := newTestBuilder()

	draft := b.NewDraft("", "")
	_, err := svc.Publish(context.Background(), draft)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	if !strings.Contains(err.Error(), "title") {
		t.Fatalf("combined error should mention title, got %v", err)
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) || merr.Len() < 3 {
		t.Fatalf("expected combined multierror, got %v", err)
	}
	if len(store.surveys) != 0 {
		t.Fatalf("invalid survey must not be stored")
	}

	valid, _, _, _ := validDraft(t, b)
	published, err := svc.Publish(context.Background(), valid)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if published.Status != models.StatusPublished {
		t.Fatalf("status = %s, want published", published.Status)
	}
	if valid.Status != models.StatusDraft {
		t.Fatalf("publish must not mutate the caller's draft")
	}
	if store.surveys[valid.ID] == nil {
		t.Fatalf("published survey not stored")
	}
}

func TestSurveyServiceShareLink(t *testing.T) {
	store := newStubSurveyStore()
	svc := NewSurveyService(store)
	b := newTestBuilder()
	valid, _, _, _ := validDraft(t, b)
	if _, err := svc.Publish(context.Background(), valid); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	first, err := svc.ShareLink(context.Background(), valid.ID)
	if err != nil {
		t.Fatalf("ShareLink: %v", err)
	}
	second, err := svc.ShareLink(context.Background(), valid.ID)
	if err != nil {
		t.Fatalf("ShareLink: %v", err)
	}
	if first == "" || first != second {
		t.Fatalf("share link not idempotent: %q vs %q", first, second)
	}

	if _, err := svc.ShareLink(context.Background(), "missing"); err == nil {
		t.Fatalf("expected not found for unknown survey")
	}
}
