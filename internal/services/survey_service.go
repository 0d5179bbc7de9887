package services

import (
	"context"

	"github.com/hashicorp/go-multierror"

	"github.com/surveyforge/surveyforge/internal/models"
)

// SurveyStore abstracts the gateway operations the authoring-side service
// needs. GetSurvey returns (nil, nil) for an unknown id; the service turns
// that into an explicit not-found failure. Storage errors pass through
// unmodified.
type SurveyStore interface {
	ListSurveys(ctx context.Context) ([]*models.Survey, error)
	GetSurvey(ctx context.Context, id string) (*models.Survey, error)
	PutSurvey(ctx context.Context, s *models.Survey) error
	DeleteSurvey(ctx context.Context, id string) error
	GenerateShareLink(ctx context.Context, surveyID string) (string, error)
}

// SurveyService hosts the authoring-side survey operations over the
// persistence gateway.
type SurveyService struct {
	store SurveyStore
}

func NewSurveyService(store SurveyStore) *SurveyService {
	return &SurveyService{store: store}
}

// List returns every stored survey.
func (s *SurveyService) List(ctx context.Context) ([]*models.Survey, error) {
	return s.store.ListSurveys(ctx)
}

// Get returns the survey or a not-found ServiceError; a missing survey is
// never silently substituted with a default.
func (s *SurveyService) Get(ctx context.Context, id string) (*models.Survey, error) {
	survey, err := s.store.GetSurvey(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, NewNotFoundError("survey not found")
	}
	return survey, nil
}

// SaveDraft stores the draft as-is, replacing any previous version.
func (s *SurveyService) SaveDraft(ctx context.Context, survey *models.Survey) error {
	return s.store.PutSurvey(ctx, survey)
}

// Publish validates the survey, flips it to published and stores it. A
// survey that fails validation is rejected with every recorded problem
// combined into one error.
func (s *SurveyService) Publish(ctx context.Context, survey *models.Survey) (*models.Survey, error) {
	report := Validate(survey)
	if !report.Valid() {
		var combined error
		for _, msg := range report.Flatten() {
			combined = multierror.Append(combined, NewInvalidError(msg))
		}
		return nil, combined
	}
	published := survey.Clone()
	published.Status = models.StatusPublished
	if err := s.store.PutSurvey(ctx, published); err != nil {
		return nil, err
	}
	return published, nil
}

// Delete removes the survey; unknown ids are not an error at the gateway.
func (s *SurveyService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteSurvey(ctx, id)
}

// ShareLink returns the survey's shareable link, generating it on first use.
// Calling it again returns the same link.
func (s *SurveyService) ShareLink(ctx context.Context, surveyID string) (string, error) {
	survey, err := s.store.GetSurvey(ctx, surveyID)
	if err != nil {
		return "", err
	}
	if survey == nil {
		return "", NewNotFoundError("survey not found")
	}
	return s.store.GenerateShareLink(ctx, surveyID)
}
