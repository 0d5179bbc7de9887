// Package store defines the persistence gateway the survey core consumes.
// Implementations only need these seven operations and may back them with
// any local key-value technology.
package store

import (
	"context"
	"errors"

	"github.com/surveyforge/surveyforge/internal/models"
)

// ErrUnknownSurvey is returned by PutResponse when the response references a
// survey the store does not hold.
var ErrUnknownSurvey = errors.New("unknown survey")

// Store is the gateway contract. GetSurvey returns (nil, nil) for an unknown
// id; callers decide whether that is an error. PutSurvey is insert-or-replace
// by id. PutResponse is append-only and increments the owning survey's
// completion count in the same call. GenerateShareLink is idempotent: a
// survey that already has a link gets the same one back.
type Store interface {
	ListSurveys(ctx context.Context) ([]*models.Survey, error)
	GetSurvey(ctx context.Context, id string) (*models.Survey, error)
	PutSurvey(ctx context.Context, s *models.Survey) error
	DeleteSurvey(ctx context.Context, id string) error

	ListResponses(ctx context.Context, surveyID string) ([]*models.SurveyResponse, error)
	PutResponse(ctx context.Context, r *models.SurveyResponse) error

	GenerateShareLink(ctx context.Context, surveyID string) (string, error)
}

// ShareLink builds the canonical respondent link for a survey.
func ShareLink(baseURL, surveyID string) string {
	return baseURL + "/survey/" + surveyID + "/take"
}
