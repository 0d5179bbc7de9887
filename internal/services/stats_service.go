package services

import (
	"context"
	"strings"

	"github.com/surveyforge/surveyforge/internal/models"
)

// StatsStore abstracts the reads the statistics summary needs.
type StatsStore interface {
	GetSurvey(ctx context.Context, id string) (*models.Survey, error)
	ListResponses(ctx context.Context, surveyID string) ([]*models.SurveyResponse, error)
}

// StatsService computes aggregate statistics for a survey's response set.
type StatsService struct {
	store StatsStore
}

func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store}
}

// Summary loads the survey and its responses and reduces them to a
// statistics report.
func (s *StatsService) Summary(ctx context.Context, surveyID string) (*models.SurveyStatistics, error) {
	survey, err := s.store.GetSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, NewNotFoundError("survey not found")
	}
	responses, err := s.store.ListResponses(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return ComputeStatistics(survey, responses), nil
}

// ComputeStatistics reduces the full response set of a survey into per-survey
// and per-question aggregates. It is a pure function over its inputs;
// responses for other surveys are ignored.
func ComputeStatistics(survey *models.Survey, responses []*models.SurveyResponse) *models.SurveyStatistics {
	matching := make([]*models.SurveyResponse, 0, len(responses))
	for _, r := range responses {
		if r.SurveyID == survey.ID {
			matching = append(matching, r)
		}
	}

	stats := &models.SurveyStatistics{
		TotalResponses: len(matching),
		// no started-but-abandoned concept exists in the data model, so every
		// stored response counts as complete
		CompletionRate: 100,
		QuestionStats:  map[string]*models.QuestionStats{},
	}

	timed, totalSeconds := 0, 0
	for _, r := range matching {
		if r.CompletionTime > 0 {
			timed++
			totalSeconds += r.CompletionTime
		}
	}
	if timed > 0 {
		stats.AverageCompletionTime = float64(totalSeconds) / float64(timed)
	}

	for _, q := range survey.Questions {
		stats.QuestionStats[q.ID] = questionStats(q, matching)
	}
	return stats
}

func questionStats(q models.Question, responses []*models.SurveyResponse) *models.QuestionStats {
	qs := &models.QuestionStats{}
	switch q.Type {
	case models.QuestionSingleChoice, models.QuestionMultiChoice:
		qs.OptionCounts = map[string]int{}
	case models.QuestionRating:
		qs.RatingCounts = make([]int, models.RatingMax)
	}

	ratingSum, rated := 0, 0
	for _, r := range responses {
		answer := findAnswer(r, q.ID)
		if answer == nil {
			continue
		}
		qs.ResponseCount++
		value := answer.Value
		switch q.Type {
		case models.QuestionText:
			if text := strings.TrimSpace(value.Text()); text != "" {
				qs.TextResponses = append(qs.TextResponses, text)
			}
		case models.QuestionSingleChoice:
			if opt := value.Text(); opt != "" {
				qs.OptionCounts[opt]++
			}
		case models.QuestionMultiChoice:
			// each selected option counts independently
			for _, opt := range value.Selected() {
				qs.OptionCounts[opt]++
			}
		case models.QuestionRating:
			if n := value.Rating(); n > 0 {
				ratingSum += n
				rated++
				if n <= models.RatingMax {
					qs.RatingCounts[n-1]++
				}
			}
		}
	}
	if rated > 0 {
		qs.AverageRating = float64(ratingSum) / float64(rated)
	}
	return qs
}

func findAnswer(r *models.SurveyResponse, questionID string) *models.Answer {
	for i := range r.Answers {
		if r.Answers[i].QuestionID == questionID {
			return &r.Answers[i]
		}
	}
	return nil
}
