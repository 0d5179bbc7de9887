package services

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/surveyforge/surveyforge/internal/models"
)

func TestExportResponsesCSV(t *testing.T) {
	survey := statsSurvey()
	submitted := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	responses := []*models.SurveyResponse{
		{
			ID: "r1", SurveyID: "S1", SubmittedAt: submitted,
			Answers: []models.Answer{
				{QuestionID: "q_text", SectionID: "s1", Value: models.TextValue("hello, world")},
				{QuestionID: "q_multi", SectionID: "s1", Value: models.SelectionValue([]string{"Jest", "Cypress"})},
				{QuestionID: "ghost", Value: models.TextValue("skipped")},
			},
		},
		{ID: "rx", SurveyID: "OTHER", SubmittedAt: submitted},
	}

	data, err := ExportResponsesCSV(survey, responses)
	if err != nil {
		t.Fatalf("ExportResponsesCSV: %v", err)
	}
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 answers", len(rows))
	}
	if rows[1][4] != "hello, world" {
		t.Fatalf("text cell = %q", rows[1][4])
	}
	if rows[2][4] != "Jest | Cypress" {
		t.Fatalf("multi cell = %q", rows[2][4])
	}
	if rows[2][5] != "2026-08-20T12:00:00Z" {
		t.Fatalf("submitted_at cell = %q", rows[2][5])
	}
}

func TestExportResponsesWideCSV(t *testing.T) {
	survey := statsSurvey()
	responses := []*models.SurveyResponse{
		{
			ID: "r1", SurveyID: "S1", CompletionTime: 42,
			SubmittedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
			Answers: []models.Answer{
				{QuestionID: "q_rating", Value: mustRating(t, 4)},
			},
		},
	}
	data, err := ExportResponsesWideCSV(survey, responses)
	if err != nil {
		t.Fatalf("ExportResponsesWideCSV: %v", err)
	}
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(rows))
	}
	if len(rows[0]) != 3+len(survey.Questions) {
		t.Fatalf("header width = %d", len(rows[0]))
	}
	if rows[1][2] != "42" {
		t.Fatalf("completion_time cell = %q", rows[1][2])
	}
	// unanswered questions render as empty cells, the rating as its number
	last := rows[1][len(rows[1])-1]
	if last != "4" {
		t.Fatalf("rating cell = %q, want 4", last)
	}
	if rows[1][3] != "" {
		t.Fatalf("unanswered text cell = %q, want empty", rows[1][3])
	}
}
