package services

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/surveyforge/surveyforge/internal/models"
)

// ExportResponsesCSV renders every answer of the given responses as one
// long-format row: response id, question, section, type, rendered value and
// submission time. Responses for other surveys are skipped.
func ExportResponsesCSV(survey *models.Survey, responses []*models.SurveyResponse) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"response_id", "question_id", "section_id", "type", "value", "submitted_at"})
	for _, r := range responses {
		if r.SurveyID != survey.ID {
			continue
		}
		for _, a := range r.Answers {
			q := survey.QuestionByID(a.QuestionID)
			if q == nil {
				continue
			}
			rec := []string{
				r.ID,
				a.QuestionID,
				a.SectionID,
				string(q.Type),
				renderValue(a.Value),
				r.SubmittedAt.UTC().Format(time.RFC3339),
			}
			if err := w.Write(rec); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportResponsesWideCSV renders one row per response with one column per
// survey question, in the survey's question order.
func ExportResponsesWideCSV(survey *models.Survey, responses []*models.SurveyResponse) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"response_id", "submitted_at", "completion_time"}
	for _, q := range survey.Questions {
		header = append(header, q.ID)
	}
	_ = w.Write(header)
	for _, r := range responses {
		if r.SurveyID != survey.ID {
			continue
		}
		row := []string{
			r.ID,
			r.SubmittedAt.UTC().Format(time.RFC3339),
			strconv.Itoa(r.CompletionTime),
		}
		for _, q := range survey.Questions {
			cell := ""
			if a := findAnswer(r, q.ID); a != nil {
				cell = renderValue(a.Value)
			}
			row = append(row, cell)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func renderValue(v models.AnswerValue) string {
	switch v.Kind() {
	case models.QuestionMultiChoice:
		// pipe-joined so a selection stays one cell; csv quotes as needed
		out := make([]byte, 0, 32)
		for i, opt := range v.Selected() {
			if i > 0 {
				out = append(out, ' ', '|', ' ')
			}
			out = append(out, []byte(opt)...)
		}
		return string(out)
	case models.QuestionRating:
		return strconv.Itoa(v.Rating())
	default:
		return v.Text()
	}
}
