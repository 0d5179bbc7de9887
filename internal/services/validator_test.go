package services

import (
	"strings"
	"testing"

	"github.com/surveyforge/surveyforge/internal/models"
)

func validDraft(t *testing.T, b *BuilderService) (*models.Survey, string, string, string) {
	t.Helper()
	s := b.NewDraft("Skills Check", "A short assessment")
	sec, page := b.AddSection(s)
	q := b.AddQuestion(s, page, sec)
	prompt := "Tell us about yourself"
	b.UpdateQuestion(s, q, QuestionUpdate{Prompt: &prompt})
	return s, sec, page, q
}

func TestValidateAcceptsWellFormedSurvey(t *testing.T) {
	b := newTestBuilder()
	s, _, _, _ := validDraft(t, b)
	report := Validate(s)
	if !report.Valid() {
		t.Fatalf("expected valid, got %v", report.Flatten())
	}
}

func TestValidateTopLevelFields(t *testing.T) {
	b := newTestBuilder()
	s := b.NewDraft("  ", "")
	report := Validate(s)
	if report.Valid() {
		t.Fatalf("expected invalid report")
	}
	if _, ok := report.FieldErrors["title"]; !ok {
		t.Fatalf("missing title error: %+v", report.FieldErrors)
	}
	if _, ok := report.FieldErrors["description"]; !ok {
		t.Fatalf("missing description error: %+v", report.FieldErrors)
	}
	found := 0
	for _, msg := range report.Errors {
		if strings.Contains(msg, "question") || strings.Contains(msg, "section") {
			found++
		}
	}
	if found != 2 {
		t.Fatalf("expected question and section top-level errors, got %v", report.Errors)
	}
}

func TestValidateEmptySection(t *testing.T) {
	b := newTestBuilder()
	s, sec, page, _ := validDraft(t, b)
	// strip the section's only page without cascading
	pages := s.Pages[:0]
	for _, p := range s.Pages {
		if p.ID != page {
			pages = append(pages, p)
		}
	}
	s.Pages = pages

	report := Validate(s)
	secReport := report.Sections[sec]
	if secReport == nil || len(secReport.Errors) == 0 {
		t.Fatalf("expected section-level error, got %+v", report)
	}
}

func TestValidateEmptyPageDistinctFromEmptySection(t *testing.T) {
	b := newTestBuilder()
	s, sec, page, q := validDraft(t, b)
	// delete the question record but leave the stale reference on the page
	questions := s.Questions[:0]
	for _, question := range s.Questions {
		if question.ID != q {
			questions = append(questions, question)
		}
	}
	s.Questions = questions

	report := Validate(s)
	secReport := report.Sections[sec]
	if secReport == nil {
		t.Fatalf("expected section entry, got %+v", report)
	}
	if len(secReport.Errors) != 0 {
		t.Fatalf("section itself should not error, got %v", secReport.Errors)
	}
	pg := secReport.Pages[page]
	if pg == nil || len(pg.Errors) == 0 {
		t.Fatalf("expected page-level error, got %+v", secReport)
	}
}

func TestValidateQuestionRules(t *testing.T) {
	b := newTestBuilder()
	s, sec, page, q := validDraft(t, b)
	qtype := models.QuestionMultiChoice
	opts := []string{"A"}
	b.UpdateQuestion(s, q, QuestionUpdate{Type: &qtype, Options: &opts})

	report := Validate(s)
	msgs := report.Sections[sec].Pages[page].Questions[q]
	if len(msgs) != 1 || !strings.Contains(msgs[0], "at least two options") {
		t.Fatalf("expected option-count error, got %v", msgs)
	}

	opts = []string{"A", "B"}
	b.UpdateQuestion(s, q, QuestionUpdate{Options: &opts})
	if report := Validate(s); !report.Valid() {
		t.Fatalf("two options should pass, got %v", report.Flatten())
	}

	// blank options do not count
	opts = []string{"A", "   "}
	b.UpdateQuestion(s, q, QuestionUpdate{Options: &opts})
	if report := Validate(s); report.Valid() {
		t.Fatalf("whitespace option should not count")
	}

	empty := "   "
	b.UpdateQuestion(s, q, QuestionUpdate{Prompt: &empty})
	report = Validate(s)
	msgs = report.Sections[sec].Pages[page].Questions[q]
	foundPrompt := false
	for _, m := range msgs {
		if strings.Contains(m, "question text") {
			foundPrompt = true
		}
	}
	if !foundPrompt {
		t.Fatalf("expected prompt error, got %v", msgs)
	}
}
