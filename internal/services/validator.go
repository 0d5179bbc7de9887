package services

import (
	"fmt"
	"strings"

	"github.com/surveyforge/surveyforge/internal/models"
)

// Validate walks the whole survey hierarchy and returns a report nested by
// section, page and question id. It never mutates the survey; callers gate
// navigation and submission on Report.Valid().
func Validate(s *models.Survey) *models.ValidationReport {
	report := &models.ValidationReport{}

	if strings.TrimSpace(s.Title) == "" {
		report.AddFieldError("title", "title is required")
	}
	if strings.TrimSpace(s.Description) == "" {
		report.AddFieldError("description", "description is required")
	}
	if len(s.Questions) == 0 {
		report.AddError("add at least one question")
	}
	if len(s.Sections) == 0 {
		report.AddError("create at least one section")
	}

	for _, sec := range s.Sections {
		pages := PagesForSection(s, sec.ID)
		if len(pages) == 0 {
			report.AddSectionError(sec.ID, "section has no pages")
			continue
		}
		for _, page := range pages {
			questions := QuestionsForPage(s, page.ID)
			if len(questions) == 0 {
				// distinct from the empty-section case: the page exists but
				// every referenced question id is stale
				report.AddPageError(sec.ID, page.ID, "page has no questions")
				continue
			}
			for _, q := range questions {
				for _, msg := range validateQuestion(q) {
					report.AddQuestionError(sec.ID, page.ID, q.ID, msg)
				}
			}
		}
	}
	return report
}

func validateQuestion(q models.Question) []string {
	var errs []string
	if strings.TrimSpace(q.Prompt) == "" {
		errs = append(errs, "question text is required")
	}
	if q.Type.IsChoice() {
		filled := 0
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) != "" {
				filled++
			}
		}
		if filled < 2 {
			errs = append(errs, fmt.Sprintf("%s question needs at least two options", q.Type))
		}
	}
	return errs
}
