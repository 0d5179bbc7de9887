// Package seed populates an empty store with demo surveys so a fresh
// installation has something to explore.
package seed

import (
	"context"

	"github.com/surveyforge/surveyforge/internal/log"
	"github.com/surveyforge/surveyforge/internal/models"
	"github.com/surveyforge/surveyforge/internal/services"
	"github.com/surveyforge/surveyforge/internal/store"
)

type demoQuestion struct {
	qtype    models.QuestionType
	prompt   string
	options  []string
	required bool
}

type demoSurvey struct {
	title       string
	description string
	section     string
	sectionDesc string
	page        string
	questions   []demoQuestion
}

var demoSurveys = []demoSurvey{
	{
		title:       "QA Automation Assessment",
		description: "Evaluate technical skills and automation knowledge",
		section:     "Automation Experience",
		sectionDesc: "Questions about your testing automation background",
		page:        "Automation Skills",
		questions: []demoQuestion{
			{qtype: models.QuestionText, prompt: "Describe your experience with Selenium or similar tools", required: true},
			{qtype: models.QuestionMultiChoice, prompt: "Which of these testing frameworks have you used?", options: []string{"Jest", "Mocha", "Cypress", "TestNG"}, required: true},
			{qtype: models.QuestionRating, prompt: "Rate your experience with API testing", required: true},
		},
	},
	{
		title:       "Manual Testing Knowledge",
		description: "Assessment of manual testing techniques and methodologies",
		section:     "Testing Fundamentals",
		sectionDesc: "Core concepts of software testing",
		page:        "Testing Concepts",
		questions: []demoQuestion{
			{qtype: models.QuestionText, prompt: "Explain the difference between black box and white box testing", required: true},
			{qtype: models.QuestionSingleChoice, prompt: "Which API testing tool do you have the most experience with?", options: []string{"Postman", "Insomnia", "SoapUI", "JMeter"}, required: true},
			{qtype: models.QuestionMultiChoice, prompt: "Which test case design techniques have you used?", options: []string{"Boundary Value Analysis", "Equivalence Partitioning", "Decision Tables", "State Transition Testing"}, required: true},
		},
	},
}

// Run inserts the demo surveys when the store holds none. Existing data is
// never touched.
func Run(ctx context.Context, st store.Store) error {
	existing, err := st.ListSurveys(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Debugf("seed: %d surveys present, skipping", len(existing))
		return nil
	}

	builder := services.NewBuilderService()
	for _, demo := range demoSurveys {
		survey := buildDemo(builder, demo)
		published, err := services.NewSurveyService(st).Publish(ctx, survey)
		if err != nil {
			return err
		}
		if _, err := st.GenerateShareLink(ctx, published.ID); err != nil {
			return err
		}
		log.Infof("seed: created demo survey %q (%s)", published.Title, published.ID)
	}
	return nil
}

func buildDemo(builder *services.BuilderService, demo demoSurvey) *models.Survey {
	survey := builder.NewDraft(demo.title, demo.description)
	sectionID, pageID := builder.AddSection(survey)
	builder.UpdateSection(survey, sectionID, services.SectionUpdate{
		Title:       &demo.section,
		Description: &demo.sectionDesc,
	})
	builder.UpdatePage(survey, pageID, services.PageUpdate{Title: &demo.page})
	for _, q := range demo.questions {
		qid := builder.AddQuestion(survey, pageID, sectionID)
		builder.UpdateQuestion(survey, qid, services.QuestionUpdate{
			Type:     &q.qtype,
			Prompt:   &q.prompt,
			Options:  &q.options,
			Required: &q.required,
		})
	}
	return survey
}
