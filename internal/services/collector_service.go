package services

import (
	"context"
	"math"
	"time"

	"github.com/surveyforge/surveyforge/internal/models"
)

// Phase names the collector states.
type Phase string

const (
	PhaseAnswering Phase = "answering"
	PhaseReviewing Phase = "reviewing"
	PhaseSubmitted Phase = "submitted"
)

const requiredMsg = "This question is required"

// CollectorStore abstracts the persistence operation the collector needs on
// submission. PutResponse also bumps the owning survey's completion count.
type CollectorStore interface {
	PutResponse(ctx context.Context, r *models.SurveyResponse) error
}

// CollectorState tracks one respondent's run through a survey. It is created
// by Start and advanced page by page until submission.
type CollectorState struct {
	Survey     *models.Survey
	Pages      []models.Page
	PageIndex  int
	Phase      Phase
	Answers    map[string]models.AnswerValue
	StartedAt  time.Time
	ClientInfo string
}

// CollectorService drives respondents through a survey's pages in order,
// validating each page before it lets them advance.
type CollectorService struct {
	store CollectorStore
	now   func() time.Time
	idGen func() string
}

func NewCollectorService(store CollectorStore) *CollectorService {
	return &CollectorService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(12) },
	}
}

// Start initializes a run: pages are resolved in section order, every
// question gets its empty sentinel answer, and the clock starts for the
// completion time. A survey authored without pages gets a single implicit
// page holding all questions in their existing order.
func (c *CollectorService) Start(survey *models.Survey, clientInfo string) *CollectorState {
	pages := resolvePages(survey)
	answers := make(map[string]models.AnswerValue, len(survey.Questions))
	for _, q := range survey.Questions {
		answers[q.ID] = models.EmptyValue(q.Type)
	}
	return &CollectorState{
		Survey:     survey,
		Pages:      pages,
		PageIndex:  0,
		Phase:      PhaseAnswering,
		Answers:    answers,
		StartedAt:  c.now(),
		ClientInfo: clientInfo,
	}
}

func resolvePages(survey *models.Survey) []models.Page {
	var pages []models.Page
	for _, sec := range OrderedSections(survey) {
		pages = append(pages, PagesForSection(survey, sec.ID)...)
	}
	if len(pages) > 0 {
		return pages
	}
	// legacy surveys carry a flat question list with no page hierarchy
	ids := make([]string, 0, len(survey.Questions))
	for _, q := range survey.Questions {
		ids = append(ids, q.ID)
	}
	return []models.Page{{ID: "__all__", Order: 0, QuestionIDs: ids}}
}

// CurrentQuestions returns the resolved questions of the current page.
func (c *CollectorService) CurrentQuestions(state *CollectorState) []models.Question {
	if state.Phase != PhaseAnswering || state.PageIndex >= len(state.Pages) {
		return []models.Question{}
	}
	return c.pageQuestions(state, state.Pages[state.PageIndex])
}

func (c *CollectorService) pageQuestions(state *CollectorState, page models.Page) []models.Question {
	out := []models.Question{}
	for _, qid := range page.QuestionIDs {
		if q := state.Survey.QuestionByID(qid); q != nil {
			out = append(out, *q)
		}
	}
	return out
}

// SetAnswer records a value for one question. The value's kind must match the
// question's declared type; mismatches and unknown questions are rejected.
// Answers can still be changed while reviewing, but not after submission.
func (c *CollectorService) SetAnswer(state *CollectorState, questionID string, value models.AnswerValue) error {
	if state.Phase == PhaseSubmitted {
		return NewConflictError("response already submitted")
	}
	q := state.Survey.QuestionByID(questionID)
	if q == nil {
		return NewNotFoundError("unknown question " + questionID)
	}
	if value.Kind() != q.Type {
		return NewInvalidError("answer value does not match question type " + string(q.Type))
	}
	state.Answers[questionID] = value
	return nil
}

// Advance validates the current page. On success the state moves to the next
// page, or to reviewing after the last one, and nil is returned. On failure
// the state stays put and the per-question errors for that page come back.
func (c *CollectorService) Advance(state *CollectorState) map[string]string {
	if state.Phase != PhaseAnswering {
		return nil
	}
	errs := c.validatePage(state, state.Pages[state.PageIndex])
	if len(errs) > 0 {
		return errs
	}
	if state.PageIndex+1 < len(state.Pages) {
		state.PageIndex++
	} else {
		state.Phase = PhaseReviewing
	}
	return nil
}

// Back moves to the previous page unconditionally; nothing is validated on
// the way back. From reviewing it returns to the last page.
func (c *CollectorService) Back(state *CollectorState) {
	switch state.Phase {
	case PhaseReviewing:
		state.Phase = PhaseAnswering
		state.PageIndex = len(state.Pages) - 1
	case PhaseAnswering:
		if state.PageIndex > 0 {
			state.PageIndex--
		}
	}
}

// Progress reports completion as a whole percentage of pages reached.
func (c *CollectorService) Progress(state *CollectorState) int {
	if state.Phase != PhaseAnswering || len(state.Pages) == 0 {
		return 100
	}
	return int(math.Round(100 * float64(state.PageIndex+1) / float64(len(state.Pages))))
}

// Submit re-validates every page defensively, then persists the immutable
// response with one answer per survey question and the elapsed completion
// time in whole seconds. On validation failure the per-question errors come
// back and the state stays in reviewing.
func (c *CollectorService) Submit(ctx context.Context, state *CollectorState) (*models.SurveyResponse, map[string]string, error) {
	switch state.Phase {
	case PhaseSubmitted:
		return nil, nil, NewConflictError("response already submitted")
	case PhaseAnswering:
		return nil, nil, NewInvalidError("finish answering before submitting")
	}

	// a per-page check on advance does not guarantee every page was visited
	// on every path, so the whole answer set is checked again here
	all := map[string]string{}
	for _, page := range state.Pages {
		for qid, msg := range c.validatePage(state, page) {
			all[qid] = msg
		}
	}
	if len(all) > 0 {
		return nil, all, nil
	}

	submittedAt := c.now()
	answers := make([]models.Answer, 0, len(state.Survey.Questions))
	for _, q := range state.Survey.Questions {
		value, ok := state.Answers[q.ID]
		if !ok {
			value = models.EmptyValue(q.Type)
		}
		answers = append(answers, models.Answer{
			QuestionID: q.ID,
			Value:      value,
			SectionID:  q.SectionID,
		})
	}
	resp := &models.SurveyResponse{
		ID:             c.idGen(),
		SurveyID:       state.Survey.ID,
		Answers:        answers,
		SubmittedAt:    submittedAt,
		CompletionTime: int(submittedAt.Sub(state.StartedAt).Seconds()),
		ClientInfo:     state.ClientInfo,
	}
	if err := c.store.PutResponse(ctx, resp); err != nil {
		return nil, nil, err
	}
	state.Phase = PhaseSubmitted
	return resp, nil, nil
}

func (c *CollectorService) validatePage(state *CollectorState, page models.Page) map[string]string {
	errs := map[string]string{}
	for _, q := range c.pageQuestions(state, page) {
		if !q.Required {
			continue
		}
		value, ok := state.Answers[q.ID]
		if !ok || value.IsEmpty() {
			errs[q.ID] = requiredMsg
		}
	}
	return errs
}
