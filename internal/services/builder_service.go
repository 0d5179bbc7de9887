package services

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/surveyforge/surveyforge/internal/models"
)

// BuilderService maintains the section/page/question graph of a survey draft
// as a consistent tree under incremental edits. All operations are pure
// in-memory transformations of the draft; unknown ids are forgiving no-ops so
// a stale authoring UI can never wedge the session.
type BuilderService struct {
	idGen func() string
	now   func() time.Time
}

func NewBuilderService() *BuilderService {
	return &BuilderService{
		idGen: func() string { return shortID(8) },
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

// NewDraft creates an empty draft survey.
func (b *BuilderService) NewDraft(title, description string) *models.Survey {
	return &models.Survey{
		ID:          b.idGen(),
		Title:       title,
		Description: description,
		Questions:   []models.Question{},
		Sections:    []models.Section{},
		Pages:       []models.Page{},
		CreatedAt:   b.now(),
		Status:      models.StatusDraft,
	}
}

// AddSection appends a section ordered after its siblings and creates its
// first page in the same step, so a zero-page section never exists even
// transiently. Both new ids are returned.
func (b *BuilderService) AddSection(s *models.Survey) (sectionID, pageID string) {
	sectionID = b.idGen()
	s.Sections = append(s.Sections, models.Section{
		ID:    sectionID,
		Order: len(s.Sections),
	})
	pageID = b.addPage(s, sectionID)
	return sectionID, pageID
}

// RemoveSection removes the section and cascades to every page and question
// owned by it. Questions are matched by their own section id, not just page
// membership, so strays left by unguarded edits are swept too. Unknown ids
// are a no-op.
func (b *BuilderService) RemoveSection(s *models.Survey, sectionID string) {
	if s.SectionByID(sectionID) == nil {
		return
	}
	sections := s.Sections[:0]
	for _, sec := range s.Sections {
		if sec.ID != sectionID {
			sections = append(sections, sec)
		}
	}
	s.Sections = sections

	pages := s.Pages[:0]
	for _, p := range s.Pages {
		if p.SectionID != sectionID {
			pages = append(pages, p)
		}
	}
	s.Pages = pages

	questions := s.Questions[:0]
	for _, q := range s.Questions {
		if q.SectionID != sectionID {
			questions = append(questions, q)
		}
	}
	s.Questions = questions
}

// AddPage appends an empty page to the given section, ordered after the
// section's existing pages, and returns its id. An unknown section id is a
// no-op and returns "".
func (b *BuilderService) AddPage(s *models.Survey, sectionID string) string {
	if s.SectionByID(sectionID) == nil {
		return ""
	}
	return b.addPage(s, sectionID)
}

func (b *BuilderService) addPage(s *models.Survey, sectionID string) string {
	id := b.idGen()
	order := 0
	for _, p := range s.Pages {
		if p.SectionID == sectionID {
			order++
		}
	}
	s.Pages = append(s.Pages, models.Page{
		ID:          id,
		Order:       order,
		SectionID:   sectionID,
		QuestionIDs: []string{},
	})
	return id
}

// RemovePage removes the page and cascades to the questions it references.
// Other pages are untouched. Unknown ids are a no-op.
func (b *BuilderService) RemovePage(s *models.Survey, pageID string) {
	page := s.PageByID(pageID)
	if page == nil {
		return
	}
	owned := map[string]bool{}
	for _, qid := range page.QuestionIDs {
		owned[qid] = true
	}
	pages := s.Pages[:0]
	for _, p := range s.Pages {
		if p.ID != pageID {
			pages = append(pages, p)
		}
	}
	s.Pages = pages

	questions := s.Questions[:0]
	for _, q := range s.Questions {
		if !owned[q.ID] {
			questions = append(questions, q)
		}
	}
	s.Questions = questions
}

// AddQuestion creates a blank required text question owned by sectionID and
// appends it to the page's question list, returning the new id. Both ids are
// trusted; the caller is responsible for passing a page that belongs to the
// section. An unknown page id is a no-op and returns "".
func (b *BuilderService) AddQuestion(s *models.Survey, pageID, sectionID string) string {
	page := s.PageByID(pageID)
	if page == nil {
		return ""
	}
	id := b.idGen()
	s.Questions = append(s.Questions, models.Question{
		ID:        id,
		Type:      models.QuestionText,
		Required:  true,
		SectionID: sectionID,
	})
	page.QuestionIDs = append(page.QuestionIDs, id)
	return id
}

// RemoveQuestion deletes the question and strips its id from every page's
// question list. In correct usage it appears on exactly one page; scanning
// all pages keeps the tree consistent regardless.
func (b *BuilderService) RemoveQuestion(s *models.Survey, questionID string) {
	if s.QuestionByID(questionID) == nil {
		return
	}
	questions := s.Questions[:0]
	for _, q := range s.Questions {
		if q.ID != questionID {
			questions = append(questions, q)
		}
	}
	s.Questions = questions

	for i := range s.Pages {
		ids := s.Pages[i].QuestionIDs[:0]
		for _, qid := range s.Pages[i].QuestionIDs {
			if qid != questionID {
				ids = append(ids, qid)
			}
		}
		s.Pages[i].QuestionIDs = ids
	}
}

// SectionUpdate carries the fields UpdateSection merges; nil means unchanged.
type SectionUpdate struct {
	Title       *string
	Description *string
	Order       *int
}

// UpdateSection merges the given fields into the section. Ownership never
// changes through this path.
func (b *BuilderService) UpdateSection(s *models.Survey, id string, upd SectionUpdate) {
	sec := s.SectionByID(id)
	if sec == nil {
		return
	}
	if upd.Title != nil {
		sec.Title = *upd.Title
	}
	if upd.Description != nil {
		sec.Description = *upd.Description
	}
	if upd.Order != nil {
		sec.Order = *upd.Order
	}
}

// PageUpdate carries the fields UpdatePage merges; nil means unchanged.
type PageUpdate struct {
	Title       *string
	Order       *int
	QuestionIDs *[]string
}

// UpdatePage merges the given fields into the page; the owning section id
// cannot be changed.
func (b *BuilderService) UpdatePage(s *models.Survey, id string, upd PageUpdate) {
	page := s.PageByID(id)
	if page == nil {
		return
	}
	if upd.Title != nil {
		page.Title = *upd.Title
	}
	if upd.Order != nil {
		page.Order = *upd.Order
	}
	if upd.QuestionIDs != nil {
		page.QuestionIDs = append([]string(nil), (*upd.QuestionIDs)...)
	}
}

// QuestionUpdate carries the fields UpdateQuestion merges; nil means
// unchanged.
type QuestionUpdate struct {
	Type     *models.QuestionType
	Prompt   *string
	Options  *[]string
	Required *bool
}

// UpdateQuestion merges the given fields into the question; the owning
// section id cannot be changed.
func (b *BuilderService) UpdateQuestion(s *models.Survey, id string, upd QuestionUpdate) {
	q := s.QuestionByID(id)
	if q == nil {
		return
	}
	if upd.Type != nil {
		q.Type = *upd.Type
	}
	if upd.Prompt != nil {
		q.Prompt = *upd.Prompt
	}
	if upd.Options != nil {
		q.Options = append([]string(nil), (*upd.Options)...)
	}
	if upd.Required != nil {
		q.Required = *upd.Required
	}
}

// PagesForSection returns the section's pages sorted ascending by order.
func PagesForSection(s *models.Survey, sectionID string) []models.Page {
	out := []models.Page{}
	for _, p := range s.Pages {
		if p.SectionID == sectionID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// QuestionsForPage resolves the page's question ids to records in list order.
// Ids that no longer resolve are skipped rather than reported; stale entries
// can linger after deletions through unguarded paths.
func QuestionsForPage(s *models.Survey, pageID string) []models.Question {
	page := s.PageByID(pageID)
	if page == nil {
		return []models.Question{}
	}
	out := []models.Question{}
	for _, qid := range page.QuestionIDs {
		if q := s.QuestionByID(qid); q != nil {
			out = append(out, *q)
		}
	}
	return out
}

// OrderedSections returns the survey's sections sorted ascending by order.
func OrderedSections(s *models.Survey) []models.Section {
	out := append([]models.Section(nil), s.Sections...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
