package models

// ValidationReport is the structured result of a full validation pass. It is
// nested by section, page and question id so an authoring UI can pinpoint the
// broken node. Absence of any error means the survey is valid.
type ValidationReport struct {
	FieldErrors map[string]string             `json:"field_errors,omitempty"`
	Errors      []string                      `json:"errors,omitempty"`
	Sections    map[string]*SectionValidation `json:"sections,omitempty"`
}

// SectionValidation carries section-level errors and the reports of the
// section's pages.
type SectionValidation struct {
	Errors []string                   `json:"errors,omitempty"`
	Pages  map[string]*PageValidation `json:"pages,omitempty"`
}

// PageValidation carries page-level errors and per-question errors for the
// questions the page resolves.
type PageValidation struct {
	Errors    []string            `json:"errors,omitempty"`
	Questions map[string][]string `json:"questions,omitempty"`
}

// Valid reports whether no error was recorded at any level.
func (r *ValidationReport) Valid() bool {
	if r == nil {
		return true
	}
	if len(r.FieldErrors) > 0 || len(r.Errors) > 0 {
		return false
	}
	for _, sec := range r.Sections {
		if len(sec.Errors) > 0 {
			return false
		}
		for _, pg := range sec.Pages {
			if len(pg.Errors) > 0 {
				return false
			}
			for _, qs := range pg.Questions {
				if len(qs) > 0 {
					return false
				}
			}
		}
	}
	return true
}

// Flatten collects every recorded error message in report order: field and
// top-level errors first, then section, page and question errors.
func (r *ValidationReport) Flatten() []string {
	if r == nil {
		return nil
	}
	var out []string
	for _, field := range []string{"title", "description"} {
		if msg, ok := r.FieldErrors[field]; ok {
			out = append(out, field+": "+msg)
		}
	}
	out = append(out, r.Errors...)
	for _, sec := range r.Sections {
		out = append(out, sec.Errors...)
		for _, pg := range sec.Pages {
			out = append(out, pg.Errors...)
			for _, qs := range pg.Questions {
				out = append(out, qs...)
			}
		}
	}
	return out
}

func (r *ValidationReport) section(id string) *SectionValidation {
	if r.Sections == nil {
		r.Sections = map[string]*SectionValidation{}
	}
	sec, ok := r.Sections[id]
	if !ok {
		sec = &SectionValidation{}
		r.Sections[id] = sec
	}
	return sec
}

func (r *ValidationReport) page(sectionID, pageID string) *PageValidation {
	sec := r.section(sectionID)
	if sec.Pages == nil {
		sec.Pages = map[string]*PageValidation{}
	}
	pg, ok := sec.Pages[pageID]
	if !ok {
		pg = &PageValidation{}
		sec.Pages[pageID] = pg
	}
	return pg
}

// AddFieldError records an error against a top-level survey field.
func (r *ValidationReport) AddFieldError(field, msg string) {
	if r.FieldErrors == nil {
		r.FieldErrors = map[string]string{}
	}
	r.FieldErrors[field] = msg
}

// AddError records a survey-level error.
func (r *ValidationReport) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddSectionError records an error against one section.
func (r *ValidationReport) AddSectionError(sectionID, msg string) {
	sec := r.section(sectionID)
	sec.Errors = append(sec.Errors, msg)
}

// AddPageError records an error against one page of a section.
func (r *ValidationReport) AddPageError(sectionID, pageID, msg string) {
	pg := r.page(sectionID, pageID)
	pg.Errors = append(pg.Errors, msg)
}

// AddQuestionError records an error against one question of a page.
func (r *ValidationReport) AddQuestionError(sectionID, pageID, questionID, msg string) {
	pg := r.page(sectionID, pageID)
	if pg.Questions == nil {
		pg.Questions = map[string][]string{}
	}
	pg.Questions[questionID] = append(pg.Questions[questionID], msg)
}
