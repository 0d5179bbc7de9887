package models

import "time"

// QuestionType enumerates the supported answer shapes.
type QuestionType string

const (
	QuestionText         QuestionType = "text"
	QuestionSingleChoice QuestionType = "singleChoice"
	QuestionMultiChoice  QuestionType = "multiChoice"
	QuestionRating       QuestionType = "rating"
)

// IsChoice reports whether the type carries a fixed option list.
func (t QuestionType) IsChoice() bool {
	return t == QuestionSingleChoice || t == QuestionMultiChoice
}

// SurveyStatus tracks the authoring lifecycle of a survey.
type SurveyStatus string

const (
	StatusDraft     SurveyStatus = "draft"
	StatusPublished SurveyStatus = "published"
)

// Question is a single prompt owned by exactly one section. Options are only
// meaningful for choice types and must then hold at least two entries.
type Question struct {
	ID        string       `json:"id"`
	Type      QuestionType `json:"type"`
	Prompt    string       `json:"prompt"`
	Options   []string     `json:"options,omitempty"`
	Required  bool         `json:"required"`
	SectionID string       `json:"section_id"`
}

// Section groups related questions; Order defines the display sequence among
// sibling sections.
type Section struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

// Page is the unit of pagination shown to a respondent in one screen. It is
// owned by exactly one section and lists the questions it displays together.
type Page struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Order       int      `json:"order"`
	SectionID   string   `json:"section_id"`
	QuestionIDs []string `json:"question_ids"`
}

// Survey is the full authored assessment. Questions, sections and pages are
// flat collections with unique ids; hierarchy is derived from the ownership
// ids on each record.
type Survey struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Questions       []Question   `json:"questions"`
	Sections        []Section    `json:"sections"`
	Pages           []Page       `json:"pages"`
	CreatedAt       time.Time    `json:"created_at"`
	Status          SurveyStatus `json:"status"`
	ShareableLink   string       `json:"shareable_link,omitempty"`
	CompletionCount int          `json:"completion_count"`
}

// QuestionByID returns the question with the given id, or nil.
func (s *Survey) QuestionByID(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// SectionByID returns the section with the given id, or nil.
func (s *Survey) SectionByID(id string) *Section {
	for i := range s.Sections {
		if s.Sections[i].ID == id {
			return &s.Sections[i]
		}
	}
	return nil
}

// PageByID returns the page with the given id, or nil.
func (s *Survey) PageByID(id string) *Page {
	for i := range s.Pages {
		if s.Pages[i].ID == id {
			return &s.Pages[i]
		}
	}
	return nil
}

// Clone returns a deep copy so stores can hand out values without aliasing
// the caller's draft.
func (s *Survey) Clone() *Survey {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Questions = make([]Question, len(s.Questions))
	for i, q := range s.Questions {
		cp.Questions[i] = q
		if q.Options != nil {
			cp.Questions[i].Options = append([]string(nil), q.Options...)
		}
	}
	cp.Sections = append([]Section(nil), s.Sections...)
	cp.Pages = make([]Page, len(s.Pages))
	for i, p := range s.Pages {
		cp.Pages[i] = p
		if p.QuestionIDs != nil {
			cp.Pages[i].QuestionIDs = append([]string(nil), p.QuestionIDs...)
		}
	}
	return &cp
}

// Answer holds one respondent value for one question. SectionID is
// denormalized for reporting convenience.
type Answer struct {
	QuestionID string      `json:"question_id"`
	Value      AnswerValue `json:"value"`
	SectionID  string      `json:"section_id,omitempty"`
}

// SurveyResponse is one respondent's full answer set, created once on
// submission and never mutated. CompletionTime is whole seconds.
type SurveyResponse struct {
	ID             string    `json:"id"`
	SurveyID       string    `json:"survey_id"`
	Answers        []Answer  `json:"answers"`
	SubmittedAt    time.Time `json:"submitted_at"`
	CompletionTime int       `json:"completion_time,omitempty"`
	ClientInfo     string    `json:"client_info,omitempty"`
}

// Clone returns a deep copy of the response.
func (r *SurveyResponse) Clone() *SurveyResponse {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Answers = make([]Answer, len(r.Answers))
	for i, a := range r.Answers {
		cp.Answers[i] = a
		cp.Answers[i].Value = a.Value.clone()
	}
	return &cp
}

// QuestionStats aggregates all answers recorded for one question.
type QuestionStats struct {
	ResponseCount int            `json:"response_count"`
	TextResponses []string       `json:"text_responses,omitempty"`
	OptionCounts  map[string]int `json:"option_counts,omitempty"`
	AverageRating float64        `json:"average_rating,omitempty"`
	RatingCounts  []int          `json:"rating_counts,omitempty"`
}

// SurveyStatistics is the derived report over a survey's full response set.
// It is recomputed per request and never persisted.
type SurveyStatistics struct {
	TotalResponses        int                       `json:"total_responses"`
	AverageCompletionTime float64                   `json:"average_completion_time"`
	CompletionRate        float64                   `json:"completion_rate"`
	QuestionStats         map[string]*QuestionStats `json:"question_stats"`
}
