package integration_test

import (
	"context"
	"testing"

	"github.com/surveyforge/surveyforge/internal/models"
	"github.com/surveyforge/surveyforge/internal/services"
	"github.com/surveyforge/surveyforge/internal/store"
)

// Drives the full lifecycle through the real services and the in-memory
// gateway: author a two-section survey, publish and share it, run one
// respondent through collection, then read the aggregated statistics back.
func TestAuthorPublishCollectAggregate(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore("http://localhost:3000")
	builder := services.NewBuilderService()
	surveys := services.NewSurveyService(st)
	collector := services.NewCollectorService(st)
	stats := services.NewStatsService(st)

	// Author: two sections, one page each, one required text question each.
	draft := builder.NewDraft("Team Health Check", "How the team is doing this quarter")
	sec1, page1 := builder.AddSection(draft)
	q1 := builder.AddQuestion(draft, page1, sec1)
	prompt1 := "What went well?"
	builder.UpdateQuestion(draft, q1, services.QuestionUpdate{Prompt: &prompt1})

	sec2, page2 := builder.AddSection(draft)
	q2 := builder.AddQuestion(draft, page2, sec2)
	prompt2 := "What should we change?"
	builder.UpdateQuestion(draft, q2, services.QuestionUpdate{Prompt: &prompt2})

	if err := surveys.SaveDraft(ctx, draft); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	published, err := surveys.Publish(ctx, draft)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if published.Status != models.StatusPublished {
		t.Fatalf("status = %q, want published", published.Status)
	}
	if fetched, _ := surveys.Get(ctx, published.ID); fetched.Status != models.StatusPublished {
		t.Fatalf("published survey not stored")
	}

	link, err := surveys.ShareLink(ctx, published.ID)
	if err != nil {
		t.Fatalf("ShareLink: %v", err)
	}
	if want := "http://localhost:3000/survey/" + published.ID + "/take"; link != want {
		t.Fatalf("link = %q, want %q", link, want)
	}
	if again, _ := surveys.ShareLink(ctx, published.ID); again != link {
		t.Fatalf("share link changed between calls")
	}

	// Respond: advancing past a blank required question must be refused.
	state := collector.Start(published, "integration test")
	if len(state.Pages) != 2 {
		t.Fatalf("resolved %d pages, want 2", len(state.Pages))
	}
	if errs := collector.Advance(state); errs[q1] != "This question is required" {
		t.Fatalf("blank advance: got %v", errs)
	}
	if state.Phase != services.PhaseAnswering || state.PageIndex != 0 {
		t.Fatalf("failed advance moved the state: %q page %d", state.Phase, state.PageIndex)
	}

	if err := collector.SetAnswer(state, q1, models.TextValue("Shipping on time")); err != nil {
		t.Fatalf("SetAnswer q1: %v", err)
	}
	if errs := collector.Advance(state); errs != nil {
		t.Fatalf("advance after answering: %v", errs)
	}
	if state.PageIndex != 1 {
		t.Fatalf("PageIndex = %d, want 1", state.PageIndex)
	}

	if err := collector.SetAnswer(state, q2, models.TextValue("Fewer meetings")); err != nil {
		t.Fatalf("SetAnswer q2: %v", err)
	}
	if errs := collector.Advance(state); errs != nil {
		t.Fatalf("advance to review: %v", errs)
	}
	if state.Phase != services.PhaseReviewing {
		t.Fatalf("phase = %q, want reviewing", state.Phase)
	}

	resp, fieldErrs, err := collector.Submit(ctx, state)
	if err != nil || fieldErrs != nil {
		t.Fatalf("Submit: %v, %v", err, fieldErrs)
	}
	if state.Phase != services.PhaseSubmitted {
		t.Fatalf("phase after submit = %q", state.Phase)
	}
	if len(resp.Answers) != 2 {
		t.Fatalf("submitted %d answers, want 2", len(resp.Answers))
	}

	// Submitting increments the completion count by exactly one.
	after, _ := surveys.Get(ctx, published.ID)
	if after.CompletionCount != 1 {
		t.Fatalf("CompletionCount = %d, want 1", after.CompletionCount)
	}

	// Aggregate: both text answers show up under their questions.
	summary, err := stats.Summary(ctx, published.ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalResponses != 1 {
		t.Fatalf("TotalResponses = %d, want 1", summary.TotalResponses)
	}
	qs1 := summary.QuestionStats[q1]
	if qs1 == nil || len(qs1.TextResponses) != 1 || qs1.TextResponses[0] != "Shipping on time" {
		t.Fatalf("stats for %s: %+v", q1, qs1)
	}
	qs2 := summary.QuestionStats[q2]
	if qs2 == nil || len(qs2.TextResponses) != 1 || qs2.TextResponses[0] != "Fewer meetings" {
		t.Fatalf("stats for %s: %+v", q2, qs2)
	}

	// A second submission of the same run is refused and counts nothing.
	if _, _, err := collector.Submit(ctx, state); err == nil {
		t.Fatalf("double submit must fail")
	}
	final, _ := surveys.Get(ctx, published.ID)
	if final.CompletionCount != 1 {
		t.Fatalf("double submit changed the count: %d", final.CompletionCount)
	}
}

// Publishing a structurally broken draft must be refused before anything is
// stored.
func TestPublishRejectsBrokenDraft(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore("http://localhost:3000")
	builder := services.NewBuilderService()
	surveys := services.NewSurveyService(st)

	draft := builder.NewDraft("", "")
	if _, err := surveys.Publish(ctx, draft); err == nil {
		t.Fatalf("publish of an empty draft must fail")
	}
	if list, _ := surveys.List(ctx); len(list) != 0 {
		t.Fatalf("rejected draft was stored anyway")
	}
}
