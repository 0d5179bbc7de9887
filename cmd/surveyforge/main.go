// Command surveyforge is a small demo harness over the library: it opens the
// configured store, seeds demo data when empty, and can list surveys, print a
// survey's statistics or export its responses as CSV.
//
//	surveyforge list
//	surveyforge stats  <survey-id>
//	surveyforge export <survey-id> [-wide]
//
// Environment:
//
//	SURVEYFORGE_DB       sqlite file path; unset means in-memory
//	SURVEYFORGE_LATENCY  artificial store delay, e.g. 800ms
//	SURVEYFORGE_BASE_URL base URL for share links (default http://localhost:3000)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/surveyforge/surveyforge/internal/db"
	"github.com/surveyforge/surveyforge/internal/log"
	"github.com/surveyforge/surveyforge/internal/seed"
	"github.com/surveyforge/surveyforge/internal/services"
	"github.com/surveyforge/surveyforge/internal/store"
	"github.com/surveyforge/surveyforge/internal/utils"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	wide := flag.Bool("wide", false, "export one row per response instead of one per answer")
	flag.Parse()
	log.SetDebug(*debug)

	if err := run(context.Background(), flag.Args(), *wide); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, wide bool) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	if err := seed.Run(ctx, st); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	surveys := services.NewSurveyService(st)
	cmd := "list"
	if len(args) > 0 {
		cmd = args[0]
	}
	switch cmd {
	case "list":
		return list(ctx, surveys)
	case "stats":
		if len(args) < 2 {
			return fmt.Errorf("usage: surveyforge stats <survey-id>")
		}
		return stats(ctx, services.NewStatsService(st), args[1])
	case "export":
		if len(args) < 2 {
			return fmt.Errorf("usage: surveyforge export <survey-id> [-wide]")
		}
		return export(ctx, st, surveys, args[1], wide)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func openStore() (store.Store, error) {
	baseURL := utils.SafeEnv("SURVEYFORGE_BASE_URL", "http://localhost:3000")

	var st store.Store
	if path := os.Getenv("SURVEYFORGE_DB"); path != "" {
		d, err := db.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		st, err = db.NewSQLiteStore(d, baseURL)
		if err != nil {
			return nil, err
		}
		log.Debugf("using sqlite store at %s", path)
	} else {
		st = store.NewMemoryStore(baseURL)
		log.Debugf("using in-memory store")
	}

	if delay := utils.DurationEnv("SURVEYFORGE_LATENCY", 0); delay > 0 {
		log.Debugf("simulating %v store latency", delay)
		st = store.NewLatencyStore(st, delay)
	}
	return st, nil
}

func list(ctx context.Context, surveys *services.SurveyService) error {
	all, err := surveys.List(ctx)
	if err != nil {
		return err
	}
	for _, sv := range all {
		fmt.Printf("%s  %-11s %3d responses  %s\n", sv.ID, sv.Status, sv.CompletionCount, sv.Title)
		if sv.ShareableLink != "" {
			fmt.Printf("%*s%s\n", len(sv.ID)+2, "", sv.ShareableLink)
		}
	}
	return nil
}

func stats(ctx context.Context, svc *services.StatsService, surveyID string) error {
	summary, err := svc.Summary(ctx, surveyID)
	if err != nil {
		return err
	}
	fmt.Printf("responses: %d\n", summary.TotalResponses)
	fmt.Printf("avg completion time: %.1fs\n", summary.AverageCompletionTime)
	for qid, qs := range summary.QuestionStats {
		fmt.Printf("%s: %d answered", qid, qs.ResponseCount)
		if qs.AverageRating > 0 {
			fmt.Printf(", avg rating %.2f", qs.AverageRating)
		}
		fmt.Println()
	}
	return nil
}

func export(ctx context.Context, st store.Store, surveys *services.SurveyService, surveyID string, wide bool) error {
	survey, err := surveys.Get(ctx, surveyID)
	if err != nil {
		return err
	}
	responses, err := st.ListResponses(ctx, surveyID)
	if err != nil {
		return err
	}
	var out []byte
	if wide {
		out, err = services.ExportResponsesWideCSV(survey, responses)
	} else {
		out, err = services.ExportResponsesCSV(survey, responses)
	}
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
