package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/runningwild/inflex/pkg/report"
	"github.com/runningwild/inflex/pkg/store"
)

// runRunsCmd handles "inflex runs -store file.db [-id run]"
func runRunsCmd(args []string) {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	path := fs.String("store", "", "SQLite run log written by 'inflex scan -store'")
	id := fs.String("id", "", "Show the events of this run instead of listing runs")
	precision := fs.Int("precision", 2, "Decimal places shown")
	fs.Parse(args)

	if *path == "" {
		fs.Usage()
		log.Fatal("Error: -store is required")
	}

	st, err := store.Open(*path)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	if *id != "" {
		events, err := st.Events(ctx, *id)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		out := report.NewText(stdout, *precision, report.ASCII, true)
		for _, e := range events {
			out.Emit(e)
		}
		if err := out.Close(); err != nil {
			log.Fatalf("Error: %v", err)
		}
		return
	}

	runs, err := st.Runs(ctx)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	for _, r := range runs {
		state := "finished"
		if r.FinishedAt.IsZero() {
			state = "incomplete"
		}
		fmt.Fprintf(stdout, "%s  %s  %-24s [%g, %g] step %g  %d samples  %s\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Curve, r.Min, r.Max, r.Step, r.Samples, state)
	}
}
