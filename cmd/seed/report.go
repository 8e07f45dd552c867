package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/docker/go-units"

	"github.com/JaimeStill/agno-seed/internal/schema"
	"github.com/JaimeStill/agno-seed/internal/seeder"
)

func printReport(w io.Writer, r *seeder.Report, names schema.Names) {
	fmt.Fprintf(w, "seed run %s (dataset %s, mode %s)\n", r.RunID, r.Dataset, r.Mode)

	for _, res := range r.Stages {
		status := "ok"
		if !res.OK() {
			status = "FAILED"
		}
		fmt.Fprintf(w, "  %-8s %-6s written=%d duplicates=%d indexes=%d/%d collections=%s (%s)\n",
			res.Stage, status,
			res.Written, res.Duplicates,
			res.IndexesCreated, res.IndexesDeclared,
			strings.Join(res.Collections, ","),
			res.Elapsed.Round(time.Millisecond),
		)
	}

	fmt.Fprintf(w, "  %s=%d %s=%d %s=%d\n",
		names.Agents, r.Agents,
		names.Tools, r.Tools,
		names.Teams, r.Teams,
	)
	fmt.Fprintf(w, "  finished in %s\n", units.HumanDuration(r.Elapsed))
}
