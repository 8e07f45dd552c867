// Package seeder populates the orchestrator database: it writes the agent,
// tool, and team seed documents, declares their indexes, and provisions the
// runtime collections the orchestrator writes to.
//
// The four stages are independent. A stage that fails is recorded in the
// Report and does not stop the others.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/agno-seed/internal/dataset"
	"github.com/JaimeStill/agno-seed/internal/schema"
	"github.com/JaimeStill/agno-seed/internal/store"
	"github.com/JaimeStill/agno-seed/pkg/tracing"
)

// KeyField is the unique key of every seeded document.
const KeyField = "id"

// Options configures a Seeder.
type Options struct {
	// Mode selects strict insertion or upsert. Defaults to ModeStrict.
	Mode Mode

	// Concurrent runs the stages in parallel.
	Concurrent bool

	// Now stamps agent documents. Defaults to time.Now.
	Now func() time.Time
}

// Seeder runs the seeding pipeline against a store. It holds no state between
// runs; every call to Run is independent.
type Seeder struct {
	store  store.System
	logger *slog.Logger
	opts   Options
}

// New creates a Seeder writing to st.
func New(st store.System, logger *slog.Logger, opts Options) (*Seeder, error) {
	if opts.Mode == "" {
		opts.Mode = ModeStrict
	}
	if err := opts.Mode.Validate(); err != nil {
		return nil, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Seeder{
		store:  st,
		logger: logger.With("system", "seeder"),
		opts:   opts,
	}, nil
}

type stageFunc func(ctx context.Context, logger *slog.Logger) StageResult

// Run normalizes a copy of d, validates it, and executes every stage. An invalid dataset is returned as
// an error wrapping ErrInvalidDataset before anything is written. Stage
// failures do not produce an error; they are recorded in the Report.
func (s *Seeder) Run(ctx context.Context, d *dataset.Dataset) (*Report, error) {
	start := time.Now()
	runID := uuid.New()
	logger := s.logger.With("run", runID.String(), "dataset", d.Version, "mode", string(s.opts.Mode))

	ctx, span := tracing.StartSpan(ctx, "seed",
		attribute.String("seed.run", runID.String()),
		attribute.String("seed.dataset", d.Version),
		attribute.String("seed.mode", string(s.opts.Mode)),
	)

	d = d.Normalized()

	if err := d.Validate(); err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidDataset, err)
		tracing.End(span, err)
		return nil, err
	}

	for _, ref := range d.Unresolved() {
		logger.Warn("unresolved reference",
			"collection", ref.Collection,
			"id", ref.ID,
			"field", ref.Field,
			"target", ref.Target,
		)
	}

	names := d.Collections
	stages := map[Stage]stageFunc{
		StageAgents: func(ctx context.Context, logger *slog.Logger) StageResult {
			now := s.opts.Now()
			for i := range d.Agents {
				d.Agents[i].Stamp(now)
			}
			return s.seedCollection(ctx, logger, StageAgents, schema.Agents(names.Agents), store.Documents(d.Agents))
		},
		StageTools: func(ctx context.Context, logger *slog.Logger) StageResult {
			return s.seedCollection(ctx, logger, StageTools, schema.Tools(names.Tools), store.Documents(d.Tools))
		},
		StageTeams: func(ctx context.Context, logger *slog.Logger) StageResult {
			return s.seedCollection(ctx, logger, StageTeams, schema.Teams(names.Teams), store.Documents(d.Teams))
		},
		StageRuntime: func(ctx context.Context, logger *slog.Logger) StageResult {
			return s.ensureRuntime(ctx, logger, schema.Runtime())
		},
	}

	agentCount, toolCount, teamCount := d.Counts()
	logger.Info("seeding started",
		"concurrent", s.opts.Concurrent,
		"agents", agentCount,
		"tools", toolCount,
		"teams", teamCount,
	)

	results := make([]StageResult, len(Stages))
	run := func(i int, stage Stage) {
		results[i] = s.runStage(ctx, logger, stage, stages[stage])
	}

	if s.opts.Concurrent {
		var g errgroup.Group
		for i, stage := range Stages {
			g.Go(func() error {
				run(i, stage)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, stage := range Stages {
			run(i, stage)
		}
	}

	report := &Report{
		RunID:   runID,
		Dataset: d.Version,
		Mode:    s.opts.Mode,
		Stages:  results,
	}
	s.count(ctx, report, names)
	report.Elapsed = time.Since(start)

	if err := report.Err(); err != nil {
		logger.Error("seeding finished with failures", "failed", report.Failed(), "elapsed", report.Elapsed)
		tracing.End(span, err)
	} else {
		logger.Info("seeding finished",
			"agents", report.Agents,
			"tools", report.Tools,
			"teams", report.Teams,
			"elapsed", report.Elapsed,
		)
		tracing.End(span, nil)
	}

	return report, nil
}

func (s *Seeder) runStage(ctx context.Context, logger *slog.Logger, stage Stage, fn stageFunc) StageResult {
	if err := ctx.Err(); err != nil {
		logger.Warn("stage skipped", "stage", stage, "error", err)
		return StageResult{Stage: stage, Err: fmt.Errorf("%w: %w", ErrSkipped, err)}
	}

	ctx, span := tracing.StartSpan(ctx, "seed."+string(stage), attribute.String("seed.stage", string(stage)))

	start := time.Now()
	res := fn(ctx, logger.With("stage", string(stage)))
	res.Elapsed = time.Since(start)

	span.SetAttributes(
		attribute.Int("seed.written", res.Written),
		attribute.Int("seed.duplicates", res.Duplicates),
		attribute.Int("seed.indexes_created", res.IndexesCreated),
	)
	tracing.End(span, res.Err)

	return res
}

func (s *Seeder) seedCollection(ctx context.Context, logger *slog.Logger, stage Stage, coll schema.Collection, docs []store.Document) StageResult {
	res := StageResult{Stage: stage, Collections: []string{coll.Name}}
	var errs []error

	var wr store.WriteResult
	var err error
	switch s.opts.Mode {
	case ModeUpsert:
		wr, err = s.store.UpsertMany(ctx, coll.Name, KeyField, docs)
	default:
		wr, err = s.store.InsertMany(ctx, coll.Name, KeyField, docs)
	}
	res.Written = wr.Written()

	if err != nil {
		dups := store.Duplicates(err)
		res.Duplicates = len(dups)
		for _, dk := range dups {
			logger.Warn("duplicate key", "collection", dk.Collection, "field", dk.Field, "key", dk.Key, "position", dk.Position)
		}
		errs = append(errs, err)
	}

	logger.Info("documents written",
		"collection", coll.Name,
		"documents", len(docs),
		"inserted", wr.Inserted,
		"matched", wr.Matched,
		"upserted", wr.Upserted,
		"duplicates", res.Duplicates,
	)

	if err := s.declareIndexes(ctx, logger, coll, &res); err != nil {
		errs = append(errs, err)
	}

	res.Err = errors.Join(errs...)
	return res
}

func (s *Seeder) ensureRuntime(ctx context.Context, logger *slog.Logger, colls []schema.Collection) StageResult {
	res := StageResult{Stage: StageRuntime}
	var errs []error

	for _, coll := range colls {
		res.Collections = append(res.Collections, coll.Name)

		created, err := s.store.EnsureCollection(ctx, coll.Name)
		if err != nil {
			logger.Error("collection not ensured", "collection", coll.Name, "error", err)
			errs = append(errs, fmt.Errorf("ensure collection %s: %w", coll.Name, err))
			continue
		}
		if created {
			res.CollectionsCreated++
		}

		if err := s.declareIndexes(ctx, logger, coll, &res); err != nil {
			errs = append(errs, err)
		}
	}

	res.Err = errors.Join(errs...)
	return res
}

// declareIndexes declares every index of coll. A failing declaration does not
// prevent the remaining ones.
func (s *Seeder) declareIndexes(ctx context.Context, logger *slog.Logger, coll schema.Collection, res *StageResult) error {
	var errs []error

	for _, index := range coll.Indexes {
		res.IndexesDeclared++

		created, err := s.store.EnsureIndex(ctx, coll.Name, index)
		if err != nil {
			var conflict *store.IndexConflictError
			if errors.As(err, &conflict) {
				logger.Error("index conflict",
					"collection", coll.Name,
					"requested", conflict.Requested.String(),
					"existing_name", conflict.ExistingName,
					"existing", conflict.Existing.String(),
				)
			} else {
				logger.Error("index not declared", "collection", coll.Name, "index", index.Name(), "error", err)
			}
			errs = append(errs, err)
			continue
		}

		if created {
			res.IndexesCreated++
			logger.Debug("index created", "collection", coll.Name, "index", index.Name())
		}
	}

	return errors.Join(errs...)
}

// count records the document count of each seeded collection. A failed count
// is attached to the stage that owns the collection.
func (s *Seeder) count(ctx context.Context, report *Report, names schema.Names) {
	targets := []struct {
		stage Stage
		name  string
		dst   *int64
	}{
		{StageAgents, names.Agents, &report.Agents},
		{StageTools, names.Tools, &report.Tools},
		{StageTeams, names.Teams, &report.Teams},
	}

	for _, t := range targets {
		n, err := s.store.Count(ctx, t.name)
		if err != nil {
			for i := range report.Stages {
				if report.Stages[i].Stage == t.stage {
					report.Stages[i].Err = errors.Join(report.Stages[i].Err, fmt.Errorf("count %s: %w", t.name, err))
				}
			}
			continue
		}
		*t.dst = n
	}
}
