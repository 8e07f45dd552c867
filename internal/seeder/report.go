package seeder

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage names one step of the seeding pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StageAgents  Stage = "agents"
	StageTools   Stage = "tools"
	StageTeams   Stage = "teams"
	StageRuntime Stage = "runtime"
)

// Stages lists the pipeline stages in execution order.
var Stages = []Stage{StageAgents, StageTools, StageTeams, StageRuntime}

// StageResult is the outcome of a single stage.
type StageResult struct {
	Stage              Stage
	Collections        []string
	Written            int
	Duplicates         int
	CollectionsCreated int
	IndexesDeclared    int
	IndexesCreated     int
	Elapsed            time.Duration
	Err                error
}

// OK reports whether the stage completed without error.
func (r StageResult) OK() bool {
	return r.Err == nil
}

// Report is the outcome of a seeding run. Counts are the number of documents
// present in each seeded collection once all stages finished.
type Report struct {
	RunID   uuid.UUID
	Dataset string
	Mode    Mode
	Agents  int64
	Tools   int64
	Teams   int64
	Stages  []StageResult
	Elapsed time.Duration
}

// Stage returns the result of the named stage.
func (r *Report) Stage(s Stage) (StageResult, bool) {
	for _, res := range r.Stages {
		if res.Stage == s {
			return res, true
		}
	}
	return StageResult{}, false
}

// Failed lists the stages that ended with an error.
func (r *Report) Failed() []Stage {
	var failed []Stage
	for _, res := range r.Stages {
		if !res.OK() {
			failed = append(failed, res.Stage)
		}
	}
	return failed
}

// Err joins the errors of all failed stages, each prefixed with its stage.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Stages {
		if !res.OK() {
			errs = append(errs, fmt.Errorf("stage %s: %w", res.Stage, res.Err))
		}
	}
	return errors.Join(errs...)
}
