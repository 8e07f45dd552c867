package seeder_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/JaimeStill/agno-seed/internal/agents"
	"github.com/JaimeStill/agno-seed/internal/dataset"
	"github.com/JaimeStill/agno-seed/internal/schema"
	"github.com/JaimeStill/agno-seed/internal/seeder"
	"github.com/JaimeStill/agno-seed/internal/store"
	"github.com/JaimeStill/agno-seed/pkg/logging"
)

func loadDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	d, err := dataset.Embedded(dataset.Default)
	if err != nil {
		t.Fatalf("Embedded() failed: %v", err)
	}
	return d
}

func newSeeder(t *testing.T, st store.System, opts seeder.Options) *seeder.Seeder {
	t.Helper()
	s, err := seeder.New(st, logging.Discard(), opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func run(t *testing.T, s *seeder.Seeder, d *dataset.Dataset) *seeder.Report {
	t.Helper()
	report, err := s.Run(context.Background(), d)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	return report
}

func assertCounts(t *testing.T, r *seeder.Report, agents, tools, teams int64) {
	t.Helper()
	if r.Agents != agents || r.Tools != tools || r.Teams != teams {
		t.Errorf("counts = %d/%d/%d, want %d/%d/%d", r.Agents, r.Tools, r.Teams, agents, tools, teams)
	}
}

func TestNew_InvalidMode(t *testing.T) {
	_, err := seeder.New(store.NewMemory(), logging.Discard(), seeder.Options{Mode: "merge"})
	if !errors.Is(err, seeder.ErrInvalidMode) {
		t.Errorf("New() error = %v, want ErrInvalidMode", err)
	}
}

func TestRun_DefaultDataset(t *testing.T) {
	m := store.NewMemory()
	d := loadDataset(t)

	report := run(t, newSeeder(t, m, seeder.Options{}), d)

	if err := report.Err(); err != nil {
		t.Fatalf("Report.Err() = %v, want nil", err)
	}
	assertCounts(t, report, 3, 2, 1)

	if report.Mode != seeder.ModeStrict {
		t.Errorf("Mode = %q, want strict", report.Mode)
	}
	if report.Dataset != "agno" {
		t.Errorf("Dataset = %q, want agno", report.Dataset)
	}

	var stages []seeder.Stage
	for _, res := range report.Stages {
		stages = append(stages, res.Stage)
	}
	if !slices.Equal(stages, seeder.Stages) {
		t.Errorf("stages = %v, want %v", stages, seeder.Stages)
	}

	collections := m.Collections()
	for _, name := range []string{
		"agents_config", "tools", "teams_config",
		schema.SessionsCollection, schema.MemoriesCollection,
		schema.TracesCollection, schema.SpansCollection, schema.EmbeddingsCollection,
	} {
		if !slices.Contains(collections, name) {
			t.Errorf("collection %s not created", name)
		}
	}

	if got := len(m.Indexes("agents_config")); got != 3 {
		t.Errorf("agents_config has %d indexes, want 3", got)
	}
	if got := len(m.Indexes(schema.SessionsCollection)); got != 5 {
		t.Errorf("%s has %d indexes, want 5", schema.SessionsCollection, got)
	}

	runtime, _ := report.Stage(seeder.StageRuntime)
	if runtime.CollectionsCreated != 5 {
		t.Errorf("runtime CollectionsCreated = %d, want 5", runtime.CollectionsCreated)
	}

	stored, ok := m.Find("agents_config", "id", "general-assistant")
	if !ok {
		t.Fatal("general-assistant not stored")
	}
	if stored["nome"] != "General Assistant" {
		t.Errorf("nome = %v, want General Assistant", stored["nome"])
	}
	if _, ok := stored["updated_at"]; !ok {
		t.Error("updated_at not stored")
	}

	dup := []toolDoc{{ID: d.Tools[0].ID}}
	_, err := m.InsertMany(context.Background(), "tools", seeder.KeyField, store.Documents(dup))
	dups := store.Duplicates(err)
	if len(dups) != 1 {
		t.Fatalf("Duplicates() = %v, want one", dups)
	}
	if dups[0].Field != "id" || dups[0].Key != "weather-tool" {
		t.Errorf("duplicate = %s %q, want id \"weather-tool\"", dups[0].Field, dups[0].Key)
	}
}

type toolDoc struct {
	ID string `bson:"id"`
}

func (d toolDoc) Key() string { return d.ID }

func TestRun_StrictRerun(t *testing.T) {
	m := store.NewMemory()
	d := loadDataset(t)
	s := newSeeder(t, m, seeder.Options{})

	run(t, s, d)
	report := run(t, s, d)

	failed := report.Failed()
	want := []seeder.Stage{seeder.StageAgents, seeder.StageTools, seeder.StageTeams}
	if !slices.Equal(failed, want) {
		t.Errorf("Failed() = %v, want %v", failed, want)
	}
	if !errors.Is(report.Err(), store.ErrDuplicateKey) {
		t.Errorf("Report.Err() = %v, want ErrDuplicateKey", report.Err())
	}

	sizes := map[seeder.Stage]int{
		seeder.StageAgents: len(d.Agents),
		seeder.StageTools:  len(d.Tools),
		seeder.StageTeams:  len(d.Teams),
	}
	for stage, size := range sizes {
		res, _ := report.Stage(stage)
		if res.Duplicates != size {
			t.Errorf("%s Duplicates = %d, want %d", stage, res.Duplicates, size)
		}
		if res.Written != 0 {
			t.Errorf("%s Written = %d, want 0", stage, res.Written)
		}
	}

	assertCounts(t, report, 3, 2, 1)
}

func TestRun_UpsertRerun(t *testing.T) {
	m := store.NewMemory()
	d := loadDataset(t)

	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	now := first

	s := newSeeder(t, m, seeder.Options{
		Mode: seeder.ModeUpsert,
		Now:  func() time.Time { return now },
	})

	run(t, s, d)

	now = second
	d.Agents[0].Description = "updated"
	report := run(t, s, d)

	if err := report.Err(); err != nil {
		t.Fatalf("Report.Err() = %v, want nil", err)
	}
	assertCounts(t, report, 3, 2, 1)

	res, _ := report.Stage(seeder.StageAgents)
	if res.Written != 3 {
		t.Errorf("agents Written = %d, want 3", res.Written)
	}

	stored, _ := m.Find("agents_config", "id", d.Agents[0].ID)
	if stored["descricao"] != "updated" {
		t.Errorf("descricao = %v, want updated", stored["descricao"])
	}
	ts, ok := stored["updated_at"].(primitive.DateTime)
	if !ok {
		t.Fatalf("updated_at = %T, want primitive.DateTime", stored["updated_at"])
	}
	if !ts.Time().Equal(second) {
		t.Errorf("updated_at = %v, want %v", ts.Time(), second)
	}

	if d.Agents[0].UpdatedAt != (time.Time{}) {
		t.Error("Run() stamped the caller's dataset")
	}
}

func TestRun_UnresolvedToolAccepted(t *testing.T) {
	m := store.NewMemory()
	d := loadDataset(t)
	d.Agents[0].ToolIDs = []string{"nonexistent-tool"}

	report := run(t, newSeeder(t, m, seeder.Options{}), d)

	if err := report.Err(); err != nil {
		t.Fatalf("Report.Err() = %v, want nil", err)
	}

	stored, ok := m.Find("agents_config", "id", d.Agents[0].ID)
	if !ok {
		t.Fatal("agent not stored")
	}
	ids, ok := stored["tools_ids"].(primitive.A)
	if !ok || len(ids) != 1 || ids[0] != "nonexistent-tool" {
		t.Errorf("tools_ids = %v, want [nonexistent-tool]", stored["tools_ids"])
	}
}

func TestRun_NormalizesDocuments(t *testing.T) {
	m := store.NewMemory()
	d := loadDataset(t)
	d.Agents[0].ToolIDs = nil
	d.Tools[0].HTTPConfig.Parameters = nil
	d.Teams[0].Mode = ""

	report := run(t, newSeeder(t, m, seeder.Options{}), d)
	if err := report.Err(); err != nil {
		t.Fatalf("Report.Err() = %v, want nil", err)
	}

	agent, ok := m.Find("agents_config", "id", d.Agents[0].ID)
	if !ok {
		t.Fatal("agent not stored")
	}
	if ids, ok := agent["tools_ids"].(primitive.A); !ok || len(ids) != 0 {
		t.Errorf("tools_ids = %#v, want empty array", agent["tools_ids"])
	}

	tool, ok := m.Find("tools", "id", d.Tools[0].ID)
	if !ok {
		t.Fatal("tool not stored")
	}
	httpConfig, _ := tool["http_config"].(primitive.M)
	if params, ok := httpConfig["parameters"].(primitive.A); !ok || len(params) != 0 {
		t.Errorf("http_config.parameters = %#v, want empty array", httpConfig["parameters"])
	}

	team, ok := m.Find("teams_config", "id", d.Teams[0].ID)
	if !ok {
		t.Fatal("team not stored")
	}
	if team["mode"] != "route" {
		t.Errorf("mode = %v, want route", team["mode"])
	}

	if d.Agents[0].ToolIDs != nil || d.Teams[0].Mode != "" {
		t.Error("Run() modified the caller's dataset")
	}
	if !d.Agents[0].UpdatedAt.IsZero() {
		t.Error("Run() stamped the caller's dataset")
	}
}

func TestRun_Concurrent(t *testing.T) {
	m := store.NewMemory()
	report := run(t, newSeeder(t, m, seeder.Options{Concurrent: true}), loadDataset(t))

	if err := report.Err(); err != nil {
		t.Fatalf("Report.Err() = %v, want nil", err)
	}
	assertCounts(t, report, 3, 2, 1)

	for i, res := range report.Stages {
		if res.Stage != seeder.Stages[i] {
			t.Errorf("Stages[%d] = %s, want %s", i, res.Stage, seeder.Stages[i])
		}
	}
}

func TestRun_Canceled(t *testing.T) {
	m := store.NewMemory()
	s := newSeeder(t, m, seeder.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := s.Run(ctx, loadDataset(t))
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	for _, res := range report.Stages {
		if !errors.Is(res.Err, seeder.ErrSkipped) {
			t.Errorf("%s Err = %v, want ErrSkipped", res.Stage, res.Err)
		}
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("%s Err = %v, want context.Canceled", res.Stage, res.Err)
		}
	}
	if len(m.Collections()) != 0 {
		t.Errorf("Collections() = %v, want none", m.Collections())
	}
}

func TestRun_IndexConflict(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	if _, err := m.EnsureIndex(ctx, "tools", schema.Asc("id")); err != nil {
		t.Fatalf("EnsureIndex() failed: %v", err)
	}

	report := run(t, newSeeder(t, m, seeder.Options{}), loadDataset(t))

	if failed := report.Failed(); !slices.Equal(failed, []seeder.Stage{seeder.StageTools}) {
		t.Fatalf("Failed() = %v, want [tools]", failed)
	}

	res, _ := report.Stage(seeder.StageTools)
	var conflict *store.IndexConflictError
	if !errors.As(res.Err, &conflict) {
		t.Fatalf("tools Err = %v, want *IndexConflictError", res.Err)
	}
	if conflict.ExistingName != "id_1" || conflict.Existing.Unique {
		t.Errorf("conflict existing = %q %s, want id_1 non-unique", conflict.ExistingName, conflict.Existing)
	}
	if res.Written != 2 {
		t.Errorf("tools Written = %d, want 2", res.Written)
	}
	if res.IndexesDeclared != 2 || res.IndexesCreated != 1 {
		t.Errorf("tools indexes = %d/%d, want 1/2", res.IndexesCreated, res.IndexesDeclared)
	}
	if !strings.HasPrefix(report.Err().Error(), "stage tools: ") {
		t.Errorf("Report.Err() = %q, want stage prefix", report.Err())
	}

	assertCounts(t, report, 3, 2, 1)
}

func TestRun_InvalidDataset(t *testing.T) {
	m := store.NewMemory()
	d := loadDataset(t)
	d.Agents[1].Model = ""
	d.Teams[0].MemberIDs = nil

	report, err := newSeeder(t, m, seeder.Options{}).Run(context.Background(), d)
	if report != nil {
		t.Error("Run() returned a report for an invalid dataset")
	}
	if !errors.Is(err, seeder.ErrInvalidDataset) {
		t.Fatalf("Run() error = %v, want ErrInvalidDataset", err)
	}
	if !errors.Is(err, agents.ErrInvalid) {
		t.Errorf("Run() error = %v, want agents.ErrInvalid", err)
	}

	var ve *dataset.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Run() error = %v, want *ValidationError", err)
	}
	if len(m.Collections()) != 0 {
		t.Errorf("Collections() = %v, want none written", m.Collections())
	}
}
