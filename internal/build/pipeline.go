// Package build threads the content pipeline: load -> validate -> resolve ->
// navigation tree. The document set and tree are return values passed through
// the stages, never module-level state, so each stage tests in isolation.
package build

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/doctree/internal/collection"
	"git.home.luguber.info/inful/doctree/internal/config"
	"git.home.luguber.info/inful/doctree/internal/logfields"
	"git.home.luguber.info/inful/doctree/internal/metrics"
	"git.home.luguber.info/inful/doctree/internal/navtree"
	"git.home.luguber.info/inful/doctree/internal/routes"
	"git.home.luguber.info/inful/doctree/internal/validate"
)

// Stage names used in reports and metrics.
const (
	StageLoad     = "load"
	StageValidate = "validate"
	StageResolve  = "resolve"
	StageTree     = "tree"
)

// Result is the output of one build pass handed to the rendering layer:
// the validated, route-resolved documents, the navigation tree and the
// verdict report.
type Result struct {
	// Documents are validated and route-resolved, drafts excluded unless
	// configured otherwise. Sorted by path.
	Documents []collection.Document
	// Tree is the root navigation node. Nil when route collisions made the
	// tree ambiguous.
	Tree *navtree.Node
	// Routes maps each canonical route to its source path.
	Routes map[string]string
	// Report carries the verdict and all findings.
	Report *Report
}

// Failed reports whether the build verdict is failure.
func (r *Result) Failed() bool { return r.Report.Outcome == OutcomeFailed }

// DocumentByRoute returns the document owning a route, for round-trip
// lookups by the rendering layer.
func (r *Result) DocumentByRoute(route string) (*collection.Document, bool) {
	for i := range r.Documents {
		if r.Documents[i].Route == route {
			return &r.Documents[i], true
		}
	}
	return nil, false
}

// Pipeline executes build passes for one configuration.
type Pipeline struct {
	cfg      *config.Config
	recorder metrics.Recorder
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithRecorder injects a metrics recorder (Noop by default).
func WithRecorder(r metrics.Recorder) PipelineOption {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// NewPipeline creates a Pipeline for the given configuration.
func NewPipeline(cfg *config.Config, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one full build pass. A missing content root aborts with an
// error; every other finding is accumulated into the report and the verdict
// derived after all documents are processed.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	report := NewReport()
	buildStart := time.Now()

	slog.Info("Starting content build",
		logfields.BuildID(report.BuildID),
		logfields.Path(p.cfg.Content.Root))

	// Load
	stageStart := time.Now()
	loader := collection.NewLoader(p.cfg.Content.Root,
		collection.WithExtensions(p.cfg.Content.Extensions),
		collection.WithConcurrency(p.cfg.Content.Concurrency))
	docs, loadIssues, err := loader.Load()
	p.finishStage(report, StageLoad, stageStart, err == nil)
	if err != nil {
		return nil, err
	}
	for _, issue := range loadIssues {
		report.LoadErrors = append(report.LoadErrors, issue.Error())
	}

	// Validate
	stageStart = time.Now()
	validation := validate.Validate(docs)
	report.Issues = validation.Issues
	p.finishStage(report, StageValidate, stageStart, !validation.HasErrors())

	valid := validation.Valid
	if !p.cfg.Content.IncludeDrafts {
		valid = dropDrafts(valid)
	}

	// Resolve routes
	stageStart = time.Now()
	resolved, collisions := routes.Resolve(valid)
	for _, c := range collisions {
		report.Collisions = append(report.Collisions, c.Error())
	}
	p.finishStage(report, StageResolve, stageStart, len(collisions) == 0)

	result := &Result{
		Documents: resolved,
		Report:    report,
	}

	// Navigation tree. Skipped on collisions: ambiguous routing cannot be
	// resolved automatically, so no tree is published.
	if len(collisions) == 0 {
		stageStart = time.Now()
		result.Tree = navtree.Build(resolved)
		result.Routes = routes.Table(resolved)
		p.finishStage(report, StageTree, stageStart, true)
	}

	report.Documents = len(resolved)
	report.Routes = len(result.Routes)
	report.Finalize()

	p.recorder.ObserveBuildDuration(time.Since(buildStart))
	p.recorder.IncBuildOutcome(string(report.Outcome))
	p.recorder.SetDocumentCount(len(resolved))
	p.recorder.SetIssueCount(string(validate.SeverityError), countIssues(report.Issues, validate.SeverityError))
	p.recorder.SetIssueCount(string(validate.SeverityWarning), countIssues(report.Issues, validate.SeverityWarning))

	slog.Info("Content build finished",
		logfields.BuildID(report.BuildID),
		logfields.Outcome(string(report.Outcome)),
		logfields.Documents(report.Documents),
		logfields.Issues(len(report.Issues)),
		logfields.DurationMS(float64(report.Duration().Milliseconds())))

	return result, ctx.Err()
}

func (p *Pipeline) finishStage(report *Report, stage string, start time.Time, ok bool) {
	d := time.Since(start)
	report.RecordStage(stage, d)
	p.recorder.ObserveStageDuration(stage, d)
	if ok {
		p.recorder.IncStageResult(stage, metrics.ResultSuccess)
	} else {
		p.recorder.IncStageResult(stage, metrics.ResultFatal)
	}
}

func dropDrafts(docs []collection.Document) []collection.Document {
	out := docs[:0:0]
	for _, doc := range docs {
		if doc.Meta.Draft {
			continue
		}
		out = append(out, doc)
	}
	return out
}

func countIssues(issues []validate.Issue, severity validate.Severity) int {
	n := 0
	for _, issue := range issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}
