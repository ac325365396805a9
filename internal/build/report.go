package build

import (
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/doctree/internal/validate"
)

// Outcome is the typed enumeration of final build result states.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeWarning Outcome = "warning"
	OutcomeFailed  Outcome = "failed"
)

// Report captures the single pass/fail verdict plus every accumulated finding
// of one build pass. It is written as report.json and published to consumers.
type Report struct {
	SchemaVersion int       `json:"schema_version"` // schema version for external consumers
	BuildID       string    `json:"build_id"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`

	Documents int `json:"documents"`
	Routes    int `json:"routes"`

	// LoadErrors are per-file structural problems (malformed frontmatter,
	// unreadable files). Ordered by path.
	LoadErrors []string `json:"load_errors,omitempty"`
	// Issues are per-document metadata findings, warnings included.
	Issues []validate.Issue `json:"issues,omitempty"`
	// Collisions are route conflicts, each naming both source files.
	Collisions []string `json:"collisions,omitempty"`

	Outcome Outcome `json:"outcome"`

	// StageDurationsMS records wall time per pipeline stage.
	StageDurationsMS map[string]float64 `json:"stage_durations_ms"`
}

// NewReport constructs a report with a fresh build ID.
func NewReport() *Report {
	return &Report{
		SchemaVersion:    1,
		BuildID:          uuid.NewString(),
		Start:            time.Now(),
		StageDurationsMS: make(map[string]float64),
	}
}

// RecordStage stores a stage duration.
func (r *Report) RecordStage(stage string, d time.Duration) {
	r.StageDurationsMS[stage] = float64(d.Milliseconds())
}

// Finalize derives the verdict. Any load error, error-severity issue or
// collision fails the build; warnings alone downgrade success to warning.
func (r *Report) Finalize() {
	r.End = time.Now()

	switch {
	case len(r.LoadErrors) > 0 || len(r.Collisions) > 0:
		r.Outcome = OutcomeFailed
	case hasErrorIssue(r.Issues):
		r.Outcome = OutcomeFailed
	case len(r.Issues) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

// Duration returns total wall time of the build.
func (r *Report) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func hasErrorIssue(issues []validate.Issue) bool {
	for _, issue := range issues {
		if issue.Severity == validate.SeverityError {
			return true
		}
	}
	return false
}
