package build

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/doctree/internal/errors"
	"git.home.luguber.info/inful/doctree/internal/store"
)

// Artifact file names written into the output directory.
const (
	NavigationArtifact = "navigation.json"
	RoutesArtifact     = "routes.json"
	ReportArtifact     = "report.json"
)

// WriteArtifacts writes navigation.json, routes.json and report.json for the
// rendering layer. The report is written even for failed builds so CI can
// inspect the findings; navigation and routes only exist on non-failed
// builds.
func WriteArtifacts(result *Result, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.ArtifactWriteError(outputDir, err)
	}

	if err := writeJSON(filepath.Join(outputDir, ReportArtifact), result.Report); err != nil {
		return err
	}

	if result.Failed() {
		return nil
	}

	if err := writeJSON(filepath.Join(outputDir, NavigationArtifact), result.Tree); err != nil {
		return err
	}
	return writeJSON(filepath.Join(outputDir, RoutesArtifact), result.Routes)
}

// WriteIndex persists the document set into the sqlite index configured at
// output.index_db. No-op for failed builds.
func WriteIndex(ctx context.Context, result *Result, dbPath string) error {
	if dbPath == "" || result.Failed() {
		return nil
	}

	idx, err := store.Open(dbPath)
	if err != nil {
		return errors.ArtifactWriteError(dbPath, err)
	}
	defer func() { _ = idx.Close() }()

	if err := idx.WriteBuild(ctx, result.Report.BuildID, string(result.Report.Outcome), result.Documents); err != nil {
		return errors.ArtifactWriteError(dbPath, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.InternalError("marshal artifact", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.ArtifactWriteError(path, err)
	}
	return nil
}
