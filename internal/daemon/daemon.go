// Package daemon runs the build pipeline continuously: filesystem events and
// a periodic schedule both trigger full rebuilds, metrics are exposed over
// HTTP, and reports are optionally published to NATS.
package daemon

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/doctree/internal/build"
	"git.home.luguber.info/inful/doctree/internal/config"
	"git.home.luguber.info/inful/doctree/internal/errors"
	"git.home.luguber.info/inful/doctree/internal/logfields"
	"git.home.luguber.info/inful/doctree/internal/metrics"
	"git.home.luguber.info/inful/doctree/internal/watch"
)

// Daemon wires the pipeline to its triggers and reporting sinks.
type Daemon struct {
	cfg       *config.Config
	pipeline  *build.Pipeline
	recorder  *metrics.PrometheusRecorder
	publisher *Publisher

	buildMu sync.Mutex // serializes rebuilds; triggers may overlap

	statusMu    sync.RWMutex
	lastOutcome build.Outcome
	lastBuildID string
}

// New constructs a daemon from configuration.
func New(cfg *config.Config) (*Daemon, error) {
	recorder := metrics.NewPrometheusRecorder(nil)

	publisher, err := NewPublisher(cfg.Daemon.NATS)
	if err != nil {
		return nil, errors.DaemonStartError("nats", err)
	}

	return &Daemon{
		cfg:       cfg,
		pipeline:  build.NewPipeline(cfg, build.WithRecorder(recorder)),
		recorder:  recorder,
		publisher: publisher,
	}, nil
}

// Run blocks until the context is canceled. It performs an initial build,
// then rebuilds on content changes and on the configured schedule.
func (d *Daemon) Run(ctx context.Context) error {
	defer d.publisher.Close()

	httpServer := d.startHTTP()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	// Initial build before any trigger fires, so consumers have artifacts
	// immediately.
	d.rebuild(ctx, "startup")

	scheduler, err := d.startScheduler(ctx)
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer func() { _ = scheduler.Shutdown() }()
	}

	watcher, err := watch.New(d.cfg.Content.Root, d.cfg.Watch.DebounceDuration())
	if err != nil {
		return errors.DaemonStartError("watcher", err)
	}

	err = watcher.Run(ctx, func() {
		d.rebuild(ctx, "fsevent")
	})
	if err == context.Canceled {
		return nil
	}
	return err
}

// rebuild runs one serialized build pass and distributes the results.
func (d *Daemon) rebuild(ctx context.Context, trigger string) {
	d.buildMu.Lock()
	defer d.buildMu.Unlock()

	slog.Info("Rebuild triggered", slog.String("trigger", trigger))

	result, err := d.pipeline.Run(ctx)
	if err != nil {
		slog.Error("Build aborted", logfields.Error(err))
		return
	}

	if err := build.WriteArtifacts(result, d.cfg.Output.Directory); err != nil {
		slog.Error("Artifact write failed", logfields.Error(err))
	}
	if err := build.WriteIndex(ctx, result, d.cfg.Output.IndexDB); err != nil {
		slog.Error("Index write failed", logfields.Error(err))
	}

	d.publisher.Publish(result.Report)

	d.statusMu.Lock()
	d.lastOutcome = result.Report.Outcome
	d.lastBuildID = result.Report.BuildID
	d.statusMu.Unlock()
}

// startScheduler registers the periodic rebuild job when configured.
func (d *Daemon) startScheduler(ctx context.Context) (gocron.Scheduler, error) {
	interval := d.cfg.Daemon.RebuildIntervalDuration()
	if interval <= 0 {
		return nil, nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.DaemonStartError("scheduler", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { d.rebuild(ctx, "schedule") }),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return nil, errors.DaemonStartError("scheduler", err)
	}

	scheduler.Start()
	slog.Info("Periodic rebuild scheduled", slog.Duration("interval", interval))
	return scheduler, nil
}

// startHTTP serves /metrics and /healthz.
func (d *Daemon) startHTTP() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", d.recorder.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		d.statusMu.RLock()
		outcome, buildID := d.lastOutcome, d.lastBuildID
		d.statusMu.RUnlock()

		status := http.StatusOK
		if outcome == build.OutcomeFailed {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"outcome":  string(outcome),
			"build_id": buildID,
		})
	})

	server := &http.Server{
		Addr:              d.cfg.Daemon.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Daemon HTTP endpoint listening", slog.String("addr", d.cfg.Daemon.Listen))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server failed", logfields.Error(err))
		}
	}()
	return server
}
