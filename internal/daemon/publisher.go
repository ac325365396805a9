package daemon

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/doctree/internal/build"
	"git.home.luguber.info/inful/doctree/internal/config"
	"git.home.luguber.info/inful/doctree/internal/logfields"
)

// Publisher pushes build reports to a NATS subject so downstream consumers
// (site deployer, notification bots) see every verdict.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to NATS. Returns nil without error when publishing
// is disabled in the configuration.
func NewPublisher(cfg config.NATSConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name("doctree"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	slog.Info("NATS report publishing enabled", slog.String("url", cfg.URL), slog.String("subject", cfg.Subject))

	return &Publisher{
		conn:    conn,
		subject: cfg.Subject,
	}, nil
}

// Publish sends one build report. Failures are logged, not fatal: a missing
// consumer must never fail a build.
func (p *Publisher) Publish(report *build.Report) {
	if p == nil {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		slog.Warn("Failed to marshal build report", logfields.Error(err))
		return
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		slog.Warn("Failed to publish build report",
			logfields.BuildID(report.BuildID),
			logfields.Error(err))
		return
	}
	slog.Debug("Build report published",
		logfields.BuildID(report.BuildID),
		logfields.Outcome(string(report.Outcome)))
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		slog.Warn("NATS drain failed", logfields.Error(err))
	}
}
