// Package run drives one scenario run from snapshot to written outputs.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/planshift/internal/clock"
	"github.com/smallbiznis/planshift/internal/config"
	obslogger "github.com/smallbiznis/planshift/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/planshift/internal/observability/metrics"
	"github.com/smallbiznis/planshift/internal/observability/tracing"
	portfoliodomain "github.com/smallbiznis/planshift/internal/portfolio/domain"
	portfolioservice "github.com/smallbiznis/planshift/internal/portfolio/service"
	"github.com/smallbiznis/planshift/internal/report"
	"github.com/smallbiznis/planshift/internal/runlock"
	"github.com/smallbiznis/planshift/internal/runmetrics"
	scenariodomain "github.com/smallbiznis/planshift/internal/scenario/domain"
	"github.com/smallbiznis/planshift/internal/snapshot"
	"github.com/smallbiznis/planshift/pkg/telemetry/runctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrDatabaseDisabled = errors.New("database_disabled")
	ErrMissingOutput    = errors.New("missing_output_path")
	ErrMissingSnapshot  = errors.New("missing_snapshot_source")
)

// Options selects the inputs and outputs of one run.
type Options struct {
	// RunID replaces the results of an earlier run when set.
	RunID string
	Label string

	SnapshotDir string
	FromDB      bool
	SnapshotID  string

	OutputPath string
	CSVPath    string
	ReportPath string

	Persist bool
}

// OptionsFromConfig builds run options from the application config.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Label:       cfg.RunLabel,
		SnapshotDir: cfg.SnapshotDir,
		FromDB:      cfg.FromDB,
		OutputPath:  cfg.OutputPath,
		CSVPath:     cfg.CSVPath,
		ReportPath:  cfg.ReportPath,
		Persist:     cfg.PersistResults,
	}
}

// Outcome describes a finished run.
type Outcome struct {
	RunID          string
	SnapshotID     string
	CatalogVersion string
	Results        []scenariodomain.Result
	Summary        portfoliodomain.Summary
	Files          []string
	Persisted      int
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Catalogs *config.CatalogHolder
	Scenario scenariodomain.Service
	Clock    clock.Clock

	DB          *gorm.DB                  `optional:"true"`
	GenID       *snowflake.Node           `optional:"true"`
	Store       *snapshot.Store           `optional:"true"`
	ResultsRepo scenariodomain.Repository `optional:"true"`
	Locker      *runlock.Locker           `optional:"true"`
	Metrics     *obsmetrics.Metrics       `optional:"true"`
	Gauges      *runmetrics.Gauges        `optional:"true"`
	Pusher      runmetrics.Pusher         `optional:"true"`
}

type Runner struct {
	log         *zap.Logger
	catalogs    *config.CatalogHolder
	scenario    scenariodomain.Service
	clock       clock.Clock
	db          *gorm.DB
	genID       *snowflake.Node
	store       *snapshot.Store
	resultsRepo scenariodomain.Repository
	locker      *runlock.Locker
	metrics     *obsmetrics.Metrics
	gauges      *runmetrics.Gauges
	pusher      runmetrics.Pusher
}

func NewRunner(p Params) *Runner {
	clk := p.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &Runner{
		log:         p.Log.Named("run"),
		catalogs:    p.Catalogs,
		scenario:    p.Scenario,
		clock:       clk,
		db:          p.DB,
		genID:       p.GenID,
		store:       p.Store,
		resultsRepo: p.ResultsRepo,
		locker:      p.Locker,
		metrics:     p.Metrics,
		gauges:      p.Gauges,
		pusher:      p.Pusher,
	}
}

// Run evaluates every customer of a snapshot and writes the results. Outputs
// are rendered in full before any file is written, and persisted rows replace
// earlier rows of the same run in one transaction.
func (r *Runner) Run(ctx context.Context, opts Options) (out Outcome, err error) {
	if strings.TrimSpace(opts.OutputPath) == "" {
		return Outcome{}, ErrMissingOutput
	}
	if opts.Persist && (r.db == nil || r.resultsRepo == nil || r.genID == nil) {
		return Outcome{}, fmt.Errorf("persist results: %w", ErrDatabaseDisabled)
	}

	ctx, meta := runctx.Ensure(ctx, opts.RunID, opts.Label)
	runID := meta.ID
	started := r.clock.Now()

	ctx, span := tracing.Start(ctx, "planshift.run",
		attribute.String("run_id", runID),
		attribute.String("run_label", opts.Label),
	)
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, "run failed")
		}
		r.metrics.RecordRun(ctx, outcome, r.clock.Now().Sub(started))
		span.End()
	}()

	log := obslogger.WithContext(ctx, r.log)

	release, err := r.locker.Acquire(ctx)
	if err != nil {
		return Outcome{}, err
	}
	defer func() {
		if relErr := release(context.WithoutCancel(ctx)); relErr != nil {
			log.Warn("release run lock", zap.Error(relErr))
		}
	}()

	catalogs := r.catalogs.Get()
	log.Info("run started",
		zap.String("catalog_version", catalogs.Version),
		zap.String("catalog_source", r.catalogs.Source()),
	)

	snap, err := r.loadSnapshot(ctx, opts)
	if err != nil {
		return Outcome{}, err
	}
	if err := snapshot.Validate(snap, catalogs.Capabilities); err != nil {
		return Outcome{}, fmt.Errorf("validate snapshot: %w", err)
	}
	log.Info("snapshot loaded",
		zap.String("source", snap.Source),
		zap.Int("customers", len(snap.Customers)),
		zap.Int("usage_records", len(snap.Usage)),
		zap.Int("line_items", len(snap.LineItems)),
	)

	results, err := r.scenario.EvaluateAll(ctx, catalogs, snapshot.Inputs(snap))
	if err != nil {
		return Outcome{}, fmt.Errorf("evaluate scenarios: %w", err)
	}
	summary := portfolioservice.Summarize(results)

	rows := make([]scenariodomain.Row, len(results))
	for i, result := range results {
		rows[i] = result.Row()
	}

	artifacts, err := r.render(opts, runID, snap.Source, catalogs.Version, rows, summary)
	if err != nil {
		return Outcome{}, err
	}

	persisted := 0
	if opts.Persist {
		persisted, err = r.persist(ctx, runID, results)
		if err != nil {
			return Outcome{}, err
		}
	}

	files := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		data := a.data
		if err := report.WriteFile(a.path, func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}); err != nil {
			return Outcome{}, fmt.Errorf("write %s: %w", a.path, err)
		}
		files = append(files, a.path)
	}

	r.publish(ctx, log, summary)

	for _, line := range portfolioservice.Lines(summary) {
		log.Info(line)
	}
	log.Info("run finished",
		zap.Strings("files", files),
		zap.Int("persisted", persisted),
		zap.Duration("elapsed", r.clock.Now().Sub(started)),
	)

	return Outcome{
		RunID:          runID,
		SnapshotID:     snap.ID,
		CatalogVersion: catalogs.Version,
		Results:        results,
		Summary:        summary,
		Files:          files,
		Persisted:      persisted,
	}, nil
}

func (r *Runner) loadSnapshot(ctx context.Context, opts Options) (snapshot.Snapshot, error) {
	if opts.FromDB {
		if r.store == nil {
			return snapshot.Snapshot{}, fmt.Errorf("load snapshot: %w", ErrDatabaseDisabled)
		}
		snap, err := r.store.Load(ctx, opts.SnapshotID)
		if err != nil {
			return snapshot.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
		}
		return snap, nil
	}

	if strings.TrimSpace(opts.SnapshotDir) == "" {
		return snapshot.Snapshot{}, ErrMissingSnapshot
	}
	snap, err := snapshot.Load(opts.SnapshotDir)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

type artifact struct {
	path string
	data []byte
}

func (r *Runner) render(opts Options, runID, source, catalogVersion string, rows []scenariodomain.Row, summary portfoliodomain.Summary) ([]artifact, error) {
	var artifacts []artifact

	var jsonBuf bytes.Buffer
	if err := report.WriteJSON(&jsonBuf, rows); err != nil {
		return nil, fmt.Errorf("render json: %w", err)
	}
	artifacts = append(artifacts, artifact{
		path: report.ArtifactPath(opts.OutputPath, opts.Label, ".json"),
		data: jsonBuf.Bytes(),
	})

	if path := report.ArtifactPath(opts.CSVPath, opts.Label, ".csv"); path != "" {
		var csvBuf bytes.Buffer
		if err := report.WriteCSV(&csvBuf, rows); err != nil {
			return nil, fmt.Errorf("render csv: %w", err)
		}
		artifacts = append(artifacts, artifact{path: path, data: csvBuf.Bytes()})
	}

	if path := report.ArtifactPath(opts.ReportPath, opts.Label, ".pdf"); path != "" {
		doc, err := report.PortfolioPDF(report.Meta{
			Label:          opts.Label,
			RunID:          runID,
			Source:         source,
			CatalogVersion: catalogVersion,
			GeneratedAt:    r.clock.Now(),
		}, summary)
		if err != nil {
			return nil, fmt.Errorf("render pdf: %w", err)
		}
		artifacts = append(artifacts, artifact{path: path, data: doc})
	}

	return artifacts, nil
}

func (r *Runner) persist(ctx context.Context, runID string, results []scenariodomain.Result) (int, error) {
	records := make([]scenariodomain.ResultRecord, len(results))
	for i, result := range results {
		record, err := result.Record(r.genID.Generate(), runID)
		if err != nil {
			return 0, fmt.Errorf("encode result %s: %w", result.CustomerID, err)
		}
		records[i] = record
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.resultsRepo.DeleteByRun(ctx, tx, runID); err != nil {
			return err
		}
		return r.resultsRepo.BatchInsert(ctx, tx, records)
	})
	if err != nil {
		return 0, fmt.Errorf("persist results: %w", err)
	}
	return len(records), nil
}

func (r *Runner) publish(ctx context.Context, log *zap.Logger, summary portfoliodomain.Summary) {
	if r.gauges == nil {
		return
	}
	r.gauges.Observe(summary, float64(r.clock.Now().Unix()))
	if r.pusher == nil {
		return
	}

	pushCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := r.pusher.Push(pushCtx, r.gauges.Registry()); err != nil {
		log.Warn("push run metrics", zap.Error(err))
	}
}
