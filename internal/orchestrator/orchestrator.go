// File: internal/orchestrator/orchestrator.go
// Description: Runs one report generation: parses both scan categories, derives
// the aggregate report and writes it out. It is the only component that touches
// the filesystem, the metadata source and the console.

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/scanbrief/api/schemas"
	"github.com/xkilldash9x/scanbrief/internal/config"
	"github.com/xkilldash9x/scanbrief/internal/console"
	"github.com/xkilldash9x/scanbrief/internal/findings"
	"github.com/xkilldash9x/scanbrief/internal/metadata"
	"github.com/xkilldash9x/scanbrief/internal/narrative"
	"github.com/xkilldash9x/scanbrief/internal/reporting"
	"github.com/xkilldash9x/scanbrief/internal/results"
	"github.com/xkilldash9x/scanbrief/internal/risk"
)

// ErrOutputWrite is returned when the report document cannot be written. It is
// the only error that makes a run fail; finding counts never do.
var ErrOutputWrite = errors.New("failed to write security report")

// Deps are the collaborators of an Orchestrator. Fs, Clock, Stdout and Metadata
// default to the OS filesystem, time.Now, os.Stdout and the environment.
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Fs       afero.Fs
	Metadata metadata.Provider
	Clock    func() time.Time
	Stdout   io.Writer
}

// Outcome describes a completed run.
type Outcome struct {
	RunID      string
	OutputPath string
	Report     *schemas.AggregateReport
	Bytes      int
}

// Orchestrator manages a single report generation.
type Orchestrator struct {
	cfg       *config.Config
	logger    *zap.Logger
	fs        afero.Fs
	meta      metadata.Provider
	clock     func() time.Time
	parser    *findings.Parser
	assembler *narrative.Assembler
	renderer  reporting.Renderer
	printer   *console.Printer
}

// New creates an Orchestrator. The output format is resolved here so an
// unsupported format fails before any input is read.
func New(d Deps) (*Orchestrator, error) {
	if d.Config == nil || d.Logger == nil {
		return nil, fmt.Errorf("cannot initialize orchestrator with nil dependencies")
	}
	if d.Fs == nil {
		d.Fs = afero.NewOsFs()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Metadata == nil {
		m := d.Config.Metadata
		d.Metadata = metadata.NewEnvProvider(metadata.EnvNames{
			Branch:     m.BranchEnv,
			Commit:     m.CommitEnv,
			Repository: m.RepositoryEnv,
		})
	}

	renderer, err := reporting.New(d.Config.Output.Format, d.Logger)
	if err != nil {
		return nil, err
	}

	n := d.Config.Narrative
	assembler := narrative.NewAssembler(map[schemas.Category]narrative.Caps{
		schemas.CategoryFilesystem:     narrative.Caps(n.Filesystem),
		schemas.CategoryInfrastructure: narrative.Caps(n.Infrastructure),
	}, d.Logger)

	return &Orchestrator{
		cfg:       d.Config,
		logger:    d.Logger.Named("orchestrator"),
		fs:        d.Fs,
		meta:      d.Metadata,
		clock:     d.Clock,
		parser:    findings.NewParser(d.Fs, d.Logger),
		assembler: assembler,
		renderer:  renderer,
		printer:   console.NewPrinter(d.Stdout),
	}, nil
}

// Run parses the configured inputs, writes the report and prints the console
// summary. Missing or malformed inputs are reported inside the document and do
// not fail the run. Cancellation of ctx is logged but not honoured: a run
// always ends with a written report or ErrOutputWrite.
func (o *Orchestrator) Run(ctx context.Context) (*Outcome, error) {
	runID := uuid.NewString()
	logger := o.logger.With(zap.String("run_id", runID))
	o.printer.Start()

	if ctx.Err() != nil {
		logger.Warn("Interrupt received; finishing the report before exiting")
	}
	fsResult, iacResult := o.parseAll()

	meta := metadata.Resolve(o.meta.Lookup())
	meta.GeneratedAt = o.clock()
	report := BuildReport(fsResult, iacResult, meta, o.assembler)

	logger.Info("Aggregated scan results",
		zap.Int("total", report.Total),
		zap.Int("high", report.Counts.High),
		zap.Int("medium", report.Counts.Medium),
		zap.Int("low", report.Counts.Low),
		zap.String("risk", string(report.Risk)),
		zap.String("verdict", string(report.Verdict)),
	)

	doc, err := o.renderer.Render(report)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	path := o.cfg.Output.Path
	if err := writeAtomic(o.fs, path, doc); err != nil {
		logger.Error("Could not write report", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w to %s: %v", ErrOutputWrite, path, err)
	}
	logger.Info("Report written",
		zap.String("path", path),
		zap.String("format", o.renderer.Format()),
		zap.Int("bytes", len(doc)),
	)

	o.printer.Done(path, report.Total)
	return &Outcome{RunID: runID, OutputPath: path, Report: report, Bytes: len(doc)}, nil
}

// parseAll parses both categories concurrently. Each goroutine writes only its
// own result slot.
func (o *Orchestrator) parseAll() (schemas.ScanResult, schemas.ScanResult) {
	inputs := [2]string{o.cfg.Input.Filesystem, o.cfg.Input.Infrastructure}
	var out [2]schemas.ScanResult

	var g errgroup.Group
	for i, category := range schemas.Categories {
		g.Go(func() error {
			out[i] = o.parser.Parse(category, inputs[i])
			return nil
		})
	}
	_ = g.Wait()
	return out[0], out[1]
}

// BuildReport derives the aggregate report from the two parsed categories. It
// performs no I/O.
func BuildReport(fsResult, iacResult schemas.ScanResult, meta schemas.Metadata, assembler *narrative.Assembler) *schemas.AggregateReport {
	summary := results.Aggregate(fsResult, iacResult)
	assessment := risk.Assess(summary.Counts)

	return &schemas.AggregateReport{
		Metadata:       meta,
		Filesystem:     fsResult,
		Infrastructure: iacResult,
		Counts:         summary.Counts,
		Total:          summary.Total,
		Narrative:      assembler.Assemble(summary, assessment.Tier),
		Risk:           assessment.Tier,
		Verdict:        assessment.Verdict,
	}
}

// writeAtomic writes data to a temporary file next to path and renames it into
// place, so readers never observe a partially written report.
func writeAtomic(fsys afero.Fs, path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp, err := afero.TempFile(fsys, dir, ".scanbrief-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = fsys.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return fsys.Rename(tmpName, path)
}
