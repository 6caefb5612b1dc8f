// Package app wires the pipeline together: parse the reference, resolve the
// branch, guard the target, fetch the archive, and filter-extract it.
package app

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/repopick/repopick/internal/config"
	"github.com/repopick/repopick/internal/domain"
	"github.com/repopick/repopick/internal/extract"
	"github.com/repopick/repopick/internal/github"
	"github.com/repopick/repopick/internal/gitref"
	"github.com/repopick/repopick/internal/target"
	"github.com/repopick/repopick/internal/utils"
)

// Orchestrator coordinates a single extraction run
type Orchestrator struct {
	config    *config.Config
	client    *github.Client
	extractor *extract.Extractor
	fs        afero.Fs
	logger    *utils.Logger
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	Config  *config.Config
	Verbose bool

	// Client and Fs override the GitHub client and filesystem, used by tests
	Client *github.Client
	Fs     afero.Fs
	Logger *utils.Logger
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   cfg.Logging.Level,
			Format:  cfg.Logging.Format,
			Verbose: opts.Verbose,
		})
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	client := opts.Client
	if client == nil {
		client = github.NewClient(github.ClientOptions{
			Timeout: cfg.HTTP.Timeout,
			Logger:  logger.WithComponent("github"),
		})
	}

	extractor := extract.NewExtractor(extract.ExtractorOptions{
		Fs:     fs,
		Logger: logger.WithComponent("extract"),
		Quiet:  cfg.Output.Quiet,
	})

	return &Orchestrator{
		config:    cfg,
		client:    client,
		extractor: extractor,
		fs:        fs,
		logger:    logger,
	}, nil
}

// RunOptions contains the inputs of a single run
type RunOptions struct {
	Reference string
	Subfolder string
	TargetDir string
}

// Run executes the extraction pipeline. The returned RunContext carries the
// outcome for reporting even when an error is returned; the caller maps the
// error to an exit code exactly once.
func (o *Orchestrator) Run(ctx context.Context, opts RunOptions) (*domain.RunContext, error) {
	run := &domain.RunContext{}

	ref, err := gitref.Parse(opts.Reference)
	if err != nil {
		return run, fmt.Errorf("parse reference %q: %w", opts.Reference, err)
	}

	// A subfolder embedded in a tree URL wins over the positional argument.
	subfolder := ref.Subfolder
	if subfolder == "" {
		subfolder = gitref.NormalizeSubfolder(opts.Subfolder)
	}
	if subfolder == "" {
		return run, fmt.Errorf("no subfolder specified: %w", domain.ErrInvalidReference)
	}

	if !ref.HasBranch() {
		branch, err := o.client.DefaultBranch(ctx, ref.Owner, ref.Repo)
		if err != nil {
			return run, fmt.Errorf("resolve default branch: %w", err)
		}
		ref.Branch = branch
		o.logger.Debug().Str("branch", branch).Msg("Resolved default branch")
	}

	req := domain.DownloadRequest{
		Ref:       ref,
		Subfolder: subfolder,
		TargetDir: opts.TargetDir,
	}

	outDir, err := target.Resolve(req.TargetDir, req.Subfolder)
	if err != nil {
		return run, fmt.Errorf("resolve target directory: %w", err)
	}
	run.OutputDir = outDir

	// Guard before any bytes are fetched: a doomed run must not waste the
	// transfer or touch the target.
	if err := target.Check(o.fs, outDir); err != nil {
		return run, fmt.Errorf("check target directory: %w", err)
	}

	o.logger.Info().
		Str("repo", ref.Slug()).
		Str("branch", ref.Branch).
		Str("subfolder", req.Subfolder).
		Str("output", outDir).
		Msg("Starting extraction")

	scratchDir, err := afero.TempDir(o.fs, "", "repopick-")
	if err != nil {
		return run, fmt.Errorf("create scratch directory: %w", err)
	}
	run.ScratchDir = scratchDir
	defer func() {
		if err := o.fs.RemoveAll(scratchDir); err != nil {
			o.logger.Debug().Err(err).Str("dir", scratchDir).Msg("Scratch cleanup failed")
		}
	}()

	body, size, err := o.client.FetchArchive(ctx, ref)
	if err != nil {
		return run, fmt.Errorf("fetch archive: %w", err)
	}
	defer body.Close()

	spoolPath, err := o.extractor.Spool(body, scratchDir, size)
	if err != nil {
		return run, fmt.Errorf("download archive: %w", err)
	}

	if err := o.fs.MkdirAll(outDir, 0755); err != nil {
		return run, fmt.Errorf("create target directory: %w", err)
	}

	outcome, err := o.extractor.Extract(spoolPath, ref.ArchivePrefix(), req.Subfolder, outDir)
	run.Outcome = outcome
	if err != nil {
		return run, fmt.Errorf("extract %q: %w", req.Subfolder, err)
	}

	o.report(req, run)
	return run, nil
}

func (o *Orchestrator) report(req domain.DownloadRequest, run *domain.RunContext) {
	if len(run.Outcome.Errors) > 0 {
		o.logger.Warn().
			Int("failed_entries", len(run.Outcome.Errors)).
			Msg("Completed with some errors")
		for _, entryErr := range run.Outcome.Errors {
			o.logger.Warn().Str("entry", entryErr.Path).Msg(entryErr.Message)
		}
	}

	o.logger.Info().
		Str("subfolder", req.Subfolder).
		Str("output", run.OutputDir).
		Int("files", run.Outcome.FilesExtracted).
		Msg("Extraction complete")
}
