package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/negarit"
	"github.com/fwojciec/negarit/clean"
	"github.com/fwojciec/negarit/etree"
	"github.com/fwojciec/negarit/extract"
	"github.com/fwojciec/negarit/fs"
	"github.com/fwojciec/negarit/goquery"
	"github.com/fwojciec/negarit/ingest"
	negslog "github.com/fwojciec/negarit/slog"
)

// newIngester wires the processing pipeline from the effective configuration.
func newIngester(deps *Dependencies, format string, force bool) (*ingest.Ingester, error) {
	paths := deps.Config.Paths
	dirs := []string{paths.Output}
	if paths.Dest != paths.Source {
		dirs = append(dirs, paths.Dest)
	}
	if err := fs.EnsureDirs(dirs...); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	var records negarit.RecordWriter
	switch format {
	case "", "json":
		records = fs.NewRecordWriter(paths.Output)
	case "xml":
		records = etree.NewRecordWriter(paths.Output)
	default:
		return nil, negarit.Errorf(negarit.EINVALID, "unknown record format %q", format)
	}

	return &ingest.Ingester{
		Sources:    fs.NewSourceDir(paths.Source, paths.Dest),
		Converter:  goquery.NewConverter(),
		Normalizer: negslog.NewLoggingNormalizer(clean.New(deps.Config.Clean), deps.Logger),
		Extractor:  negslog.NewLoggingExtractor(extract.New(deps.Config.Extract), deps.Logger),
		Records:    negslog.NewLoggingRecordWriter(records, deps.Logger),
		Documents:  deps.Documents,
		Logger:     deps.Logger,
		Force:      force,
	}, nil
}

// Run executes the process command.
func (c *ProcessCmd) Run(deps *Dependencies) error {
	in, err := newIngester(deps, c.Format, c.Force)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", negarit.ErrorMessage(err))
		return err
	}
	in.Concurrency = c.Concurrency

	progress := negslog.NewProgressLogger(deps.Logger, c.Every)
	result, err := in.Run(deps.Ctx, progress.Log)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", negarit.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Processed %d files (%d skipped, %d failed), extracted %d parts\n",
		result.Processed, result.Skipped, result.Failed, result.Parts)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "See %s for details\n", logPath(deps.Config))
	}
	return nil
}

func logPath(cfg *negarit.Config) string {
	return filepath.Join(cfg.Paths.Logs, LogFileName)
}
