package main

import (
	"fmt"

	"github.com/fwojciec/negarit"
	"github.com/fwojciec/negarit/fs"
)

// Run executes the watch command. It returns when the context is cancelled.
func (c *WatchCmd) Run(deps *Dependencies) error {
	in, err := newIngester(deps, c.Format, c.Force)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", negarit.ErrorMessage(err))
		return err
	}

	if c.Initial {
		result, err := in.Run(deps.Ctx, nil)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", negarit.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Processed %d existing files (%d skipped, %d failed)\n",
			result.Processed, result.Skipped, result.Failed)
	}

	dir := deps.Config.Paths.Source
	fmt.Fprintf(deps.Stdout, "Watching %s\n", dir)

	w := fs.NewWatcher(dir, c.Quiet)
	err = w.Watch(deps.Ctx, func(path string) {
		doc, err := in.ProcessFile(deps.Ctx, path)
		switch {
		case negarit.ErrorCode(err) == negarit.ECONFLICT:
			deps.Logger.Info("duplicate skipped", "path", path, "reason", negarit.ErrorMessage(err))
		case err != nil:
			deps.Logger.Error("processing failed", "path", path, "error", err)
		default:
			fmt.Fprintf(deps.Stdout, "%s -> %s\n", path, doc.RecordPath)
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", negarit.ErrorMessage(err))
		return err
	}
	return nil
}
