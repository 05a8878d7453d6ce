package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/negarit"
	"github.com/fwojciec/negarit/clean"
	"github.com/fwojciec/negarit/extract"
	"github.com/fwojciec/negarit/fs"
	"github.com/fwojciec/negarit/goquery"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	text := string(data)
	src := &negarit.Source{Path: c.File}
	if src.IsMarkup() {
		text, err = goquery.NewConverter().Convert(text)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", negarit.ErrorMessage(err))
			return err
		}
	}

	cleaned := clean.New(deps.Config.Clean).Normalize(text)
	if c.Cleaned {
		fmt.Fprintln(deps.Stdout, cleaned)
		return nil
	}

	rec := extract.New(deps.Config.Extract).Extract(cleaned)
	out, err := fs.MarshalRecord(rec)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	_, err = deps.Stdout.Write(out)
	return err
}
