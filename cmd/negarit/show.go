package main

import (
	"fmt"

	"github.com/fwojciec/negarit"
	"github.com/fwojciec/negarit/fs"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		if negarit.ErrorCode(err) == negarit.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'negarit list' to see indexed documents.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", negarit.ErrorMessage(err))
		return err
	}

	if c.JSON {
		out, err := fs.MarshalRecord(&doc.Record)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		_, err = deps.Stdout.Write(out)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Source:    %s\n", doc.SourcePath)
	fmt.Fprintf(deps.Stdout, "Record:    %s\n", doc.RecordPath)
	fmt.Fprintf(deps.Stdout, "Era:       %s\n", doc.Era)
	fmt.Fprintf(deps.Stdout, "Hash:      %s\n", doc.ContentHash)
	fmt.Fprintf(deps.Stdout, "Processed: %s\n\n", doc.ProcessedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprint(deps.Stdout, negarit.FormatRecord(&doc.Record))
	return nil
}
