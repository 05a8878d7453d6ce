package main

import (
	"fmt"

	"github.com/fwojciec/negarit"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := negarit.DocumentFilter{Limit: c.Limit}
	switch c.Era {
	case "", "all":
	case "unknown":
		era := negarit.EraUnknown
		filter.Era = &era
	default:
		era := negarit.Era(c.Era)
		filter.Era = &era
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", negarit.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'negarit process' to index some.")
		return nil
	}

	for _, doc := range docs {
		title := doc.Record.Title
		if title == "" {
			title = doc.SourcePath
		}
		fmt.Fprintf(deps.Stdout, "%s  %-9s  %2d parts  %s\n", doc.ID, doc.Era, len(doc.Record.Parts), title)
	}

	return nil
}
