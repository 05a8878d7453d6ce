package main

import (
	"fmt"

	"github.com/fwojciec/negarit"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return negarit.Errorf(negarit.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Documents.DeleteDocument(deps.Ctx, c.ID); err != nil {
		if negarit.ErrorCode(err) == negarit.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'negarit list' to see indexed documents.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", negarit.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted document %s\n", c.ID)
	return nil
}
