package main

import (
	"fmt"

	"github.com/fwojciec/negarit/toml"
)

// Run executes the config command.
func (c *ConfigCmd) Run(deps *Dependencies) error {
	out, err := toml.EncodeConfig(deps.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	_, err = deps.Stdout.Write(out)
	return err
}
