package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/negarit"
	"github.com/fwojciec/negarit/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *negarit.Config
	DB        *sqlite.DB
	Documents negarit.DocumentService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	ConfigPath string `name:"config" type:"path" env:"NEGARIT_CONFIG" help:"TOML configuration file"`
	Verbose    bool   `short:"v" help:"Log every pipeline step"`

	Process ProcessCmd `cmd:"" help:"Clean and extract every gazette file in the source directory"`
	Watch   WatchCmd   `cmd:"" help:"Process gazette files as they appear in the source directory"`
	Parse   ParseCmd   `cmd:"" help:"Print the record extracted from one file without writing anything"`
	List    ListCmd    `cmd:"" help:"List indexed documents"`
	Show    ShowCmd    `cmd:"" help:"Show an indexed document"`
	Delete  DeleteCmd  `cmd:"" help:"Remove a document from the index"`
	Config  ConfigCmd  `cmd:"" help:"Print the effective configuration"`
}

// PathFlags override the directories from the configuration file.
type PathFlags struct {
	Source string `type:"path" help:"Directory of raw gazette files"`
	Dest   string `type:"path" help:"Directory for cleaned copies (defaults to the source directory)"`
	Output string `type:"path" help:"Directory for serialized records"`
	Logs   string `type:"path" help:"Directory for the log file"`
}

func (p PathFlags) apply(paths *negarit.PathsConfig) {
	if p.Source != "" {
		paths.Source = p.Source
		paths.Dest = p.Source
	}
	if p.Dest != "" {
		paths.Dest = p.Dest
	}
	if p.Output != "" {
		paths.Output = p.Output
	}
	if p.Logs != "" {
		paths.Logs = p.Logs
	}
}

// ProcessCmd is the "process" subcommand.
type ProcessCmd struct {
	Paths       PathFlags     `embed:""`
	Format      string        `enum:"json,xml" default:"json" help:"Record format (json, xml)"`
	Concurrency int           `short:"c" default:"1" help:"Files processed in parallel"`
	Force       bool          `short:"f" help:"Process files even when their content was seen before"`
	Every       time.Duration `default:"5s" help:"Minimum interval between progress log lines"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	Paths   PathFlags     `embed:""`
	Format  string        `enum:"json,xml" default:"json" help:"Record format (json, xml)"`
	Force   bool          `short:"f" help:"Process files even when their content was seen before"`
	Initial bool          `help:"Process existing files before watching"`
	Quiet   time.Duration `default:"500ms" help:"Wait for a file to stop changing before processing it"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File    string `arg:"" type:"existingfile" help:"Gazette text or HTML file"`
	Cleaned bool   `help:"Print the cleaned text instead of the record"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Era   string `enum:"pre-2018,post-2018,unknown,all" default:"all" help:"Only list documents of this era"`
	Limit int    `short:"n" help:"Maximum number of documents"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Document ID"`
	JSON bool   `name:"json" help:"Print the record as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Document ID"`
	Force bool   `help:"Confirm deletion"`
}

// ConfigCmd is the "config" subcommand.
type ConfigCmd struct{}
