package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/negarit"
	"github.com/fwojciec/negarit/fs"
	"github.com/fwojciec/negarit/sqlite"
	"github.com/fwojciec/negarit/toml"
)

// LogFileName is the name of the log file written to the logs directory.
const LogFileName = "negarit.log"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DocumentService negarit.DocumentService

	logFile *os.File
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.logFile != nil {
		_ = m.logFile.Close()
		m.logFile = nil
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Kong calls exit after printing help; record it instead of exiting.
	var exited bool
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("negarit"),
		kong.Description("Clean OCR text of Federal Negarit Gazette proclamations and extract structured records"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { exited = true }),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'negarit --help' to see available commands")
	}

	if args[0] == "help" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if exited {
		return nil
	}
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := toml.LoadConfig(cli.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", negarit.ErrorMessage(err))
		return err
	}
	switch cmd {
	case "process":
		cli.Process.Paths.apply(&cfg.Paths)
	case "watch":
		cli.Watch.Paths.apply(&cfg.Paths)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", negarit.ErrorMessage(err))
		return err
	}
	deps.Config = cfg
	defer m.Close()

	// Batch commands also log to a file in the logs directory.
	logOut := stderr
	if cmd == "process" || cmd == "watch" {
		if err := fs.EnsureDirs(cfg.Paths.Logs); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
		m.logFile, err = os.OpenFile(filepath.Join(cfg.Paths.Logs, LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logOut = io.MultiWriter(stderr, m.logFile)
	}
	deps.Logger = newLogger(logOut, cli.Verbose)

	if cmd == "parse" || cmd == "config" {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set NEGARIT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}

	m.DocumentService = sqlite.NewDocumentService(m.DB)
	deps.DB = m.DB
	deps.Documents = m.DocumentService

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("NEGARIT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "negarit.db"
	}
	dir := filepath.Join(home, ".negarit")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "negarit.db")
}
