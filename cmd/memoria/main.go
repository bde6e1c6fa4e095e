package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jeanpaul/memoria/internal/archive"
	"github.com/jeanpaul/memoria/internal/config"
	"github.com/jeanpaul/memoria/internal/ingest"
	"github.com/jeanpaul/memoria/internal/store"
	"github.com/jeanpaul/memoria/internal/tui"
)

const version = "0.3.0"

func main() {
	versionFlag := flag.Bool("version", false, "Print version")
	dataFlag := flag.String("data", "", "Override the data directory")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("memoria %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("config error: %s", err)
	}
	if *dataFlag != "" {
		cfg.DataDir = *dataFlag
	}

	log, err := newLogger(cfg.LogPath())
	if err != nil {
		fatal("logger: %s", err)
	}
	defer log.Sync()

	slot := store.NewSlot(cfg.SlotPath(), log)
	st := store.Open(slot, log)

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "import":
			cmdImport(st, log, args[1:])
			return
		case "export":
			cmdExport(st, args[1:])
			return
		case "restore":
			cmdRestore(st, args[1:])
			return
		case "help":
			showHelp()
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
			showHelp()
			os.Exit(1)
		}
	}

	launchTUI(cfg, st, log)
}

// newLogger writes structured logs to a file so they never bleed into
// the alternate screen the TUI owns.
func newLogger(path string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}

// cmdImport ingests image files from the command line, one at a time,
// without starting the TUI.
func cmdImport(st *store.Store, log *zap.Logger, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	comment := fs.String("comment", "", "Base comment for the imported memories")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fatal("usage: memoria import [--comment text] <file-or-glob>...")
	}

	files, err := ingest.Expand(fs.Args())
	if err != nil {
		fatal("expanding patterns: %s", err)
	}

	in := ingest.New(st, log)
	created, err := in.Run(files, *comment, func(done, total int) {
		fmt.Printf("\r  Importing %d/%d...", done, total)
	})
	fmt.Println()
	if err != nil {
		fatal("%s", err)
	}
	fmt.Printf("  Imported %d of %d file(s)\n", created, len(files))
}

// cmdExport writes the whole collection to stdout or a file.
func cmdExport(st *store.Store, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", archive.FormatJSON, "Output format (json or yaml)")
	out := fs.String("o", "", "Output file (default stdout)")
	fs.Parse(args)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fatal("creating %s: %s", *out, err)
		}
		defer f.Close()
		w = f
	}

	if err := archive.Export(w, st.List(), *format); err != nil {
		fatal("export failed: %s", err)
	}
}

// cmdRestore loads an exported archive back into the journal. Every
// imported record gets a fresh id, so restoring twice duplicates
// rather than overwrites.
func cmdRestore(st *store.Store, args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	format := fs.String("format", archive.FormatJSON, "Input format (json or yaml)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatal("usage: memoria restore [--format json|yaml] <file>")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fatal("opening %s: %s", fs.Arg(0), err)
	}
	defer f.Close()

	fields, err := archive.Import(f, *format)
	if err != nil {
		fatal("restore failed: %s", err)
	}

	for _, fl := range fields {
		if _, err := st.Create(fl); err != nil {
			fatal("saving restored record: %s", err)
		}
	}
	fmt.Printf("  Restored %d record(s)\n", len(fields))
}

func launchTUI(cfg *config.Config, st *store.Store, log *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The model registers the change hook; the watcher must not fire
	// notifications before that.
	m := tui.NewModel(cfg, st, log)

	if cfg.WatchSlot {
		go func() {
			if err := st.Watch(ctx); err != nil {
				log.Warn("slot watcher stopped", zap.Error(err))
			}
		}()
	}

	var opts []tea.ProgramOption
	if isTerminal() {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(m, opts...)
	if _, err := p.Run(); err != nil {
		fatal("TUI error: %s", err)
	}
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, tui.WarningStyle.Render("error: "+msg))
	os.Exit(1)
}

func showHelp() {
	help := `
` + tui.TitleStyle.Render(" memoria ") + ` - a photo journal for your terminal

` + tui.FilterLabelStyle.Render("USAGE:") + `
  memoria [flags]                       Open the journal
  memoria <command> [args]              Run a command

` + tui.FilterLabelStyle.Render("COMMANDS:") + `
  import [--comment text] <glob>...     Add image files as memories
  export [--format json|yaml] [-o f]    Write the collection to a file
  restore [--format json|yaml] <file>   Load an exported collection
  help                                  Show this help

` + tui.FilterLabelStyle.Render("FLAGS:") + `
  --data <dir>                          Override the data directory
  --version                             Show version
  --help, -h                            Show this help

` + tui.FilterLabelStyle.Render("KEYS:") + `
  ↑/↓        Browse memories            /          Search comments
  a          Add memories               c          Filter by date
  e          Edit selection             d          Delete selection
  r          Reload from disk           ?          Help
  q          Quit
`
	fmt.Println(help)
}
