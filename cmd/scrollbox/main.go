package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/term"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/scrollbox/internal/app"
	"github.com/andyrewlee/scrollbox/internal/config"
	"github.com/andyrewlee/scrollbox/internal/logging"
	"github.com/andyrewlee/scrollbox/internal/messages"
	"github.com/andyrewlee/scrollbox/internal/safego"
	"github.com/andyrewlee/scrollbox/internal/supervisor"
	"github.com/andyrewlee/scrollbox/internal/ui/listbox"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	rows     int
	wide     bool
	header   bool
	follow   time.Duration
	file     string
	logLevel string
	version  bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("scrollbox", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&o.rows, "rows", 200, "number of generated rows")
	fs.BoolVar(&o.wide, "wide", false, "generate rows wider than the screen")
	fs.BoolVar(&o.header, "header", false, "start with a pinned header row")
	fs.DurationVar(&o.follow, "follow", 0, "append a row at this interval")
	fs.StringVar(&o.file, "file", "", "load rows from a file instead of generating them")
	fs.StringVar(&o.logLevel, "log-level", "debug", "log level (debug, info, warn, error)")
	fs.BoolVar(&o.version, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if o.rows < 0 {
		return o, errors.New("-rows must not be negative")
	}
	if o.follow < 0 {
		return o, errors.New("-follow must not be negative")
	}
	return o, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "scrollbox: %v\n", err)
		os.Exit(2)
	}
	if opts.version {
		fmt.Printf("scrollbox %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}
	if !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "scrollbox needs an interactive terminal")
		os.Exit(1)
	}
	os.Exit(run(opts))
}

func run(opts options) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	if err := cfg.Paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := logging.Initialize(cfg.Paths.LogsRoot, logging.ParseLevel(opts.logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()

	logging.Info("Starting scrollbox %s", version)
	startSignalDebug()
	startPprof()

	rows, err := loadRows(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rows: %v\n", err)
		return 1
	}

	zones := zone.New()
	defer zones.Close()

	a := app.New(cfg, rows, app.Options{
		Follow:         opts.follow > 0,
		FollowInterval: opts.follow,
		NextRow:        func(n int) string { return generatedRow(n, opts.wide) },
	})
	a.SetZone(zones)

	p := tea.NewProgram(a, tea.WithFilter(mouseEventFilter))
	a.SetMsgSender(p.Send)
	safego.SetPanicHandler(func(name string, recovered any, _ []byte) {
		a.Post(messages.Error{Err: fmt.Errorf("panic: %v", recovered), Context: name, Logged: true})
	})
	defer safego.SetPanicHandler(nil)

	sup := supervisor.New(context.Background())
	defer sup.Stop()
	sup.SetErrorHandler(func(name string, err error) {
		a.Post(messages.Error{Err: err, Context: name, Logged: true})
	})
	sup.Start("config-watcher", func(ctx context.Context) error {
		return watchConfig(ctx, cfg.Paths, a)
	}, supervisor.WithMaxRestarts(5))

	if _, err := p.Run(); err != nil {
		logging.Error("App exited with error: %v", err)
		fmt.Fprintln(os.Stderr, runError(err))
		return 1
	}
	logging.Info("scrollbox shutdown complete")
	return 0
}

// runError points at the log file when there is one.
func runError(err error) string {
	msg := fmt.Sprintf("Error running app: %v", err)
	if path := logging.GetLogPath(); path != "" {
		msg += fmt.Sprintf(" (details in %s)", path)
	}
	return msg
}

// watchConfig forwards config file changes to the app until ctx ends.
func watchConfig(ctx context.Context, paths *config.Paths, a *app.App) error {
	w, err := config.NewWatcher(paths, func(cfg *config.Config) {
		a.Post(messages.ConfigReloaded{Path: paths.ConfigPath, Config: cfg})
	})
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	defer w.Close()
	return w.Run(ctx)
}

func loadRows(opts options) ([]*listbox.Row, error) {
	var rows []*listbox.Row
	if opts.header {
		rows = append(rows, listbox.NewHeader("#   contents"))
	}
	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readRows(f, rows)
	}
	for i := 0; i < opts.rows; i++ {
		rows = append(rows, listbox.NewRow(generatedRow(i, opts.wide)))
	}
	return rows, nil
}

func readRows(r io.Reader, rows []*listbox.Row) ([]*listbox.Row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		rows = append(rows, listbox.NewRow(strings.TrimRight(sc.Text(), "\r")))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

func generatedRow(n int, wide bool) string {
	text := fmt.Sprintf("%03d  item %d", n, n)
	if wide {
		text += "  " + strings.Repeat("-=", 60+n%40)
	}
	return text
}

var (
	lastMouseMotionEvent   time.Time
	lastMouseWheelEvent    time.Time
	lastMouseX, lastMouseY int
)

// mouseEventFilter drops motion and wheel floods from fast trackpads.
// Motion to a new cell always passes so drag selection stays precise.
func mouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	switch msg := msg.(type) {
	case tea.MouseMotionMsg:
		if msg.X != lastMouseX || msg.Y != lastMouseY {
			lastMouseX = msg.X
			lastMouseY = msg.Y
			lastMouseMotionEvent = time.Now()
			return msg
		}
		now := time.Now()
		if now.Sub(lastMouseMotionEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseMotionEvent = now
	case tea.MouseWheelMsg:
		now := time.Now()
		if now.Sub(lastMouseWheelEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseWheelEvent = now
	}
	return msg
}

func startPprof() {
	raw := strings.TrimSpace(os.Getenv("SCROLLBOX_PPROF"))
	if raw == "" {
		return
	}
	switch strings.ToLower(raw) {
	case "0", "false", "no":
		return
	}

	addr := raw
	if raw == "1" || strings.ToLower(raw) == "true" {
		addr = "127.0.0.1:6060"
	} else if _, err := strconv.Atoi(raw); err == nil {
		addr = "127.0.0.1:" + raw
	}

	safego.Go("pprof", func() {
		logging.Info("pprof listening on %s", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			logging.Warn("pprof server stopped: %v", err)
		}
	})
}
