package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/pixelplane/renderwin/internal/config"
	"github.com/pixelplane/renderwin/internal/geometry"
	"github.com/pixelplane/renderwin/internal/input"
	"github.com/pixelplane/renderwin/internal/present"
	"github.com/pixelplane/renderwin/internal/surface"
	"github.com/pixelplane/renderwin/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runWindow(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "plan":
		os.Exit(runPlan(os.Args[2:]))
	case "params":
		os.Exit(runParams(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: renderwin <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Create the configured window (foreground)")
	fmt.Fprintln(w, "  monitors            List monitors in adapter order")
	fmt.Fprintln(w, "  plan                Show the planned window placement")
	fmt.Fprintln(w, "  params              Show the negotiated presentation parameters")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'renderwin <command> --help' for command-specific options.")
}

func runWindow(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/renderwin/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: renderwin run [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Create the configured window and keep it on screen until interrupted.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := newLogger(cfg.LogLevel)

	conn, err := x11.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	reg := surface.NewRegistry()
	opts := surfaceOptions(cfg, logger)
	opts.Registry = reg

	s, err := surface.New(conn, conn, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer s.Close()

	logger.Info("window created",
		"window", uint64(s.Window()),
		"client", fmt.Sprintf("%dx%d", s.Width(), s.Height()),
		"position", fmt.Sprintf("%d,%d", s.Left(), s.Top()),
		"fullscreen", s.Fullscreen())

	conn.WatchGeometry(s.Window(), reg, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		conn.StopEventLoop()
	}()

	// The event loop stays on this goroutine: the surface is single-owner
	// and geometry notifications must come from its creator.
	conn.EventLoop()
	logger.Info("shutting down")
	return 0
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Output as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: renderwin monitors [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List active monitors in adapter enumeration order.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	conn, err := x11.NewConnection()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer conn.Close()

	monitors, err := conn.Monitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asJSON {
		type jsonMonitor struct {
			Adapter     int           `json:"adapter"`
			Full        geometry.Rect `json:"full"`
			Work        geometry.Rect `json:"work"`
			RefreshRate int           `json:"refresh_rate"`
			Primary     bool          `json:"primary"`
		}
		out := make([]jsonMonitor, 0, len(monitors))
		for i, mon := range monitors {
			out = append(out, jsonMonitor{
				Adapter:     i,
				Full:        mon.Full,
				Work:        mon.Work,
				RefreshRate: mon.RefreshRate,
				Primary:     mon.Primary,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	for i, mon := range monitors {
		primary := ""
		if mon.Primary {
			primary = " (primary)"
		}
		fmt.Printf("adapter %d: %dx%d+%d+%d work %dx%d+%d+%d %dHz%s\n",
			i,
			mon.Full.Width, mon.Full.Height, mon.Full.Left, mon.Full.Top,
			mon.Work.Width, mon.Work.Height, mon.Work.Left, mon.Work.Top,
			mon.RefreshRate, primary)
	}
	return 0
}

func runPlan(args []string) int {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/renderwin/config.yaml)")
	width := fs.Int("width", 0, "Client width (overrides config)")
	height := fs.Int("height", 0, "Client height (overrides config)")
	monitor := fs.Int("monitor", -2, "Adapter index (overrides config, -1 = automatic)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: renderwin plan [--config PATH] [--width N] [--height N] [--monitor N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show where the window would be placed, without creating it.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *monitor >= -1 {
		cfg.Window.Monitor = *monitor
	}

	conn, err := x11.NewConnection()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer conn.Close()

	mon, byAdapter := conn.AdapterMonitor(cfg.Window.Monitor)
	if !byAdapter {
		anchor := geometry.Point{}
		if cfg.Window.Left != nil {
			anchor.X = *cfg.Window.Left
		}
		if cfg.Window.Top != nil {
			anchor.Y = *cfg.Window.Top
		}
		mon = conn.MonitorFromPoint(anchor)
	}

	if cfg.Window.Fullscreen {
		fmt.Printf("fullscreen %dx%d at %d,%d\n",
			cfg.Window.Width, cfg.Window.Height, mon.Full.Left, mon.Full.Top)
		return 0
	}

	insets := geometry.Insets{}
	if !cfg.Window.OuterDimensions {
		insets = conn.DecorationInsets(surface.Style{Border: borderStyle(cfg.Window.Border)})
	}
	adapterRelative := byAdapter && (cfg.Window.Left != nil || cfg.Window.Top != nil)
	rect := geometry.Place(cfg.Window.Width, cfg.Window.Height, insets, mon.Work,
		cfg.Window.Left, cfg.Window.Top, adapterRelative)
	rect = geometry.ClampToWork(rect, mon.Work)

	fmt.Printf("outer %dx%d at %d,%d (work area %dx%d+%d+%d)\n",
		rect.Width, rect.Height, rect.Left, rect.Top,
		mon.Work.Width, mon.Work.Height, mon.Work.Left, mon.Work.Top)
	return 0
}

func runParams(args []string) int {
	fs := flag.NewFlagSet("params", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/renderwin/config.yaml)")
	refresh := fs.Int("refresh", 60, "Display refresh rate for fullscreen negotiation")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: renderwin params [--config PATH] [--refresh N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Negotiate presentation parameters against a baseline capability set")
		fmt.Fprintln(os.Stderr, "and print the result.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	params, err := present.Negotiate(present.Request{
		Width:           cfg.Window.Width,
		Height:          cfg.Window.Height,
		Fullscreen:      cfg.Window.Fullscreen,
		ColorDepth:      cfg.Present.ColorDepth,
		VSync:           cfg.Present.VSync,
		VSyncInterval:   cfg.Present.VSyncInterval,
		Multisample:     uint32(cfg.Present.Multisample.Samples),
		MultisampleHint: cfg.Present.Multisample.Hint,
		DepthBuffer:     cfg.Present.DepthBuffer,
		RefreshRate:     *refresh,
	}, baselineProbe{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("backbuffer:     %dx%d x%d %v\n",
		params.BackBufferWidth, params.BackBufferHeight, params.BackBufferCount, params.BackBufferFormat)
	if params.DepthBuffer {
		fmt.Printf("depth/stencil:  %v\n", params.DepthStencil)
	} else {
		fmt.Printf("depth/stencil:  none\n")
	}
	fmt.Printf("multisample:    %d (quality %d)\n", params.Multisample, params.MultisampleQuality)
	fmt.Printf("interval:       %v\n", params.Interval)
	fmt.Printf("windowed:       %v\n", params.Windowed)
	if !params.Windowed {
		fmt.Printf("refresh:        %d\n", params.RefreshRate)
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  renderwin config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  renderwin config print [--path PATH] [--effective|--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/renderwin/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var err error
		if *path == "" {
			_, err = config.LoadWithSources()
		} else {
			_, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/renderwin/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var cfg *config.Config
		if *printDefaults {
			cfg = config.DefaultConfig()
		} else {
			var err error
			cfg, err = loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		os.Stdout.Write(data)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
}

func surfaceOptions(cfg *config.Config, logger *slog.Logger) surface.Options {
	return surface.Options{
		Title:           cfg.Window.Title,
		Width:           cfg.Window.Width,
		Height:          cfg.Window.Height,
		Fullscreen:      cfg.Window.Fullscreen,
		ColorDepth:      cfg.Present.ColorDepth,
		VSync:           cfg.Present.VSync,
		VSyncInterval:   cfg.Present.VSyncInterval,
		Multisample:     uint32(cfg.Present.Multisample.Samples),
		MultisampleHint: cfg.Present.Multisample.Hint,
		DepthBuffer:     cfg.Present.DepthBuffer,
		Left:            cfg.Window.Left,
		Top:             cfg.Window.Top,
		Monitor:         cfg.Window.Monitor,
		Border:          borderStyle(cfg.Window.Border),
		ToolWindow:      cfg.Window.ToolWindow,
		OuterDimensions: cfg.Window.OuterDimensions,
		Logger:          logger,
		Input:           input.Noop{},
	}
}

func borderStyle(b config.Border) surface.BorderStyle {
	switch b {
	case config.BorderFixed:
		return surface.BorderFixed
	case config.BorderNone:
		return surface.BorderNone
	default:
		return surface.BorderResizable
	}
}

// baselineProbe models a conservative adapter capability set for dry-run
// negotiation: full depth/stencil chain, intervals one and immediate.
type baselineProbe struct{}

func (baselineProbe) SupportsDepthFormat(backBuffer present.BackBufferFormat, depth present.DepthStencilFormat) (bool, error) {
	return true, nil
}

func (baselineProbe) DepthStencilMatch(backBuffer present.BackBufferFormat, depth present.DepthStencilFormat) (bool, error) {
	return depth == present.DepthD24S8, nil
}

func (baselineProbe) PresentIntervals() present.IntervalMask {
	return present.IntervalMask(present.IntervalImmediate | present.IntervalOne)
}

func (baselineProbe) MultisampleSettings(samples uint32, hint string, format present.BackBufferFormat, fullscreen bool) (present.MultisampleType, uint32, error) {
	return present.MultisampleType(samples), 0, nil
}
