package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/san-kum/horizon/internal/config"
	"github.com/san-kum/horizon/internal/record"
	"github.com/san-kum/horizon/internal/session"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	cols       int
	rows       int
	fps        int
	glyphMode  bool
	logLevel   string
	logFile    string

	backend   string
	showHUD   bool
	watch     bool
	winWidth  int
	winHeight int
	addr      string

	frames     int
	target     string
	outPath    string
	format     string
	scale      int
	benchCount int
	recordGIF  bool
	force      bool
)

// main registers the commands and runs the terminal viewer when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "horizon",
		Short:         "black hole renderer for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.IntVar(&cols, "cols", 0, "glyph columns")
	pf.IntVar(&rows, "rows", 0, "glyph rows")
	pf.IntVar(&fps, "fps", 0, "frame rate")
	pf.BoolVar(&glyphMode, "glyph", true, "start in glyph mode")
	pf.StringVar(&logLevel, "log", "info", "log level: debug, info, warn, error")
	pf.StringVar(&logFile, "log-file", "", "log file (interactive hosts default to <data>/horizon.log)")

	rootCmd.Flags().StringVar(&backend, "backend", "bubbletea", "terminal backend: bubbletea or tcell")
	rootCmd.Flags().BoolVar(&showHUD, "hud", true, "show the stats panel")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "reload --config when it changes")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal viewer",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&backend, "backend", "bubbletea", "terminal backend: bubbletea or tcell")
	tuiCmd.Flags().BoolVar(&showHUD, "hud", true, "show the stats panel")
	tuiCmd.Flags().BoolVar(&watch, "watch", false, "reload --config when it changes")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "desktop window viewer",
		RunE:  runWindow,
	}
	windowCmd.Flags().IntVar(&winWidth, "width", 1280, "window width")
	windowCmd.Flags().IntVar(&winHeight, "height", 720, "window height")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream sessions over websockets, one per connection",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames headlessly and export the last one",
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&frames, "frames", 180, "frames to render")
	renderCmd.Flags().StringVar(&target, "target", "", "fly to this target first")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout for txt)")
	renderCmd.Flags().StringVar(&format, "format", "", "png, txt, svg or gif (default: from --out)")
	renderCmd.Flags().IntVar(&scale, "scale", 2, "pixel scale for png and gif")

	playCmd := &cobra.Command{
		Use:   "play [script]",
		Short: "play a flight script; the built-in tour without arguments",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlay,
	}
	playCmd.Flags().BoolVar(&recordGIF, "record", false, "save a GIF to the data directory instead of drawing")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	targetsCmd := &cobra.Command{
		Use:   "targets",
		Short: "list camera flight targets",
		RunE:  listTargets,
	}

	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "plot the flight easing curve",
		RunE:  plotCurve,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time frames for every preset",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchCount, "frames", 120, "frames per run")

	recordingsCmd := &cobra.Command{
		Use:   "recordings",
		Short: "list saved recordings",
		RunE:  listRecordings,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "write a config file from the selected preset",
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "print the resolved config as yaml",
		RunE:  showConfig,
	}
	configCmd.AddCommand(configInitCmd, configShowCmd)

	rootCmd.AddCommand(tuiCmd, windowCmd, serveCmd, renderCmd, playCmd, presetsCmd,
		targetsCmd, curveCmd, benchCmd, recordingsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// resolveDataDir expands --data.
func resolveDataDir() (string, error) {
	return config.DataDir(dataDir)
}

// loadConfig resolves the session config: --config, else the data dir
// config file when present, else the preset. Flags given explicitly win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	_, statErr := os.Stat(path)
	switch {
	case configFile != "" || (statErr == nil && preset == ""):
		cfg, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	case preset != "":
		if cfg = config.GetPreset(preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("cols") {
		cfg.Cols = cols
	}
	if flags.Changed("rows") {
		cfg.Rows = rows
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("glyph") {
		cfg.Glyph.Enabled = glyphMode
	}
	return cfg, cfg.Validate()
}

// configPath is --config or the config file inside the data dir.
func configPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	dir, err := resolveDataDir()
	if err != nil {
		return "", err
	}
	return config.DefaultPath(dir), nil
}

// newLogger builds the slog logger. Interactive hosts own the terminal, so
// their logs go to a file in the data dir unless --log-file says otherwise.
func newLogger(interactive bool) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, nil, fmt.Errorf("bad --log level %q: %w", logLevel, err)
	}

	path := logFile
	if path == "" && interactive {
		dir, err := resolveDataDir()
		if err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, "horizon.log")
	}
	if path == "" || path == "-" {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		return slog.New(h), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), f, nil
}

// newScheduler loads the config and starts a session on it.
func newScheduler(cmd *cobra.Command, log *slog.Logger) (*session.Scheduler, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	s, err := session.New(cfg, session.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return session.NewScheduler(s), nil
}

func openStore() (*record.Store, error) {
	dir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}
	return record.NewStore(filepath.Join(dir, "recordings")), nil
}
