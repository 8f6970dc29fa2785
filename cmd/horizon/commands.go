package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/muesli/termenv"
	"github.com/san-kum/horizon/internal/camera"
	"github.com/san-kum/horizon/internal/config"
	"github.com/san-kum/horizon/internal/record"
	"github.com/san-kum/horizon/internal/script"
	"github.com/san-kum/horizon/internal/session"
	"github.com/san-kum/horizon/internal/stream"
	"github.com/san-kum/horizon/internal/term"
	"github.com/san-kum/horizon/internal/tui"
	"github.com/san-kum/horizon/internal/window"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func runTUI(cmd *cobra.Command, args []string) error {
	log, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	sched, err := newScheduler(cmd, log)
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	rate := sched.Session().Config().FPS

	switch backend {
	case "bubbletea", "":
		opts := tui.Options{
			FPS:     rate,
			Store:   store,
			Profile: termenv.EnvColorProfile(),
			HUD:     showHUD,
		}
		if watch {
			if opts.Watch, err = configPath(); err != nil {
				return err
			}
		}
		return tui.Run(cmd.Context(), sched, opts)
	case "tcell":
		h, err := term.New(sched, term.Options{FPS: rate, Store: store})
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		return h.Run(cmd.Context())
	default:
		return fmt.Errorf("unknown backend: %s (available: bubbletea, tcell)", backend)
	}
}

func runWindow(cmd *cobra.Command, args []string) error {
	log, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	sched, err := newScheduler(cmd, log)
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	return window.Run(sched, window.Options{
		Width:  winWidth,
		Height: winHeight,
		FPS:    sched.Session().Config().FPS,
		Store:  store,
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	log, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	srv := stream.NewServer(cfg, stream.WithLogger(log), stream.WithFPS(cfg.FPS))
	return srv.ListenAndServe(cmd.Context(), addr)
}

func runRender(cmd *cobra.Command, args []string) error {
	log, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	sched, err := newScheduler(cmd, log)
	if err != nil {
		return err
	}
	sess := sched.Session()
	if target != "" {
		sess.RequestFlight(target)
	}

	kind := format
	if kind == "" {
		kind = strings.TrimPrefix(filepath.Ext(outPath), ".")
	}
	if kind == "" {
		kind = "txt"
	}
	var anim *record.GIF
	switch kind {
	case "gif":
		anim = record.NewGIF(scale)
		anim.MaxFrames = 0
	case "png", "txt", "svg":
	default:
		return fmt.Errorf("unknown format: %s (available: png, txt, svg, gif)", kind)
	}

	var last session.Frame
	dt := 1 / float64(sess.Config().FPS)
	for range frames {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		f, err := sched.Tick(dt)
		if errors.Is(err, session.ErrFrameSkipped) {
			continue
		}
		if err != nil {
			return err
		}
		last = f
		if anim != nil {
			addFrame(anim, f)
		}
	}
	if last.Index == 0 {
		return errors.New("no frame rendered")
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	grid := last.Surface.Grid
	switch kind {
	case "gif":
		err = anim.Encode(w)
	case "png":
		if grid != nil {
			err = record.WriteGridPNG(w, *grid)
		} else {
			err = record.WritePNG(w, last.Surface.Raster, scale)
		}
	case "txt", "svg":
		if grid == nil {
			return fmt.Errorf("%s export needs glyph mode", kind)
		}
		if kind == "txt" {
			err = record.WriteText(w, *grid)
		} else {
			_, err = io.WriteString(w, record.GridToSVG(*grid, 14))
		}
	}
	if err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintf(os.Stderr, "wrote %s (%d frames)\n", outPath, last.Index)
	}
	return nil
}

func addFrame(g *record.GIF, f session.Frame) {
	if grid := f.Surface.Grid; grid != nil {
		g.AddGrid(*grid)
	} else if r := f.Surface.Raster; r != nil {
		g.AddRaster(r)
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	log, closer, err := newLogger(!recordGIF)
	if err != nil {
		return err
	}
	defer closer.Close()

	sc := script.DefaultTour()
	if len(args) == 1 {
		if sc, err = script.Load(args[0]); err != nil {
			return fmt.Errorf("failed to load script: %w", err)
		}
	}
	sched, err := newScheduler(cmd, log)
	if err != nil {
		return err
	}
	cfg := sched.Session().Config()

	if recordGIF {
		store, err := openStore()
		if err != nil {
			return err
		}
		anim := record.NewGIF(1)
		anim.MaxFrames = 0
		res, err := script.Run(cmd.Context(), sched, sc, func(f session.Frame) error {
			addFrame(anim, f)
			return nil
		})
		if err != nil {
			return err
		}
		meta, err := store.SaveGIF(anim, cfg.Preset, sched.Session().GlyphMode())
		if err != nil {
			return err
		}
		fmt.Printf("recorded %d frames (%d skipped) to %s\n", res.Frames, res.Skipped, store.Dir(meta.ID))
		return nil
	}

	out := tui.NewStream(os.Stdout, sc.Name, cfg.Cols, cfg.Rows, sc.FPS)
	out.Start()
	defer out.Stop()
	start := time.Now()
	res, err := script.Run(cmd.Context(), sched, sc, func(f session.Frame) error {
		// pace to wall clock so the tour plays in real time
		due := start.Add(time.Duration(f.Elapsed * float64(time.Second)))
		time.Sleep(time.Until(due))
		return out.Write(f)
	})
	if err != nil {
		return err
	}
	log.Info("script finished", "script", sc.Name, "frames", res.Frames, "skipped", res.Skipped)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		fmt.Fprintf(w, "%s\t%s\n", name, config.Describe(name))
	}
	return w.Flush()
}

func listTargets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TARGET\tX\tY\tZ")
	row := func(name string, p [3]float64) {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\n", name, p[0], p[1], p[2])
	}
	row(camera.HomeTarget, cfg.Camera.Home)
	for _, name := range slices.Sorted(maps.Keys(cfg.Camera.Targets)) {
		if name != camera.HomeTarget {
			row(name, cfg.Camera.Targets[name])
		}
	}
	return w.Flush()
}

func plotCurve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	step := cfg.Camera.FlightStep
	n := int(math.Ceil(1 / step))
	values := make([]float64, n+1)
	for i := range values {
		values[i] = camera.Ease(math.Min(float64(i)*step, 1))
	}

	graph := asciigraph.Plot(values,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("eased flight progress, step %.4f", step)))
	fmt.Println(graph)
	fmt.Printf("\n%d frames, %.2fs at %d fps\n", n, float64(n)/float64(cfg.FPS), cfg.FPS)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %d frames at %dx%d cells\n\n", benchCount, base.Cols, base.Rows)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tMODE\tFRAMES\tMEAN\tP95\tFRAMES/SEC")

	for _, name := range config.ListPresets() {
		for _, glyphOn := range []bool{true, false} {
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			cfg := config.GetPreset(name)
			cfg.Cols, cfg.Rows = base.Cols, base.Rows
			cfg.Glyph.Enabled = glyphOn
			s, err := session.New(cfg)
			if err != nil {
				return err
			}
			costs, err := benchSession(session.NewScheduler(s), benchCount)
			if err != nil {
				return err
			}
			mode := "raw"
			if glyphOn {
				mode = "glyph"
			}
			mean, p95 := summarize(costs)
			fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%v\t%.0f\n", name, mode, len(costs),
				mean.Round(time.Microsecond), p95.Round(time.Microsecond), float64(time.Second)/float64(mean))
		}
	}
	return w.Flush()
}

func benchSession(sc *session.Scheduler, n int) ([]time.Duration, error) {
	costs := make([]time.Duration, 0, n)
	sc.Session().RequestFlight("about")
	for range n {
		start := time.Now()
		_, err := sc.Tick(1.0 / 60)
		if err != nil && !errors.Is(err, session.ErrFrameSkipped) {
			return nil, err
		}
		costs = append(costs, time.Since(start))
	}
	return costs, nil
}

func summarize(costs []time.Duration) (mean, p95 time.Duration) {
	if len(costs) == 0 {
		return 0, 0
	}
	var total time.Duration
	for _, c := range costs {
		total += c
	}
	sorted := slices.Clone(costs)
	slices.Sort(sorted)
	idx := min(int(float64(len(sorted))*0.95), len(sorted)-1)
	return total / time.Duration(len(costs)), sorted[idx]
}

func listRecordings(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	list, err := store.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no recordings")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tPRESET\tFRAMES\tSIZE\tTIME")
	for _, m := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dx%d\t%s\n",
			m.ID[:8], m.Kind, m.Preset, m.Frames, m.Width, m.Height, m.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	cfg := config.DefaultConfig()
	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return fmt.Errorf("unknown preset: %s", preset)
		}
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
