package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/muesli/termenv"
	"github.com/san-kum/horizon/internal/camera"
	"github.com/san-kum/horizon/internal/config"
	"github.com/san-kum/horizon/internal/record"
	"github.com/san-kum/horizon/internal/session"
)

const (
	hudWidth   = 36
	statusRows = 1

	// pointer deltas in raster pixels
	keyDrag   = 24.0
	mouseDrag = 8.0

	zoomIn  = 0.9
	zoomOut = 1.1
)

var flightKeys = map[string]string{
	"1": "about",
	"2": "projects",
	"3": "contact",
	"h": camera.HomeTarget,
	"0": camera.HomeTarget,
}

type TickMsg time.Time

// ReloadMsg carries a re-read config file into the program.
type ReloadMsg struct {
	Config *config.Config
	Err    error
}

// Options configures a Model. Zero values pick the defaults.
type Options struct {
	FPS     int
	Store   *record.Store
	Profile termenv.Profile
	HUD     bool
	// Watch, when set, is a config file reloaded into the session on save.
	Watch string
}

// Model is the interactive terminal host for one session.
type Model struct {
	sched   *session.Scheduler
	store   *record.Store
	profile termenv.Profile
	fps     int

	width, height int
	cols, rows    int

	frame     session.Frame
	err       error
	gif       *record.GIF
	recording bool
	status    string
	showHelp  bool
	showHUD   bool

	mouse  bool
	mx, my int
}

func NewModel(sched *session.Scheduler, opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	cfg := sched.Session().Config()
	return Model{
		sched:   sched,
		store:   opts.Store,
		profile: opts.Profile,
		fps:     fps,
		cols:    cfg.Cols,
		rows:    cfg.Rows,
		gif:     record.NewGIF(1),
		showHUD: opts.HUD,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input and advances the session one frame per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	sess := m.sched.Session()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
	case tea.KeyMsg:
		key := msg.String()
		if target, ok := flightKeys[key]; ok {
			sess.RequestFlight(target)
			m.status = "flying to " + target
			return m, nil
		}
		switch key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "m":
			sess.ToggleGlyphMode()
			m.status = "mode: " + m.modeName()
		case "left":
			sess.Drag(-keyDrag, 0)
		case "right":
			sess.Drag(keyDrag, 0)
		case "up":
			sess.Drag(0, -keyDrag)
		case "down":
			sess.Drag(0, keyDrag)
		case "+", "=":
			sess.Zoom(zoomIn)
		case "-", "_":
			sess.Zoom(zoomOut)
		case "t":
			m.status = "theme: " + sess.CycleTheme().Name
		case "g":
			m.toggleRecording()
		case "s":
			m.showHUD = !m.showHUD
			m.resize()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	case ReloadMsg:
		m.reload(msg)
	case TickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) reload(msg ReloadMsg) {
	sess := m.sched.Session()
	err := msg.Err
	if err == nil {
		err = sess.Reload(msg.Config)
	}
	if err != nil {
		sess.Logger().Warn("reload rejected", "err", err)
		m.status = "reload failed: " + err.Error()
		return
	}
	m.status = "config reloaded"
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	sess := m.sched.Session()
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		sess.Zoom(zoomIn)
	case msg.Button == tea.MouseButtonWheelDown:
		sess.Zoom(zoomOut)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.mouse, m.mx, m.my = true, msg.X, msg.Y
	case msg.Action == tea.MouseActionMotion && m.mouse:
		sess.Drag(float64(msg.X-m.mx)*mouseDrag, float64(msg.Y-m.my)*mouseDrag)
		m.mx, m.my = msg.X, msg.Y
	case msg.Action == tea.MouseActionRelease:
		m.mouse = false
	}
}

// resize fits the session to the terminal, leaving room for the status line
// and, when shown, the stats panel.
func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	cols := m.width
	if m.showHUD && cols > 2*hudWidth {
		cols -= hudWidth
	}
	rows := max(m.height-statusRows, 1)
	m.cols, m.rows = cols, rows
	if err := m.sched.Session().ResizeCells(cols, rows); err != nil {
		m.err = err
	}
}

func (m *Model) step() {
	f, err := m.sched.Tick(1 / float64(m.fps))
	if err != nil {
		m.err = err
		if !errors.Is(err, session.ErrFrameSkipped) {
			m.status = err.Error()
		}
		return
	}
	m.frame, m.err = f, nil
	if m.recording {
		m.capture()
	}
}

func (m *Model) capture() {
	var ok bool
	if g := m.frame.Surface.Grid; g != nil {
		ok = m.gif.AddGrid(*g)
	} else if r := m.frame.Surface.Raster; r != nil {
		ok = m.gif.AddRaster(r)
	}
	if !ok {
		m.toggleRecording()
	}
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.gif.Reset()
		m.recording = true
		m.status = "recording"
		return
	}
	m.recording = false
	m.status = m.saveGIF()
}

func (m *Model) saveGIF() string {
	if m.gif.Len() == 0 {
		return "nothing recorded"
	}
	if m.store == nil {
		return "recording discarded: no data directory"
	}
	sess := m.sched.Session()
	meta, err := m.store.SaveGIF(m.gif, sess.Config().Preset, sess.GlyphMode())
	if err != nil {
		sess.Logger().Error("save recording", "err", err)
		return "save failed: " + err.Error()
	}
	sess.Logger().Info("recording saved", "id", meta.ID, "frames", meta.Frames)
	return fmt.Sprintf("saved %d frames to %s", meta.Frames, m.store.Dir(meta.ID))
}

func (m Model) modeName() string {
	if m.sched.Session().GlyphMode() {
		return "glyph"
	}
	return "raw"
}

// View renders the current frame with the stats panel and status line.
func (m Model) View() string {
	if m.showHelp {
		return lipgloss.Place(max(m.width, 1), max(m.height, 1), lipgloss.Center, lipgloss.Center, helpStyle.Render(helpText))
	}
	canvas := m.canvas()
	if m.showHUD && m.width > 2*hudWidth {
		canvas = lipgloss.JoinHorizontal(lipgloss.Top, canvas, hudStyle.Render(m.hud()))
	}
	return canvas + "\n" + statusStyle.Render(m.statusLine())
}

func (m Model) canvas() string {
	switch s := m.frame.Surface; {
	case s.Grid != nil:
		return s.Grid.Styled()
	case s.Raster != nil:
		return HalfBlock(s.Raster, m.cols, m.rows, m.profile)
	}
	return strings.Repeat("\n", max(m.rows-1, 0))
}

func (m Model) hud() string {
	sess := m.sched.Session()
	st := sess.State()
	stats := m.sched.Stats()

	var s strings.Builder
	s.WriteString(headerStyle.Render("HORIZON") + "\n")
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Preset", sess.Config().Preset)
	row("Mode", m.modeName())
	row("Theme", sess.Theme().Name)
	if st.Flight.Mode == camera.Flying {
		row("Camera", fmt.Sprintf("flying %3.0f%%", st.Flight.Progress*100))
	} else {
		row("Camera", "idle")
	}
	p := st.Position
	row("Position", fmt.Sprintf("%.2f %.2f %.2f", p.X(), p.Y(), p.Z()))
	row("Time", fmt.Sprintf("%.1fs", stats.Elapsed))
	row("Frames", fmt.Sprintf("%d (%d skipped)", stats.Frames, stats.Skipped))
	if len(stats.Recent) > 1 {
		chart := asciigraph.Plot(stats.Recent,
			asciigraph.Height(5),
			asciigraph.Width(hudWidth-12),
			asciigraph.Caption("frame ms"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}
	if m.recording {
		s.WriteString("\n" + recordingStyle.Render(fmt.Sprintf("● REC %d", m.gif.Len())) + "\n")
	}
	return s.String()
}

func (m Model) statusLine() string {
	line := fmt.Sprintf(" %s · %dx%d · ?:help q:quit", m.modeName(), m.cols, m.rows)
	if m.status != "" {
		line += " · " + m.status
	}
	if m.err != nil && errors.Is(m.err, session.ErrFrameSkipped) {
		line += " · frame skipped"
	}
	return line
}

const helpText = `KEYBOARD SHORTCUTS

1 2 3    Fly to about, projects, contact
h        Fly home
m        Toggle glyph mode
Arrows   Orbit the camera (or drag the mouse)
+ -      Zoom in, out
t        Cycle glyph themes
g        Start or stop GIF recording
s        Toggle stats panel
?        Toggle this help
q        Quit`

// Run starts the interactive program and blocks until the user quits or ctx
// is done.
func Run(ctx context.Context, sched *session.Scheduler, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(sched, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx))

	if opts.Watch != "" {
		go func() {
			err := config.Watch(ctx, opts.Watch, func(cfg *config.Config, err error) {
				p.Send(ReloadMsg{Config: cfg, Err: err})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				sched.Session().Logger().Warn("config watch stopped", "err", err)
			}
		}()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
