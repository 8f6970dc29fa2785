// Package term is the tcell terminal host. It draws straight into the
// terminal cell buffer, which keeps raw mode cheap on large terminals.
package term

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/horizon/internal/camera"
	"github.com/san-kum/horizon/internal/glyph"
	"github.com/san-kum/horizon/internal/record"
	"github.com/san-kum/horizon/internal/render"
	"github.com/san-kum/horizon/internal/session"
)

const (
	upperHalf  = '▀'
	statusRows = 1
	keyDrag    = 24.0
	mouseDrag  = 8.0
)

type Options struct {
	FPS   int
	Store *record.Store
}

// Host runs one session on a tcell screen.
type Host struct {
	screen tcell.Screen
	sched  *session.Scheduler
	store  *record.Store
	fps    int

	width, height int
	frame         session.Frame
	gif           *record.GIF
	recording     bool
	status        string

	dragging bool
	mx, my   int
}

// New opens the terminal screen.
func New(sched *session.Scheduler, opts Options) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	return NewWithScreen(screen, sched, opts), nil
}

// NewWithScreen wraps an initialized screen.
func NewWithScreen(screen tcell.Screen, sched *session.Scheduler, opts Options) *Host {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	h := &Host{
		screen: screen,
		sched:  sched,
		store:  opts.Store,
		fps:    fps,
		gif:    record.NewGIF(1),
	}
	h.handleResize()
	return h
}

// Run ticks the session until the user quits or ctx is done. The screen is
// finalized on return.
func (h *Host) Run(ctx context.Context) error {
	defer h.screen.Fini()

	ticker := time.NewTicker(time.Second / time.Duration(h.fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go h.screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !h.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if err := h.Step(); err != nil {
				return err
			}
		}
	}
}

// Step ticks the session once and draws the result. Skipped frames keep the
// previous picture on screen.
func (h *Host) Step() error {
	f, err := h.sched.Tick(1 / float64(h.fps))
	switch {
	case errors.Is(err, session.ErrFrameSkipped):
		h.status = "frame skipped"
	case err != nil:
		return err
	default:
		h.frame = f
		if h.recording {
			h.capture()
		}
	}
	h.draw()
	return nil
}

func (h *Host) handleResize() {
	h.width, h.height = h.screen.Size()
	rows := max(h.height-statusRows, 1)
	if err := h.sched.Session().ResizeCells(max(h.width, 1), rows); err != nil {
		h.status = err.Error()
	}
}

// handleEvent applies one input event and reports whether to keep running.
func (h *Host) handleEvent(ev tcell.Event) bool {
	sess := h.sched.Session()
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		h.handleResize()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			sess.Drag(-keyDrag, 0)
		case tcell.KeyRight:
			sess.Drag(keyDrag, 0)
		case tcell.KeyUp:
			sess.Drag(0, -keyDrag)
		case tcell.KeyDown:
			sess.Drag(0, keyDrag)
		case tcell.KeyRune:
			return h.handleRune(ev.Rune())
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		switch btn := ev.Buttons(); {
		case btn&tcell.WheelUp != 0:
			sess.Zoom(0.9)
		case btn&tcell.WheelDown != 0:
			sess.Zoom(1.1)
		case btn&tcell.Button1 != 0:
			if h.dragging {
				sess.Drag(float64(x-h.mx)*mouseDrag, float64(y-h.my)*mouseDrag)
			}
			h.dragging, h.mx, h.my = true, x, y
		default:
			h.dragging = false
		}
	}
	return true
}

func (h *Host) handleRune(r rune) bool {
	sess := h.sched.Session()
	switch r {
	case 'q':
		return false
	case '1':
		sess.RequestFlight("about")
	case '2':
		sess.RequestFlight("projects")
	case '3':
		sess.RequestFlight("contact")
	case 'h', '0':
		sess.RequestFlight(camera.HomeTarget)
	case 'm':
		sess.ToggleGlyphMode()
	case 't':
		h.status = "theme: " + sess.CycleTheme().Name
	case '+', '=':
		sess.Zoom(0.9)
	case '-', '_':
		sess.Zoom(1.1)
	case 'g':
		h.toggleRecording()
	}
	return true
}

func (h *Host) capture() {
	var ok bool
	if g := h.frame.Surface.Grid; g != nil {
		ok = h.gif.AddGrid(*g)
	} else if r := h.frame.Surface.Raster; r != nil {
		ok = h.gif.AddRaster(r)
	}
	if !ok {
		h.toggleRecording()
	}
}

func (h *Host) toggleRecording() {
	if !h.recording {
		h.gif.Reset()
		h.recording = true
		h.status = "recording"
		return
	}
	h.recording = false
	if h.store == nil || h.gif.Len() == 0 {
		h.status = "recording discarded"
		return
	}
	sess := h.sched.Session()
	meta, err := h.store.SaveGIF(h.gif, sess.Config().Preset, sess.GlyphMode())
	if err != nil {
		sess.Logger().Error("save recording", "err", err)
		h.status = "save failed"
		return
	}
	h.status = fmt.Sprintf("saved %s", h.store.Dir(meta.ID))
}

func (h *Host) draw() {
	h.screen.Clear()
	switch s := h.frame.Surface; {
	case s.Grid != nil:
		h.drawGrid(*s.Grid)
	case s.Raster != nil:
		h.drawRaster(s.Raster)
	}
	h.drawStatus()
	h.screen.Show()
}

func (h *Host) drawGrid(g glyph.Grid) {
	style := themeStyle(g.Theme)
	for row := 0; row < g.Rows && row < h.height-statusRows; row++ {
		for col := 0; col < g.Cols && col < h.width; col++ {
			h.screen.SetContent(col, row, g.At(col, row), nil, style)
		}
	}
}

func (h *Host) drawRaster(r *render.Raster) {
	cols, rows := h.width, max(h.height-statusRows, 1)
	r.HalfCells(cols, rows, func(col, row int, top, bottom render.Color) {
		style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
		h.screen.SetContent(col, row, upperHalf, nil, style)
	})
}

func (h *Host) drawStatus() {
	sess := h.sched.Session()
	st := sess.State()
	mode := "raw"
	if sess.GlyphMode() {
		mode = "glyph"
	}
	line := fmt.Sprintf(" %s · %s · %s", sess.Config().Preset, mode, st.Flight.Mode)
	if h.recording {
		line += fmt.Sprintf(" · REC %d", h.gif.Len())
	}
	if h.status != "" {
		line += " · " + h.status
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	y := h.height - 1
	for x, r := range []rune(line) {
		if x >= h.width {
			break
		}
		h.screen.SetContent(x, y, r, nil, style)
	}
}

func themeStyle(t glyph.Theme) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.GetColor(string(t.Foreground))).
		Background(tcell.GetColor(string(t.Background)))
}

func rgb(c render.Color) tcell.Color {
	px := c.RGBA()
	return tcell.NewRGBColor(int32(px.R), int32(px.G), int32(px.B))
}
