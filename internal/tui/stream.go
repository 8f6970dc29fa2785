package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/san-kum/horizon/internal/session"
)

// Stream writes frames to a plain terminal without taking over input. Frames
// arriving faster than the frame rate are dropped.
type Stream struct {
	out       *termenv.Output
	title     string
	cols      int
	rows      int
	interval  time.Duration
	lastFrame time.Time
}

func NewStream(w io.Writer, title string, cols, rows, fps int, opts ...termenv.OutputOption) *Stream {
	if fps <= 0 {
		fps = 60
	}
	return &Stream{
		out:      termenv.NewOutput(w, opts...),
		title:    title,
		cols:     cols,
		rows:     rows,
		interval: time.Second / time.Duration(fps),
	}
}

func (s *Stream) Start() {
	s.out.HideCursor()
	s.out.ClearScreen()
}

func (s *Stream) Stop() {
	s.out.Reset()
	s.out.ShowCursor()
}

// Write draws f over the previous frame. It is a session frame sink.
func (s *Stream) Write(f session.Frame) error {
	if time.Since(s.lastFrame) < s.interval {
		return nil
	}
	s.lastFrame = time.Now()

	var b strings.Builder
	s.out.MoveCursor(1, 1)
	fmt.Fprintf(&b, "  %s  t=%.2fs  frame %d\n", s.title, f.Elapsed, f.Index)
	b.WriteString(s.render(f))
	b.WriteByte('\n')
	_, err := io.WriteString(s.out, b.String())
	return err
}

func (s *Stream) render(f session.Frame) string {
	p := s.out.Profile
	if g := f.Surface.Grid; g != nil {
		fg := p.Color(string(g.Theme.Foreground))
		bg := p.Color(string(g.Theme.Background))
		lines := g.Lines()
		for i, line := range lines {
			lines[i] = p.String(line).Foreground(fg).Background(bg).String()
		}
		return strings.Join(lines, "\n")
	}
	if r := f.Surface.Raster; r != nil {
		return HalfBlock(r, s.cols, s.rows, p)
	}
	return ""
}
