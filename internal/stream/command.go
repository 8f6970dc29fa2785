package stream

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/horizon/internal/session"
)

var ErrCommand = errors.New("stream: bad command")

// Remote clients cannot ask for grids larger than this.
const (
	MaxCols = 400
	MaxRows = 200
)

type CommandKind string

const (
	CmdFly    CommandKind = "fly"
	CmdGlyph  CommandKind = "glyph"
	CmdResize CommandKind = "resize"
	CmdDrag   CommandKind = "drag"
	CmdZoom   CommandKind = "zoom"
	CmdTheme  CommandKind = "theme"
)

// Command is one parsed client line, e.g. "fly about" or "resize 80 24".
type Command struct {
	Kind   CommandKind
	Target string
	Glyph  *bool // nil toggles
	Cols   int
	Rows   int
	DX, DY float64
	Factor float64
}

// ParseCommand parses a client line. Keywords are case-insensitive.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty", ErrCommand)
	}
	c := Command{Kind: CommandKind(fields[0])}
	args := fields[1:]
	bad := func(usage string) (Command, error) {
		return Command{}, fmt.Errorf("%w: usage: %s", ErrCommand, usage)
	}

	switch c.Kind {
	case CmdFly:
		if len(args) != 1 {
			return bad("fly <target>")
		}
		c.Target = args[0]
	case CmdGlyph:
		switch {
		case len(args) == 0 || args[0] == "toggle":
		case args[0] == "on":
			on := true
			c.Glyph = &on
		case args[0] == "off":
			off := false
			c.Glyph = &off
		default:
			return bad("glyph on|off|toggle")
		}
	case CmdResize:
		if len(args) != 2 {
			return bad("resize <cols> <rows>")
		}
		cols, err1 := strconv.Atoi(args[0])
		rows, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil || cols <= 0 || rows <= 0 || cols > MaxCols || rows > MaxRows {
			return bad("resize <cols> <rows>")
		}
		c.Cols, c.Rows = cols, rows
	case CmdDrag:
		if len(args) != 2 {
			return bad("drag <dx> <dy>")
		}
		dx, err1 := strconv.ParseFloat(args[0], 64)
		dy, err2 := strconv.ParseFloat(args[1], 64)
		if err1 != nil || err2 != nil {
			return bad("drag <dx> <dy>")
		}
		c.DX, c.DY = dx, dy
	case CmdZoom:
		if len(args) != 1 {
			return bad("zoom <factor>")
		}
		f, err := strconv.ParseFloat(args[0], 64)
		if err != nil || f <= 0 {
			return bad("zoom <factor>")
		}
		c.Factor = f
	case CmdTheme:
	default:
		return Command{}, fmt.Errorf("%w: unknown command %q", ErrCommand, fields[0])
	}
	return c, nil
}

// Apply runs the command against a session.
func (c Command) Apply(s *session.Session) error {
	switch c.Kind {
	case CmdFly:
		s.RequestFlight(c.Target)
	case CmdGlyph:
		if c.Glyph == nil {
			s.ToggleGlyphMode()
		} else {
			s.SetGlyphMode(*c.Glyph)
		}
	case CmdResize:
		return s.ResizeCells(c.Cols, c.Rows)
	case CmdDrag:
		s.Drag(c.DX, c.DY)
	case CmdZoom:
		s.Zoom(c.Factor)
	case CmdTheme:
		s.CycleTheme()
	}
	return nil
}
