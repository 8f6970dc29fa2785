package stream

import (
	"bytes"

	"github.com/san-kum/horizon/internal/record"
	"github.com/san-kum/horizon/internal/session"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	TypeHello = "hello"
	TypeFrame = "frame"
	TypeError = "error"
)

// Message is the msgpack envelope for everything the server sends in binary
// mode. Glyph frames carry Text; raw frames carry a PNG.
type Message struct {
	Type    string   `msgpack:"type"`
	Session string   `msgpack:"session,omitempty"`
	Targets []string `msgpack:"targets,omitempty"`
	Index   int      `msgpack:"index,omitempty"`
	Elapsed float64  `msgpack:"elapsed,omitempty"`
	Glyph   bool     `msgpack:"glyph,omitempty"`
	Cols    int      `msgpack:"cols,omitempty"`
	Rows    int      `msgpack:"rows,omitempty"`
	Theme   string   `msgpack:"theme,omitempty"`
	Text    string   `msgpack:"text,omitempty"`
	Width   int      `msgpack:"width,omitempty"`
	Height  int      `msgpack:"height,omitempty"`
	PNG     []byte   `msgpack:"png,omitempty"`
	Error   string   `msgpack:"error,omitempty"`
}

func frameMessage(f session.Frame) (Message, error) {
	m := Message{Type: TypeFrame, Index: f.Index, Elapsed: f.Elapsed}
	if g := f.Surface.Grid; g != nil {
		m.Glyph = true
		m.Cols, m.Rows = g.Cols, g.Rows
		m.Theme = g.Theme.Name
		m.Text = g.String()
		return m, nil
	}
	if r := f.Surface.Raster; r != nil {
		var buf bytes.Buffer
		if err := record.WritePNG(&buf, r, 1); err != nil {
			return m, err
		}
		m.Width, m.Height = r.Width, r.Height
		m.PNG = buf.Bytes()
	}
	return m, nil
}

func (m Message) Encode() ([]byte, error) {
	return msgpack.Marshal(m)
}

func DecodeMessage(data []byte) (Message, error) {
	var m Message
	err := msgpack.Unmarshal(data, &m)
	return m, err
}
