package stream

import (
	"bytes"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/san-kum/horizon/internal/camera"
	"github.com/san-kum/horizon/internal/config"
	"github.com/san-kum/horizon/internal/session"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		kind    CommandKind
		wantErr bool
	}{
		{"fly about", CmdFly, false},
		{"FLY Projects", CmdFly, false},
		{"fly", "", true},
		{"glyph on", CmdGlyph, false},
		{"glyph off", CmdGlyph, false},
		{"glyph", CmdGlyph, false},
		{"glyph maybe", "", true},
		{"resize 80 24", CmdResize, false},
		{"resize 80", "", true},
		{"resize -1 24", "", true},
		{"resize 4000 24", "", true},
		{"drag 10 -5.5", CmdDrag, false},
		{"drag x y", "", true},
		{"zoom 0.9", CmdZoom, false},
		{"zoom 0", "", true},
		{"theme", CmdTheme, false},
		{"warp 9", "", true},
		{"   ", "", true},
	}
	for _, tt := range tests {
		c, err := ParseCommand(tt.line)
		if tt.wantErr {
			if !errors.Is(err, ErrCommand) {
				t.Errorf("%q: expected ErrCommand, got %v", tt.line, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.line, err)
			continue
		}
		if c.Kind != tt.kind {
			t.Errorf("%q: expected %s, got %s", tt.line, tt.kind, c.Kind)
		}
	}

	c, _ := ParseCommand("glyph off")
	if c.Glyph == nil || *c.Glyph {
		t.Error("expected glyph off to carry false")
	}
	c, _ = ParseCommand("resize 80 24")
	if c.Cols != 80 || c.Rows != 24 {
		t.Errorf("expected 80x24, got %dx%d", c.Cols, c.Rows)
	}
}

func TestCommandApply(t *testing.T) {
	cfg := config.GetPreset("mono")
	cfg.Scene.Stars.Count = 100
	s, err := session.New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for _, line := range []string{"fly contact", "glyph off", "resize 20 10", "theme"} {
		c, err := ParseCommand(line)
		if err != nil {
			t.Fatal(err)
		}
		if err := c.Apply(s); err != nil {
			t.Fatalf("%q: %v", line, err)
		}
	}
	if s.State().Flight.Mode != camera.Flying {
		t.Error("expected a flight")
	}
	if s.GlyphMode() {
		t.Error("expected raw mode")
	}
	cw, ch := s.CellSize()
	if w, h := s.Size(); w != 20*cw || h != 10*ch {
		t.Errorf("expected %dx%d, got %dx%d", 20*cw, 10*ch, w, h)
	}
	if s.Theme().Name == "mono" {
		t.Error("expected the theme to change")
	}
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	base := config.GetPreset("mono")
	base.Cols, base.Rows = 20, 8
	base.Scene.Stars.Count = 100
	s := NewServer(base, WithFPS(120))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Close()
		ts.Close()
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	m, err := DecodeMessage(data)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// readUntil reads messages until match accepts one.
func readUntil(t *testing.T, conn *websocket.Conn, match func(Message) bool) Message {
	t.Helper()
	for range 500 {
		if m := readMessage(t, conn); match(m) {
			return m
		}
	}
	t.Fatal("expected message never arrived")
	return Message{}
}

func TestServerStreamsFrames(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dial(t, ts, "")

	hello := readMessage(t, conn)
	if hello.Type != TypeHello || hello.Session == "" {
		t.Fatalf("expected hello, got %+v", hello)
	}
	if len(hello.Targets) == 0 || hello.Targets[0] != camera.HomeTarget {
		t.Errorf("expected targets starting with home, got %v", hello.Targets)
	}
	if s.Sessions() != 1 {
		t.Errorf("expected 1 live session, got %d", s.Sessions())
	}

	f := readMessage(t, conn)
	if f.Type != TypeFrame || !f.Glyph || f.Cols != 20 || f.Rows != 8 {
		t.Fatalf("expected a 20x8 glyph frame, got %+v", f)
	}
	if len(strings.Split(f.Text, "\n")) != 8 {
		t.Errorf("expected 8 text rows")
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("glyph off")); err != nil {
		t.Fatal(err)
	}
	raw := readUntil(t, conn, func(m Message) bool { return m.Type == TypeFrame && !m.Glyph })
	img, err := png.Decode(bytes.NewReader(raw.PNG))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != raw.Width || raw.Width != 40 {
		t.Errorf("expected a 40 pixel wide frame, got %d", img.Bounds().Dx())
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("warp 9")); err != nil {
		t.Fatal(err)
	}
	e := readUntil(t, conn, func(m Message) bool { return m.Type == TypeError })
	if !strings.Contains(e.Error, "unknown command") {
		t.Errorf("expected unknown command error, got %q", e.Error)
	}
}

func TestServerSessionsAreIndependent(t *testing.T) {
	_, ts := newTestServer(t)
	a := dial(t, ts, "")
	b := dial(t, ts, "?preset=warm")

	ha, hb := readMessage(t, a), readMessage(t, b)
	if ha.Session == hb.Session {
		t.Fatal("expected distinct sessions")
	}

	a.WriteMessage(websocket.TextMessage, []byte("glyph off"))
	readUntil(t, a, func(m Message) bool { return m.Type == TypeFrame && !m.Glyph })
	for range 5 {
		if m := readMessage(t, b); m.Type == TypeFrame && !m.Glyph {
			t.Fatal("expected the other session to stay in glyph mode")
		}
	}
}

func TestServerTextFormat(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts, "?format=text&cols=10&rows=4")

	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if kind != websocket.TextMessage || !strings.HasPrefix(string(data), "session ") {
		t.Fatalf("expected text hello, got %q", data)
	}
	_, data, err = conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(string(data), "\n"); len(lines) != 4 || len([]rune(lines[0])) != 10 {
		t.Errorf("expected a 10x4 text frame, got %q", data)
	}
}

func TestServerRejectsBadQuery(t *testing.T) {
	_, ts := newTestServer(t)
	for _, q := range []string{"?preset=nope", "?cols=abc", "?rows=5000"} {
		url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + q
		_, resp, err := websocket.DefaultDialer.Dial(url, nil)
		if err == nil {
			t.Errorf("%s: expected dial to fail", q)
			continue
		}
		if resp == nil || resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400", q)
		}
	}
}
