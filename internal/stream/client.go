package stream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/san-kum/horizon/internal/record"
	"github.com/san-kum/horizon/internal/session"
)

// client is one connection. Only run writes to the socket; the read loop
// hands lines over on a channel.
type client struct {
	conn  *websocket.Conn
	sched *session.Scheduler
	fps   int
	text  bool
}

func (c *client) readLoop(lines chan<- string, done <-chan struct{}) {
	defer close(lines)
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		select {
		case lines <- string(msg):
		case <-done:
			return
		}
	}
}

func (c *client) run(ctx context.Context) error {
	sess := c.sched.Session()
	lines := make(chan string, 16)
	done := make(chan struct{})
	defer close(done)
	go c.readLoop(lines, done)

	hello := Message{Type: TypeHello, Session: sess.ID(), Targets: sess.Targets()}
	if err := c.send(hello); err != nil {
		return err
	}
	sess.Logger().Info("client connected")

	ticker := time.NewTicker(time.Second / time.Duration(c.fps))
	defer ticker.Stop()
	dt := 1 / float64(c.fps)

	for {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := c.handle(line); err != nil {
				sess.Logger().Debug("command rejected", "line", line, "err", err)
				if err := c.send(Message{Type: TypeError, Error: err.Error()}); err != nil {
					return err
				}
			}
		case <-ticker.C:
			f, err := c.sched.Tick(dt)
			if errors.Is(err, session.ErrFrameSkipped) {
				continue
			}
			if err != nil {
				return err
			}
			if err := c.sendFrame(f); err != nil {
				return err
			}
		}
	}
}

func (c *client) handle(line string) error {
	cmd, err := ParseCommand(line)
	if err != nil {
		return err
	}
	return cmd.Apply(c.sched.Session())
}

func (c *client) sendFrame(f session.Frame) error {
	if !c.text {
		m, err := frameMessage(f)
		if err != nil {
			return err
		}
		return c.send(m)
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if g := f.Surface.Grid; g != nil {
		return c.conn.WriteMessage(websocket.TextMessage, []byte(g.String()))
	}
	var buf bytes.Buffer
	if err := record.WritePNG(&buf, f.Surface.Raster, 1); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.BinaryMessage, buf.Bytes())
}

func (c *client) send(m Message) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if c.text {
		var line string
		switch m.Type {
		case TypeHello:
			line = fmt.Sprintf("session %s targets %s", m.Session, strings.Join(m.Targets, ","))
		case TypeError:
			line = "error: " + m.Error
		}
		return c.conn.WriteMessage(websocket.TextMessage, []byte(line))
	}
	data, err := m.Encode()
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.BinaryMessage, data)
}
