package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/youruser/vignette/internal/cards"
	"github.com/youruser/vignette/internal/themes"
)

// Live message types.
const (
	msgState      = "state"
	msgPreset     = "preset"
	msgToggleGlow = "toggleGlow"
	msgReset      = "reset"
	msgExport     = "export"

	msgFrame = "frame"
	msgError = "error"
)

type liveMessage struct {
	Type   string           `json:"type"`
	State  *cards.CardState `json:"state,omitempty"`
	Preset string           `json:"preset,omitempty"`
}

type liveReply struct {
	Type     string           `json:"type"`
	DataURI  string           `json:"dataUri,omitempty"`
	Filename string           `json:"filename,omitempty"`
	State    *cards.CardState `json:"state,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// liveSession is one editor connected over a websocket. It owns the card
// state and the mounted view; only the session goroutine touches either.
type liveSession struct {
	srv   *Server
	conn  *websocket.Conn
	theme themes.ThemeConfig
	view  *themes.View
	state cards.CardState
	dirty bool
}

// liveHandler upgrades to a websocket and streams a preview after every
// batch of edits. Edits that arrive while a frame is being drawn are
// coalesced so only the latest state is drawn.
func (s *Server) liveHandler(c *gin.Context) {
	t, ok := s.theme(c)
	if !ok {
		return
	}
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ls := &liveSession{
		srv:   s,
		conn:  conn,
		theme: t,
		view:  themes.NewView(t, s.raster, s.log),
		state: t.NewState(),
		dirty: true,
	}
	s.log.Info("live session opened", "theme", t.ID, "remote", c.Request.RemoteAddr)
	ls.run()
	s.log.Info("live session closed", "theme", t.ID, "remote", c.Request.RemoteAddr)
}

func (ls *liveSession) run() {
	msgs := make(chan liveMessage, 32)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(msgs)
		for {
			var m liveMessage
			if err := ls.conn.ReadJSON(&m); err != nil {
				return
			}
			select {
			case msgs <- m:
			case <-done:
				return
			}
		}
	}()

	if err := ls.flush(); err != nil {
		return
	}
	for m := range msgs {
		batch := []liveMessage{m}
	drain:
		for {
			select {
			case n, ok := <-msgs:
				if !ok {
					break drain
				}
				batch = append(batch, n)
			default:
				break drain
			}
		}
		for _, m := range batch {
			if err := ls.handle(m); err != nil {
				return
			}
		}
		if err := ls.flush(); err != nil {
			return
		}
	}
}

// handle applies one message. Exports first bring the surface up to date
// so they always reflect every edit received before them.
func (ls *liveSession) handle(m liveMessage) error {
	switch m.Type {
	case msgState:
		if m.State == nil {
			return ls.reply(liveReply{Type: msgError, Error: "state message without state"})
		}
		if err := m.State.Validate(); err != nil {
			return ls.reply(liveReply{Type: msgError, Error: err.Error()})
		}
		ls.state = m.State.Clone()
		ls.dirty = true
	case msgPreset:
		p, ok := ls.theme.Preset(m.Preset)
		if !ok {
			return ls.reply(liveReply{Type: msgError, Error: fmt.Sprintf("%v %q", errUnknownPreset, m.Preset)})
		}
		ls.state = p.Apply(ls.state)
		ls.dirty = true
	case msgToggleGlow:
		ls.state.Effects = ls.state.Effects.Toggle()
		ls.dirty = true
	case msgReset:
		ls.state = ls.theme.NewState()
		ls.dirty = true
	case msgExport:
		if err := ls.flush(); err != nil {
			return err
		}
		uri, ok := ls.view.Handle().ExportImage()
		if !ok {
			return ls.reply(liveReply{Type: msgError, Error: "export failed, try again"})
		}
		return ls.reply(liveReply{
			Type:     msgExport,
			DataURI:  uri,
			Filename: ls.srv.filename(ls.theme.ID, ls.state),
		})
	default:
		return ls.reply(liveReply{Type: msgError, Error: fmt.Sprintf("unknown message type %q", m.Type)})
	}
	return nil
}

// flush redraws and sends a preview when the state changed since the last
// frame.
func (ls *liveSession) flush() error {
	if !ls.dirty {
		return nil
	}
	ls.dirty = false
	if err := ls.view.Render(ls.state); err != nil {
		ls.srv.log.Warn("live render failed", "theme", ls.theme.ID, "err", err)
		return ls.reply(liveReply{Type: msgError, Error: "renderer not ready, try again"})
	}
	uri, ok := ls.view.Handle().ExportImage()
	if !ok {
		return ls.reply(liveReply{Type: msgError, Error: "preview failed"})
	}
	state := ls.state.Clone()
	return ls.reply(liveReply{Type: msgFrame, DataURI: uri, State: &state})
}

func (ls *liveSession) reply(r liveReply) error {
	return ls.conn.WriteJSON(r)
}
