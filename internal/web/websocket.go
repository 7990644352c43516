package web

import (
	"net/http"
	"time"

	"docsimplify/internal/highlight"
	"docsimplify/internal/view"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

// Message is pushed to the browser over the websocket
type Message struct {
	Type    string         `json:"type"`
	Content string         `json:"content"`
	HTML    string         `json:"html,omitempty"`
	State   *stateResponse `json:"state,omitempty"`
}

func stateMessage(st stateResponse) Message {
	return Message{Type: string(view.EventState), Content: st.TypedOutput, HTML: st.TypedHTML, State: &st}
}

// handleWebSocket streams state changes and reveal ticks of the session's
// upload view until the client disconnects or the session closes.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	events, unsubscribe := sess.Upload.Subscribe()
	defer unsubscribe()

	// The client sends nothing; reading only detects disconnects.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := s.send(conn, stateMessage(newStateResponse(sess.Upload.State()))); err != nil {
		return
	}

	for {
		select {
		case <-gone:
			return
		case e, ok := <-events:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"),
					time.Now().Add(writeWait))
				return
			}

			var msg Message
			switch e.Type {
			case view.EventReveal:
				msg = Message{
					Type:    string(view.EventReveal),
					Content: e.Reveal.Revealed,
					HTML:    highlight.Render(e.Reveal.Revealed, highlight.WebTag),
				}
			default:
				msg = stateMessage(newStateResponse(e.State))
			}

			if err := s.send(conn, msg); err != nil {
				s.logger.Debug("WebSocket write failed",
					zap.String("session_id", sess.ID),
					zap.Error(err),
				)
				return
			}
		}
	}
}

func (s *Server) send(conn *websocket.Conn, msg Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
