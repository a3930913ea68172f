package server

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/abhisek/lessonarcade/internal/session"
)

const (
	writeWait = 10 * time.Second

	// MsgState carries a session.State payload.
	MsgState = "state"
	// MsgError carries an errorPayload.
	MsgError = "error"
)

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// stream upgrades to a websocket and pushes the session state after every
// change, starting with the current snapshot. Clients may send
// {"type":"state"} to ask for a fresh snapshot.
func (s *Server) stream(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	log := s.log.With("client_id", uuid.NewString())
	log.Debug("ws client connected")
	defer log.Debug("ws client disconnected")

	updates, cancel := s.session.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug("ws write failed", "error", err)
				return
			}
		}
	}()

	requests := make(chan string, 4)
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			var in inboundMessage
			if err := conn.ReadJSON(&in); err != nil {
				return
			}
			select {
			case requests <- in.Type:
			default:
			}
		}
	}()

	push := func(msg outboundMessage[any]) bool {
		select {
		case send <- msg:
			return true
		case <-writerDone:
			return false
		}
	}

	ok := push(stateMessage(s.session.State()))
	for ok {
		select {
		case st, open := <-updates:
			ok = open && push(stateMessage(st))
		case typ := <-requests:
			if typ == MsgState {
				ok = push(stateMessage(s.session.State()))
			} else {
				ok = push(outboundMessage[any]{Type: MsgError, Payload: errorPayload{Message: "unsupported message type"}})
			}
		case <-readerDone:
			ok = false
		case <-s.closing:
			ok = false
		}
	}

	close(send)
	<-writerDone
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
}

func stateMessage(st session.State) outboundMessage[any] {
	return outboundMessage[any]{Type: MsgState, Payload: st}
}
