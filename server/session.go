package server

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/fridaylabs/friday-go/core"
	"github.com/fridaylabs/friday-go/engine"
)

// Greeting is sent when a chat connection opens.
const Greeting = "Hello! I'm Friday. How can I help you today?"

// BusyNotice is sent when a message arrives mid-turn with no follow-up
// prompt waiting for it.
const BusyNotice = "Still working on your last request."

// followUpWait bounds how long a handler's follow-up prompt waits for
// the client's answer.
const followUpWait = 30 * time.Second

// Message frame types on the chat socket.
const (
	TypeReply  = "reply"
	TypePrompt = "prompt"
	TypeStatus = "status"
)

// Message is one frame on the chat socket. Clients send {"text": ...};
// the server tags outbound frames with a type.
type Message struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text"`
}

// session is one chat connection. It enforces the at-most-one-active-
// turn discipline with a busy flag: while a turn runs, inbound messages
// are routed to a waiting follow-up prompt or rejected with a status
// notice. The session doubles as the dispatcher's voice.Speaker and
// voice.Listener, carrying follow-up prompts over the socket.
type session struct {
	conn       *websocket.Conn
	dispatcher *engine.Dispatcher

	busy atomic.Bool

	// awaiting is true only between a follow-up prompt being sent and
	// its Listen returning. Mid-turn messages park in followUp only in
	// that window; otherwise they get the busy notice, so a stray
	// message can never surface later as a follow-up answer.
	awaiting atomic.Bool
	followUp chan string

	writeMu sync.Mutex
	log     *logrus.Entry
}

func newSession(conn *websocket.Conn, log *logrus.Entry) *session {
	// followUp is buffered so an answer arriving between the prompt
	// being sent and the handler starting to listen is not lost.
	return &session{
		conn:     conn,
		followUp: make(chan string, 1),
		log:      log.WithField("remote", conn.RemoteAddr().String()),
	}
}

// run pumps inbound messages until the connection closes. Turns run on
// their own goroutine so the read loop keeps serving follow-up answers.
func (s *session) run(ctx context.Context) {
	defer s.conn.Close()
	s.log.Info("chat session opened")
	s.send(TypeReply, Greeting)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.log.WithError(err).Debug("chat session closed")
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.send(TypeStatus, "I couldn't read that message.")
			continue
		}

		if s.busy.Load() {
			if s.awaiting.Load() {
				select {
				case s.followUp <- msg.Text:
					continue
				default:
				}
			}
			s.send(TypeStatus, BusyNotice)
			continue
		}

		// Drop any answer that arrived after its prompt timed out.
		select {
		case <-s.followUp:
		default:
		}

		s.busy.Store(true)
		go func(utterance string) {
			defer s.busy.Store(false)
			s.send(TypeReply, s.dispatcher.Respond(ctx, utterance))
		}(msg.Text)
	}
}

// Speak sends a follow-up prompt frame to the client. The prompt opens
// the answer window before the frame goes out, so a reply racing the
// prompt is not rejected.
func (s *session) Speak(_ context.Context, text string) {
	s.awaiting.Store(true)
	s.send(TypePrompt, text)
}

// Listen waits for the client's answer to a follow-up prompt.
func (s *session) Listen(ctx context.Context) (string, error) {
	defer s.awaiting.Store(false)
	select {
	case answer := <-s.followUp:
		return answer, nil
	case <-time.After(followUpWait):
		return "", core.ErrInputTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (s *session) send(msgType, text string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(Message{Type: msgType, Text: text}); err != nil {
		s.log.WithError(err).Debug("write failed")
	}
}
