package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"vidquiz-service/internal/app"
	"vidquiz-service/internal/domain"
	"vidquiz-service/internal/player"
)

// WSHandler bridges the interactive page context to the generation service
// and drives a per-connection quiz player session. Every generateQuiz
// request gets exactly one reply; player messages produce render events.
type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type     string `json:"type"`
	VideoID  string `json:"videoId,omitempty"`
	Strategy string `json:"strategy,omitempty"`
	Option   string `json:"option,omitempty"`
}

// generateReply is the single response the bridge owes each generateQuiz
// request: success with the document, fallback when the strategy found no
// usable source material, or error with a human-readable message.
type generateReply struct {
	Status  string              `json:"status"`
	Data    domain.QuizDocument `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
}

type renderEvent struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// ServeWS upgrades the connection and runs the message loop. The connection
// is a single cooperative context: one message is handled at a time, and a
// generation request suspends the loop until it resolves.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	view := &wsView{conn: conn}
	var session *player.Session

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			// Transport-level loss of the caller; nothing is retried.
			return
		}

		switch inbound.Type {
		case "generateQuiz":
			reply := h.generate(r, inbound)
			if err := conn.WriteJSON(reply); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
			if reply.Status != "success" {
				continue
			}
			if session != nil {
				session.Close()
			}
			session = player.NewSession(view)
			if err := session.Start(reply.Data); err != nil {
				// Generation validated the document, so this only fires
				// if the session was somehow reused.
				log.Printf("player start failed: %v", err)
				session = nil
			}
		case "select":
			if session != nil {
				session.Select(inbound.Option)
			}
		case "submit":
			if session != nil {
				session.Submit()
			}
		case "next":
			if session != nil {
				session.Advance()
			}
		case "restart":
			if session != nil {
				session.Restart()
			}
		case "closeQuiz":
			if session != nil {
				session.Close()
				session = nil
			}
		default:
			if err := conn.WriteJSON(renderEvent{Type: "error", Payload: map[string]string{"message": "unsupported message type"}}); err != nil {
				return
			}
		}
	}
}

// generate resolves a generateQuiz request to exactly one reply, whatever
// happens inside the generation pipeline.
func (h *WSHandler) generate(r *http.Request, inbound inboundMessage) generateReply {
	doc, err := h.service.GenerateQuiz(r.Context(), inbound.VideoID, inbound.Strategy)
	switch {
	case err == nil:
		return generateReply{Status: "success", Data: doc}
	case errors.Is(err, domain.ErrNoSourceMaterial):
		return generateReply{Status: "fallback", Message: "no transcript available for this video; try the transcribe strategy"}
	default:
		log.Printf("generate quiz for video %s failed: %v", inbound.VideoID, err)
		return generateReply{Status: "error", Message: err.Error()}
	}
}

// wsView renders player state transitions as outbound messages. Write
// failures are logged and otherwise dropped; the read loop notices the dead
// connection on its next read.
type wsView struct {
	conn *websocket.Conn
}

func (v *wsView) send(event renderEvent) {
	if err := v.conn.WriteJSON(event); err != nil {
		log.Printf("ws render write error: %v", err)
	}
}

func (v *wsView) ShowQuestion(q player.QuestionView) {
	v.send(renderEvent{Type: "question", Payload: q})
}

func (v *wsView) ShowFeedback(fb player.Feedback) {
	v.send(renderEvent{Type: "feedback", Payload: fb})
}

func (v *wsView) ShowResults(score, total int) {
	v.send(renderEvent{Type: "results", Payload: map[string]int{"score": score, "total": total}})
}

func (v *wsView) Closed() {
	v.send(renderEvent{Type: "closed"})
}
