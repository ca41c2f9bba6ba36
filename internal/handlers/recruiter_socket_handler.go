package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"alfredoptarigan/personality-assessment/internal/services"
)

type RecruiterSocketHandler struct {
	notifier services.Notifier
}

func NewRecruiterSocketHandler(notifier services.Notifier) *RecruiterSocketHandler {
	return &RecruiterSocketHandler{
		notifier: notifier,
	}
}

// UpgradeRequired rejects plain HTTP requests on websocket routes.
func (h *RecruiterSocketHandler) UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleRecruiterSocket handles GET /ws/recruiter. The server never acts on
// inbound frames; the read loop only exists to notice disconnects.
func (h *RecruiterSocketHandler) HandleRecruiterSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		h.notifier.Register(conn)
		defer func() {
			h.notifier.Unregister(conn)
			conn.Close()
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
