package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"orderbot/internal/dialog"
)

// eventRequest is one inbound user event as delivered by the chat transport.
// Type selects which of the remaining fields matter.
type eventRequest struct {
	Type      string `json:"type" binding:"required,oneof=text button contact"`
	ChatID    int64  `json:"chatId" binding:"required"`
	Text      string `json:"text"`
	Payload   string `json:"payload"`
	Phone     string `json:"phone"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (r eventRequest) toEvent() (dialog.Event, bool) {
	switch r.Type {
	case "text":
		if r.Text == "" {
			return nil, false
		}
		return dialog.TextInput{
			ChatID: r.ChatID,
			Text:   r.Text,
			Profile: dialog.Profile{
				Username:  r.Username,
				FirstName: r.FirstName,
				LastName:  r.LastName,
			},
		}, true
	case "button":
		if r.Payload == "" {
			return nil, false
		}
		return dialog.ButtonPress{ChatID: r.ChatID, Payload: r.Payload}, true
	case "contact":
		if r.Phone == "" {
			return nil, false
		}
		return dialog.ContactShare{ChatID: r.ChatID, Phone: r.Phone}, true
	}
	return nil, false
}

// renderResponse is the wire form of one render instruction.
type renderResponse struct {
	Kind     string          `json:"kind"`
	Text     string          `json:"text,omitempty"`
	URL      string          `json:"url,omitempty"`
	Caption  string          `json:"caption,omitempty"`
	Keyboard dialog.Keyboard `json:"keyboard,omitempty"`
}

func encodeRenders(renders []dialog.Render) []renderResponse {
	out := make([]renderResponse, 0, len(renders))
	for _, r := range renders {
		switch r := r.(type) {
		case dialog.ShowText:
			out = append(out, renderResponse{Kind: "showText", Text: r.Text, Keyboard: r.Keyboard})
		case dialog.ShowPhoto:
			out = append(out, renderResponse{Kind: "showPhoto", URL: r.URL, Caption: r.Caption, Keyboard: r.Keyboard})
		case dialog.EditText:
			out = append(out, renderResponse{Kind: "editText", Text: r.Text, Keyboard: r.Keyboard})
		case dialog.UpdateKeyboard:
			out = append(out, renderResponse{Kind: "updateKeyboard", Keyboard: r.Keyboard})
		case dialog.DeleteMessage:
			out = append(out, renderResponse{Kind: "deleteMessage"})
		}
	}
	return out
}

func eventsHandler(engine dialogEngine, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req eventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event"})
			return
		}
		ev, ok := req.toEvent()
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event"})
			return
		}

		renders, err := engine.HandleEvent(c.Request.Context(), ev)
		if err != nil {
			logger.Printf("httpserver: handle event chat_id=%d error=%v", req.ChatID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"renders": encodeRenders(renders)})
	}
}
