package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/convoai/convo-be/service"
	"github.com/convoai/convo-be/types"
)

type MessageHandler struct {
	chatService *service.ChatService
}

func NewMessageHandler(chatService *service.ChatService) *MessageHandler {
	return &MessageHandler{
		chatService: chatService,
	}
}

// HandleMessage accepts a user message and returns the AI reply.
func (h *MessageHandler) HandleMessage(c *gin.Context) {
	var req types.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	reply, err := h.chatService.Respond(c.Request.Context(), req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "Failed to process message",
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.MessageResponse{
			ID:        reply.ID,
			IsAI:      reply.IsAI,
			Content:   reply.Content,
			Timestamp: reply.Timestamp,
		},
	})
}

// ListMessages returns the stored conversation history in chronological
// order. An optional limit query parameter caps the result.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, types.DataResponse{
				Status:  false,
				Message: "Invalid limit",
			})
			return
		}
		limit = parsed
	}

	messages, err := h.chatService.History(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "Failed to load messages",
		})
		return
	}

	resp := make([]types.MessageResponse, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, types.MessageResponse{
			ID:        m.ID,
			IsAI:      m.IsAI,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   resp,
	})
}
