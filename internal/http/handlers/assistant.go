package handlers

import (
	"net/http"
	"strings"

	"parkcareers/internal/app"
	"parkcareers/internal/common"
	"parkcareers/internal/http/response"
)

type AssistantHandler struct {
	assistant *app.AssistantService
}

func NewAssistantHandler(assistant *app.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

type assistantRequest struct {
	Message string `json:"message"`
}

type assistantResponse struct {
	Reply   string `json:"reply"`
	Version string `json:"version"`
}

func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"message": "message is required"}))
		return
	}
	response.JSON(w, http.StatusOK, assistantResponse{
		Reply:   h.assistant.Reply(req.Message),
		Version: h.assistant.Version(),
	})
}
