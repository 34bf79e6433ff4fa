package controllers

import (
	"net/http"

	"github.com/griphyn/agent-backend/api/responses"
	"github.com/griphyn/agent-backend/api/validators"
	"github.com/griphyn/agent-backend/internal/assistant"
	"github.com/griphyn/agent-backend/pkg/logger"
)

type assistantChatRequest struct {
	Message string           `json:"message" validate:"required,max=2000"`
	History []assistant.Turn `json:"history" validate:"omitempty,max=40,dive"`
}

// AssistantChat answers a creator question grounded in their pipeline.
func AssistantChat(svc assistant.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, err := creatorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req assistantChatRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reply, err := svc.Chat(r.Context(), creatorID, assistant.ChatInput{
			Message: req.Message,
			History: req.History,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, reply)
	}
}
