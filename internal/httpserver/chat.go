package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/suagrafica/portal/internal/agent"
	"github.com/suagrafica/portal/internal/service"
	"github.com/suagrafica/portal/internal/transport"
	"github.com/suagrafica/portal/pkg/logging"
)

type ChatHTTP struct {
	Agent *agent.Agent
}

func (h *ChatHTTP) Chat(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "chat.chat")

	var req transport.ChatRequest
	if err := c.Bind(&req); err != nil {
		return fail(l, "chat_error", invalidBody(err))
	}
	if strings.TrimSpace(req.Message) == "" {
		return fail(l, "chat_error", fmt.Errorf("%w: message required", service.ErrValidation))
	}
	clientID, err := boundCustomer(c, req.ClientID)
	if err != nil {
		return fail(l, "chat_error", err)
	}

	history := make([]agent.Message, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, agent.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := h.Agent.Respond(ctx, agent.Turn{History: history, Message: req.Message, ClientID: clientID})
	resp := transport.ChatResponse{Reply: reply.Text, ActionTaken: string(reply.Action)}

	switch {
	case errors.Is(err, agent.ErrUnavailable):
		l.Warn("chat_unavailable", "status", http.StatusServiceUnavailable)
		return c.JSON(http.StatusServiceUnavailable, resp)
	case err != nil:
		// detail was logged by the agent; the body carries only the generic reply
		return c.JSON(http.StatusBadGateway, resp)
	}

	l.Info("chat_success", "action", reply.Action, "fallback", reply.Fallback)
	return c.JSON(http.StatusOK, resp)
}
