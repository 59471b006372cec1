package handlers

import (
	"context"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler sends the welcome text listing the commands.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, req *Request) Delivery {
	return sendText(ctx, req.Sender, req.ChatID(), h.deps.Config.Messages.Welcome)
}
