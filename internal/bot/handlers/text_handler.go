package handlers

import (
	"context"
)

// NewTextHandler returns a handler that always replies with the same
// Markdown text. It serves /help, /ping, /horarios and /envios.
func NewTextHandler(text string) HandlerFunc {
	return func(ctx context.Context, req *Request) Delivery {
		return sendText(ctx, req.Sender, req.ChatID(), text)
	}
}

// NewUnknownHandler returns the fallback handler for unmatched text.
func NewUnknownHandler(deps HandlerDeps) HandlerFunc {
	return NewTextHandler(deps.Config.Messages.UnknownCommand)
}
