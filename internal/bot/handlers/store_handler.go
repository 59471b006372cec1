package handlers

import (
	"context"
	"fmt"
)

// NewAddressHandler returns a handler for the /direccion command.
func NewAddressHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, req *Request) Delivery {
		msgs := deps.Config.Messages
		return sendButtons(ctx, req.Sender, req.ChatID(), msgs.Address,
			urlButton(msgs.AddressButton, deps.Config.Site.MapsURL))
	}
}

// NewContactHandler returns a handler for the /contacto command.
func NewContactHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, req *Request) Delivery {
		msgs := deps.Config.Messages
		return sendButtons(ctx, req.Sender, req.ChatID(), msgs.Contact,
			urlButton(msgs.WebsiteButton, deps.Config.Site.BaseURL),
			urlButton(msgs.InstagramButton, deps.Config.Site.InstagramURL))
	}
}

// NewTrackHandler returns a handler for the /track command. The tracking
// number is appended to the carrier URL as given.
func NewTrackHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, req *Request) Delivery {
		msgs := deps.Config.Messages
		if len(req.Args) == 0 {
			return sendText(ctx, req.Sender, req.ChatID(), msgs.TrackUsage)
		}

		number := req.Args[0]
		return sendButtons(ctx, req.Sender, req.ChatID(), fmt.Sprintf(msgs.TrackFmt, number),
			urlButton(msgs.TrackButton, TrackingLink(deps.Config.Site.TrackingURL, number)))
	}
}

// TrackingLink concatenates the tracking number onto the carrier base URL.
func TrackingLink(baseURL, number string) string {
	return baseURL + number
}
