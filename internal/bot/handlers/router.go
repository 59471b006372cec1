// Package handlers contains the Telegram command and inline query handlers,
// their ordered registry and the router that dispatches updates to them.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/idnt/idntbot/internal/database"
	"github.com/idnt/idntbot/internal/logger"
)

// ErrNilUpdate is returned by Router.Handle for a nil update.
var ErrNilUpdate = errors.New("update is nil")

// Request carries one matched message to a command handler.
type Request struct {
	Update  *models.Update
	Message *models.Message
	// Args holds the whitespace-separated tokens following the command.
	Args   []string
	Sender Sender
}

// ChatID returns the chat the message came from.
func (r *Request) ChatID() int64 {
	return r.Message.Chat.ID
}

// HandlerFunc handles one matched message and reports its outbound call.
type HandlerFunc func(ctx context.Context, req *Request) Delivery

// InlineHandlerFunc handles one inline query.
type InlineHandlerFunc func(ctx context.Context, s Sender, query *models.InlineQuery) Delivery

// Command binds a command name to its handler. The name is written without
// the leading slash.
type Command struct {
	Name        string
	Description string
	Handler     HandlerFunc
}

// Matches reports whether the first token of text is this command. A
// trailing @botname on the token is ignored; matching is case-sensitive.
func (c Command) Matches(text string) bool {
	return commandToken(text) == "/"+c.Name
}

// commandToken returns the first whitespace-delimited token of text without
// any @botname suffix.
func commandToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	token, _, _ := strings.Cut(fields[0], "@")
	return token
}

// Router dispatches updates: messages go to the first matching command in
// registration order (or the fallback), inline queries to the inline handler.
type Router struct {
	deps     HandlerDeps
	logger   *slog.Logger
	commands []Command
	fallback HandlerFunc
	inline   InlineHandlerFunc
}

// NewRouter builds a router over commands, evaluated in slice order.
func NewRouter(deps HandlerDeps, commands []Command) *Router {
	log := deps.Logger
	if log == nil {
		log = logger.Discard()
	}
	deps.Logger = log

	return &Router{
		deps:     deps,
		logger:   log.With("component", "router"),
		commands: commands,
		fallback: NewUnknownHandler(deps),
		inline:   NewInlineQueryHandler(deps),
	}
}

// Commands returns the registered commands in evaluation order.
func (r *Router) Commands() []Command {
	return r.commands
}

// Match returns the first command matching text and the tokens after it.
func (r *Router) Match(text string) (Command, []string, bool) {
	for _, c := range r.commands {
		if c.Matches(text) {
			return c, strings.Fields(text)[1:], true
		}
	}
	return Command{}, nil, false
}

// Handle dispatches one update and sends the replies through s. Delivery
// failures are logged and counted but not returned: they do not make the
// update a failure.
func (r *Router) Handle(ctx context.Context, s Sender, update *models.Update) error {
	if update == nil {
		return ErrNilUpdate
	}

	log := r.logger.With(logger.UpdateAttrs(update)...)
	log.InfoContext(ctx, "Processing update")

	switch {
	case update.Message != nil:
		r.deps.Metrics.Update(database.KindMessage)
		r.handleMessage(ctx, log, s, update)
	case update.InlineQuery != nil:
		r.deps.Metrics.Update(database.KindInlineQuery)
		delivery := r.inline(ctx, s, update.InlineQuery)
		r.report(ctx, log, delivery)
		r.record(ctx, log, update, database.KindInlineQuery, "")
	default:
		r.deps.Metrics.Update("other")
		log.DebugContext(ctx, "Ignoring update without message or inline query")
	}

	return nil
}

func (r *Router) handleMessage(ctx context.Context, log *slog.Logger, s Sender, update *models.Update) {
	text := strings.TrimSpace(update.Message.Text)

	req := &Request{
		Update:  update,
		Message: update.Message,
		Sender:  s,
	}

	handler := r.fallback
	name := ""
	if cmd, args, ok := r.Match(text); ok {
		handler = cmd.Handler
		name = cmd.Name
		req.Args = args
		r.deps.Metrics.Command(name)
		log = log.With("command", name)
	} else {
		log.DebugContext(ctx, "No command matched, sending fallback reply")
	}

	r.report(ctx, log, handler(ctx, req))
	r.record(ctx, log, update, database.KindMessage, name)
}

// report logs and counts a failed delivery.
func (r *Router) report(ctx context.Context, log *slog.Logger, d Delivery) {
	if !d.Failed() {
		return
	}
	r.deps.Metrics.DeliveryFailed(d.Method)
	log.WarnContext(ctx, "Outbound delivery failed", "method", d.Method, "target", d.Target, "error", d.Err)
}

// record writes the interaction log entry when a store is configured.
func (r *Router) record(ctx context.Context, log *slog.Logger, update *models.Update, kind, command string) {
	if r.deps.Store == nil {
		return
	}

	in := &database.Interaction{
		UpdateID: update.ID,
		Kind:     kind,
		Command:  command,
	}
	switch {
	case update.Message != nil:
		in.ChatID = update.Message.Chat.ID
		if update.Message.From != nil {
			in.UserID = update.Message.From.ID
		}
	case update.InlineQuery != nil:
		if update.InlineQuery.From != nil {
			in.UserID = update.InlineQuery.From.ID
		}
	}

	if err := r.deps.Store.SaveInteraction(ctx, in); err != nil {
		log.WarnContext(ctx, "Failed to record interaction", "error", err)
	}
}
