package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// maxInlineResults caps the articles returned for an inline query.
const maxInlineResults = 5

// NewInlineQueryHandler returns the handler answering inline queries with
// matching sitemap URLs.
func NewInlineQueryHandler(deps HandlerDeps) InlineHandlerFunc {
	return inlineQueryHandler{deps}.Handle
}

type inlineQueryHandler struct {
	deps HandlerDeps
}

func (h inlineQueryHandler) Handle(ctx context.Context, s Sender, query *models.InlineQuery) Delivery {
	q := strings.TrimSpace(query.Query)

	urls := h.deps.Sitemap.URLs(ctx)
	if q != "" {
		urls = filterURLs(urls, containsFold(q))
	}
	urls = firstN(urls, maxInlineResults)

	_, err := s.AnswerInlineQuery(ctx, &bot.AnswerInlineQueryParams{
		InlineQueryID: query.ID,
		Results:       InlineResults(urls, h.deps.Config.Messages.InlineButton),
	})
	return Delivery{Method: MethodAnswerInlineQuery, Target: query.ID, Err: err}
}

// InlineResults builds one article per URL: the title is the URL without its
// scheme, the message is the bare URL, and a single button opens it.
func InlineResults(urls []string, buttonLabel string) []models.InlineQueryResult {
	results := make([]models.InlineQueryResult, 0, len(urls))
	for i, u := range urls {
		results = append(results, &models.InlineQueryResultArticle{
			ID:                  strconv.Itoa(i + 1),
			Title:               stripScheme(u),
			InputMessageContent: &models.InputTextMessageContent{MessageText: u},
			ReplyMarkup: &models.InlineKeyboardMarkup{
				InlineKeyboard: [][]models.InlineKeyboardButton{urlButton(buttonLabel, u)},
			},
		})
	}
	return results
}

func stripScheme(u string) string {
	if rest, ok := strings.CutPrefix(u, "https://"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(u, "http://"); ok {
		return rest
	}
	return u
}
