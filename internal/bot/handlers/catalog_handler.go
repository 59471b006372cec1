package handlers

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// maxListResults caps the URLs listed by /catalogo, /novedades and /buscar.
const maxListResults = 6

// NewCatalogHandler returns a handler for the /catalogo command: product and
// collection pages from the sitemap.
func NewCatalogHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, req *Request) Delivery {
		urls := firstN(filterURLs(deps.Sitemap.URLs(ctx), isCatalogURL), maxListResults)
		return sendList(ctx, req.Sender, req.ChatID(), deps.Config.Messages.CatalogHeader, urls)
	}
}

// NewNewsHandler returns a handler for the /novedades command: the first
// sitemap entries.
func NewNewsHandler(deps HandlerDeps) HandlerFunc {
	return func(ctx context.Context, req *Request) Delivery {
		urls := firstN(deps.Sitemap.URLs(ctx), maxListResults)
		return sendList(ctx, req.Sender, req.ChatID(), deps.Config.Messages.NewsHeader, urls)
	}
}

// NewSearchHandler returns a handler for the /buscar command.
func NewSearchHandler(deps HandlerDeps) HandlerFunc {
	return searchHandler{deps}.Handle
}

// searchHandler matches the query against sitemap URLs, case-insensitively.
type searchHandler struct {
	deps HandlerDeps
}

func (h searchHandler) Handle(ctx context.Context, req *Request) Delivery {
	msgs := h.deps.Config.Messages

	query := strings.Join(req.Args, " ")
	if query == "" {
		return sendText(ctx, req.Sender, req.ChatID(), msgs.SearchUsage)
	}

	urls := firstN(filterURLs(h.deps.Sitemap.URLs(ctx), containsFold(query)), maxListResults)
	if len(urls) == 0 {
		return sendText(ctx, req.Sender, req.ChatID(), fmt.Sprintf(msgs.SearchEmptyFmt, query))
	}

	h.deps.Logger.DebugContext(ctx, "Search matched URLs", "query", query, "count", len(urls))
	return sendList(ctx, req.Sender, req.ChatID(), fmt.Sprintf(msgs.SearchFoundFmt, query), urls)
}

// isCatalogURL reports whether the URL path mentions a product or a collection.
func isCatalogURL(raw string) bool {
	path := raw
	if u, err := url.Parse(raw); err == nil {
		path = u.Path
	}
	return strings.Contains(path, "product") || strings.Contains(path, "collections")
}

// containsFold returns a predicate matching URLs that contain query, ignoring case.
func containsFold(query string) func(string) bool {
	q := strings.ToLower(query)
	return func(u string) bool {
		return strings.Contains(strings.ToLower(u), q)
	}
}

func filterURLs(urls []string, keep func(string) bool) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}

func firstN(urls []string, n int) []string {
	if len(urls) > n {
		return urls[:n]
	}
	return urls
}
