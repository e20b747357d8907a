// Package command maps the free-text command surface onto registry and
// fetch operations. Every branch returns rendered text; internal
// failures never cross this boundary as errors.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"feedpress/internal/fetch"
	"feedpress/internal/registry"
	"feedpress/internal/render"
	"feedpress/internal/resolver"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	defaultLimit = 10
	minLimit     = 1
	maxLimit     = 50
)

var (
	limitPattern  = regexp.MustCompile(`^--(\d+)$`)
	fetchVerbs    = []string{"latest", "top", "best", "history"}
	topicLiterals = []string{"news", "tech", "sport", "science", "business", "health"}
	titleCaser    = cases.Title(language.English)
)

type request struct {
	command string
	param   string
	limit   int
}

// handler tries one intent; the boolean reports whether it matched.
// Handlers run in a fixed order and the first match short-circuits.
type handler func(ctx context.Context, req request) (string, bool)

type Interpreter struct {
	store        *registry.Store
	orchestrator *fetch.Orchestrator
	renderer     render.Renderer
	handlers     []handler
}

func NewInterpreter(store *registry.Store, orchestrator *fetch.Orchestrator, renderer render.Renderer) *Interpreter {
	in := &Interpreter{
		store:        store,
		orchestrator: orchestrator,
		renderer:     renderer,
	}
	in.handlers = []handler{
		in.handleFetchVerb,
		in.handleComments,
		in.handleSingleFeed,
		in.handleList,
		in.handleSetFeedsPath,
		in.handleCategory,
		in.handleTopicLiteral,
		in.handleTokens,
	}
	return in
}

// Handle interprets one command plus optional parameter and returns the
// response text. Only set-feeds-path mutates state.
func (in *Interpreter) Handle(ctx context.Context, command, param string) string {
	req := request{
		command: strings.ToLower(strings.TrimSpace(command)),
		param:   strings.TrimSpace(param),
		limit:   parseLimit(param),
	}

	slog.Debug("interpreting command", "command", req.command, "limit", req.limit)

	for _, h := range in.handlers {
		if response, ok := h(ctx, req); ok {
			return response
		}
	}

	return helpText
}

// parseLimit reads a "--<digits>" parameter, clamped to [1,50]. Any
// other parameter shape means the default limit.
func parseLimit(param string) int {
	m := limitPattern.FindStringSubmatch(strings.TrimSpace(param))
	if m == nil {
		return defaultLimit
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return defaultLimit
	}
	if n < minLimit {
		n = minLimit
	}
	if n > maxLimit {
		n = maxLimit
	}
	return n
}

func (in *Interpreter) handleFetchVerb(ctx context.Context, req request) (string, bool) {
	for _, verb := range fetchVerbs {
		if req.command == verb {
			label := titleCaser.String(verb) + " Articles"
			return in.renderArticles(ctx, "", req.limit, label), true
		}
	}
	return "", false
}

func (in *Interpreter) handleComments(ctx context.Context, req request) (string, bool) {
	if req.command != "comments" {
		return "", false
	}
	return "Comment feeds are not supported.", true
}

func (in *Interpreter) handleSingleFeed(ctx context.Context, req request) (string, bool) {
	if !strings.HasPrefix(req.command, "--") {
		return "", false
	}
	id := strings.TrimPrefix(req.command, "--")

	items, err := in.orchestrator.FetchOne(ctx, id, req.limit)
	if err != nil {
		slog.Error("single feed fetch failed", "feed", id, "error", err)
		if errors.Is(err, fetch.ErrFeedNotFound) {
			return fmt.Sprintf("Unknown feed %q. Use \"list\" to see available feeds.", id), true
		}
		return fmt.Sprintf("Could not fetch feed %q right now. Use \"list\" to see available feeds.", id), true
	}

	fd, _ := in.store.Snapshot().Get(id)
	title := fd.Title
	if title == "" {
		title = id
	}
	if len(items) == 0 {
		return fmt.Sprintf("No articles found in %s.", title), true
	}
	return render.RenderOrFallback(in.renderer, items, title), true
}

func (in *Interpreter) handleList(ctx context.Context, req request) (string, bool) {
	if req.command != "list" {
		return "", false
	}
	return render.List(in.store.Snapshot().All()), true
}

func (in *Interpreter) handleSetFeedsPath(ctx context.Context, req request) (string, bool) {
	if req.command != "set-feeds-path" || req.param == "" {
		return "", false
	}
	path := strings.TrimPrefix(req.param, "--")

	if err := in.store.Load(path); err != nil {
		slog.Error("feed list replacement failed", "path", path, "error", err)
		return fmt.Sprintf("Could not load feed list from %q: %v", path, err), true
	}
	return fmt.Sprintf("Feed list loaded from %s (%d feeds).", path, in.store.Snapshot().Len()), true
}

func (in *Interpreter) handleCategory(ctx context.Context, req request) (string, bool) {
	category, ok := resolver.Resolve(req.command, in.store.Snapshot().Categories())
	if !ok {
		return "", false
	}
	return in.renderArticles(ctx, category, req.limit, category+" Articles"), true
}

// handleTopicLiteral is the looser net under the resolver: a command
// mentioning a known topic word fetches with the raw command text as
// the inclusion filter.
func (in *Interpreter) handleTopicLiteral(ctx context.Context, req request) (string, bool) {
	for _, topic := range topicLiterals {
		if strings.Contains(req.command, topic) {
			label := titleCaser.String(req.command) + " Articles"
			return in.renderArticles(ctx, req.command, req.limit, label), true
		}
	}
	return "", false
}

func (in *Interpreter) handleTokens(ctx context.Context, req request) (string, bool) {
	categories := in.store.Snapshot().Categories()
	for _, token := range strings.Fields(req.command) {
		if len(token) < 3 {
			continue
		}
		if category, ok := resolver.Resolve(token, categories); ok {
			return in.renderArticles(ctx, category, req.limit, category+" Articles"), true
		}
	}
	return "", false
}

func (in *Interpreter) renderArticles(ctx context.Context, filter string, limit int, title string) string {
	items := in.orchestrator.FetchAll(ctx, filter, limit)
	if len(items) == 0 {
		if filter == "" {
			return "No articles found."
		}
		return fmt.Sprintf("No articles found for %q.", filter)
	}
	return render.RenderOrFallback(in.renderer, items, title)
}

const helpText = `Available commands:
  latest | top | best | history   newest articles across all feeds
  list                            all registered feeds grouped by category
  --<feedId>                      articles from a single feed (see "list")
  <category or keyword>           articles for a topic, e.g. "tech news"
  set-feeds-path --<path>         load a different feed list
Append --<count> to limit results (1-50), e.g. "latest --20".`
