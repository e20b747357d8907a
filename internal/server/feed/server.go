// Package feed re-exports the merged "latest" stream as RSS, Atom, and
// JSON Feed documents over HTTP. Rendered documents are cached under a
// TTL and keyed on the registry version, so a registry reload starts
// serving fresh output without an explicit invalidation call.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"feedpress/internal/fetch"
	"feedpress/internal/registry"

	"github.com/gorilla/feeds"
)

type Config struct {
	Port     string
	MaxItems int
	CacheTTL time.Duration
}

type Server struct {
	name         string
	config       Config
	store        *registry.Store
	orchestrator *fetch.Orchestrator
	server       *http.Server
	cache        *docCache
}

func New(name string, config Config, store *registry.Store, orchestrator *fetch.Orchestrator) *Server {
	if config.Port == "" {
		config.Port = "8080"
	}
	if config.MaxItems == 0 {
		config.MaxItems = 50
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = 1 * time.Hour
	}

	return &Server{
		name:         name,
		config:       config,
		store:        store,
		orchestrator: orchestrator,
		cache:        newDocCache(config.CacheTTL),
	}
}

func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed.rss", s.handleFeed(TypeRSS))
	mux.HandleFunc("/feed.atom", s.handleFeed(TypeAtom))
	mux.HandleFunc("/feed.json", s.handleFeed(TypeJSON))
	mux.HandleFunc("/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    ":" + s.config.Port,
		Handler: mux,
	}

	go func() {
		slog.Info("feed server starting", "name", s.name, "port", s.config.Port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("feed server error", "name", s.name, "error", err)
		}
	}()

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			slog.Error("feed server shutdown error", "name", s.name, "error", err)
		}
	}
	return s.cache.Close()
}

var contentTypes = map[string]string{
	TypeRSS:  "application/rss+xml; charset=utf-8",
	TypeAtom: "application/atom+xml; charset=utf-8",
	TypeJSON: "application/feed+json; charset=utf-8",
}

func (s *Server) handleFeed(feedType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := CacheKey{Name: s.name, Type: feedType, Version: s.store.Version()}
		if cached, found := s.cache.Get(key); found {
			s.writeDoc(w, feedType, cached)
			return
		}

		doc, err := s.renderDoc(r.Context(), feedType)
		if err != nil {
			slog.Error("feed document render failed", "name", s.name, "type", feedType, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "Error generating %s feed", feedType)
			return
		}

		s.cache.Set(key, doc)
		s.writeDoc(w, feedType, doc)
	}
}

func (s *Server) writeDoc(w http.ResponseWriter, feedType, doc string) {
	w.Header().Set("Content-Type", contentTypes[feedType])
	w.Header().Set("Cache-Control", "public, max-age=3600")
	fmt.Fprint(w, doc)
}

func (s *Server) renderDoc(ctx context.Context, feedType string) (string, error) {
	items := s.orchestrator.FetchAll(ctx, "", s.config.MaxItems)

	out := &feeds.Feed{
		Title:       fmt.Sprintf("Feedpress (%s)", s.name),
		Link:        &feeds.Link{Href: "http://localhost:" + s.config.Port + "/"},
		Description: "Merged output of every registered feed",
		Created:     time.Now().UTC(),
		Items:       make([]*feeds.Item, 0, len(items)),
	}

	for _, item := range items {
		out.Items = append(out.Items, &feeds.Item{
			Id:          item.Link,
			Title:       item.Title,
			Link:        &feeds.Link{Href: item.Link},
			Description: item.Excerpt,
			Author:      &feeds.Author{Name: item.Author},
			Created:     item.Timestamp,
		})
	}

	switch feedType {
	case TypeRSS:
		return out.ToRss()
	case TypeAtom:
		return out.ToAtom()
	case TypeJSON:
		return out.ToJSON()
	default:
		return "", fmt.Errorf("unknown feed type: %s", feedType)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","name":"%s","feeds":%d,"time":"%s"}`,
		s.name, s.store.Snapshot().Len(), time.Now().UTC().Format(time.RFC3339))
}
