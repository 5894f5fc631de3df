package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightpath/brightpath-go/internal/cache"
)

// Cache key prefixes, one per public entity. Mutations invalidate by
// prefix so every cached variant of a listing drops at once.
const (
	cachePrefixPrograms     = "programs"
	cachePrefixTestimonials = "testimonials"
	cachePrefixEvents       = "events"
)

// requestCacheKey builds a cache key from the entity prefix plus the
// request path and query, so each filter/page combination caches separately.
func requestCacheKey(prefix string, r *http.Request) string {
	return prefix + ":" + r.URL.RequestURI()
}

// serveFromCache writes the cached body for key if present.
func (h *Handler) serveFromCache(w http.ResponseWriter, r *http.Request, key string) bool {
	if h.cache == nil {
		return false
	}
	body, err := h.cache.Get(r.Context(), key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			h.log.Warn("cache get failed", "key", key, "error", err)
		}
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.log.Error("failed to write cached response", "error", err)
	}
	return true
}

// writeAndCache writes v as a 200 JSON response and stores the encoded
// body under key. Cache failures are logged, never surfaced.
func (h *Handler) writeAndCache(w http.ResponseWriter, r *http.Request, key string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		h.WriteInternalError(w, r, err)
		return
	}
	if h.cache != nil {
		if err := h.cache.Set(r.Context(), key, body, 0); err != nil {
			h.log.Warn("cache set failed", "key", key, "error", err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.log.Error("failed to write response", "error", err)
	}
}

// invalidate drops every cached entry for an entity prefix.
func (h *Handler) invalidate(ctx context.Context, prefix string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.DeleteByPrefix(ctx, prefix+":"); err != nil {
		h.log.Warn("cache invalidation failed", "prefix", prefix, "error", err)
	}
}
