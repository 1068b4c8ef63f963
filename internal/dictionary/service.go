package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrProvider marks a transport or HTTP failure talking to the upstream
// dictionary. Unknown words are not errors.
var ErrProvider = errors.New("dictionary provider error")

//go:generate mockgen -destination=../mocks/dictionary/mock_provider.go -package=mockdictionary . Provider

// Provider fetches raw entries for a word. It returns (nil, nil) when the
// upstream does not know the word.
type Provider interface {
	Lookup(ctx context.Context, word string) ([]RawEntry, error)
}

// Cache is a soft key-value store. Get reports a miss for any failure; Set
// and Delete report whether the write reached the backend.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) bool
	Delete(ctx context.Context, key string) bool
}

// Result is a lookup outcome tagged with its provenance.
type Result struct {
	Definition []Entry `json:"definition"`
	FromCache  bool    `json:"fromCache"`
}

// LookupObserver is notified of every completed lookup. Metrics hook in here.
type LookupObserver func(fromCache bool)

type Service struct {
	cache    Cache
	provider Provider
	ttl      time.Duration
	log      *slog.Logger
	observe  LookupObserver
}

type Option func(*Service)

func WithObserver(fn LookupObserver) Option {
	return func(s *Service) { s.observe = fn }
}

func NewService(cache Cache, provider Provider, ttl time.Duration, log *slog.Logger, opts ...Option) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{
		cache:    cache,
		provider: provider,
		ttl:      ttl,
		log:      log.With("component", "dictionary"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CacheKey is the cache key a headword's definitions are stored under.
func CacheKey(word string) string {
	return "dictionary:word:" + strings.ToLower(word)
}

// SearchWord returns the normalized definitions for word, serving from cache
// when possible. A nil Result with a nil error means the word is unknown.
// Only provider failures are returned as errors.
func (s *Service) SearchWord(ctx context.Context, word string) (*Result, error) {
	key := CacheKey(word)

	if cached, ok := s.cache.Get(ctx, key); ok {
		var entries []Entry
		err := json.Unmarshal([]byte(cached), &entries)
		// empty results are never cached, so null or [] is corrupt too
		if err == nil && len(entries) == 0 {
			err = errors.New("empty definition list")
		}
		if err == nil {
			s.notify(true)
			return &Result{Definition: entries, FromCache: true}, nil
		}
		s.log.Warn("discarding corrupt cache entry", "key", key, "error", err)
	}

	raw, err := s.provider.Lookup(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", word, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	entries := Normalize(raw)

	payload, err := json.Marshal(entries)
	if err != nil {
		s.log.Warn("encode definitions for cache", "word", word, "error", err)
	} else if !s.cache.Set(ctx, key, string(payload), s.ttl) {
		s.log.Warn("definitions not cached", "key", key)
	}

	s.notify(false)
	return &Result{Definition: entries, FromCache: false}, nil
}

// ClearWordCache drops the cached definitions for word. It returns false only
// when the cache backend rejected the delete.
func (s *Service) ClearWordCache(ctx context.Context, word string) bool {
	return s.cache.Delete(ctx, CacheKey(word))
}

func (s *Service) notify(fromCache bool) {
	if s.observe != nil {
		s.observe(fromCache)
	}
}
