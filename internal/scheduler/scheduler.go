package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/wordbook/api/internal/catalog"
	"github.com/wordbook/api/internal/dictionary"
	"github.com/wordbook/api/internal/model"
)

type Lister interface {
	ListWords(ctx context.Context, q catalog.Query) (*catalog.Page, error)
}

type Searcher interface {
	SearchWord(ctx context.Context, word string) (*dictionary.Result, error)
}

// CacheWarmer walks the word catalog in order, one word per tick, looking
// each word up so its definition sits in the cache before a user asks. After
// the last word it starts over from the beginning.
type CacheWarmer struct {
	lister    Lister
	dict      Searcher
	interval  time.Duration
	batchSize int
	log       *slog.Logger

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	cursor   string
	queue    []model.Word
	cycles   int
	warmed   int64
	hits     int64
	missing  int64
	failures int64
	lastWord string
}

type WarmerConfig struct {
	Interval  time.Duration
	BatchSize int
}

type Status struct {
	Running  bool   `json:"running"`
	Cycles   int    `json:"cycles"`
	Warmed   int64  `json:"warmed"`
	Hits     int64  `json:"alreadyCached"`
	Missing  int64  `json:"notInDictionary"`
	Failures int64  `json:"failures"`
	LastWord string `json:"lastWord,omitempty"`
}

func NewCacheWarmer(lister Lister, dict Searcher, cfg WarmerConfig, log *slog.Logger) *CacheWarmer {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = catalog.DefaultLimit
	}
	if log == nil {
		log = slog.Default()
	}
	return &CacheWarmer{
		lister:    lister,
		dict:      dict,
		interval:  cfg.Interval,
		batchSize: cfg.BatchSize,
		log:       log.With("component", "cache-warmer"),
		stopChan:  make(chan struct{}),
	}
}

func (w *CacheWarmer) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stopChan = make(chan struct{})
	stop := w.stopChan
	w.mu.Unlock()

	w.log.Info("starting", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.setStopped()
			w.log.Info("context cancelled, stopping")
			return
		case <-stop:
			w.log.Info("stop signal received")
			return
		case <-ticker.C:
			w.processNextWord(ctx)
		}
	}
}

func (w *CacheWarmer) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		close(w.stopChan)
		w.running = false
	}
}

func (w *CacheWarmer) setStopped() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}

func (w *CacheWarmer) processNextWord(ctx context.Context) {
	word, ok := w.next(ctx)
	if !ok {
		return
	}

	res, err := w.dict.SearchWord(ctx, word.Value)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastWord = word.Value
	switch {
	case err != nil:
		w.failures++
		w.log.Warn("lookup failed", "word", word.Value, "error", err)
	case res == nil:
		w.missing++
	case res.FromCache:
		w.hits++
	default:
		w.warmed++
	}
}

// next pops the queued word, refilling the queue from the catalog when empty.
// The catalog query runs without holding the lock so GetStatus never waits
// on the database.
func (w *CacheWarmer) next(ctx context.Context) (model.Word, bool) {
	w.mu.Lock()
	if len(w.queue) == 0 {
		cursor := w.cursor
		w.mu.Unlock()

		page, err := w.lister.ListWords(ctx, catalog.Query{Limit: w.batchSize, Next: cursor})

		w.mu.Lock()
		switch {
		case errors.Is(err, catalog.ErrInvalidCursor):
			// the cursor word was removed; restart the walk
			w.cursor = ""
			w.mu.Unlock()
			return model.Word{}, false
		case err != nil:
			w.mu.Unlock()
			w.log.Warn("list words", "error", err)
			return model.Word{}, false
		}

		w.queue = page.Results
		if page.HasNext && page.Next != nil {
			w.cursor = *page.Next
		} else {
			w.cursor = ""
			w.cycles++
			w.log.Info("completed catalog pass", "cycles", w.cycles)
		}
	}
	defer w.mu.Unlock()

	if len(w.queue) == 0 {
		return model.Word{}, false
	}
	word := w.queue[0]
	w.queue = w.queue[1:]
	return word, true
}

func (w *CacheWarmer) GetStatus() Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	return Status{
		Running:  w.running,
		Cycles:   w.cycles,
		Warmed:   w.warmed,
		Hits:     w.hits,
		Missing:  w.missing,
		Failures: w.failures,
		LastWord: w.lastWord,
	}
}
