package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wordbook/api/internal/catalog"
	"github.com/wordbook/api/internal/dictionary"
	"github.com/wordbook/api/internal/model"
)

type Dictionary interface {
	SearchWord(ctx context.Context, word string) (*dictionary.Result, error)
	ClearWordCache(ctx context.Context, word string) bool
}

type WordLister interface {
	ListWords(ctx context.Context, q catalog.Query) (*catalog.Page, error)
}

type WordFinder interface {
	FindByID(ctx context.Context, id string) (*model.Word, error)
}

type HistoryStore interface {
	Touch(ctx context.Context, userID, wordID string) error
	List(ctx context.Context, userID string) ([]model.History, error)
}

type FavoriteStore interface {
	Add(ctx context.Context, userID, wordID string) (*model.Favorite, error)
	Remove(ctx context.Context, userID, wordID string) error
	Exists(ctx context.Context, userID, wordID string) (bool, error)
	List(ctx context.Context, userID string) ([]model.Favorite, error)
}

type WordHandler struct {
	words     WordFinder
	lister    WordLister
	dict      Dictionary
	history   HistoryStore
	favorites FavoriteStore
	log       *slog.Logger
}

func NewWordHandler(words WordFinder, lister WordLister, dict Dictionary, history HistoryStore, favorites FavoriteStore, log *slog.Logger) *WordHandler {
	if log == nil {
		log = slog.Default()
	}
	return &WordHandler{
		words:     words,
		lister:    lister,
		dict:      dict,
		history:   history,
		favorites: favorites,
		log:       log.With("component", "words"),
	}
}

// WordResponse is a lookup result for one catalog word.
type WordResponse struct {
	Definition []dictionary.Entry `json:"definition"`
	FromCache  bool               `json:"fromCache"`
	ID         string             `json:"id"`
	IsFavorite bool               `json:"isFavorite"`
}

// List handles GET /entries/en?search=&limit=&next=&previous=
func (h *WordHandler) List(c *gin.Context) {
	q := catalog.Query{
		Search:   c.Query("search"),
		Limit:    catalog.DefaultLimit,
		Next:     c.Query("next"),
		Previous: c.Query("previous"),
	}
	if q.Next != "" && q.Previous != "" {
		respondError(c, http.StatusBadRequest, "Use either next or previous, not both")
		return
	}
	// unparseable limits fall back to the default; range is clamped downstream
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.Limit = n
		}
	}

	page, err := h.lister.ListWords(c.Request.Context(), q)
	if errors.Is(err, catalog.ErrInvalidCursor) {
		respondError(c, http.StatusBadRequest, "Invalid cursor")
		return
	}
	if err != nil {
		h.log.Error("list words", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get handles GET /entries/en/:wordId
func (h *WordHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	word, ok := h.findWord(c)
	if !ok {
		return
	}

	result, err := h.dict.SearchWord(ctx, word.Value)
	if err != nil {
		if errors.Is(err, dictionary.ErrProvider) {
			h.log.Error("dictionary provider failed", "word", word.Value, "error", err)
			respondError(c, http.StatusBadGateway, "Dictionary service unavailable")
			return
		}
		h.log.Error("search word", "word", word.Value, "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if result == nil {
		respondError(c, http.StatusNotFound, "Word not found in dictionary")
		return
	}

	if err := h.history.Touch(ctx, userID, word.ID); err != nil {
		h.log.Warn("record history", "user_id", userID, "word_id", word.ID, "error", err)
	}

	isFavorite, err := h.favorites.Exists(ctx, userID, word.ID)
	if err != nil {
		h.log.Warn("check favorite", "user_id", userID, "word_id", word.ID, "error", err)
	}

	cacheStatus := "MISS"
	if result.FromCache {
		cacheStatus = "HIT"
	}
	c.Header("x-cache", cacheStatus)
	c.JSON(http.StatusOK, WordResponse{
		Definition: result.Definition,
		FromCache:  result.FromCache,
		ID:         word.ID,
		IsFavorite: isFavorite,
	})
}

// ClearCache handles DELETE /entries/en/:wordId/cache
func (h *WordHandler) ClearCache(c *gin.Context) {
	word, ok := h.findWord(c)
	if !ok {
		return
	}

	if !h.dict.ClearWordCache(c.Request.Context(), word.Value) {
		respondError(c, http.StatusServiceUnavailable, "Cache unavailable")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WordHandler) findWord(c *gin.Context) (*model.Word, bool) {
	id := c.Param("wordId")
	word, err := h.words.FindByID(c.Request.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Word not found")
		return nil, false
	}
	if err != nil {
		h.log.Error("find word", "word_id", id, "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return word, true
}
