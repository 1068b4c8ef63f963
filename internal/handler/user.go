package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wordbook/api/internal/model"
)

type UserHandler struct {
	users     UserStore
	words     WordFinder
	history   HistoryStore
	favorites FavoriteStore
	log       *slog.Logger
}

func NewUserHandler(users UserStore, words WordFinder, history HistoryStore, favorites FavoriteStore, log *slog.Logger) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		users:     users,
		words:     words,
		history:   history,
		favorites: favorites,
		log:       log.With("component", "users"),
	}
}

type FavoriteResponse struct {
	ID   string     `json:"id"`
	Word model.Word `json:"word"`
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.users.FindByID(c.Request.Context(), currentUserID(c))
	if errors.Is(err, model.ErrNotFound) {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.log.Error("load profile", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) History(c *gin.Context) {
	items, err := h.history.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.log.Error("list history", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *UserHandler) Favorites(c *gin.Context) {
	items, err := h.favorites.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.log.Error("list favorites", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, items)
}

// MarkFavorite handles POST /user/me/:wordId/favorite. Repeating it is a no-op.
func (h *UserHandler) MarkFavorite(c *gin.Context) {
	word, ok := h.findWord(c)
	if !ok {
		return
	}

	fav, err := h.favorites.Add(c.Request.Context(), currentUserID(c), word.ID)
	if err != nil {
		h.log.Error("add favorite", "word_id", word.ID, "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, FavoriteResponse{ID: fav.ID, Word: *word})
}

// UnmarkFavorite handles DELETE /user/me/:wordId/unfavorite.
func (h *UserHandler) UnmarkFavorite(c *gin.Context) {
	word, ok := h.findWord(c)
	if !ok {
		return
	}

	if err := h.favorites.Remove(c.Request.Context(), currentUserID(c), word.ID); err != nil {
		h.log.Error("remove favorite", "word_id", word.ID, "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) findWord(c *gin.Context) (*model.Word, bool) {
	word, err := h.words.FindByID(c.Request.Context(), c.Param("wordId"))
	if errors.Is(err, model.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Word not found")
		return nil, false
	}
	if err != nil {
		h.log.Error("find word", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return word, true
}
