package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"book_catalog/internal/models"
	"book_catalog/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidBookID = "invalid book id"

	msgNotAuthUpdate = "Not authorized to update this book"
	msgNotAuthDelete = "Not authorized to delete this book"
)

type createBookRequest struct {
	Title  string   `json:"title" binding:"required"`
	Author string   `json:"author" binding:"required"`
	Price  *float64 `json:"price" binding:"required,gte=0"`
}

// updateBookRequest is a patch shape: absent fields stay untouched.
// PUT and PATCH share it; the two methods behave identically.
type updateBookRequest struct {
	Title  *string  `json:"title"`
	Author *string  `json:"author"`
	Price  *float64 `json:"price" binding:"omitempty,gte=0"`
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(c *gin.Context, name string, def int) int {
	s := c.Query(name)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// @Summary      List books
// @Description  Books with vote tallies and owner profiles. Search is a case-sensitive substring match on the title.
// @Tags         books
// @Produce      json
// @Param        limit   query  int     false  "Page size (default 10)"
// @Param        skip    query  int     false  "Offset (default 0)"
// @Param        search  query  string  false  "Title substring filter"
// @Success      200  {array}  models.BookWithVotes
// @Router       /books [get]
func (h *Handler) listBooks(c *gin.Context) {
	books, err := h.services.Books.List(c.Request.Context(), service.ListParams{
		Search: c.Query("search"),
		Limit:  queryInt(c, "limit", 0),
		Skip:   queryInt(c, "skip", 0),
	})
	if err != nil {
		h.respondError(c, err, "books_list_failed")
		return
	}
	c.JSON(http.StatusOK, books)
}

// @Summary      Get a book with its owner
// @Tags         books
// @Produce      json
// @Param        id  path  int  true  "Book ID"
// @Success      200  {object}  models.BookWithOwner
// @Failure      404  {object}  map[string]string
// @Router       /books/{id} [get]
func (h *Handler) getBook(c *gin.Context) {
	id, ok := pathID(c, errInvalidBookID)
	if !ok {
		return
	}
	book, err := h.services.Books.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "book_get_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, book)
}

// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        body  body  createBookRequest  true  "New book"
// @Success      200  {object}  models.Book
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /books [post]
// @Security     BearerAuth
func (h *Handler) createBook(c *gin.Context) {
	var input createBookRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	user := currentUser(c)
	book, err := h.services.Books.Create(c.Request.Context(), user.ID, input.Title, input.Author, *input.Price)
	if err != nil {
		h.respondError(c, err, "book_create_failed", "owner_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, book)
}

// @Summary      Update a book
// @Description  Partial update; only fields present in the payload change. Only the owner may update.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "Book ID"
// @Param        body  body  updateBookRequest  true  "Changed fields"
// @Success      200  {object}  models.Book
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /books/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateBook(c *gin.Context) {
	id, ok := pathID(c, errInvalidBookID)
	if !ok {
		return
	}
	var input updateBookRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	user := currentUser(c)
	book, err := h.services.Books.Update(c.Request.Context(), user.ID, id, models.BookPatch{
		Title:  input.Title,
		Author: input.Author,
		Price:  input.Price,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": msgNotAuthUpdate})
			return
		}
		h.respondError(c, err, "book_update_failed", "id", id, "actor_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, book)
}

// @Summary      Delete a book
// @Description  Cascades deletion of the book's votes. Only the owner may delete.
// @Tags         books
// @Param        id  path  int  true  "Book ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /books/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBook(c *gin.Context) {
	id, ok := pathID(c, errInvalidBookID)
	if !ok {
		return
	}
	user := currentUser(c)
	if err := h.services.Books.Delete(c.Request.Context(), user.ID, id); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": msgNotAuthDelete})
			return
		}
		h.respondError(c, err, "book_delete_failed", "id", id, "actor_id", user.ID)
		return
	}
	c.Status(http.StatusNoContent)
}
