package handlers

import (
	"net/http"
	"strconv"

	"book_catalog/internal/service"

	"github.com/gin-gonic/gin"
)

const errInvalidUserID = "invalid user id"

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// updateUserRequest is a patch shape: absent fields stay untouched.
type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
}

// pathID parses the numeric :id path parameter, writing a 400 on failure.
func pathID(c *gin.Context, badMsg string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": badMsg})
		return 0, false
	}
	return id, true
}

// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  models.User
// @Router       /users [get]
func (h *Handler) getUsers(c *gin.Context) {
	users, err := h.services.Users.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "users_list_failed")
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Get user with their books
// @Tags         users
// @Produce      json
// @Param        id  path  int  true  "User ID"
// @Success      200  {object}  models.UserWithBooks
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *Handler) getUser(c *gin.Context) {
	id, ok := pathID(c, errInvalidUserID)
	if !ok {
		return
	}
	user, err := h.services.Users.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "user_get_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      List a user's books
// @Tags         users
// @Produce      json
// @Param        id  path  int  true  "User ID"
// @Success      200  {array}  models.Book
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/books [get]
func (h *Handler) getUserBooks(c *gin.Context) {
	id, ok := pathID(c, errInvalidUserID)
	if !ok {
		return
	}
	books, err := h.services.Users.Books(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "user_books_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, books)
}

// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  createUserRequest  true  "New user"
// @Success      200  {object}  models.User
// @Failure      400  {object}  map[string]string
// @Router       /users [post]
func (h *Handler) createUser(c *gin.Context) {
	var input createUserRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	user, err := h.services.Users.Create(c.Request.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("user_create_rejected", "request_id", requestID(c), "username", input.Username, "err", err)
		}
		h.respondError(c, err, "user_create_failed")
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Update a user
// @Description  Partial update; only fields present in the payload change.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "User ID"
// @Param        body  body  updateUserRequest  true  "Changed fields"
// @Success      200  {object}  models.User
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [put]
func (h *Handler) updateUser(c *gin.Context) {
	id, ok := pathID(c, errInvalidUserID)
	if !ok {
		return
	}
	var input updateUserRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	user, err := h.services.Users.Update(c.Request.Context(), id, service.UserUpdate{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		h.respondError(c, err, "user_update_failed", "id", id)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary      Delete a user
// @Description  Cascades deletion of the user's books and votes.
// @Tags         users
// @Param        id  path  int  true  "User ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := pathID(c, errInvalidUserID)
	if !ok {
		return
	}
	if err := h.services.Users.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "user_delete_failed", "id", id)
		return
	}
	c.Status(http.StatusNoContent)
}
