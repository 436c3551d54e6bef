package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type voteRequest struct {
	BookID int `json:"book_id" binding:"required"`
	// Pointer so an explicit 0 ("clear") survives required-field validation.
	Direction *int `json:"direction" binding:"required,min=-1,max=1"`
}

// @Summary      Toggle a vote
// @Description  direction 1 casts an upvote, -1 removes an existing vote, 0 clears idempotently.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        body  body  voteRequest  true  "Vote"
// @Success      201  {object}  map[string]string  "message"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /votes/ [post]
// @Security     BearerAuth
func (h *Handler) castVote(c *gin.Context) {
	var input voteRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	user := currentUser(c)
	msg, err := h.services.Votes.Toggle(c.Request.Context(), user.ID, input.BookID, *input.Direction)
	if err != nil {
		h.respondError(c, err, "vote_toggle_failed", "user_id", user.ID, "book_id", input.BookID)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
