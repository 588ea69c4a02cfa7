package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"learnit/internal/domain"
	"learnit/internal/service"
)

const msgServerError = "server error"

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type PostResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	Status      string        `json:"status"`
	UserID      string        `json:"userId"`
	User        *UserResponse `json:"user,omitempty"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
}

func postToResponse(post domain.Post) PostResponse {
	resp := PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		URL:         post.URL,
		Status:      post.Status,
		UserID:      post.OwnerID,
		CreatedAt:   post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   post.UpdatedAt.Format(time.RFC3339),
	}
	if post.Owner != nil {
		resp.User = &UserResponse{ID: post.Owner.ID, Username: post.Owner.Username}
	}
	return resp
}

func errorBody(message string) gin.H {
	return gin.H{"success": false, "message": message}
}

// fail maps service errors onto status codes. Anything unexpected is logged
// and reported as a bare server error.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrTitleRequired):
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrUnknownUser):
		c.JSON(http.StatusUnauthorized, errorBody(err.Error()))
	default:
		h.logger.WithError(err).
			WithField("request_id", c.GetString(requestIDKey)).
			WithField("path", c.FullPath()).
			Error("request failed")
		c.JSON(http.StatusInternalServerError, errorBody(msgServerError))
	}
}
