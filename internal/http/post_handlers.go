package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"learnit/internal/auth"
	"learnit/internal/service"
)

type postRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Status      string `json:"status"`
}

func (r postRequest) input() service.PostInput {
	return service.PostInput{
		Title:       r.Title,
		Description: r.Description,
		URL:         r.URL,
		Status:      r.Status,
	}
}

func currentUser(c *gin.Context) (string, bool) {
	userID, ok := auth.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody(msgNoToken))
	}
	return userID, ok
}

func (h *Handler) listPosts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	posts, err := h.posts.List(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]PostResponse, len(posts))
	for i := range posts {
		resp[i] = postToResponse(posts[i])
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "posts": resp})
}

func (h *Handler) createPost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req postRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.posts.Create(c.Request.Context(), userID, req.input())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "happy learning",
		"post":    postToResponse(*post),
	})
}

func (h *Handler) updatePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req postRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.posts.Update(c.Request.Context(), userID, c.Param("id"), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "updated successfully",
		"post":    postToResponse(*post),
	})
}

func (h *Handler) deletePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	post, err := h.posts.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "deleted successfully",
		"post":    postToResponse(*post),
	})
}
