package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// StoryHandlers handles impact story CRUD
type StoryHandlers struct {
	storyRepo domain.StoryRepository
}

// NewStoryHandlers creates new story handlers
func NewStoryHandlers(storyRepo domain.StoryRepository) *StoryHandlers {
	return &StoryHandlers{storyRepo: storyRepo}
}

// StoryRequest represents story create/update request
type StoryRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	ImageURL  string `json:"image_url,omitempty"`
	Published bool   `json:"published,omitempty"`
}

// List handles GET /stories. Public callers see published stories only;
// admins see everything via the include_drafts flag.
func (h *StoryHandlers) List(c *gin.Context) {
	publishedOnly := true
	if c.Query("include_drafts") == "true" {
		if role, exists := c.Get("user_role"); exists && role == string(domain.RoleAdmin) {
			publishedOnly = false
		}
	}

	stories, err := h.storyRepo.List(c.Request.Context(), publishedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list stories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OK",
		"stories": stories,
		"count":   len(stories),
	})
}

// Get handles GET /stories/:id
func (h *StoryHandlers) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	story, err := h.storyRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrStoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Story not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OK",
		"story":   story,
	})
}

// Create handles POST /admin/stories
func (h *StoryHandlers) Create(c *gin.Context) {
	var req StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	authorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User ID not found in context"})
		return
	}

	story := &domain.Story{
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  authorID,
		ImageURL:  req.ImageURL,
		Published: req.Published,
	}

	if err := h.storyRepo.Create(c.Request.Context(), story); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create story"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Story created",
		"story":   story,
	})
}

// Update handles PUT /admin/stories/:id
func (h *StoryHandlers) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	story, err := h.storyRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrStoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Story not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update story"})
		return
	}

	story.Title = req.Title
	story.Content = req.Content
	story.ImageURL = req.ImageURL
	story.Published = req.Published

	if err := h.storyRepo.Update(c.Request.Context(), story); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Story updated",
		"story":   story,
	})
}

// Delete handles DELETE /admin/stories/:id
func (h *StoryHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.storyRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrStoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Story not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Story deleted"})
}
