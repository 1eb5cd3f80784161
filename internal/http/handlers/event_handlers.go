package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// EventHandlers handles event CRUD and registrations
type EventHandlers struct {
	eventRepo domain.EventRepository
}

// NewEventHandlers creates new event handlers
func NewEventHandlers(eventRepo domain.EventRepository) *EventHandlers {
	return &EventHandlers{eventRepo: eventRepo}
}

// EventRequest represents event create/update request
type EventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Date        time.Time `json:"date" binding:"required"`
	Capacity    int       `json:"capacity,omitempty"`
}

// List handles GET /events
func (h *EventHandlers) List(c *gin.Context) {
	events, err := h.eventRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OK",
		"events":  events,
		"count":   len(events),
	})
}

// Get handles GET /events/:id
func (h *EventHandlers) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	event, err := h.eventRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get event"})
		return
	}

	registered, err := h.eventRepo.CountRegistrations(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          "OK",
		"event":            event,
		"registered_count": registered,
	})
}

// Create handles POST /admin/events
func (h *EventHandlers) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	event := &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		Capacity:    req.Capacity,
	}

	if err := h.eventRepo.Create(c.Request.Context(), event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Event created",
		"event":   event,
	})
}

// Update handles PUT /admin/events/:id
func (h *EventHandlers) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	event, err := h.eventRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update event"})
		return
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Location = req.Location
	event.Date = req.Date
	event.Capacity = req.Capacity

	if err := h.eventRepo.Update(c.Request.Context(), event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event updated",
		"event":   event,
	})
}

// Delete handles DELETE /admin/events/:id
func (h *EventHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.eventRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event deleted"})
}

// Register handles POST /events/:id/register (requires authentication)
func (h *EventHandlers) Register(c *gin.Context) {
	eventID, ok := pathID(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User ID not found in context"})
		return
	}

	ctx := c.Request.Context()

	event, err := h.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register"})
		return
	}

	if event.Capacity > 0 {
		registered, err := h.eventRepo.CountRegistrations(ctx, eventID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register"})
			return
		}
		if registered >= int64(event.Capacity) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Event is full"})
			return
		}
	}

	if err := h.eventRepo.Register(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Already registered for this event"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Registered for event"})
}

// Registrations handles GET /admin/events/:id/registrations
func (h *EventHandlers) Registrations(c *gin.Context) {
	eventID, ok := pathID(c)
	if !ok {
		return
	}

	regs, err := h.eventRepo.ListRegistrations(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list registrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "OK",
		"registrations": regs,
		"count":         len(regs),
	})
}

// pathID parses the :id path parameter, writing a 400 on failure.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}
