package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// PolicyHandlers handles runtime authorization policy management
type PolicyHandlers struct {
	policySvc domain.PolicyService
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policySvc domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{policySvc: policySvc}
}

// PolicyRequest represents a policy rule
type PolicyRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// AddPolicy handles POST /admin/policies
func (h *PolicyHandlers) AddPolicy(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.policySvc.AddPolicy(req.Role, req.Resource, req.Action); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add policy"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Policy added"})
}

// RemovePolicy handles DELETE /admin/policies
func (h *PolicyHandlers) RemovePolicy(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.policySvc.RemovePolicy(req.Role, req.Resource, req.Action); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to remove policy"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Policy removed"})
}

// ListPolicies handles GET /admin/policies
func (h *PolicyHandlers) ListPolicies(c *gin.Context) {
	policies := h.policySvc.GetPolicies()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "OK",
		"policies": policies,
		"count":    len(policies),
	})
}
