package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// CommunityHandlers handles sponsorships and volunteer profiles
type CommunityHandlers struct {
	sponsorshipRepo domain.SponsorshipRepository
	volunteerRepo   domain.VolunteerRepository
}

// NewCommunityHandlers creates new community handlers
func NewCommunityHandlers(sponsorshipRepo domain.SponsorshipRepository, volunteerRepo domain.VolunteerRepository) *CommunityHandlers {
	return &CommunityHandlers{sponsorshipRepo: sponsorshipRepo, volunteerRepo: volunteerRepo}
}

// SponsorshipRequest represents a new sponsorship commitment. MonthlyAmount
// is in minor currency units.
type SponsorshipRequest struct {
	BeneficiaryName string `json:"beneficiary_name" binding:"required"`
	MonthlyAmount   int64  `json:"monthly_amount" binding:"required,gt=0"`
}

// VolunteerRequest represents a volunteer application
type VolunteerRequest struct {
	Skills       string `json:"skills" binding:"required"`
	Availability string `json:"availability,omitempty"`
}

// CreateSponsorship handles POST /sponsorships (requires authentication)
func (h *CommunityHandlers) CreateSponsorship(c *gin.Context) {
	var req SponsorshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	sponsorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User ID not found in context"})
		return
	}

	s := &domain.Sponsorship{
		SponsorID:       sponsorID,
		BeneficiaryName: req.BeneficiaryName,
		MonthlyAmount:   req.MonthlyAmount,
		Active:          true,
	}
	if err := h.sponsorshipRepo.Create(c.Request.Context(), s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create sponsorship"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Sponsorship created",
		"sponsorship": s,
	})
}

// MySponsorships handles GET /sponsorships (requires authentication)
func (h *CommunityHandlers) MySponsorships(c *gin.Context) {
	sponsorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User ID not found in context"})
		return
	}

	sponsorships, err := h.sponsorshipRepo.ListBySponsor(c.Request.Context(), sponsorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list sponsorships"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "OK",
		"sponsorships": sponsorships,
		"count":        len(sponsorships),
	})
}

// ListSponsorships handles GET /admin/sponsorships
func (h *CommunityHandlers) ListSponsorships(c *gin.Context) {
	sponsorships, err := h.sponsorshipRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list sponsorships"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "OK",
		"sponsorships": sponsorships,
		"count":        len(sponsorships),
	})
}

// ApplyVolunteer handles POST /volunteers/apply (requires authentication)
func (h *CommunityHandlers) ApplyVolunteer(c *gin.Context) {
	var req VolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User ID not found in context"})
		return
	}

	profile := &domain.VolunteerProfile{
		UserID:       userID,
		Skills:       req.Skills,
		Availability: req.Availability,
	}
	if err := h.volunteerRepo.Create(c.Request.Context(), profile); err != nil {
		if errors.Is(err, domain.ErrProfileExists) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Volunteer application already submitted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to submit application"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Volunteer application submitted",
		"profile": profile,
	})
}

// MyVolunteerProfile handles GET /volunteers/me (requires authentication)
func (h *CommunityHandlers) MyVolunteerProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User ID not found in context"})
		return
	}

	profile, err := h.volunteerRepo.FindByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No volunteer profile"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OK",
		"profile": profile,
	})
}

// ListVolunteers handles GET /admin/volunteers
func (h *CommunityHandlers) ListVolunteers(c *gin.Context) {
	profiles, err := h.volunteerRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list volunteers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "OK",
		"volunteers": profiles,
		"count":      len(profiles),
	})
}

// ApproveVolunteer handles PUT /admin/volunteers/:id/approve
func (h *CommunityHandlers) ApproveVolunteer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.volunteerRepo.Approve(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Volunteer profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to approve volunteer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Volunteer approved"})
}
