package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// PaymentHandlers handles donation order creation, client-side verification
// and gateway webhooks.
type PaymentHandlers struct {
	paymentSvc  domain.PaymentService
	donationRepo domain.DonationRepository
}

// NewPaymentHandlers creates new payment handlers
func NewPaymentHandlers(paymentSvc domain.PaymentService, donationRepo domain.DonationRepository) *PaymentHandlers {
	return &PaymentHandlers{paymentSvc: paymentSvc, donationRepo: donationRepo}
}

// CreateOrderRequest opens a donation order. Amount is in minor currency
// units (paise for INR).
type CreateOrderRequest struct {
	Amount     int64  `json:"amount" binding:"required"`
	Currency   string `json:"currency,omitempty"`
	DonorName  string `json:"donor_name,omitempty"`
	DonorEmail string `json:"donor_email,omitempty" binding:"omitempty,email"`
}

// VerifyPaymentRequest carries the checkout callback fields back to the server
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// CreateOrder handles POST /payments/create-order. Works for both guests and
// authenticated donors; a logged-in donor gets the donation attached to their
// account.
func (h *PaymentHandlers) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var userID *uint
	if id, ok := currentUserID(c); ok {
		userID = &id
	}

	order, err := h.paymentSvc.CreateOrder(c.Request.Context(), req.Amount, req.Currency, req.DonorName, req.DonorEmail, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Amount must be a positive number of minor units"})
		case errors.Is(err, domain.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Payment gateway is unavailable. Please try again."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Order created",
		"order_id": order.OrderID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"key_id":   order.KeyID,
	})
}

// VerifyPayment handles POST /payments/verify
func (h *PaymentHandlers) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	donation, err := h.paymentSvc.VerifyPayment(c.Request.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSignatureMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment signature verification failed"})
		case errors.Is(err, domain.ErrDonationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No donation found for this order"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Payment verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment verified",
		"donation": gin.H{
			"id":             donation.ID,
			"order_id":       donation.OrderID,
			"transaction_id": donation.TransactionID,
			"amount":         donation.Amount,
			"currency":       donation.Currency,
			"status":         donation.Status,
		},
	})
}

// Webhook handles POST /payments/webhook. The signature covers the raw body,
// so it must be read before any JSON parsing.
func (h *PaymentHandlers) Webhook(c *gin.Context) {
	rawBody, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unable to read request body"})
		return
	}
	signature := c.GetHeader("X-Razorpay-Signature")

	if err := h.paymentSvc.HandleWebhook(c.Request.Context(), rawBody, signature); err != nil {
		switch {
		case errors.Is(err, domain.ErrWebhookUnsigned), errors.Is(err, domain.ErrSignatureMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid webhook signature"})
		default:
			// Non-signature failures are acknowledged so the gateway does not
			// retry forever against a permanently unknown order.
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Acknowledged"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OK"})
}

// ListDonations handles GET /admin/donations
func (h *PaymentHandlers) ListDonations(c *gin.Context) {
	donations, err := h.donationRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list donations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "OK",
		"donations": donations,
		"count":     len(donations),
	})
}

// ListUserDonations handles GET /users/:id/donations
func (h *PaymentHandlers) ListUserDonations(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	donations, err := h.donationRepo.ListByUser(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list donations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "OK",
		"donations": donations,
		"count":     len(donations),
	})
}
