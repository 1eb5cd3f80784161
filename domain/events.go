package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Account lifecycle events
	SignupOTPRequestEvent AuditEventType = "SIGNUP_OTP_REQUESTED"
	SignupCompletedEvent  AuditEventType = "SIGNUP_COMPLETED"
	SignupFailureEvent    AuditEventType = "SIGNUP_FAILED"
	ResetOTPRequestEvent  AuditEventType = "RESET_OTP_REQUESTED"
	PasswordResetEvent    AuditEventType = "PASSWORD_RESET"
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"

	// Payment events
	OrderCreatedEvent      AuditEventType = "ORDER_CREATED"
	PaymentCompletedEvent  AuditEventType = "PAYMENT_COMPLETED"
	PaymentFailedEvent     AuditEventType = "PAYMENT_FAILED"
	WebhookRejectedEvent   AuditEventType = "WEBHOOK_REJECTED"
	WebhookProcessedEvent  AuditEventType = "WEBHOOK_PROCESSED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	UserID    uint                   `json:"user_id,omitempty"`
	Email     string                 `json:"email,omitempty"`
	OrderID   string                 `json:"order_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithOrderID sets the order id field
func (e *AuditEvent) WithOrderID(orderID string) *AuditEvent {
	e.OrderID = orderID
	return e
}

// WithUserID sets the user id field
func (e *AuditEvent) WithUserID(userID uint) *AuditEvent {
	e.UserID = userID
	return e
}
