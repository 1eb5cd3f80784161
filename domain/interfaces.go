package domain

import "context"

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	List(ctx context.Context, role Role) ([]User, error)
	Delete(ctx context.Context, id uint) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// DonationRepository defines donation ledger operations. Settle updates the
// donation matching orderID to a terminal status, but only while it is still
// pending; re-settling a settled donation is a no-op.
type DonationRepository interface {
	Create(ctx context.Context, d *Donation) error
	FindByOrderID(ctx context.Context, orderID string) (*Donation, error)
	Settle(ctx context.Context, orderID string, status DonationStatus, transactionID string) error
	List(ctx context.Context) ([]Donation, error)
	ListByUser(ctx context.Context, userID uint) ([]Donation, error)
}

// EventRepository defines event and registration operations
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	FindByID(ctx context.Context, id uint) (*Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]Event, error)
	Register(ctx context.Context, eventID, userID uint) error
	CountRegistrations(ctx context.Context, eventID uint) (int64, error)
	ListRegistrations(ctx context.Context, eventID uint) ([]EventRegistration, error)
}

// StoryRepository defines impact story operations
type StoryRepository interface {
	Create(ctx context.Context, s *Story) error
	FindByID(ctx context.Context, id uint) (*Story, error)
	Update(ctx context.Context, s *Story) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, publishedOnly bool) ([]Story, error)
}

// MediaRepository defines uploaded asset records
type MediaRepository interface {
	Create(ctx context.Context, m *Media) error
	FindByID(ctx context.Context, id uint) (*Media, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]Media, error)
}

// NotificationRepository defines the notification sink
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uint) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
}

// SponsorshipRepository defines sponsorship records
type SponsorshipRepository interface {
	Create(ctx context.Context, s *Sponsorship) error
	ListBySponsor(ctx context.Context, sponsorID uint) ([]Sponsorship, error)
	List(ctx context.Context) ([]Sponsorship, error)
}

// VolunteerRepository defines volunteer profile records
type VolunteerRepository interface {
	Create(ctx context.Context, v *VolunteerProfile) error
	FindByUser(ctx context.Context, userID uint) (*VolunteerProfile, error)
	Approve(ctx context.Context, id uint) error
	List(ctx context.Context) ([]VolunteerProfile, error)
}

// AuthService defines account lifecycle business logic. Signup and password
// reset are OTP-gated: BeginSignup/BeginPasswordReset issue a code, the
// Complete* calls consume it.
type AuthService interface {
	BeginSignup(ctx context.Context, name, email, password string, role Role, phone string) (*OTPTicket, error)
	CompleteSignup(ctx context.Context, email, code string) (*AuthResult, error)
	ResendOTP(ctx context.Context, email string) (*OTPTicket, error)
	BeginPasswordReset(ctx context.Context, email string) (*OTPTicket, error)
	VerifyResetOTP(ctx context.Context, email, code string) error
	CompletePasswordReset(ctx context.Context, email, code, newPassword string) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// OTPService defines the one-time code ledger. Verify returns the stored
// payload on success and leaves deletion of the entry to the caller.
type OTPService interface {
	Issue(ctx context.Context, email string, payload *OTPPayload) (*OTPTicket, error)
	Reissue(ctx context.Context, email string) (*OTPTicket, error)
	Verify(ctx context.Context, email, code string) (*OTPPayload, error)
	Consume(ctx context.Context, email string) error
	CanResend(ctx context.Context, email string) (bool, int64, error)
}

// PaymentService defines donation order creation and reconciliation
type PaymentService interface {
	CreateOrder(ctx context.Context, amount int64, currency, donorName, donorEmail string, userID *uint) (*PaymentOrder, error)
	VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*Donation, error)
	HandleWebhook(ctx context.Context, rawBody []byte, signature string) error
}

// PaymentGateway is the outbound collaborator that creates orders with the
// external processor.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (orderID string, err error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uint, role Role, sessionID string) (string, error)
	GenerateRefreshToken(userID uint, role Role, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// NotificationService defines outbound message delivery
type NotificationService interface {
	SendEmail(to, subject, body string) error
	SendSMS(to, message string) error
}

// MediaStorage is the object-storage collaborator for uploaded assets.
type MediaStorage interface {
	Upload(ctx context.Context, data []byte, folder, filename, contentType string) (url, publicID string, err error)
	Remove(ctx context.Context, publicID string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      Role   `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
