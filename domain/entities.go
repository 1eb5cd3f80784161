package domain

import "time"

// Role is the fixed set of account roles.
type Role string

const (
	RoleDonor       Role = "donor"
	RoleVolunteer   Role = "volunteer"
	RoleSponsor     Role = "sponsor"
	RoleBeneficiary Role = "beneficiary"
	RoleAdmin       Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleDonor, RoleVolunteer, RoleSponsor, RoleBeneficiary, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the system. The password hash is never
// serialized.
type User struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Donations     []Donation          `json:"donations,omitempty"`
	Sponsorships  []Sponsorship       `json:"sponsorships,omitempty"`
	Registrations []EventRegistration `json:"registrations,omitempty"`
	Volunteer     *VolunteerProfile   `json:"volunteer,omitempty"`
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// OTPPurpose tags what a pending OTP is allowed to complete.
type OTPPurpose string

const (
	OTPPurposeSignup        OTPPurpose = "signup"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
)

// OTPPayload is the pending operation bound to a one-time code. For signup it
// carries the account fields to materialize; for password reset it is just
// the marker.
type OTPPayload struct {
	Purpose      OTPPurpose `json:"purpose"`
	Name         string     `json:"name,omitempty"`
	PasswordHash string     `json:"password_hash,omitempty"`
	Role         Role       `json:"role,omitempty"`
	Phone        string     `json:"phone,omitempty"`
}

// OTPTicket describes an issued code, returned to callers of Issue.
type OTPTicket struct {
	Email     string
	Code      string
	ExpiresAt time.Time
	Attempts  int
}

// Session represents a logged-in session
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// DonationStatus is the settlement state of a donation.
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
)

// Donation is a gateway-tracked contribution. Amount is in minor units.
type Donation struct {
	ID            uint           `json:"id"`
	UserID        *uint          `json:"user_id,omitempty"`
	DonorName     string         `json:"donor_name,omitempty"`
	DonorEmail    string         `json:"donor_email,omitempty"`
	Amount        int64          `json:"amount"`
	Currency      string         `json:"currency"`
	Status        DonationStatus `json:"status"`
	OrderID       string         `json:"order_id"`
	TransactionID string         `json:"transaction_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// PaymentOrder is what create-order hands back to the client: the gateway
// order id plus the publishable key. The key secret never appears here.
type PaymentOrder struct {
	OrderID  string
	Amount   int64
	Currency string
	KeyID    string
}

// WebhookEvent is the parsed shape of a gateway callback, extracted only
// after the raw-body signature has been verified.
type WebhookEvent struct {
	Event     string
	OrderID   string
	PaymentID string
}

// Event is a scheduled NGO activity volunteers and donors can register for.
type Event struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Date        time.Time `json:"date"`
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Registrations []EventRegistration `json:"registrations,omitempty"`
}

// EventRegistration links a user to an event, at most once.
type EventRegistration struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Story is an impact story shown on the public site.
type Story struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  uint      `json:"author_id"`
	ImageURL  string    `json:"image_url,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Media is an uploaded asset stored in object storage.
type Media struct {
	ID         uint      `json:"id"`
	URL        string    `json:"url"`
	PublicID   string    `json:"public_id"`
	Folder     string    `json:"folder,omitempty"`
	Caption    string    `json:"caption,omitempty"`
	UploaderID uint      `json:"uploader_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notification is a fire-and-forget record consumed by a polling UI.
type Notification struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Sponsorship is a recurring commitment from a sponsor to a beneficiary.
type Sponsorship struct {
	ID              uint      `json:"id"`
	SponsorID       uint      `json:"sponsor_id"`
	BeneficiaryName string    `json:"beneficiary_name"`
	MonthlyAmount   int64     `json:"monthly_amount"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// VolunteerProfile holds the volunteer-specific half of an account.
type VolunteerProfile struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	Skills       string    `json:"skills"`
	Availability string    `json:"availability,omitempty"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
