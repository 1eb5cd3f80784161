package e2e

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/abhi-dhakar/edignite-sub001/domain"
	"github.com/abhi-dhakar/edignite-sub001/internal/config"
	httpx "github.com/abhi-dhakar/edignite-sub001/internal/http"
	"github.com/abhi-dhakar/edignite-sub001/internal/http/handlers"
	"github.com/abhi-dhakar/edignite-sub001/internal/http/middleware"
	"github.com/abhi-dhakar/edignite-sub001/internal/infrastructure/auth"
	"github.com/abhi-dhakar/edignite-sub001/internal/infrastructure/database"
	"github.com/abhi-dhakar/edignite-sub001/internal/infrastructure/repositories"
	"github.com/abhi-dhakar/edignite-sub001/internal/mocks"
	"github.com/abhi-dhakar/edignite-sub001/internal/services"
)

var dbCounter atomic.Int64

// TestServer runs the full HTTP stack against in-process infrastructure:
// SQLite for the database, miniredis for the OTP ledger and sessions, and a
// fake payment gateway. Everything above the infrastructure line is the real
// production wiring.
type TestServer struct {
	Router *gin.Engine
	Redis  *miniredis.Miniredis

	UserRepo     domain.UserRepository
	DonationRepo domain.DonationRepository
	EventRepo    domain.EventRepository
	StoryRepo    domain.StoryRepository
	NotifRepo    domain.NotificationRepository

	PasswordSvc domain.PasswordService
	Gateway     *mocks.MockPaymentGateway

	KeySecret     string
	WebhookSecret string
}

// NewTestServer assembles the stack for one test.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// A named shared-cache database keeps the schema visible across the
	// connections gorm pools.
	dsn := fmt.Sprintf("file:e2e_%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cas, err := auth.NewCasbinService(db, "../../../config/rbac_model.conf")
	if err != nil {
		t.Fatalf("casbin: %v", err)
	}
	seedTestPolicies(t, cas)

	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(rdb, 7*24*time.Hour)
	donationRepo := repositories.NewDonationRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	storyRepo := repositories.NewStoryRepository(db)
	mediaRepo := repositories.NewMediaRepository(db)
	notifRepo := repositories.NewNotificationRepository(db)
	sponsorshipRepo := repositories.NewSponsorshipRepository(db)
	volunteerRepo := repositories.NewVolunteerRepository(db)

	passwordSvc := auth.NewPasswordServiceWithCost(bcrypt.MinCost)
	tokenSvc := auth.NewJWTService("e2e-secret", "edignite-test", 15*time.Minute, 7*24*time.Hour)
	notifier := mocks.NewMockNotificationService()

	otpSvc := services.NewOTPService(notifier, rdb, services.OTPConfig{
		Length:       6,
		TTL:          10 * time.Minute,
		MaxAttempts:  4,
		ResendWindow: 60 * time.Second,
	})
	authSvc := services.NewAuthService(userRepo, sessionRepo, passwordSvc, tokenSvc, otpSvc)

	gateway := mocks.NewMockPaymentGateway()
	const keySecret = "e2e-key-secret"
	const webhookSecret = "e2e-webhook-secret"
	paymentSvc := services.NewPaymentService(gateway, donationRepo, notifier, notifRepo, userRepo,
		"rzp_test_e2e", keySecret, webhookSecret)

	policySvc := services.NewPolicyService(cas.E)

	h := httpx.Handlers{
		Auth:          handlers.NewAuthHandlers(authSvc),
		Payments:      handlers.NewPaymentHandlers(paymentSvc, donationRepo),
		Events:        handlers.NewEventHandlers(eventRepo),
		Stories:       handlers.NewStoryHandlers(storyRepo),
		Media:         handlers.NewMediaHandlers(mediaRepo, mocks.NewMockMediaStorage()),
		Notifications: handlers.NewNotificationHandlers(notifRepo),
		Users:         handlers.NewUserHandlers(userRepo),
		Community:     handlers.NewCommunityHandlers(sponsorshipRepo, volunteerRepo),
		Policies:      handlers.NewPolicyHandlers(policySvc),
	}

	jwtMW := middleware.NewAuthMW(tokenSvc, sessionRepo)
	casbinMW := middleware.NewCasbinMW(cas.E, []config.OwnershipRule{
		{Method: "GET", Path: "/users/:id", Source: "param", ParamName: "id"},
		{Method: "PUT", Path: "/users/:id", Source: "param", ParamName: "id"},
		{Method: "GET", Path: "/users/:id/donations", Source: "param", ParamName: "id"},
	})

	return &TestServer{
		Router:        httpx.BuildRouter(h, jwtMW, casbinMW),
		Redis:         mr,
		UserRepo:      userRepo,
		DonationRepo:  donationRepo,
		EventRepo:     eventRepo,
		StoryRepo:     storyRepo,
		NotifRepo:     notifRepo,
		PasswordSvc:   passwordSvc,
		Gateway:       gateway,
		KeySecret:     keySecret,
		WebhookSecret: webhookSecret,
	}
}

func seedTestPolicies(t *testing.T, cas *auth.CasbinService) {
	t.Helper()

	policies := [][]string{
		{"role_admin", "/admin/*", "(GET|POST|PUT|DELETE)"},
		{"role_admin", "/users/:id", "(GET|PUT)"},
		{"role_admin", "/users/:id/donations", "GET"},
		{"role_owner", "/users/:id", "(GET|PUT)"},
		{"role_owner", "/users/:id/donations", "GET"},
	}
	for _, role := range []string{"role_donor", "role_volunteer", "role_sponsor", "role_beneficiary", "role_admin"} {
		policies = append(policies,
			[]string{role, "/auth/me", "GET"},
			[]string{role, "/auth/logout", "POST"},
			[]string{role, "/events/:id/register", "POST"},
			[]string{role, "/notifications", "GET"},
			[]string{role, "/notifications/:id/read", "PUT"},
			[]string{role, "/sponsorships", "(GET|POST)"},
			[]string{role, "/volunteers/apply", "POST"},
			[]string{role, "/volunteers/me", "GET"},
		)
	}
	for _, p := range policies {
		if _, err := cas.E.AddPolicy(p[0], p[1], p[2]); err != nil {
			t.Fatalf("seed policy %v: %v", p, err)
		}
	}
}

// OTPCode reads the live code for email straight out of the ledger.
func (ts *TestServer) OTPCode(t *testing.T, email string) string {
	t.Helper()

	code, err := ts.Redis.Get("otp:" + email)
	if err != nil {
		t.Fatalf("no OTP ledger entry for %s: %v", email, err)
	}
	return code
}

// SeedUser writes an account directly, bypassing the OTP flow.
func (ts *TestServer) SeedUser(t *testing.T, name, email, password string, role domain.Role) *domain.User {
	t.Helper()

	hash, err := ts.PasswordSvc.Hash(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := ts.UserRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
