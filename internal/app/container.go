package app

import (
	"context"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/abhi-dhakar/edignite-sub001/domain"
	"github.com/abhi-dhakar/edignite-sub001/internal/config"
	"github.com/abhi-dhakar/edignite-sub001/internal/infrastructure/auth"
	"github.com/abhi-dhakar/edignite-sub001/internal/infrastructure/database"
	"github.com/abhi-dhakar/edignite-sub001/internal/infrastructure/gateway"
	"github.com/abhi-dhakar/edignite-sub001/internal/infrastructure/notifications"
	"github.com/abhi-dhakar/edignite-sub001/internal/infrastructure/repositories"
	"github.com/abhi-dhakar/edignite-sub001/internal/infrastructure/storage"
	"github.com/abhi-dhakar/edignite-sub001/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Enforcer    *casbin.Enforcer

	// Repositories
	UserRepo        domain.UserRepository
	SessionRepo     domain.SessionRepository
	DonationRepo    domain.DonationRepository
	EventRepo       domain.EventRepository
	StoryRepo       domain.StoryRepository
	MediaRepo       domain.MediaRepository
	NotifRepo       domain.NotificationRepository
	SponsorshipRepo domain.SponsorshipRepository
	VolunteerRepo   domain.VolunteerRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	PaymentSvc      domain.PaymentService
	PolicySvc       domain.PolicyService
	MediaStorage    domain.MediaStorage
}

// NewContainer creates and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	if err := c.initRedis(ctx); err != nil {
		return nil, err
	}
	if err := c.initCasbin(); err != nil {
		return nil, err
	}

	c.initRepositories()

	if err := c.initServices(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initDatabase() error {
	gdb, err := database.Open(c.Config.DSN)
	if err != nil {
		return fmt.Errorf("database open: %w", err)
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return fmt.Errorf("database migrate: %w", err)
	}
	c.DB = gdb
	return nil
}

func (c *Container) initRedis(ctx context.Context) error {
	rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	c.RedisClient = rdb
	return nil
}

func (c *Container) initCasbin() error {
	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("casbin init: %w", err)
	}
	c.Enforcer = cas.E
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.RefreshTTL)
	c.DonationRepo = repositories.NewDonationRepository(c.DB)
	c.EventRepo = repositories.NewEventRepository(c.DB)
	c.StoryRepo = repositories.NewStoryRepository(c.DB)
	c.MediaRepo = repositories.NewMediaRepository(c.DB)
	c.NotifRepo = repositories.NewNotificationRepository(c.DB)
	c.SponsorshipRepo = repositories.NewSponsorshipRepository(c.DB)
	c.VolunteerRepo = repositories.NewVolunteerRepository(c.DB)
}

func (c *Container) initServices(ctx context.Context) error {
	cfg := c.Config

	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)

	mailer := notifications.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	sms := notifications.NewTwilioSMSSender(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	c.NotificationSvc = notifications.NewMessenger(mailer, sms, cfg.SMTPHost != "")

	c.OTPSvc = services.NewOTPService(c.NotificationSvc, c.RedisClient, services.OTPConfig{
		Length:       cfg.OTP_Length,
		TTL:          cfg.OTP_TTL,
		MaxAttempts:  cfg.OTP_MaxAttempts,
		ResendWindow: cfg.OTP_ResendWindow,
	})

	c.AuthSvc = services.NewAuthService(c.UserRepo, c.SessionRepo, c.PasswordSvc, c.TokenSvc, c.OTPSvc)

	rzp := gateway.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpaySecret)
	c.PaymentSvc = services.NewPaymentService(rzp, c.DonationRepo, c.NotificationSvc, c.NotifRepo, c.UserRepo,
		cfg.RazorpayKeyID, cfg.RazorpaySecret, cfg.WebhookSecret)

	c.PolicySvc = services.NewPolicyService(c.Enforcer)

	s3, err := storage.NewS3Storage(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3BaseURL, cfg.S3KeyPrefix)
	if err != nil {
		return fmt.Errorf("s3 init: %w", err)
	}
	c.MediaStorage = s3

	return nil
}

// Close releases held connections.
func (c *Container) Close() error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			return err
		}
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
