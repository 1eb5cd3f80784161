package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhi-dhakar/edignite-sub001/internal/config"
	httpx "github.com/abhi-dhakar/edignite-sub001/internal/http"
	"github.com/abhi-dhakar/edignite-sub001/internal/http/handlers"
	"github.com/abhi-dhakar/edignite-sub001/internal/http/middleware"
)

// Run boots the container, wires the HTTP layer and serves until a shutdown
// signal arrives.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	h := httpx.Handlers{
		Auth:          handlers.NewAuthHandlers(c.AuthSvc),
		Payments:      handlers.NewPaymentHandlers(c.PaymentSvc, c.DonationRepo),
		Events:        handlers.NewEventHandlers(c.EventRepo),
		Stories:       handlers.NewStoryHandlers(c.StoryRepo),
		Media:         handlers.NewMediaHandlers(c.MediaRepo, c.MediaStorage),
		Notifications: handlers.NewNotificationHandlers(c.NotifRepo),
		Users:         handlers.NewUserHandlers(c.UserRepo),
		Community:     handlers.NewCommunityHandlers(c.SponsorshipRepo, c.VolunteerRepo),
		Policies:      handlers.NewPolicyHandlers(c.PolicySvc),
	}

	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.SessionRepo)
	casbinMW := middleware.NewCasbinMW(c.Enforcer, cfg.OwnershipRules)

	r := httpx.BuildRouter(h, jwtMW, casbinMW)

	seedPolicies(c)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-quit:
		log.Printf("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// seedPolicies installs the default role policies on an empty policy store.
func seedPolicies(c *Container) {
	policies, _ := c.Enforcer.GetPolicy()
	if len(policies) > 0 {
		return
	}

	defaults := [][]string{
		{"role_admin", "/admin/*", "(GET|POST|PUT|DELETE)"},
		{"role_admin", "/users/:id", "(GET|PUT)"},
		{"role_admin", "/users/:id/donations", "GET"},
		// role_owner is the ownership fallback: it only applies when the
		// request's user id matches the token's.
		{"role_owner", "/users/:id", "(GET|PUT)"},
		{"role_owner", "/users/:id/donations", "GET"},
	}
	// Every signed-in role gets the self-service surface.
	for _, role := range []string{"role_donor", "role_volunteer", "role_sponsor", "role_beneficiary", "role_admin"} {
		defaults = append(defaults,
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

	for _, p := range defaults {
		if _, err := c.Enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			log.Printf("casbin: seed policy %v: %v", p, err)
		}
	}
	if err := c.Enforcer.SavePolicy(); err != nil {
		log.Printf("casbin: save policy: %v", err)
		return
	}
	log.Println("casbin: seeded default policies")
}
