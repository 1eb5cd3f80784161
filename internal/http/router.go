package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhi-dhakar/edignite-sub001/internal/http/handlers"
	"github.com/abhi-dhakar/edignite-sub001/internal/http/middleware"
)

// Handlers bundles every handler group the router mounts.
type Handlers struct {
	Auth          *handlers.AuthHandlers
	Payments      *handlers.PaymentHandlers
	Events        *handlers.EventHandlers
	Stories       *handlers.StoryHandlers
	Media         *handlers.MediaHandlers
	Notifications *handlers.NotificationHandlers
	Users         *handlers.UserHandlers
	Community     *handlers.CommunityHandlers
	Policies      *handlers.PolicyHandlers
}

// BuildRouter wires all routes. Public routes take no middleware, protected
// routes require a valid access token, admin routes additionally pass
// through policy enforcement.
func BuildRouter(h Handlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/send-otp", h.Auth.SendOTP)
	auth.POST("/verify-otp", h.Auth.VerifyOTP)
	auth.POST("/resend-otp", h.Auth.ResendOTP)
	auth.POST("/forgot-password", h.Auth.ForgotPassword)
	auth.POST("/verify-reset-otp", h.Auth.VerifyResetOTP)
	auth.POST("/reset-password", h.Auth.ResetPassword)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)

	// Donations work for guests too; the gateway webhook authenticates by
	// signature, not by session.
	pay := r.Group("/payments")
	pay.POST("/create-order", jwtmw.WithOptionalJWT(), h.Payments.CreateOrder)
	pay.POST("/verify", h.Payments.VerifyPayment)
	pay.POST("/webhook", h.Payments.Webhook)

	r.GET("/events", h.Events.List)
	r.GET("/events/:id", h.Events.Get)
	r.GET("/stories", h.Stories.List)
	r.GET("/stories/:id", h.Stories.Get)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/auth/me", h.Auth.Me)
	v.POST("/auth/logout", h.Auth.Logout)
	v.GET("/users/:id", h.Users.Get)
	v.PUT("/users/:id", h.Users.Update)
	v.GET("/users/:id/donations", h.Payments.ListUserDonations)
	v.POST("/events/:id/register", h.Events.Register)
	v.GET("/notifications", h.Notifications.List)
	v.PUT("/notifications/:id/read", h.Notifications.MarkRead)
	v.POST("/sponsorships", h.Community.CreateSponsorship)
	v.GET("/sponsorships", h.Community.MySponsorships)
	v.POST("/volunteers/apply", h.Community.ApplyVolunteer)
	v.GET("/volunteers/me", h.Community.MyVolunteerProfile)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/users", h.Users.List)
	adm.DELETE("/users/:id", h.Users.Delete)
	adm.GET("/donations", h.Payments.ListDonations)
	adm.POST("/events", h.Events.Create)
	adm.PUT("/events/:id", h.Events.Update)
	adm.DELETE("/events/:id", h.Events.Delete)
	adm.GET("/events/:id/registrations", h.Events.Registrations)
	adm.GET("/stories", h.Stories.List)
	adm.POST("/stories", h.Stories.Create)
	adm.PUT("/stories/:id", h.Stories.Update)
	adm.DELETE("/stories/:id", h.Stories.Delete)
	adm.GET("/media", h.Media.List)
	adm.POST("/media", h.Media.Upload)
	adm.DELETE("/media/:id", h.Media.Delete)
	adm.POST("/notifications", h.Notifications.Notify)
	adm.GET("/sponsorships", h.Community.ListSponsorships)
	adm.GET("/volunteers", h.Community.ListVolunteers)
	adm.PUT("/volunteers/:id/approve", h.Community.ApproveVolunteer)
	adm.GET("/policies", h.Policies.ListPolicies)
	adm.POST("/policies", h.Policies.AddPolicy)
	adm.DELETE("/policies", h.Policies.RemovePolicy)

	return r
}
