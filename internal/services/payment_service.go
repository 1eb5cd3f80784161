package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// PaymentServiceImpl implements domain.PaymentService. Two secrets are in
// play: keySecret signs the synchronous checkout callback over
// "orderID|paymentID", webhookSecret signs the raw webhook body. Neither is
// ever handed to the client; only keyID is.
type PaymentServiceImpl struct {
	gateway         domain.PaymentGateway
	donationRepo    domain.DonationRepository
	notificationSvc domain.NotificationService
	notifRepo       domain.NotificationRepository
	userRepo        domain.UserRepository

	keyID         string
	keySecret     string
	webhookSecret string
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	gateway domain.PaymentGateway,
	donationRepo domain.DonationRepository,
	notificationSvc domain.NotificationService,
	notifRepo domain.NotificationRepository,
	userRepo domain.UserRepository,
	keyID, keySecret, webhookSecret string,
) domain.PaymentService {
	return &PaymentServiceImpl{
		gateway:         gateway,
		donationRepo:    donationRepo,
		notificationSvc: notificationSvc,
		notifRepo:       notifRepo,
		userRepo:        userRepo,
		keyID:           keyID,
		keySecret:       keySecret,
		webhookSecret:   webhookSecret,
	}
}

// CreateOrder implements domain.PaymentService. Amount is in minor units.
func (s *PaymentServiceImpl) CreateOrder(ctx context.Context, amount int64, currency, donorName, donorEmail string, userID *uint) (*domain.PaymentOrder, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if currency == "" {
		currency = "INR"
	}

	receipt := "rcpt_" + uuid.NewString()
	orderID, err := s.gateway.CreateOrder(ctx, amount, currency, receipt)
	if err != nil {
		return nil, err
	}

	donation := &domain.Donation{
		UserID:     userID,
		DonorName:  donorName,
		DonorEmail: donorEmail,
		Amount:     amount,
		Currency:   currency,
		Status:     domain.DonationPending,
		OrderID:    orderID,
		// Placeholder until the gateway reports the payment id
		TransactionID: orderID,
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, fmt.Errorf("failed to record donation: %w", err)
	}

	log.Printf("%s: order_id=%s amount=%d %s", domain.OrderCreatedEvent, orderID, amount, currency)

	return &domain.PaymentOrder{
		OrderID:  orderID,
		Amount:   amount,
		Currency: currency,
		KeyID:    s.keyID,
	}, nil
}

// VerifyPayment implements domain.PaymentService. The expected signature is
// recomputed server-side over "orderID|paymentID" with the key secret and
// compared in constant time. A mismatch settles the donation as failed.
func (s *PaymentServiceImpl) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*domain.Donation, error) {
	expected := signHMAC(orderID+"|"+paymentID, s.keySecret)

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		if err := s.donationRepo.Settle(ctx, orderID, domain.DonationFailed, paymentID); err != nil {
			return nil, err
		}
		log.Printf("%s: order_id=%s", domain.PaymentFailedEvent, orderID)
		return nil, domain.ErrSignatureMismatch
	}

	if err := s.donationRepo.Settle(ctx, orderID, domain.DonationCompleted, paymentID); err != nil {
		return nil, err
	}

	donation, err := s.donationRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	log.Printf("%s: order_id=%s payment_id=%s", domain.PaymentCompletedEvent, orderID, paymentID)
	s.fanOutCompletion(ctx, donation)
	return donation, nil
}

// webhookPayload mirrors the slice of the gateway webhook body we act on.
type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook implements domain.PaymentService. The signature is checked
// over the raw byte stream before any JSON parsing; re-serialization is not
// byte-stable and would break the comparison.
func (s *PaymentServiceImpl) HandleWebhook(ctx context.Context, rawBody []byte, signature string) error {
	expected := signHMACBytes(rawBody, s.webhookSecret)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		log.Printf("%s: signature mismatch", domain.WebhookRejectedEvent)
		return domain.ErrWebhookUnsigned
	}

	var payload webhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return fmt.Errorf("failed to parse webhook body: %w", err)
	}

	event := domain.WebhookEvent{
		Event:     payload.Event,
		OrderID:   payload.Payload.Payment.Entity.OrderID,
		PaymentID: payload.Payload.Payment.Entity.ID,
	}

	switch event.Event {
	case "payment.captured":
		if err := s.donationRepo.Settle(ctx, event.OrderID, domain.DonationCompleted, event.PaymentID); err != nil {
			return err
		}
		if donation, err := s.donationRepo.FindByOrderID(ctx, event.OrderID); err == nil {
			s.fanOutCompletion(ctx, donation)
		}
	case "payment.failed":
		if err := s.donationRepo.Settle(ctx, event.OrderID, domain.DonationFailed, event.PaymentID); err != nil {
			return err
		}
	default:
		// Unhandled event types are acknowledged without state change.
	}

	log.Printf("%s: event=%s order_id=%s", domain.WebhookProcessedEvent, event.Event, event.OrderID)
	return nil
}

// fanOutCompletion records a notification and sends best-effort receipts.
// Delivery failures are logged and never fail the settlement.
func (s *PaymentServiceImpl) fanOutCompletion(ctx context.Context, donation *domain.Donation) {
	if donation.Status != domain.DonationCompleted {
		return
	}

	if donation.UserID != nil {
		n := &domain.Notification{
			UserID:  *donation.UserID,
			Type:    "donation_completed",
			Message: fmt.Sprintf("Thank you! Your donation of %d %s was received.", donation.Amount, donation.Currency),
		}
		if err := s.notifRepo.Create(ctx, n); err != nil {
			log.Printf("donation notification: order_id=%s error=%v", donation.OrderID, err)
		}
	}

	if donation.DonorEmail != "" {
		body := fmt.Sprintf("Thank you for your donation of %d %s. Transaction reference: %s.",
			donation.Amount, donation.Currency, donation.TransactionID)
		if err := s.notificationSvc.SendEmail(donation.DonorEmail, "Donation receipt", body); err != nil {
			log.Printf("donation receipt email: order_id=%s error=%v", donation.OrderID, err)
		}
	}

	if donation.UserID != nil {
		if user, err := s.userRepo.FindByID(ctx, *donation.UserID); err == nil && user.Phone != "" {
			msg := fmt.Sprintf("Thank you for supporting Edignite! Your donation of %d %s was received.", donation.Amount, donation.Currency)
			if err := s.notificationSvc.SendSMS(user.Phone, msg); err != nil {
				log.Printf("donation thank-you sms: order_id=%s error=%v", donation.OrderID, err)
			}
		}
	}
}

func signHMAC(message, secret string) string {
	return signHMACBytes([]byte(message), secret)
}

func signHMACBytes(message []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}
