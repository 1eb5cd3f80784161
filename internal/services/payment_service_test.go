package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/abhi-dhakar/edignite-sub001/domain"
	"github.com/abhi-dhakar/edignite-sub001/internal/mocks"
)

const (
	testKeyID         = "rzp_test_key"
	testKeySecret     = "checkout-secret"
	testWebhookSecret = "webhook-secret"
)

func createPaymentServiceForTest(t *testing.T,
	gateway domain.PaymentGateway,
	donationRepo domain.DonationRepository,
	notifier domain.NotificationService,
	notifRepo domain.NotificationRepository,
	userRepo domain.UserRepository) domain.PaymentService {
	t.Helper()

	if gateway == nil {
		gateway = mocks.NewMockPaymentGateway()
	}
	if donationRepo == nil {
		donationRepo = mocks.NewMockDonationRepository()
	}
	if notifier == nil {
		notifier = mocks.NewMockNotificationService()
	}
	if notifRepo == nil {
		notifRepo = mocks.NewMockNotificationRepository()
	}
	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}

	return NewPaymentService(gateway, donationRepo, notifier, notifRepo, userRepo,
		testKeyID, testKeySecret, testWebhookSecret)
}

func checkoutSignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func webhookSignature(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPaymentService_CreateOrder(t *testing.T) {
	t.Run("records a pending donation", func(t *testing.T) {
		donationRepo := mocks.NewMockDonationRepository()
		var recorded *domain.Donation
		donationRepo.CreateFunc = func(ctx context.Context, d *domain.Donation) error {
			recorded = d
			return nil
		}
		svc := createPaymentServiceForTest(t, nil, donationRepo, nil, nil, nil)

		userID := uint(3)
		order, err := svc.CreateOrder(context.Background(), 50000, "", "Asha", "asha@example.com", &userID)
		if err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
		if order.Currency != "INR" {
			t.Errorf("currency = %q, want INR default", order.Currency)
		}
		if order.KeyID != testKeyID {
			t.Errorf("key id = %q, want %q", order.KeyID, testKeyID)
		}
		if recorded == nil {
			t.Fatal("expected a donation row")
		}
		if recorded.Status != domain.DonationPending {
			t.Errorf("donation status = %q, want pending", recorded.Status)
		}
		if recorded.OrderID != order.OrderID {
			t.Errorf("donation order id = %q, want %q", recorded.OrderID, order.OrderID)
		}
		if recorded.UserID == nil || *recorded.UserID != 3 {
			t.Errorf("donation user id = %v, want 3", recorded.UserID)
		}
	})

	t.Run("rejects non-positive amounts without touching the gateway", func(t *testing.T) {
		gateway := mocks.NewMockPaymentGateway()
		called := false
		gateway.CreateOrderFunc = func(ctx context.Context, amount int64, currency, receipt string) (string, error) {
			called = true
			return "order_1", nil
		}
		donationRepo := mocks.NewMockDonationRepository()
		donationRepo.CreateFunc = func(ctx context.Context, d *domain.Donation) error {
			t.Fatal("no donation row must be written")
			return nil
		}
		svc := createPaymentServiceForTest(t, gateway, donationRepo, nil, nil, nil)

		for _, amount := range []int64{0, -100} {
			if _, err := svc.CreateOrder(context.Background(), amount, "INR", "", "", nil); !errors.Is(err, domain.ErrInvalidAmount) {
				t.Errorf("CreateOrder(%d) = %v, want ErrInvalidAmount", amount, err)
			}
		}
		if called {
			t.Error("gateway must not be called for invalid amounts")
		}
	})

	t.Run("propagates gateway failure", func(t *testing.T) {
		gateway := mocks.NewMockPaymentGateway()
		gateway.CreateOrderFunc = func(ctx context.Context, amount int64, currency, receipt string) (string, error) {
			return "", fmt.Errorf("%w: connection refused", domain.ErrGatewayUnavailable)
		}
		svc := createPaymentServiceForTest(t, gateway, nil, nil, nil, nil)

		if _, err := svc.CreateOrder(context.Background(), 1000, "INR", "", "", nil); !errors.Is(err, domain.ErrGatewayUnavailable) {
			t.Errorf("CreateOrder = %v, want ErrGatewayUnavailable", err)
		}
	})
}

func TestPaymentService_VerifyPayment(t *testing.T) {
	t.Run("valid signature settles completed", func(t *testing.T) {
		donationRepo := mocks.NewMockDonationRepository()
		var settledStatus domain.DonationStatus
		var settledTxn string
		donationRepo.SettleFunc = func(ctx context.Context, orderID string, status domain.DonationStatus, transactionID string) error {
			settledStatus = status
			settledTxn = transactionID
			return nil
		}
		donationRepo.FindByOrderIDFunc = func(ctx context.Context, orderID string) (*domain.Donation, error) {
			return &domain.Donation{
				OrderID:       orderID,
				TransactionID: settledTxn,
				Amount:        50000,
				Currency:      "INR",
				Status:        settledStatus,
			}, nil
		}
		svc := createPaymentServiceForTest(t, nil, donationRepo, nil, nil, nil)

		sig := checkoutSignature("order_1", "pay_9", testKeySecret)
		donation, err := svc.VerifyPayment(context.Background(), "order_1", "pay_9", sig)
		if err != nil {
			t.Fatalf("VerifyPayment: %v", err)
		}
		if donation.Status != domain.DonationCompleted {
			t.Errorf("status = %q, want completed", donation.Status)
		}
		if donation.TransactionID != "pay_9" {
			t.Errorf("transaction id = %q, want pay_9", donation.TransactionID)
		}
	})

	t.Run("bad signature settles failed", func(t *testing.T) {
		donationRepo := mocks.NewMockDonationRepository()
		var settledStatus domain.DonationStatus
		donationRepo.SettleFunc = func(ctx context.Context, orderID string, status domain.DonationStatus, transactionID string) error {
			settledStatus = status
			return nil
		}
		svc := createPaymentServiceForTest(t, nil, donationRepo, nil, nil, nil)

		_, err := svc.VerifyPayment(context.Background(), "order_1", "pay_9", "forged")
		if !errors.Is(err, domain.ErrSignatureMismatch) {
			t.Fatalf("VerifyPayment = %v, want ErrSignatureMismatch", err)
		}
		if settledStatus != domain.DonationFailed {
			t.Errorf("settled status = %q, want failed", settledStatus)
		}
	})

	t.Run("signature for another order does not transfer", func(t *testing.T) {
		svc := createPaymentServiceForTest(t, nil, nil, nil, nil, nil)

		sig := checkoutSignature("order_2", "pay_9", testKeySecret)
		if _, err := svc.VerifyPayment(context.Background(), "order_1", "pay_9", sig); !errors.Is(err, domain.ErrSignatureMismatch) {
			t.Errorf("VerifyPayment = %v, want ErrSignatureMismatch", err)
		}
	})

	t.Run("unknown order surfaces not found", func(t *testing.T) {
		donationRepo := mocks.NewMockDonationRepository()
		donationRepo.SettleFunc = func(ctx context.Context, orderID string, status domain.DonationStatus, transactionID string) error {
			return domain.ErrDonationNotFound
		}
		svc := createPaymentServiceForTest(t, nil, donationRepo, nil, nil, nil)

		sig := checkoutSignature("order_x", "pay_9", testKeySecret)
		if _, err := svc.VerifyPayment(context.Background(), "order_x", "pay_9", sig); !errors.Is(err, domain.ErrDonationNotFound) {
			t.Errorf("VerifyPayment = %v, want ErrDonationNotFound", err)
		}
	})
}

func TestPaymentService_VerifyPaymentFanOut(t *testing.T) {
	userID := uint(3)
	donationRepo := mocks.NewMockDonationRepository()
	donationRepo.FindByOrderIDFunc = func(ctx context.Context, orderID string) (*domain.Donation, error) {
		return &domain.Donation{
			UserID:        &userID,
			DonorEmail:    "asha@example.com",
			OrderID:       orderID,
			TransactionID: "pay_9",
			Amount:        50000,
			Currency:      "INR",
			Status:        domain.DonationCompleted,
		}, nil
	}

	notifRepo := mocks.NewMockNotificationRepository()
	var notif *domain.Notification
	notifRepo.CreateFunc = func(ctx context.Context, n *domain.Notification) error {
		notif = n
		return nil
	}

	notifier := mocks.NewMockNotificationService()
	var emailTo, smsTo string
	notifier.SendEmailFunc = func(to, subject, body string) error {
		emailTo = to
		return nil
	}
	notifier.SendSMSFunc = func(to, message string) error {
		smsTo = to
		return nil
	}

	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return &domain.User{ID: id, Phone: "+911234567890"}, nil
	}

	svc := createPaymentServiceForTest(t, nil, donationRepo, notifier, notifRepo, userRepo)

	sig := checkoutSignature("order_1", "pay_9", testKeySecret)
	if _, err := svc.VerifyPayment(context.Background(), "order_1", "pay_9", sig); err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}

	if notif == nil || notif.UserID != 3 || notif.Type != "donation_completed" {
		t.Errorf("notification = %+v, want donation_completed for user 3", notif)
	}
	if emailTo != "asha@example.com" {
		t.Errorf("receipt email to %q, want asha@example.com", emailTo)
	}
	if smsTo != "+911234567890" {
		t.Errorf("sms to %q, want the donor's phone", smsTo)
	}
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	captured := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_9","order_id":"order_1"}}}}`)
	failed := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_9","order_id":"order_1"}}}}`)

	t.Run("rejects missing or forged signature", func(t *testing.T) {
		donationRepo := mocks.NewMockDonationRepository()
		donationRepo.SettleFunc = func(ctx context.Context, orderID string, status domain.DonationStatus, transactionID string) error {
			t.Fatal("settle must not run for an unsigned webhook")
			return nil
		}
		svc := createPaymentServiceForTest(t, nil, donationRepo, nil, nil, nil)

		for _, sig := range []string{"", "forged"} {
			if err := svc.HandleWebhook(context.Background(), captured, sig); !errors.Is(err, domain.ErrWebhookUnsigned) {
				t.Errorf("HandleWebhook(sig=%q) = %v, want ErrWebhookUnsigned", sig, err)
			}
		}
	})

	t.Run("captured event settles completed", func(t *testing.T) {
		donationRepo := mocks.NewMockDonationRepository()
		var settledStatus domain.DonationStatus
		var settledTxn string
		donationRepo.SettleFunc = func(ctx context.Context, orderID string, status domain.DonationStatus, transactionID string) error {
			settledStatus = status
			settledTxn = transactionID
			return nil
		}
		svc := createPaymentServiceForTest(t, nil, donationRepo, nil, nil, nil)

		if err := svc.HandleWebhook(context.Background(), captured, webhookSignature(captured, testWebhookSecret)); err != nil {
			t.Fatalf("HandleWebhook: %v", err)
		}
		if settledStatus != domain.DonationCompleted || settledTxn != "pay_9" {
			t.Errorf("settled (%q, %q), want (completed, pay_9)", settledStatus, settledTxn)
		}
	})

	t.Run("failed event settles failed", func(t *testing.T) {
		donationRepo := mocks.NewMockDonationRepository()
		var settledStatus domain.DonationStatus
		donationRepo.SettleFunc = func(ctx context.Context, orderID string, status domain.DonationStatus, transactionID string) error {
			settledStatus = status
			return nil
		}
		svc := createPaymentServiceForTest(t, nil, donationRepo, nil, nil, nil)

		if err := svc.HandleWebhook(context.Background(), failed, webhookSignature(failed, testWebhookSecret)); err != nil {
			t.Fatalf("HandleWebhook: %v", err)
		}
		if settledStatus != domain.DonationFailed {
			t.Errorf("settled status = %q, want failed", settledStatus)
		}
	})

	t.Run("unhandled event types are acknowledged", func(t *testing.T) {
		body := []byte(`{"event":"refund.created","payload":{"payment":{"entity":{"id":"pay_9","order_id":"order_1"}}}}`)
		donationRepo := mocks.NewMockDonationRepository()
		donationRepo.SettleFunc = func(ctx context.Context, orderID string, status domain.DonationStatus, transactionID string) error {
			t.Fatal("settle must not run for unhandled events")
			return nil
		}
		svc := createPaymentServiceForTest(t, nil, donationRepo, nil, nil, nil)

		if err := svc.HandleWebhook(context.Background(), body, webhookSignature(body, testWebhookSecret)); err != nil {
			t.Errorf("HandleWebhook: %v", err)
		}
	})

	t.Run("signature covers the exact bytes", func(t *testing.T) {
		svc := createPaymentServiceForTest(t, nil, nil, nil, nil, nil)

		// Semantically identical JSON with different whitespace must fail.
		reformatted := []byte(`{"event": "payment.captured", "payload": {"payment": {"entity": {"id": "pay_9", "order_id": "order_1"}}}}`)
		if err := svc.HandleWebhook(context.Background(), reformatted, webhookSignature(captured, testWebhookSecret)); !errors.Is(err, domain.ErrWebhookUnsigned) {
			t.Errorf("HandleWebhook = %v, want ErrWebhookUnsigned", err)
		}
	})
}
