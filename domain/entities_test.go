package domain

import "testing"

func TestValidRole(t *testing.T) {
	tests := []struct {
		name  string
		role  Role
		valid bool
	}{
		{name: "donor", role: RoleDonor, valid: true},
		{name: "volunteer", role: RoleVolunteer, valid: true},
		{name: "sponsor", role: RoleSponsor, valid: true},
		{name: "beneficiary", role: RoleBeneficiary, valid: true},
		{name: "admin", role: RoleAdmin, valid: true},
		{name: "unknown role", role: Role("superuser"), valid: false},
		{name: "empty role", role: Role(""), valid: false},
		{name: "case sensitive", role: Role("Donor"), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidRole(tt.role); got != tt.valid {
				t.Errorf("ValidRole(%q) = %v, want %v", tt.role, got, tt.valid)
			}
		})
	}
}

func TestDonationStatusValues(t *testing.T) {
	// Status strings are persisted and matched in SQL guards; pin them.
	if DonationPending != "pending" {
		t.Errorf("DonationPending = %q", DonationPending)
	}
	if DonationCompleted != "completed" {
		t.Errorf("DonationCompleted = %q", DonationCompleted)
	}
	if DonationFailed != "failed" {
		t.Errorf("DonationFailed = %q", DonationFailed)
	}
}

func TestAuditEventBuilders(t *testing.T) {
	ev := NewAuditEvent(PaymentCompletedEvent).
		WithEmail("donor@example.com").
		WithOrderID("order_123").
		WithUserID(7)

	if !ev.Success {
		t.Error("new event should default to success")
	}
	if ev.Email != "donor@example.com" || ev.OrderID != "order_123" || ev.UserID != 7 {
		t.Errorf("builder fields not set: %+v", ev)
	}

	ev = ev.WithError(ErrSignatureMismatch)
	if ev.Success {
		t.Error("WithError should mark event as failed")
	}
	if ev.ErrorMsg != ErrSignatureMismatch.Error() {
		t.Errorf("ErrorMsg = %q", ev.ErrorMsg)
	}
}
