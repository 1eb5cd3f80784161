package e2e

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAdminSurfaceRequiresAdminRole(t *testing.T) {
	ts := NewTestServer(t)
	ts.SeedUser(t, "Asha Kumari", "asha@example.com", "password123", "donor")
	ts.SeedUser(t, "Admin", "admin@example.com", "password123", "admin")

	donorToken := ts.login(t, "asha@example.com", "password123")
	adminToken := ts.login(t, "admin@example.com", "password123")

	// No token at all.
	if resp := ts.do(t, http.MethodGet, "/admin/donations", nil, nil); resp.Code != http.StatusUnauthorized {
		t.Errorf("anonymous admin access: status %d, want 401", resp.Code)
	}

	// A donor token authenticates but is not authorized.
	if resp := ts.do(t, http.MethodGet, "/admin/donations", nil, bearer(donorToken)); resp.Code != http.StatusForbidden {
		t.Errorf("donor admin access: status %d, want 403", resp.Code)
	}

	if resp := ts.do(t, http.MethodGet, "/admin/donations", nil, bearer(adminToken)); resp.Code != http.StatusOK {
		t.Errorf("admin access: status %d, want 200", resp.Code)
	}
}

func TestOwnershipOnUserResource(t *testing.T) {
	ts := NewTestServer(t)
	asha := ts.SeedUser(t, "Asha Kumari", "asha@example.com", "password123", "donor")
	ravi := ts.SeedUser(t, "Ravi Singh", "ravi@example.com", "password123", "donor")
	ts.SeedUser(t, "Admin", "admin@example.com", "password123", "admin")

	ashaToken := ts.login(t, "asha@example.com", "password123")
	adminToken := ts.login(t, "admin@example.com", "password123")

	// Owner can read and update their own record.
	own := ts.do(t, http.MethodGet, fmt.Sprintf("/users/%d", asha.ID), nil, bearer(ashaToken))
	if own.Code != http.StatusOK {
		t.Fatalf("owner read: status %d, body %v", own.Code, own.Body)
	}

	update := ts.do(t, http.MethodPut, fmt.Sprintf("/users/%d", asha.ID), map[string]string{
		"address": "12 MG Road, Pune",
	}, bearer(ashaToken))
	if update.Code != http.StatusOK {
		t.Fatalf("owner update: status %d, body %v", update.Code, update.Body)
	}

	// A different donor is refused.
	other := ts.do(t, http.MethodGet, fmt.Sprintf("/users/%d", ravi.ID), nil, bearer(ashaToken))
	if other.Code != http.StatusForbidden {
		t.Errorf("cross-user read: status %d, want 403", other.Code)
	}

	// Admin can read anyone.
	admin := ts.do(t, http.MethodGet, fmt.Sprintf("/users/%d", ravi.ID), nil, bearer(adminToken))
	if admin.Code != http.StatusOK {
		t.Errorf("admin read: status %d, want 200", admin.Code)
	}
}

func TestSignupCannotClaimAdminRole(t *testing.T) {
	ts := NewTestServer(t)

	resp := ts.do(t, http.MethodPost, "/auth/send-otp", map[string]string{
		"name":     "Mallory",
		"email":    "mallory@example.com",
		"password": "password123",
		"role":     "admin",
	}, nil)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("admin signup: status %d, want 400", resp.Code)
	}
}

func TestNotificationFeedIsScoped(t *testing.T) {
	ts := NewTestServer(t)
	ts.SeedUser(t, "Asha Kumari", "asha@example.com", "password123", "donor")
	ravi := ts.SeedUser(t, "Ravi Singh", "ravi@example.com", "password123", "donor")
	ts.SeedUser(t, "Admin", "admin@example.com", "password123", "admin")

	adminToken := ts.login(t, "admin@example.com", "password123")
	ashaToken := ts.login(t, "asha@example.com", "password123")
	raviToken := ts.login(t, "ravi@example.com", "password123")

	push := ts.do(t, http.MethodPost, "/admin/notifications", map[string]interface{}{
		"user_id": ravi.ID,
		"type":    "event_reminder",
		"message": "The cleanup drive starts at 9am.",
	}, bearer(adminToken))
	if push.Code != http.StatusCreated {
		t.Fatalf("push notification: status %d, body %v", push.Code, push.Body)
	}

	// Ravi sees it, Asha does not.
	raviFeed := ts.do(t, http.MethodGet, "/notifications", nil, bearer(raviToken))
	if n, _ := raviFeed.Body["count"].(float64); n != 1 {
		t.Errorf("ravi feed count = %v, want 1", raviFeed.Body["count"])
	}
	ashaFeed := ts.do(t, http.MethodGet, "/notifications", nil, bearer(ashaToken))
	if n, _ := ashaFeed.Body["count"].(float64); n != 0 {
		t.Errorf("asha feed count = %v, want 0", ashaFeed.Body["count"])
	}

	// Asha cannot acknowledge Ravi's notification.
	notifs, _ := raviFeed.Body["notifications"].([]interface{})
	first, _ := notifs[0].(map[string]interface{})
	id := int(first["id"].(float64))

	if resp := ts.do(t, http.MethodPut, fmt.Sprintf("/notifications/%d/read", id), nil, bearer(ashaToken)); resp.Code != http.StatusNotFound {
		t.Errorf("cross-user mark read: status %d, want 404", resp.Code)
	}
	if resp := ts.do(t, http.MethodPut, fmt.Sprintf("/notifications/%d/read", id), nil, bearer(raviToken)); resp.Code != http.StatusOK {
		t.Errorf("owner mark read: status %d, want 200", resp.Code)
	}
}
