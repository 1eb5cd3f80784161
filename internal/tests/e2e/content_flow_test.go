package e2e

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestEventLifecycle(t *testing.T) {
	ts := NewTestServer(t)
	ts.SeedUser(t, "Admin", "admin@example.com", "password123", "admin")
	ts.SeedUser(t, "Asha Kumari", "asha@example.com", "password123", "volunteer")
	ts.SeedUser(t, "Ravi Singh", "ravi@example.com", "password123", "volunteer")

	adminToken := ts.login(t, "admin@example.com", "password123")
	ashaToken := ts.login(t, "asha@example.com", "password123")
	raviToken := ts.login(t, "ravi@example.com", "password123")

	created := ts.do(t, http.MethodPost, "/admin/events", map[string]interface{}{
		"title":    "River cleanup drive",
		"location": "Mula riverbank",
		"date":     time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		"capacity": 1,
	}, bearer(adminToken))
	if created.Code != http.StatusCreated {
		t.Fatalf("create event: status %d, body %v", created.Code, created.Body)
	}
	event, _ := created.Body["event"].(map[string]interface{})
	eventID := int(event["id"].(float64))

	// The event is publicly listed.
	list := ts.do(t, http.MethodGet, "/events", nil, nil)
	if n, _ := list.Body["count"].(float64); n != 1 {
		t.Fatalf("public event count = %v, want 1", list.Body["count"])
	}

	register := func(token string) *response {
		return ts.do(t, http.MethodPost, fmt.Sprintf("/events/%d/register", eventID), nil, bearer(token))
	}

	if resp := register(ashaToken); resp.Code != http.StatusCreated {
		t.Fatalf("first registration: status %d, body %v", resp.Code, resp.Body)
	}
	// Registering twice is refused.
	if resp := register(ashaToken); resp.Code != http.StatusConflict {
		t.Errorf("duplicate registration: status %d, want 409", resp.Code)
	}
	// Capacity 1 is now exhausted for the next volunteer.
	if resp := register(raviToken); resp.Code != http.StatusConflict {
		t.Errorf("registration beyond capacity: status %d, want 409", resp.Code)
	}

	regs := ts.do(t, http.MethodGet, fmt.Sprintf("/admin/events/%d/registrations", eventID), nil, bearer(adminToken))
	if n, _ := regs.Body["count"].(float64); n != 1 {
		t.Errorf("registrations count = %v, want 1", regs.Body["count"])
	}

	if resp := ts.do(t, http.MethodDelete, fmt.Sprintf("/admin/events/%d", eventID), nil, bearer(adminToken)); resp.Code != http.StatusOK {
		t.Fatalf("delete event: status %d", resp.Code)
	}
	if resp := ts.do(t, http.MethodGet, fmt.Sprintf("/events/%d", eventID), nil, nil); resp.Code != http.StatusNotFound {
		t.Errorf("deleted event fetch: status %d, want 404", resp.Code)
	}
}

func TestStoryPublication(t *testing.T) {
	ts := NewTestServer(t)
	ts.SeedUser(t, "Admin", "admin@example.com", "password123", "admin")
	adminToken := ts.login(t, "admin@example.com", "password123")

	draft := ts.do(t, http.MethodPost, "/admin/stories", map[string]interface{}{
		"title":   "A new school year",
		"content": "Forty children received school kits this June.",
	}, bearer(adminToken))
	if draft.Code != http.StatusCreated {
		t.Fatalf("create story: status %d, body %v", draft.Code, draft.Body)
	}
	story, _ := draft.Body["story"].(map[string]interface{})
	storyID := int(story["id"].(float64))

	// Drafts are hidden from the public listing.
	public := ts.do(t, http.MethodGet, "/stories", nil, nil)
	if n, _ := public.Body["count"].(float64); n != 0 {
		t.Fatalf("public story count = %v, want 0 while draft", public.Body["count"])
	}

	// Admin sees drafts through the admin listing.
	adminList := ts.do(t, http.MethodGet, "/admin/stories?include_drafts=true", nil, bearer(adminToken))
	if n, _ := adminList.Body["count"].(float64); n != 1 {
		t.Fatalf("admin story count = %v, want 1", adminList.Body["count"])
	}

	publish := ts.do(t, http.MethodPut, fmt.Sprintf("/admin/stories/%d", storyID), map[string]interface{}{
		"title":     "A new school year",
		"content":   "Forty children received school kits this June.",
		"published": true,
	}, bearer(adminToken))
	if publish.Code != http.StatusOK {
		t.Fatalf("publish story: status %d, body %v", publish.Code, publish.Body)
	}

	public = ts.do(t, http.MethodGet, "/stories", nil, nil)
	if n, _ := public.Body["count"].(float64); n != 1 {
		t.Errorf("public story count = %v, want 1 after publish", public.Body["count"])
	}
}

func TestVolunteerApplication(t *testing.T) {
	ts := NewTestServer(t)
	ts.SeedUser(t, "Admin", "admin@example.com", "password123", "admin")
	ts.SeedUser(t, "Asha Kumari", "asha@example.com", "password123", "volunteer")

	adminToken := ts.login(t, "admin@example.com", "password123")
	ashaToken := ts.login(t, "asha@example.com", "password123")

	apply := ts.do(t, http.MethodPost, "/volunteers/apply", map[string]string{
		"skills":       "teaching, first aid",
		"availability": "weekends",
	}, bearer(ashaToken))
	if apply.Code != http.StatusCreated {
		t.Fatalf("apply: status %d, body %v", apply.Code, apply.Body)
	}
	if resp := ts.do(t, http.MethodPost, "/volunteers/apply", map[string]string{
		"skills": "teaching",
	}, bearer(ashaToken)); resp.Code != http.StatusConflict {
		t.Errorf("second application: status %d, want 409", resp.Code)
	}

	profile, _ := apply.Body["profile"].(map[string]interface{})
	profileID := int(profile["id"].(float64))

	if resp := ts.do(t, http.MethodPut, fmt.Sprintf("/admin/volunteers/%d/approve", profileID), nil, bearer(adminToken)); resp.Code != http.StatusOK {
		t.Fatalf("approve: status %d", resp.Code)
	}

	me := ts.do(t, http.MethodGet, "/volunteers/me", nil, bearer(ashaToken))
	if me.Code != http.StatusOK {
		t.Fatalf("volunteers/me: status %d, body %v", me.Code, me.Body)
	}
	p, _ := me.Body["profile"].(map[string]interface{})
	if approved, _ := p["approved"].(bool); !approved {
		t.Errorf("profile approved = %v, want true", p["approved"])
	}
}
