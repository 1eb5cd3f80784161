package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// response is the JSON envelope every endpoint answers with, decoded loosely.
type response struct {
	Code int
	Body map[string]interface{}
}

func (r *response) Success() bool {
	ok, _ := r.Body["success"].(bool)
	return ok
}

func (r *response) Message() string {
	msg, _ := r.Body["message"].(string)
	return msg
}

func (r *response) String(key string) string {
	v, _ := r.Body[key].(string)
	return v
}

// do sends a JSON request through the router.
func (ts *TestServer) do(t *testing.T, method, path string, payload interface{}, headers map[string]string) *response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.Router.ServeHTTP(rec, req)

	resp := &response{Code: rec.Code, Body: map[string]interface{}{}}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp.Body); err != nil {
			t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
		}
	}
	return resp
}

// doRaw sends a pre-serialized body, used for webhook signature tests.
func (ts *TestServer) doRaw(t *testing.T, method, path string, rawBody []byte, headers map[string]string) *response {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(rawBody))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.Router.ServeHTTP(rec, req)

	resp := &response{Code: rec.Code, Body: map[string]interface{}{}}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp.Body); err != nil {
			t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
		}
	}
	return resp
}

// bearer builds the Authorization header map for a token.
func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// login authenticates a seeded user and returns the access token.
func (ts *TestServer) login(t *testing.T, email, password string) string {
	t.Helper()

	resp := ts.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %v", email, resp.Code, resp.Body)
	}
	token := resp.String("access_token")
	if token == "" {
		t.Fatalf("login %s: no access token in %v", email, resp.Body)
	}
	return token
}
