package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhi-dhakar/edignite-sub001/internal/config"
)

// createTestEnforcer creates a Casbin enforcer with the production model
func createTestEnforcer() *casbin.Enforcer {
	modelText := `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`
	m, _ := model.NewModelFromString(modelText)
	e, _ := casbin.NewEnforcer(m)
	return e
}

// identitySetter simulates the JWT middleware by injecting claims
func identitySetter(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
			c.Set("user_role", role)
		}
		c.Next()
	}
}

func newTestRouter(e *casbin.Enforcer, rules []config.OwnershipRule, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := NewCasbinMW(e, rules)
	r.Use(identitySetter(userID, role), mw.Enforce())
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) }
	r.GET("/users/:id", ok)
	r.PUT("/users/:id", ok)
	r.GET("/admin/donations", ok)
	return r
}

func TestCasbinMW_Enforce(t *testing.T) {
	ownerRules := []config.OwnershipRule{
		{Path: "/users/:id", Method: "GET", Source: "param", ParamName: "id"},
		{Path: "/users/:id", Method: "PUT", Source: "param", ParamName: "id"},
	}

	tests := []struct {
		name           string
		setupEnforcer  func() *casbin.Enforcer
		rules          []config.OwnershipRule
		userID         string
		role           string
		method         string
		path           string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing user credentials",
			setupEnforcer:  createTestEnforcer,
			method:         "GET",
			path:           "/users/123",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "User ID or role not found in token",
		},
		{
			name:           "access denied - no policy",
			setupEnforcer:  createTestEnforcer,
			userID:         "123",
			role:           "donor",
			method:         "GET",
			path:           "/users/123",
			expectedStatus: http.StatusForbidden,
			expectedError:  "Access denied",
		},
		{
			name: "role policy grants access",
			setupEnforcer: func() *casbin.Enforcer {
				e := createTestEnforcer()
				e.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)")
				return e
			},
			userID:         "1",
			role:           "admin",
			method:         "GET",
			path:           "/admin/donations",
			expectedStatus: http.StatusOK,
		},
		{
			name: "owner fallback grants own resource",
			setupEnforcer: func() *casbin.Enforcer {
				e := createTestEnforcer()
				e.AddPolicy("role_owner", "/users/:id", "(GET|PUT)")
				return e
			},
			rules:          ownerRules,
			userID:         "123",
			role:           "donor",
			method:         "GET",
			path:           "/users/123",
			expectedStatus: http.StatusOK,
		},
		{
			name: "owner fallback denies another user's resource",
			setupEnforcer: func() *casbin.Enforcer {
				e := createTestEnforcer()
				e.AddPolicy("role_owner", "/users/:id", "(GET|PUT)")
				return e
			},
			rules:          ownerRules,
			userID:         "456",
			role:           "donor",
			method:         "GET",
			path:           "/users/123",
			expectedStatus: http.StatusForbidden,
			expectedError:  "Access denied",
		},
		{
			name: "owner fallback covers PUT",
			setupEnforcer: func() *casbin.Enforcer {
				e := createTestEnforcer()
				e.AddPolicy("role_owner", "/users/:id", "(GET|PUT)")
				return e
			},
			rules:          ownerRules,
			userID:         "123",
			role:           "donor",
			method:         "PUT",
			path:           "/users/123",
			expectedStatus: http.StatusOK,
		},
		{
			name: "ownership without a role_owner policy still denies",
			setupEnforcer:  createTestEnforcer,
			rules:          ownerRules,
			userID:         "123",
			role:           "donor",
			method:         "GET",
			path:           "/users/123",
			expectedStatus: http.StatusForbidden,
			expectedError:  "Access denied",
		},
		{
			name: "method mismatch on role policy",
			setupEnforcer: func() *casbin.Enforcer {
				e := createTestEnforcer()
				e.AddPolicy("role_donor", "/users/:id", "GET")
				return e
			},
			userID:         "5",
			role:           "donor",
			method:         "PUT",
			path:           "/users/5",
			expectedStatus: http.StatusForbidden,
			expectedError:  "Access denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.setupEnforcer(), tt.rules, tt.userID, tt.role)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				var response map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, false, response["success"])
				assert.Contains(t, response["message"], tt.expectedError)
			}
		})
	}
}

func TestExtractUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("param source", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: "42"}}
		assert.Equal(t, "42", extractUserID(c, "param", "id"))
	})

	t.Run("query source", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/donations?user_id=7", nil)
		assert.Equal(t, "7", extractUserID(c, "query", "user_id"))
	})

	t.Run("header source", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/donations", nil)
		c.Request.Header.Set("X-User-ID", "9")
		assert.Equal(t, "9", extractUserID(c, "header", "X-User-ID"))
	})

	t.Run("body source restores the body for binding", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		payload := []byte(`{"user_id":"11","amount":500}`)
		c.Request = httptest.NewRequest("POST", "/sponsorships", bytes.NewReader(payload))

		assert.Equal(t, "11", extractUserID(c, "body", "user_id"))

		// The handler must still be able to read the body afterwards
		var parsed map[string]interface{}
		require.NoError(t, c.ShouldBindJSON(&parsed))
		assert.Equal(t, "11", parsed["user_id"])
	})

	t.Run("unknown source", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.Equal(t, "", extractUserID(c, "cookie", "id"))
	})
}
