package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticValidator accepts exactly one token and maps it to a fixed user ID.
type staticValidator struct {
	token  string
	userID uuid.UUID
}

type staticClaims struct {
	userID uuid.UUID
}

func (c *staticClaims) GetUserID() uuid.UUID { return c.userID }

func (v *staticValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	if tokenString != v.token {
		return nil, fmt.Errorf("invalid token")
	}
	return &staticClaims{userID: v.userID}, nil
}

// captureHandler records the user ID resolved from the request context.
func captureHandler(gotID *uuid.UUID, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if id, err := GetUserID(r); err == nil {
			*gotID = id
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &staticValidator{token: "good-token", userID: userID}

	var gotID uuid.UUID
	var called bool
	handler := RequireAuth(validator)(captureHandler(&gotID, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotID)
}

func TestRequireAuth_CaseInsensitiveScheme(t *testing.T) {
	userID := uuid.New()
	validator := &staticValidator{token: "good-token", userID: userID}

	var gotID uuid.UUID
	var called bool
	handler := RequireAuth(validator)(captureHandler(&gotID, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.True(t, called)
	assert.Equal(t, userID, gotID)
}

func TestRequireAuth_Rejections(t *testing.T) {
	validator := &staticValidator{token: "good-token", userID: uuid.New()}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic good-token"},
		{"missing token", "Bearer"},
		{"invalid token", "Bearer bad-token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotID uuid.UUID
			var called bool
			handler := RequireAuth(validator)(captureHandler(&gotID, &called))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	validator := &staticValidator{token: "good-token", userID: uuid.New()}

	var gotID uuid.UUID
	var called bool
	handler := OptionalAuth(validator)(captureHandler(&gotID, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uuid.Nil, gotID)
}

func TestOptionalAuth_ResolvesValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &staticValidator{token: "good-token", userID: userID}

	var gotID uuid.UUID
	var called bool
	handler := OptionalAuth(validator)(captureHandler(&gotID, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.True(t, called)
	assert.Equal(t, userID, gotID)
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)
}
