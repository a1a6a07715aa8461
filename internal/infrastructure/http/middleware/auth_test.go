package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chima-angwe/location-stamper-backend/internal/application/ports"
)

type fakeIssuer struct {
	identity ports.Identity
	err      error
}

func (f *fakeIssuer) Issue(userID, email string) (string, error) { return "", nil }
func (f *fakeIssuer) Verify(string) (ports.Identity, error)      { return f.identity, f.err }

func TestAuthValidator(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		issuer       *fakeIssuer
		expectedCode int
	}{
		{
			name:         "missing header",
			header:       "",
			issuer:       &fakeIssuer{},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "not bearer",
			header:       "Basic abc123",
			issuer:       &fakeIssuer{},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "invalid token",
			header:       "Bearer bad",
			issuer:       &fakeIssuer{err: errors.New("expired")},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "valid token",
			header:       "Bearer good",
			issuer:       &fakeIssuer{identity: ports.Identity{UserID: "u1", Email: "a@b.co"}},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIdentity ports.Identity
			var authenticated bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotIdentity, authenticated = IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/stamps", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			NewAuthValidator(tt.issuer).Handler(next).ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.expectedCode)
			}
			if tt.expectedCode == http.StatusOK {
				if !authenticated {
					t.Fatal("identity should be set in context")
				}
				if gotIdentity.UserID != "u1" {
					t.Errorf("identity.UserID = %q, want u1", gotIdentity.UserID)
				}
			}
		})
	}
}
