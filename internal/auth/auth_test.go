package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestVerifier_IssueAndIdentity(t *testing.T) {
	v := NewVerifier("0123456789abcdef")

	token, err := v.Issue("alice", time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	identity, err := v.Identity(token)
	if err != nil {
		t.Fatalf("Identity() error = %v", err)
	}
	if identity != "alice" {
		t.Errorf("Identity() = %s, want alice", identity)
	}
}

func TestVerifier_RejectsBadTokens(t *testing.T) {
	v := NewVerifier("0123456789abcdef")

	t.Run("garbage", func(t *testing.T) {
		if _, err := v.Identity("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Identity() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewVerifier("another-secret-value")
		token, _ := other.Issue("alice", time.Minute)
		if _, err := v.Identity(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Identity() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		token, _ := v.Issue("alice", -time.Minute)
		if _, err := v.Identity(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Identity() error = %v, want ErrInvalidToken", err)
		}
	})
}

func TestMiddleware(t *testing.T) {
	v := NewVerifier("0123456789abcdef")
	token, _ := v.Issue("alice", time.Minute)

	var gotIdentity string
	handler := v.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
		wantOwner  string
	}{
		{"valid bearer", "Bearer " + token, "", http.StatusOK, "alice"},
		{"query token", "", "?token=" + token, http.StatusOK, "alice"},
		{"missing token", "", "", http.StatusUnauthorized, ""},
		{"malformed header", "Token " + token, "", http.StatusUnauthorized, ""},
		{"invalid token", "Bearer garbage", "", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotIdentity = ""
			req := httptest.NewRequest(http.MethodGet, "/api/transactions"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if gotIdentity != tt.wantOwner {
				t.Errorf("identity = %q, want %q", gotIdentity, tt.wantOwner)
			}
		})
	}
}

func TestIdentityFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := IdentityFromContext(req.Context()); ok {
		t.Error("IdentityFromContext() on bare context returned ok")
	}
}
