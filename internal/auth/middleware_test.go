package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/auth"
)

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	var seen uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := auth.CurrentUserID(r.Context())
		if err != nil {
			t.Errorf("CurrentUserID failed inside handler: %v", err)
		}
		seen = id
		w.WriteHeader(http.StatusNoContent)
	})
	handler := auth.AuthMiddleware(next)

	t.Run("MissingToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("want 401, got %d", rec.Code)
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/projects", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("want 401, got %d", rec.Code)
		}
	})

	t.Run("BearerToken", func(t *testing.T) {
		token, _ := auth.GenerateJWT(testUserID, auth.RoleUser, time.Minute)
		req := httptest.NewRequest(http.MethodGet, "/projects", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("want 204, got %d", rec.Code)
		}
		if seen.String() != testUserID {
			t.Errorf("handler saw user %s", seen)
		}
	})

	t.Run("CookieToken", func(t *testing.T) {
		token, _ := auth.GenerateJWT(testUserID, auth.RoleUser, time.Minute)
		req := httptest.NewRequest(http.MethodGet, "/projects", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("want 204, got %d", rec.Code)
		}
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("password stored in clear text")
	}
	if !auth.CheckPassword("correct horse battery staple", hash) {
		t.Error("CheckPassword rejected the right password")
	}
	if auth.CheckPassword("wrong", hash) {
		t.Error("CheckPassword accepted a wrong password")
	}
}
