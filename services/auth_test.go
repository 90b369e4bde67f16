package services

import (
	"testing"
	"time"

	"github.com/CrowderSoup/godolist/models"
	"github.com/golang-jwt/jwt/v5"
)

func TestUserForIsStable(t *testing.T) {
	s := NewAuthService("secret")

	a, err := s.UserFor("Ada@Example.com", "", "")
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.UserFor("ada@example.com ", "Ada L", "")
	if err != nil {
		t.Fatal(err)
	}
	if a.UID != b.UID {
		t.Fatalf("uid differs for the same email: %s vs %s", a.UID, b.UID)
	}
	if a.DisplayName != "ada" || b.DisplayName != "Ada L" {
		t.Fatalf("display names %q %q", a.DisplayName, b.DisplayName)
	}
	if _, err := s.UserFor("not-an-email", "", ""); err == nil {
		t.Fatal("expected error for invalid email")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	s := NewAuthService("secret")
	user := models.User{UID: "u1", Email: "ada@example.com", DisplayName: "Ada"}

	token, err := s.CreateJWT(user)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if *got != user {
		t.Fatalf("got %+v, want %+v", *got, user)
	}
}

func TestVerifyJWTRejects(t *testing.T) {
	s := NewAuthService("secret")
	user := models.User{UID: "u1", Email: "ada@example.com"}

	good, err := s.CreateJWT(user)
	if err != nil {
		t.Fatal(err)
	}

	other, err := NewAuthService("other").CreateJWT(user)
	if err != nil {
		t.Fatal(err)
	}

	expiredSvc := NewAuthService("secret")
	expiredSvc.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	expired, err := expiredSvc.CreateJWT(user)
	if err != nil {
		t.Fatal(err)
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, models.SessionClaims{User: user}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	tests := map[string]string{
		"wrong secret": other,
		"expired":      expired,
		"alg none":     none,
		"tampered":     good + "x",
		"garbage":      "abc",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := s.VerifyJWT(token); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
