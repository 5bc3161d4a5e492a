package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/table-reservation/internal/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	id := model.Identity{UserID: 42, Email: "m@example.com", Name: "Mia", Role: model.RoleManager, RestaurantID: "rest-1"}
	tok, err := NewAccessToken("secret", id, 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	got, err := ParseAccessToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if got != id {
		t.Fatalf("identity = %+v, want %+v", got, id)
	}
	if _, err := ParseAccessToken("other", tok.Token); err == nil {
		t.Fatalf("token accepted with wrong secret")
	}
}

func TestParseAccessTokenRejects(t *testing.T) {
	expired, _ := NewAccessToken("secret", model.Identity{UserID: 1, Role: model.RoleAdmin}, -1)
	badRole, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1", "role": "owner", "exp": 4102444800,
	}).SignedString([]byte("secret"))
	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1", "role": "admin",
	}).SignedString([]byte("secret"))

	for name, raw := range map[string]string{
		"expired":  expired.Token,
		"bad role": badRole,
		"no exp":   noExp,
		"garbage":  "not-a-jwt",
	} {
		if _, err := ParseAccessToken("secret", raw); err == nil {
			t.Errorf("%s: token accepted", name)
		}
	}
}

func TestRefreshTokenHash(t *testing.T) {
	a, err := NewRefreshToken(1)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	b, _ := NewRefreshToken(1)
	if a.Raw == b.Raw || len(a.Raw) != 96 {
		t.Fatalf("unexpected raw tokens %q %q", a.Raw, b.Raw)
	}
	if h := HashRefreshRaw(a.Raw); len(h) != 64 || h != HashRefreshRaw(a.Raw) {
		t.Fatalf("hash not stable: %q", h)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "s3cret") || VerifyPassword(hash, "wrong") {
		t.Fatalf("VerifyPassword mismatch")
	}
}

func TestPasswordCost(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, bcrypt.DefaultCost},
		{-3, bcrypt.MinCost},
		{1, bcrypt.MinCost},
		{bcrypt.MinCost, bcrypt.MinCost},
		{12, 12},
		{99, bcrypt.MaxCost},
	}
	for _, tt := range tests {
		if got := PasswordCost(tt.in); got != tt.want {
			t.Errorf("PasswordCost(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}

	hash, err := HashPassword("s3cret", 1)
	if err != nil {
		t.Fatalf("HashPassword below minimum: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != bcrypt.MinCost {
		t.Fatalf("cost = %d, want %d", cost, bcrypt.MinCost)
	}
}

func TestNeedsRehash(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if NeedsRehash(hash, bcrypt.MinCost) || NeedsRehash(hash, 1) {
		t.Fatalf("hash at configured cost flagged for rehash")
	}
	if !NeedsRehash(hash, bcrypt.MinCost+1) {
		t.Fatalf("stale cost not flagged")
	}
	if !NeedsRehash("not-a-hash", bcrypt.MinCost) {
		t.Fatalf("garbage hash not flagged")
	}
}
