package services

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	"restaurants/models"
)

func TestTokenRoundTrip(t *testing.T) {
	info := UserInfo{UserId: 42, Role: models.RoleAdmin}

	token, err := GenerateToken(info, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	got, err := ParseToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if got != info {
		t.Errorf("ParseToken() = %+v, want %+v", got, info)
	}
}

func TestParseTokenRejects(t *testing.T) {
	valid, _ := GenerateToken(UserInfo{UserId: 1, Role: models.RoleUser}, "secret", time.Hour)
	expired, _ := GenerateToken(UserInfo{UserId: 1, Role: models.RoleUser}, "secret", -time.Minute)
	badRole, _ := GenerateToken(UserInfo{UserId: 1, Role: "ROOT"}, "secret", time.Hour)

	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserInfo:       UserInfo{UserId: 1, Role: models.RoleAdmin},
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "wrong secret", token: valid, secret: "other"},
		{name: "expired", token: expired, secret: "secret"},
		{name: "unknown role", token: badRole, secret: "secret"},
		{name: "alg none", token: unsigned, secret: "secret"},
		{name: "garbage", token: "not.a.token", secret: "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.token, tt.secret); err == nil {
				t.Error("expected error")
			}
		})
	}
}
