package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"

	"restaurants/models"
)

type UserInfo struct {
	UserId uint        `json:"userid"`
	Role   models.Role `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

func GenerateToken(info UserInfo, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserInfo: info,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatUint(uint64(info.UserId), 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry and returns the embedded user info.
func ParseToken(tokenString, secret string) (UserInfo, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return UserInfo{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return UserInfo{}, fmt.Errorf("invalid token")
	}
	if !claims.UserInfo.Role.Valid() {
		return UserInfo{}, fmt.Errorf("invalid role %q in token", claims.UserInfo.Role)
	}
	return claims.UserInfo, nil
}
