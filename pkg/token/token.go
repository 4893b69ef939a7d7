package token

import (
	"errors"
	"time"

	"resale/domain"
	"resale/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

var appConfig = config.Read()

var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID string          `json:"sub"`
	Role   domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// IssuePair signs a fresh access/refresh token pair for the user.
func IssuePair(userID string, role domain.UserRole) (Pair, error) {
	access, err := sign(userID, role, appConfig.AccessTokenSecret,
		expiry(appConfig.AccessTokenExpiry, 168*time.Hour))
	if err != nil {
		return Pair{}, err
	}

	refresh, err := sign(userID, role, appConfig.RefreshTokenSecret,
		expiry(appConfig.RefreshTokenExpiry, 720*time.Hour))
	if err != nil {
		return Pair{}, err
	}

	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

func expiry(raw string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}

func sign(userID string, role domain.UserRole, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ParseAccess(raw string) (Claims, error) {
	return parse(raw, appConfig.AccessTokenSecret)
}

func ParseRefresh(raw string) (Claims, error) {
	return parse(raw, appConfig.RefreshTokenSecret)
}

func parse(raw, secret string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}
	return claims, nil
}
