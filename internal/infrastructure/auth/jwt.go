package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType separates session tokens from password-reset tokens so one can
// never be used as the other.
type TokenType string

const (
	TokenTypeAccess TokenType = "access"
	TokenTypeReset  TokenType = "reset"
)

// ErrWrongTokenType is returned when a valid token is presented for the
// wrong purpose.
var ErrWrongTokenType = errors.New("wrong token type")

// Claims carried by every token. The user is also encoded in the subject.
type Claims struct {
	UserID    uint      `json:"id"`
	Role      string    `json:"role"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies HS256 tokens.
type JWTService struct {
	secret           []byte
	accessExpMinutes int
	resetExpMinutes  int
	now              func() time.Time
}

func NewJWTService(secret string, accessExpMinutes, resetExpMinutes int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		resetExpMinutes:  resetExpMinutes,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// GenerateAccess issues a session token for an admin.
func (s *JWTService) GenerateAccess(userID uint, role string) (string, time.Time, error) {
	return s.sign(userID, role, TokenTypeAccess, time.Duration(s.accessExpMinutes)*time.Minute)
}

// GenerateReset issues a short-lived password-reset token.
func (s *JWTService) GenerateReset(userID uint, role string) (string, time.Time, error) {
	return s.sign(userID, role, TokenTypeReset, time.Duration(s.resetExpMinutes)*time.Minute)
}

func (s *JWTService) sign(userID uint, role string, tokenType TokenType, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(ttl)
	claims := &Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, exp, nil
}

// Verify parses tokenString and checks it was issued as want.
func (s *JWTService) Verify(tokenString string, want TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != want {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// AccessExpMinutes returns the access token expiration time in minutes
func (s *JWTService) AccessExpMinutes() int {
	return s.accessExpMinutes
}
