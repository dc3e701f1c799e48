package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
)

type Service interface {
	GenerateToken(playerID, tripID string, role Role, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*TripClaims, error)
	GenerateMagicLink(playerID, tripID string, role Role) (string, error)
}

type service struct {
	secret       []byte
	defaultTTL   time.Duration
	magicLinkTTL time.Duration
	appBaseURL   string
}

func NewService(secret string, defaultTTL, magicLinkTTL time.Duration, appBaseURL string) Service {
	return &service{
		secret:       []byte(secret),
		defaultTTL:   defaultTTL,
		magicLinkTTL: magicLinkTTL,
		appBaseURL:   appBaseURL,
	}
}

func (s *service) GenerateToken(playerID, tripID string, role Role, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = s.defaultTTL
	}
	now := time.Now()
	claims := &TripClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Trip: tripID,
		Role: string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signedToken, nil
}

func (s *service) ValidateToken(tokenString string) (*TripClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TripClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*TripClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// GenerateMagicLink builds a short-lived sign-in URL a trip organizer can
// text to a player.
func (s *service) GenerateMagicLink(playerID, tripID string, role Role) (string, error) {
	token, err := s.GenerateToken(playerID, tripID, role, s.magicLinkTTL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s?t=%s", s.appBaseURL, token), nil
}
