package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"nexttodo/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type authServiceImpl struct {
	logger      zerolog.Logger
	issuer      string
	signingKey  []byte
	tokenTTL    time.Duration
	rememberTTL time.Duration
}

func NewAuthService(
	logger zerolog.Logger,
	issuer string,
	signingKey string,
	tokenTTL time.Duration,
	rememberTTL time.Duration,
) AuthService {
	return &authServiceImpl{
		logger:      logger,
		issuer:      issuer,
		signingKey:  []byte(signingKey),
		tokenTTL:    tokenTTL,
		rememberTTL: rememberTTL,
	}
}

func (s *authServiceImpl) Login(_ context.Context, params LoginParams) (*LoginResult, error) {
	if params.Username == "" || params.Password == "" {
		return nil, ErrInvalidCredentials
	}

	ttl := s.tokenTTL
	if params.RememberMe {
		ttl = s.rememberTTL
	}

	now := time.Now()
	expiresAt := now.Add(ttl)

	userID := models.DefaultUserID
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString(s.signingKey)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to sign token")
		return nil, err
	}

	s.logger.Info().
		Str("username", params.Username).
		Int64("user_id", userID).
		Time("expires_at", expiresAt).
		Msg("logged in")
	return &LoginResult{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authServiceImpl) ParseToken(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return s.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, fmt.Errorf("failed to parse token claims")
	}
	return claims, nil
}
