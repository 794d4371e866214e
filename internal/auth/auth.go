// Package auth authenticates the single admin account permitted to submit
// delays, trigger a reload, or override awards. There is no user
// registration, refresh-token rotation, or per-tournament ownership here --
// unlike a multi-tenant system, a competition has exactly one administrator.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Login when the username or password
// doesn't match the configured admin account.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Claims is the JWT payload issued to the admin on login.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Service authenticates the admin account and issues/validates JWTs.
type Service struct {
	username     string
	passwordHash string
	secret       string
	expiration   time.Duration
	bcryptCost   int
}

// NewService builds an auth Service for the given admin account.
func NewService(username, passwordHash, secret string, expiration time.Duration, bcryptCost int) *Service {
	return &Service{
		username:     username,
		passwordHash: passwordHash,
		secret:       secret,
		expiration:   expiration,
		bcryptCost:   bcryptCost,
	}
}

// HashPassword hashes a plaintext password for storage as AdminPasswordHash.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hashed), nil
}

// Login checks the given credentials against the configured admin account
// and, on success, issues a signed JWT.
func (s *Service) Login(username, password string) (string, error) {
	if username != s.username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.generateToken()
}

func (s *Service) generateToken() (string, error) {
	claims := Claims{
		Username: s.username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// ValidateToken parses and verifies a JWT, returning the admin username it
// was issued to.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Username, nil
}
