package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Auth issues and verifies the session tokens the storefront hands to
// logged-in customers.
type Auth struct {
	repo   Repository
	secret []byte
	ttl    time.Duration
}

func NewAuth(repo Repository, secret string, ttl time.Duration) *Auth {
	return &Auth{repo: repo, secret: []byte(secret), ttl: ttl}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *Auth) Register(ctx context.Context, req RegisterRequest) (*Customer, string, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	c := &Customer{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if err := a.repo.Create(ctx, c); err != nil {
		return nil, "", err
	}
	token, err := a.issue(c.ID)
	if err != nil {
		return nil, "", err
	}
	return c, token, nil
}

func (a *Auth) Login(ctx context.Context, req LoginRequest) (*Customer, string, error) {
	c, err := a.repo.GetByEmail(ctx, req.Email)
	if errors.Is(err, ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !CheckPassword(c.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCredentials
	}
	token, err := a.issue(c.ID)
	if err != nil {
		return nil, "", err
	}
	return c, token, nil
}

func (a *Auth) issue(customerID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   customerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Verify returns the customer id carried by a valid token.
func (a *Auth) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}
