// Package customer handles accounts: registration, login and profile data.
package customer

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("customer not found")
	ErrAlreadyExist = errors.New("customer already exists")
)

type Customer struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	PasswordHash   string `json:"-"`
}

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
}

// MemoryRepo is the built-in account store, seeded with the demo account so
// the storefront works out of the box.
type MemoryRepo struct {
	mu      sync.Mutex
	byID    map[string]*Customer
	byEmail map[string]string
}

func NewMemoryRepo() *MemoryRepo {
	r := &MemoryRepo{
		byID:    make(map[string]*Customer),
		byEmail: make(map[string]string),
	}
	hash, _ := HashPassword("password")
	demo := &Customer{
		ID:           uuid.NewString(),
		Name:         "John Doe",
		Email:        "demo@example.com",
		Phone:        "+1234567890",
		PasswordHash: hash,
	}
	r.byID[demo.ID] = demo
	r.byEmail[demo.Email] = demo.ID
	return r
}

func (r *MemoryRepo) Create(ctx context.Context, c *Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[c.Email]; ok {
		return ErrAlreadyExist
	}
	cp := *c
	r.byID[cp.ID] = &cp
	r.byEmail[cp.Email] = cp.ID
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (*Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (*Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}

// Update overwrites the stored profile fields. Blank fields keep their
// current values.
func (r *MemoryRepo) Update(ctx context.Context, c *Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[c.ID]
	if !ok {
		return ErrNotFound
	}
	if c.Name != "" {
		cur.Name = c.Name
	}
	if c.Email != "" && c.Email != cur.Email {
		if _, taken := r.byEmail[c.Email]; taken {
			return ErrAlreadyExist
		}
		delete(r.byEmail, cur.Email)
		cur.Email = c.Email
		r.byEmail[cur.Email] = cur.ID
	}
	if c.Phone != "" {
		cur.Phone = c.Phone
	}
	if c.ProfilePicture != "" {
		cur.ProfilePicture = c.ProfilePicture
	}
	if c.PasswordHash != "" {
		cur.PasswordHash = c.PasswordHash
	}
	return nil
}
