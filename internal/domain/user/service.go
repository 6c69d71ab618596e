package user

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// RecordLogin creates or refreshes the user row for a verified identity.
// The first user ever recorded becomes an administrator.
func (s *Service) RecordLogin(ctx context.Context, identity Identity) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(identity.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}

	existing, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := User{
		Email:     email,
		Name:      strings.TrimSpace(identity.Name),
		IsActive:  true,
		IsAdmin:   existing == 0,
		LastLogin: &now,
	}
	if identity.Subject != "" {
		user.GoogleID = &identity.Subject
	}
	if identity.Picture != "" {
		user.Picture = &identity.Picture
	}

	if err := s.repo.UpsertByEmail(ctx, &user); err != nil {
		return nil, err
	}

	stored, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !stored.IsActive {
		return nil, ErrUserInactive
	}
	return stored, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	return s.repo.GetByEmail(ctx, email)
}
