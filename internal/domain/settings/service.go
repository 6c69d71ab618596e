package settings

import (
	"context"
	"errors"
	"fmt"
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

// Get returns the stored settings, or the defaults when nothing was saved yet.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	stored, err := s.repo.Load(ctx)
	if errors.Is(err, ErrSettingsNotFound) {
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	return *stored, nil
}

func (s *Service) Update(ctx context.Context, input UpdateInput) (Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return Settings{}, err
	}

	if input.AppName != nil {
		current.AppName = strings.TrimSpace(*input.AppName)
	}
	if input.RecordsPerPage != nil {
		current.RecordsPerPage = *input.RecordsPerPage
	}
	if input.Theme != nil {
		current.Theme = strings.ToLower(strings.TrimSpace(*input.Theme))
	}
	if input.Language != nil {
		current.Language = strings.TrimSpace(*input.Language)
	}
	if input.Notifications != nil {
		current.Notifications = *input.Notifications
	}

	if err := validate(current); err != nil {
		return Settings{}, err
	}

	current.ID = singletonID
	current.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, &current); err != nil {
		return Settings{}, err
	}
	return current, nil
}

func validate(settings Settings) error {
	switch {
	case settings.AppName == "":
		return fmt.Errorf("%w: app name is required", ErrInvalidSettings)
	case settings.RecordsPerPage < 1 || settings.RecordsPerPage > 100:
		return fmt.Errorf("%w: records per page must be between 1 and 100", ErrInvalidSettings)
	case settings.Theme != ThemeLight && settings.Theme != ThemeDark:
		return fmt.Errorf("%w: theme must be light or dark", ErrInvalidSettings)
	case settings.Language == "":
		return fmt.Errorf("%w: language is required", ErrInvalidSettings)
	}
	return nil
}
