package settings

import (
	"context"
	"errors"
	"fmt"

	"whist/internal/config"
	"whist/internal/ports"
	"whist/internal/variant"
)

var ErrNotConfigured = errors.New("settings service not configured")

// Service reads and writes a player's table settings, falling back to the
// game config for players who never chose.
type Service struct {
	store ports.SettingsPort
	cfg   *config.GameConfig
}

// NewService constructs a settings service. store must be non-nil; cfg may be
// nil to use built-in defaults.
func NewService(store ports.SettingsPort, cfg *config.GameConfig) *Service {
	return &Service{store: store, cfg: cfg}
}

// Defaults returns the settings a new player starts with.
func (s *Service) Defaults() ports.TableSettings {
	id := s.cfg.Variant()
	return ports.TableSettings{Variant: id, House: s.cfg.House(id)}
}

// Get returns the stored settings of userID, or the defaults.
func (s *Service) Get(ctx context.Context, userID string) (ports.TableSettings, error) {
	if s.store == nil {
		return ports.TableSettings{}, ErrNotConfigured
	}
	stored, found, err := s.store.LoadSettings(ctx, userID)
	if err != nil {
		return ports.TableSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	if !found {
		return s.Defaults(), nil
	}
	return stored, nil
}

// Set validates and stores new settings for userID.
func (s *Service) Set(ctx context.Context, userID string, in ports.TableSettings) (ports.TableSettings, error) {
	if s.store == nil {
		return ports.TableSettings{}, ErrNotConfigured
	}
	if err := Validate(in); err != nil {
		return ports.TableSettings{}, err
	}
	if err := s.store.SaveSettings(ctx, userID, in); err != nil {
		return ports.TableSettings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return in, nil
}

// OnboardNewUser stores the default settings for a newly created account.
// Returns seeded=false when the account already had settings.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (bool, error) {
	if s.store == nil {
		return false, ErrNotConfigured
	}
	seeded, err := s.store.SeedSettings(ctx, userID, s.Defaults())
	if err != nil {
		return false, fmt.Errorf("failed to seed settings: %w", err)
	}
	return seeded, nil
}

// Validate checks that in names a registered variant and usable house rules.
func Validate(in ports.TableSettings) error {
	id, err := variant.Parse(string(in.Variant))
	if err != nil {
		return err
	}
	if err := in.House.Validate(); err != nil {
		return err
	}
	_, err = variant.Lookup(id, in.House.Options()...)
	return err
}
