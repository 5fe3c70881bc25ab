package ports

import (
	"context"

	"whist/internal/variant"
)

// TableSettings is a player's preferred variant and house rules.
type TableSettings struct {
	Variant variant.ID    `json:"variant"`
	House   variant.House `json:"house"`
}

// SettingsPort persists table settings per user.
type SettingsPort interface {
	// LoadSettings returns found=false when the user has never saved any.
	LoadSettings(ctx context.Context, userID string) (TableSettings, bool, error)

	// SaveSettings overwrites the stored settings of userID.
	SaveSettings(ctx context.Context, userID string, s TableSettings) error

	// SeedSettings stores s only if userID has nothing stored yet.
	// Returns seeded=false when settings already existed.
	SeedSettings(ctx context.Context, userID string, s TableSettings) (bool, error)
}
