package ports

import (
	"context"

	"whist/internal/app"
)

// TablePort keeps the authoritative table of each player's game. Clients
// only ever see tickets and per-seat views of it.
type TablePort interface {
	// LoadTable returns found=false when userID has no game. version is the
	// storage version to pass back to SaveTable.
	LoadTable(ctx context.Context, userID string) (t app.Table, version string, found bool, err error)

	// SaveTable writes t for userID. A non-empty version makes the write
	// conditional on nothing else having written since that version was read.
	SaveTable(ctx context.Context, userID string, t app.Table, version string) error
}
