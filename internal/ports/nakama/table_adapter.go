package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"whist/internal/app"
	"whist/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaTableAdapter implements ports.TablePort on Nakama storage. Tables are
// readable by the server only, so clients cannot fetch other seats' cards.
type NakamaTableAdapter struct {
	nk storageModule
}

// NewNakamaTableAdapter creates a new table adapter.
func NewNakamaTableAdapter(nk storageModule) *NakamaTableAdapter {
	return &NakamaTableAdapter{nk: nk}
}

// LoadTable reads the active table of userID.
func (a *NakamaTableAdapter) LoadTable(ctx context.Context, userID string) (app.Table, string, bool, error) {
	if userID == "" {
		return app.Table{}, "", false, fmt.Errorf("userID is required")
	}
	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: tableCollection, Key: tableKey, UserID: userID},
	})
	if err != nil {
		return app.Table{}, "", false, fmt.Errorf("failed to read table: %w", err)
	}
	if len(objects) == 0 {
		return app.Table{}, "", false, nil
	}
	var t app.Table
	if err := json.Unmarshal([]byte(objects[0].GetValue()), &t); err != nil {
		return app.Table{}, "", false, fmt.Errorf("failed to unmarshal table: %w", err)
	}
	return t, objects[0].GetVersion(), true, nil
}

// SaveTable writes the active table of userID.
func (a *NakamaTableAdapter) SaveTable(ctx context.Context, userID string, t app.Table, version string) error {
	if userID == "" {
		return fmt.Errorf("userID is required")
	}
	value, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal table: %w", err)
	}
	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{
		{
			Collection:      tableCollection,
			Key:             tableKey,
			UserID:          userID,
			Value:           string(value),
			Version:         version,
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

var _ ports.TablePort = (*NakamaTableAdapter)(nil)
