package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"whist/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// storageModule is the subset of runtime.NakamaModule the storage adapters
// need.
type storageModule interface {
	StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error)
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
}

// NakamaSettingsAdapter implements ports.SettingsPort on Nakama storage.
type NakamaSettingsAdapter struct {
	nk storageModule
}

// NewNakamaSettingsAdapter creates a new settings adapter.
func NewNakamaSettingsAdapter(nk storageModule) *NakamaSettingsAdapter {
	return &NakamaSettingsAdapter{nk: nk}
}

// LoadSettings reads the stored settings of userID.
func (a *NakamaSettingsAdapter) LoadSettings(ctx context.Context, userID string) (ports.TableSettings, bool, error) {
	if userID == "" {
		return ports.TableSettings{}, false, fmt.Errorf("userID is required")
	}
	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: settingsCollection, Key: settingsKey, UserID: userID},
	})
	if err != nil {
		return ports.TableSettings{}, false, fmt.Errorf("failed to read settings: %w", err)
	}
	if len(objects) == 0 {
		return ports.TableSettings{}, false, nil
	}
	var s ports.TableSettings
	if err := json.Unmarshal([]byte(objects[0].GetValue()), &s); err != nil {
		return ports.TableSettings{}, false, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return s, true, nil
}

// SaveSettings overwrites the stored settings of userID.
func (a *NakamaSettingsAdapter) SaveSettings(ctx context.Context, userID string, s ports.TableSettings) error {
	return a.write(ctx, userID, s, "")
}

// SeedSettings writes s only when nothing is stored for userID yet.
func (a *NakamaSettingsAdapter) SeedSettings(ctx context.Context, userID string, s ports.TableSettings) (bool, error) {
	err := a.write(ctx, userID, s, "*")
	if errors.Is(err, runtime.ErrStorageRejectedVersion) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (a *NakamaSettingsAdapter) write(ctx context.Context, userID string, s ports.TableSettings, version string) error {
	if userID == "" {
		return fmt.Errorf("userID is required")
	}
	value, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{
		{
			Collection:      settingsCollection,
			Key:             settingsKey,
			UserID:          userID,
			Value:           string(value),
			Version:         version,
			PermissionRead:  runtime.STORAGE_PERMISSION_OWNER_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

var _ ports.SettingsPort = (*NakamaSettingsAdapter)(nil)
