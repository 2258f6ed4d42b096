package persistence

import (
	"context"
	"encoding/json"
	"log"

	"github.com/bookable-app/bookable/modules/bookingsettings/domain/ports"
	"github.com/bookable-app/bookable/modules/bookingsettings/domain/types"
	"github.com/bookable-app/bookable/modules/bookingsettings/services"
)

// MigratingSettingsStore wraps the raw document stores with lazy migration:
// every read detects the stored generation, returns the current shape, and
// writes the migrated document back so migration happens at most once per
// record. Concurrent reads of the same legacy record may race to migrate it;
// that is safe because migration is idempotent and the duplicate writes
// carry the same logical content. A failed write-back is logged, not
// surfaced — the caller still gets the migrated value and the next read
// retries the write.
type MigratingSettingsStore struct {
	orgs  ports.OrgSettingsStore
	users ports.UserOverridesStore
}

func NewMigratingSettingsStore(orgs ports.OrgSettingsStore, users ports.UserOverridesStore) *MigratingSettingsStore {
	return &MigratingSettingsStore{orgs: orgs, users: users}
}

// LoadOrgSettings returns the tenant's org settings record, migrated to the
// current format.
func (s *MigratingSettingsStore) LoadOrgSettings(ctx context.Context, tenantID string) (types.OrgSettingsRecord, error) {
	raw, err := s.orgs.GetOrgSettings(ctx, tenantID)
	if err != nil {
		return types.OrgSettingsRecord{}, err
	}
	rec, err := services.DecodeOrgSettings(raw)
	if err != nil {
		return types.OrgSettingsRecord{}, err
	}
	if rec.Format != types.FormatLegacy {
		return rec, nil
	}

	migrated := services.MigrateOrgSettings(rec)
	if doc, err := json.Marshal(migrated.Current); err == nil {
		if err := s.orgs.SaveOrgSettings(ctx, tenantID, doc); err != nil {
			log.Printf("bookingsettings: org settings migration write-back failed tenant=%s: %v", tenantID, err)
		}
	}
	return migrated, nil
}

// SaveOrgSettings persists a current-format org settings document.
func (s *MigratingSettingsStore) SaveOrgSettings(ctx context.Context, tenantID string, settings *types.OrgBookingSettings) error {
	doc, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.orgs.SaveOrgSettings(ctx, tenantID, doc)
}

// LoadUserOverrides returns the user's override map, migrated to the sparse
// current format. Users with nothing stored get an empty map.
func (s *MigratingSettingsStore) LoadUserOverrides(ctx context.Context, tenantID string, userID string) (types.UserOverrides, error) {
	raw, err := s.users.GetUserOverrides(ctx, tenantID, userID)
	if err != nil {
		return types.UserOverrides{}, err
	}
	rec, err := services.DecodeUserOverrides(raw)
	if err != nil {
		return types.UserOverrides{}, err
	}
	if rec.Format != types.FormatLegacy {
		return rec.Overrides, nil
	}

	migrated := services.MigrateUserOverrides(rec)
	if doc, err := json.Marshal(migrated.Overrides); err == nil {
		if err := s.users.SaveUserOverrides(ctx, tenantID, userID, doc); err != nil {
			log.Printf("bookingsettings: user overrides migration write-back failed tenant=%s user=%s: %v", tenantID, userID, err)
		}
	}
	return migrated.Overrides, nil
}

// SaveUserOverrides persists a current-format override map.
func (s *MigratingSettingsStore) SaveUserOverrides(ctx context.Context, tenantID string, userID string, overrides types.UserOverrides) error {
	doc, err := json.Marshal(overrides)
	if err != nil {
		return err
	}
	return s.users.SaveUserOverrides(ctx, tenantID, userID, doc)
}
