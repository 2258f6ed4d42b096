package server

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/bookable-app/bookable/modules/bookingsettings/domain/ports"
	"github.com/bookable-app/bookable/modules/bookingsettings/domain/types"
)

// SettingsStore is the migrated-document surface the handlers consume.
// persistence.MigratingSettingsStore is the production implementation.
type SettingsStore interface {
	LoadOrgSettings(ctx context.Context, tenantID string) (types.OrgSettingsRecord, error)
	SaveOrgSettings(ctx context.Context, tenantID string, settings *types.OrgBookingSettings) error
	LoadUserOverrides(ctx context.Context, tenantID string, userID string) (types.UserOverrides, error)
	SaveUserOverrides(ctx context.Context, tenantID string, userID string, overrides types.UserOverrides) error
}

// settingsMemoryStore implements the raw document ports in memory, for tests
// and for running without Postgres.
type settingsMemoryStore struct {
	mu       sync.Mutex
	orgDocs  map[string]json.RawMessage
	userDocs map[string]map[string]json.RawMessage
}

func newSettingsMemoryStore() *settingsMemoryStore {
	return &settingsMemoryStore{
		orgDocs:  make(map[string]json.RawMessage),
		userDocs: make(map[string]map[string]json.RawMessage),
	}
}

func (s *settingsMemoryStore) GetOrgSettings(_ context.Context, tenantID string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orgDocs[tenantID], nil
}

func (s *settingsMemoryStore) SaveOrgSettings(_ context.Context, tenantID string, doc json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orgDocs[tenantID] = append(json.RawMessage(nil), doc...)
	return nil
}

func (s *settingsMemoryStore) GetUserOverrides(_ context.Context, tenantID string, userID string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userDocs[tenantID][userID], nil
}

func (s *settingsMemoryStore) SaveUserOverrides(_ context.Context, tenantID string, userID string, doc json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userDocs[tenantID] == nil {
		s.userDocs[tenantID] = make(map[string]json.RawMessage)
	}
	s.userDocs[tenantID][userID] = append(json.RawMessage(nil), doc...)
	return nil
}

func (s *settingsMemoryStore) ListUserOverrides(_ context.Context, tenantID string) ([]ports.UserOverridesRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.UserOverridesRow, 0, len(s.userDocs[tenantID]))
	for userID, doc := range s.userDocs[tenantID] {
		out = append(out, ports.UserOverridesRow{UserID: userID, Doc: append(json.RawMessage(nil), doc...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}
