// Package ports declares the storage boundary of the booking-settings
// subsystem. Stores traffic in raw JSON documents; format detection and
// migration happen above this boundary.
package ports

import (
	"context"
	"encoding/json"
)

// UserOverridesRow is one user's stored override document.
type UserOverridesRow struct {
	UserID string
	Doc    json.RawMessage
}

// OrgSettingsStore persists the per-tenant org settings document.
// Get returns a nil document when none has been stored.
type OrgSettingsStore interface {
	GetOrgSettings(ctx context.Context, tenantID string) (json.RawMessage, error)
	SaveOrgSettings(ctx context.Context, tenantID string, doc json.RawMessage) error
}

// UserOverridesStore persists the sparse per-user override documents.
// Get returns a nil document when none has been stored.
type UserOverridesStore interface {
	GetUserOverrides(ctx context.Context, tenantID string, userID string) (json.RawMessage, error)
	SaveUserOverrides(ctx context.Context, tenantID string, userID string, doc json.RawMessage) error
	ListUserOverrides(ctx context.Context, tenantID string) ([]UserOverridesRow, error)
}
