package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bookable-app/bookable/modules/bookingsettings/domain/fieldmeta"
	"github.com/bookable-app/bookable/modules/bookingsettings/domain/types"
	"github.com/bookable-app/bookable/modules/bookingsettings/services"
)

type overridesResponse struct {
	Overrides    types.UserOverrides `json:"overrides"`
	InvalidKeys  []fieldmeta.Key     `json:"invalidKeys,omitempty"`
	HasOverrides bool                `json:"hasOverrides"`
}

type overridesUpdateResponse struct {
	Overrides   types.UserOverrides `json:"overrides"`
	RemovedKeys []fieldmeta.Key     `json:"removedKeys,omitempty"`
}

func overridesUserID(r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.PathValue("user_id"))
	return userID, userID != ""
}

func handleUserOverridesGetAPI(w http.ResponseWriter, r *http.Request, store SettingsStore) {
	tenant, ok := currentTenant(r.Context())
	if !ok {
		writeAPIError(w, http.StatusInternalServerError, "tenant_missing", "tenant missing")
		return
	}
	userID, ok := overridesUserID(r)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "invalid_user_id", "user_id required")
		return
	}

	overrides, err := store.LoadUserOverrides(r.Context(), tenant.ID, userID)
	if err != nil {
		writeStoreError(w, err, "overrides_load_failed")
		return
	}
	org, err := store.LoadOrgSettings(r.Context(), tenant.ID)
	if err != nil {
		writeStoreError(w, err, "org_settings_load_failed")
		return
	}

	writeJSON(w, http.StatusOK, overridesResponse{
		Overrides:    overrides,
		InvalidKeys:  services.InvalidOverrides(org, overrides),
		HasOverrides: services.HasOverrides(overrides),
	})
}

// handleUserOverridesPutAPI replaces the user's override map. Keys the org
// no longer permits are stripped before persisting so stored state stays
// consistent with current policy.
func handleUserOverridesPutAPI(w http.ResponseWriter, r *http.Request, store SettingsStore) {
	tenant, ok := currentTenant(r.Context())
	if !ok {
		writeAPIError(w, http.StatusInternalServerError, "tenant_missing", "tenant missing")
		return
	}
	userID, ok := overridesUserID(r)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "invalid_user_id", "user_id required")
		return
	}

	var overrides types.UserOverrides
	if err := json.NewDecoder(r.Body).Decode(&overrides); err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_json", "bad json")
		return
	}

	org, err := store.LoadOrgSettings(r.Context(), tenant.ID)
	if err != nil {
		writeStoreError(w, err, "org_settings_load_failed")
		return
	}

	cleaned, removed := services.StripInvalidOverrides(org, overrides)
	if err := store.SaveUserOverrides(r.Context(), tenant.ID, userID, cleaned); err != nil {
		writeStoreError(w, err, "overrides_save_failed")
		return
	}
	writeJSON(w, http.StatusOK, overridesUpdateResponse{Overrides: cleaned, RemovedKeys: removed})
}

// handleUserOverridesDeleteAPI resets the user to org defaults. The profile
// fields are user-owned and survive the reset.
func handleUserOverridesDeleteAPI(w http.ResponseWriter, r *http.Request, store SettingsStore) {
	tenant, ok := currentTenant(r.Context())
	if !ok {
		writeAPIError(w, http.StatusInternalServerError, "tenant_missing", "tenant missing")
		return
	}
	userID, ok := overridesUserID(r)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "invalid_user_id", "user_id required")
		return
	}

	overrides, err := store.LoadUserOverrides(r.Context(), tenant.ID, userID)
	if err != nil {
		writeStoreError(w, err, "overrides_load_failed")
		return
	}

	reset := types.UserOverrides{Bio: overrides.Bio, AvatarURL: overrides.AvatarURL}
	if err := store.SaveUserOverrides(r.Context(), tenant.ID, userID, reset); err != nil {
		writeStoreError(w, err, "overrides_save_failed")
		return
	}
	writeJSON(w, http.StatusOK, overridesUpdateResponse{Overrides: reset})
}

func handleUserEffectiveAPI(w http.ResponseWriter, r *http.Request, store SettingsStore) {
	tenant, ok := currentTenant(r.Context())
	if !ok {
		writeAPIError(w, http.StatusInternalServerError, "tenant_missing", "tenant missing")
		return
	}
	userID, ok := overridesUserID(r)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, "invalid_user_id", "user_id required")
		return
	}

	org, err := store.LoadOrgSettings(r.Context(), tenant.ID)
	if err != nil {
		writeStoreError(w, err, "org_settings_load_failed")
		return
	}
	overrides, err := store.LoadUserOverrides(r.Context(), tenant.ID, userID)
	if err != nil {
		writeStoreError(w, err, "overrides_load_failed")
		return
	}

	writeJSON(w, http.StatusOK, services.ResolveEffectiveSettings(org, overrides))
}
