package server

import (
	"encoding/json"
	"net/http"

	"github.com/bookable-app/bookable/modules/bookingsettings/domain/fieldmeta"
	"github.com/bookable-app/bookable/modules/bookingsettings/domain/types"
	"github.com/bookable-app/bookable/modules/bookingsettings/services"
	"github.com/bookable-app/bookable/pkg/httperr"
)

type orgFieldsResponse struct {
	Overridable []fieldmeta.Key `json:"overridable"`
	Locked      []fieldmeta.Key `json:"locked"`
}

func handleOrgSettingsGetAPI(w http.ResponseWriter, r *http.Request, store SettingsStore) {
	tenant, ok := currentTenant(r.Context())
	if !ok {
		writeAPIError(w, http.StatusInternalServerError, "tenant_missing", "tenant missing")
		return
	}

	rec, err := store.LoadOrgSettings(r.Context(), tenant.ID)
	if err != nil {
		writeStoreError(w, err, "org_settings_load_failed")
		return
	}

	settings := rec.Current
	if settings == nil {
		settings = &types.OrgBookingSettings{}
	}
	writeJSON(w, http.StatusOK, settings)
}

func handleOrgSettingsPutAPI(w http.ResponseWriter, r *http.Request, store SettingsStore) {
	tenant, ok := currentTenant(r.Context())
	if !ok {
		writeAPIError(w, http.StatusInternalServerError, "tenant_missing", "tenant missing")
		return
	}

	var settings types.OrgBookingSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_json", "bad json")
		return
	}

	if err := store.SaveOrgSettings(r.Context(), tenant.ID, &settings); err != nil {
		writeStoreError(w, err, "org_settings_save_failed")
		return
	}
	writeJSON(w, http.StatusOK, &settings)
}

func handleOrgDefaultsAPI(w http.ResponseWriter, r *http.Request, store SettingsStore) {
	tenant, ok := currentTenant(r.Context())
	if !ok {
		writeAPIError(w, http.StatusInternalServerError, "tenant_missing", "tenant missing")
		return
	}

	rec, err := store.LoadOrgSettings(r.Context(), tenant.ID)
	if err != nil {
		writeStoreError(w, err, "org_settings_load_failed")
		return
	}
	writeJSON(w, http.StatusOK, services.OrgDefaults(rec))
}

func handleOrgFieldsAPI(w http.ResponseWriter, r *http.Request, store SettingsStore) {
	tenant, ok := currentTenant(r.Context())
	if !ok {
		writeAPIError(w, http.StatusInternalServerError, "tenant_missing", "tenant missing")
		return
	}

	rec, err := store.LoadOrgSettings(r.Context(), tenant.ID)
	if err != nil {
		writeStoreError(w, err, "org_settings_load_failed")
		return
	}
	writeJSON(w, http.StatusOK, orgFieldsResponse{
		Overridable: services.OverridableKeys(rec),
		Locked:      services.LockedKeys(rec),
	})
}

func handleOrgPushAPI(w http.ResponseWriter, r *http.Request, push *services.PushService) {
	tenant, ok := currentTenant(r.Context())
	if !ok {
		writeAPIError(w, http.StatusInternalServerError, "tenant_missing", "tenant missing")
		return
	}

	var req services.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_json", "bad json")
		return
	}

	res, err := push.PushOrgDefaults(r.Context(), tenant.ID, req)
	if err != nil {
		if httperr.IsBadRequest(err) {
			writeAPIError(w, http.StatusBadRequest, "invalid_push_request", err.Error())
			return
		}
		writeStoreError(w, err, "push_failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
