// Package services holds the pure booking-settings logic: format detection,
// legacy migration, effective-settings resolution, permission queries, and
// the bulk push operation. Everything except push is a synchronous function
// over in-memory data.
package services

import (
	"encoding/json"
	"strings"

	"github.com/bookable-app/bookable/modules/bookingsettings/domain/types"
)

// Stored settings carry no version field; the generation is detected
// structurally, once, at decode time. The resulting Format tag on the record
// is what every later access site dispatches on.

// DecodeOrgSettings decodes a stored org settings document and tags it with
// its detected format. A legacy document is recognized by its bare-string
// timezone (the current format wraps timezone in an object). Nil or empty
// input yields an absent record.
func DecodeOrgSettings(raw json.RawMessage) (types.OrgSettingsRecord, error) {
	doc, err := decodeDoc(raw)
	if err != nil {
		return types.OrgSettingsRecord{}, err
	}
	if doc == nil {
		return types.OrgSettingsRecord{Format: types.FormatAbsent}, nil
	}

	if _, isLegacy := doc["timezone"].(string); isLegacy {
		var legacy types.LegacyOrgSettings
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return types.OrgSettingsRecord{}, err
		}
		return types.OrgSettingsRecord{Format: types.FormatLegacy, Legacy: &legacy}, nil
	}

	var current types.OrgBookingSettings
	if err := json.Unmarshal(raw, &current); err != nil {
		return types.OrgSettingsRecord{}, err
	}
	return types.OrgSettingsRecord{Format: types.FormatCurrent, Current: &current}, nil
}

// DecodeUserOverrides decodes a stored user overrides document and tags it
// with its detected format. A legacy document is recognized only by the
// compound heuristic: meetingDurations is an array of bare numbers AND
// timezone is a non-empty string AND availableDays is a non-empty array. The
// compound check matters because a sparse current-format map may
// legitimately contain only numeric meetingDurations, so duration shape
// alone is ambiguous.
func DecodeUserOverrides(raw json.RawMessage) (types.UserOverridesRecord, error) {
	doc, err := decodeDoc(raw)
	if err != nil {
		return types.UserOverridesRecord{}, err
	}
	if doc == nil {
		return types.UserOverridesRecord{Format: types.FormatAbsent}, nil
	}

	format := types.FormatCurrent
	if isLegacyUserDoc(doc) {
		format = types.FormatLegacy
	}

	var overrides types.UserOverrides
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return types.UserOverridesRecord{}, err
	}
	return types.UserOverridesRecord{Format: format, Overrides: overrides}, nil
}

func isLegacyUserDoc(doc map[string]any) bool {
	durations, ok := doc["meetingDurations"].([]any)
	if !ok || len(durations) == 0 {
		return false
	}
	if _, numeric := durations[0].(float64); !numeric {
		return false
	}
	tz, ok := doc["timezone"].(string)
	if !ok || tz == "" {
		return false
	}
	days, ok := doc["availableDays"].([]any)
	return ok && len(days) > 0
}

func decodeDoc(raw json.RawMessage) (map[string]any, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}
