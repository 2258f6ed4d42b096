package services

import (
	"github.com/bookable-app/bookable/modules/bookingsettings/domain/fieldmeta"
	"github.com/bookable-app/bookable/modules/bookingsettings/domain/types"
)

// OverridableKeys reports which fields a user may currently override. A
// field is overridable when the org explicitly permits it, when the org has
// no policy for it at all (default-open), or when the org record is still in
// the legacy shape (the pre-migration contract allowed unconditional
// override). Only a current-format field with userCanOverride=false is
// excluded.
func OverridableKeys(org types.OrgSettingsRecord) []fieldmeta.Key {
	out := make([]fieldmeta.Key, 0, len(fieldmeta.Keys()))
	for _, d := range fieldmeta.Definitions() {
		if keyOverridable(org, d) {
			out = append(out, d.Key)
		}
	}
	return out
}

// LockedKeys is the exact complement of OverridableKeys restricted to
// current-format locked fields; legacy and absent fields are never locked.
func LockedKeys(org types.OrgSettingsRecord) []fieldmeta.Key {
	var out []fieldmeta.Key
	if org.Format != types.FormatCurrent || org.Current == nil {
		return out
	}
	for _, d := range fieldmeta.Definitions() {
		if present, canOverride := d.OrgState(org.Current); present && !canOverride {
			out = append(out, d.Key)
		}
	}
	return out
}

func keyOverridable(org types.OrgSettingsRecord, d fieldmeta.Definition) bool {
	if org.Format != types.FormatCurrent || org.Current == nil {
		return true
	}
	present, canOverride := d.OrgState(org.Current)
	return !present || canOverride
}

// InvalidOverrides returns the override keys the user has set that org
// policy no longer permits — stale customizations left behind after an
// admin tightened a permission.
func InvalidOverrides(org types.OrgSettingsRecord, overrides types.UserOverrides) []fieldmeta.Key {
	var out []fieldmeta.Key
	for _, d := range fieldmeta.Definitions() {
		if d.UserHas(&overrides) && !keyOverridable(org, d) {
			out = append(out, d.Key)
		}
	}
	return out
}

// StripInvalidOverrides deletes exactly the stale override keys and returns
// the cleaned map along with what was removed. Idempotent; the user-owned
// profile fields are never touched.
func StripInvalidOverrides(org types.OrgSettingsRecord, overrides types.UserOverrides) (types.UserOverrides, []fieldmeta.Key) {
	removed := InvalidOverrides(org, overrides)
	for _, key := range removed {
		d, ok := fieldmeta.Lookup(key)
		if !ok {
			continue
		}
		d.ClearUser(&overrides)
	}
	return overrides, removed
}

// OrgDefaults extracts the org's bare value for every overridable field,
// unwrapping the permission wrapper and normalizing durations, regardless of
// lock state — the UI shows "what the org has set" even for locked fields.
// An entirely absent org yields the hard-coded system defaults. Resolving
// with an empty override map is exactly that extraction.
func OrgDefaults(org types.OrgSettingsRecord) types.EffectiveSettings {
	return ResolveEffectiveSettings(org, types.UserOverrides{})
}

// HasOverrides reports whether any policy field is customized. Profile
// fields do not count; they are not overrides of anything.
func HasOverrides(overrides types.UserOverrides) bool {
	for _, d := range fieldmeta.Definitions() {
		if d.UserHas(&overrides) {
			return true
		}
	}
	return false
}
