package services

import (
	"github.com/bookable-app/bookable/modules/bookingsettings/domain/fieldmeta"
	"github.com/bookable-app/bookable/modules/bookingsettings/domain/types"
)

// ResolveEffectiveSettings computes the settings object the booking engine
// obeys for one user. Each overridable field is resolved independently by
// the field table's shared precedence rule; org-only fields pass through
// from whichever org shape is present, and profile fields pass through from
// the user with no org influence. Total over absent, legacy, and current
// input shapes.
func ResolveEffectiveSettings(org types.OrgSettingsRecord, overrides types.UserOverrides) types.EffectiveSettings {
	var cur *types.OrgBookingSettings
	var leg *types.LegacyOrgSettings
	switch org.Format {
	case types.FormatCurrent:
		cur = org.Current
	case types.FormatLegacy:
		leg = org.Legacy
	}

	var eff types.EffectiveSettings
	for _, d := range fieldmeta.Definitions() {
		d.Resolve(cur, leg, &overrides, &eff)
	}

	switch {
	case cur != nil:
		eff.IntakeConfig = cur.IntakeConfig
		eff.Policies = cur.Policies
		eff.IntakeQuestions = cur.IntakeQuestions
		if cur.ConsentText != nil {
			eff.ConsentText = *cur.ConsentText
		}
		if cur.RequireRecordingConsent != nil {
			eff.RequireRecordingConsent = *cur.RequireRecordingConsent
		}
	case leg != nil:
		eff.IntakeConfig = leg.IntakeConfig
		eff.Policies = leg.Policies
		eff.IntakeQuestions = leg.IntakeQuestions
		if leg.ConsentText != nil {
			eff.ConsentText = *leg.ConsentText
		}
		if leg.RequireRecordingConsent != nil {
			eff.RequireRecordingConsent = *leg.RequireRecordingConsent
		}
	}

	if overrides.Bio != nil {
		eff.Bio = *overrides.Bio
	}
	if overrides.AvatarURL != nil {
		eff.AvatarURL = *overrides.AvatarURL
	}

	return eff
}
