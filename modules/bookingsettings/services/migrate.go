package services

import (
	"github.com/bookable-app/bookable/modules/bookingsettings/domain/types"
)

// MigrateOrgSettings converts a legacy org record into the current shape.
// Availability identity fields (timezone, days, hours) become overridable;
// durations, buffer, and every booking-policy field become locked —
// pre-migration orgs had no override concept, and the safe default for
// policy is org-controlled. Pass-through-only fields are preserved verbatim.
// Non-legacy records are returned unchanged, so the migration is idempotent.
func MigrateOrgSettings(rec types.OrgSettingsRecord) types.OrgSettingsRecord {
	if rec.Format != types.FormatLegacy || rec.Legacy == nil {
		return rec
	}
	l := rec.Legacy

	cur := &types.OrgBookingSettings{
		BrandColor:              l.BrandColor,
		LogoURL:                 l.LogoURL,
		IntakeConfig:            l.IntakeConfig,
		Policies:                l.Policies,
		IntakeQuestions:         l.IntakeQuestions,
		ConsentText:             l.ConsentText,
		RequireRecordingConsent: l.RequireRecordingConsent,
	}

	if l.Timezone != "" {
		cur.Timezone = types.NewSetting(l.Timezone, true)
	}
	if len(l.AvailableDays) > 0 {
		cur.AvailableDays = types.NewSetting(l.AvailableDays, true)
	}
	if l.AvailableHoursStart != "" {
		cur.AvailableHoursStart = types.NewSetting(l.AvailableHoursStart, true)
	}
	if l.AvailableHoursEnd != "" {
		cur.AvailableHoursEnd = types.NewSetting(l.AvailableHoursEnd, true)
	}
	if len(l.MeetingDurations) > 0 {
		cur.MeetingDurations = types.NewSetting(types.NormalizeDurations(l.MeetingDurations), false)
	}
	if l.BufferMinutes != nil {
		cur.BufferMinutes = types.NewSetting(*l.BufferMinutes, false)
	}
	if l.MinimumNoticeHours != nil {
		cur.MinimumNoticeHours = types.NewSetting(*l.MinimumNoticeHours, false)
	}
	if l.MaximumAdvanceDays != nil {
		cur.MaximumAdvanceDays = types.NewSetting(*l.MaximumAdvanceDays, false)
	}
	if l.DailyBookingLimit != nil {
		cur.DailyBookingLimit = types.NewSetting(*l.DailyBookingLimit, false)
	}
	if l.WeeklyBookingLimit != nil {
		cur.WeeklyBookingLimit = types.NewSetting(*l.WeeklyBookingLimit, false)
	}
	if l.CalendarInviteMode != nil {
		cur.CalendarInviteMode = types.NewSetting(*l.CalendarInviteMode, false)
	}
	if l.SendReminders != nil {
		cur.SendReminders = types.NewSetting(*l.SendReminders, false)
	}
	if len(l.ReminderLeadTimes) > 0 {
		cur.ReminderLeadTimes = types.NewSetting(l.ReminderLeadTimes, false)
	}

	return types.OrgSettingsRecord{Format: types.FormatCurrent, Current: cur}
}

// MigrateUserOverrides converts a legacy user record into the current sparse
// override model. A legacy user held a complete flat copy of every field
// with no way to tell intentional customizations from inherited defaults, so
// the only safe translation is "no overrides, inherit everything": every
// policy field is discarded and only the user-owned profile fields survive.
// Deliberately lossy and one-way. Non-legacy records pass through unchanged.
func MigrateUserOverrides(rec types.UserOverridesRecord) types.UserOverridesRecord {
	if rec.Format != types.FormatLegacy {
		return rec
	}
	return types.UserOverridesRecord{
		Format: types.FormatCurrent,
		Overrides: types.UserOverrides{
			Bio:       rec.Overrides.Bio,
			AvatarURL: rec.Overrides.AvatarURL,
		},
	}
}
