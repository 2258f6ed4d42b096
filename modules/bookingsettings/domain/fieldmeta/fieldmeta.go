// Package fieldmeta is the single registry of the overridable booking policy
// fields. Every per-field behavior — org policy lookup, override presence,
// override clearing, effective-value resolution — lives in one table entry,
// so adding a field touches exactly one place and every field obeys the same
// precedence rule.
package fieldmeta

import (
	"github.com/bookable-app/bookable/modules/bookingsettings/domain/types"
)

// Key is a persisted overridable field name. The values are a storage
// contract shared with existing data; do not rename.
type Key string

const (
	KeyTimezone            Key = "timezone"
	KeyAvailableDays       Key = "availableDays"
	KeyAvailableHoursStart Key = "availableHoursStart"
	KeyAvailableHoursEnd   Key = "availableHoursEnd"
	KeyMeetingDurations    Key = "meetingDurations"
	KeyBufferMinutes       Key = "bufferMinutes"
	KeyMinimumNoticeHours  Key = "minimumNoticeHours"
	KeyMaximumAdvanceDays  Key = "maximumAdvanceDays"
	KeyDailyBookingLimit   Key = "dailyBookingLimit"
	KeyWeeklyBookingLimit  Key = "weeklyBookingLimit"
	KeyCalendarInviteMode  Key = "calendarInviteMode"
	KeySendReminders       Key = "sendReminders"
	KeyReminderLeadTimes   Key = "reminderLeadTimes"
)

// System fallbacks, used only when the org has no policy for a field and the
// user has not customized it.
const (
	DefaultTimezone           = "America/New_York"
	DefaultHoursStart         = "09:00"
	DefaultHoursEnd           = "17:00"
	DefaultBufferMinutes      = 0
	DefaultMinimumNoticeHours = 0
	DefaultMaximumAdvanceDays = 60
	DefaultDailyBookingLimit  = 0
	DefaultWeeklyBookingLimit = 0
	DefaultSendReminders      = true
)

const DefaultCalendarInviteMode = types.InviteModeAll

// DefaultAvailableDays is Monday through Friday (0 = Sunday).
func DefaultAvailableDays() []int { return []int{1, 2, 3, 4, 5} }

// DefaultReminderLeadTimes is 24 hours and 1 hour before, in minutes.
func DefaultReminderLeadTimes() []int { return []int{1440, 60} }

func DefaultMeetingDurations() types.DurationList {
	return types.DurationList{{Minutes: types.DefaultMeetingMinutes}}
}

// Definition carries every per-field behavior keyed by field name.
type Definition struct {
	Key Key

	// OrgState reports whether the current-format org document carries a
	// policy for the field and whether that policy permits user override.
	OrgState func(*types.OrgBookingSettings) (present bool, canOverride bool)
	// UserHas reports whether the override map carries an explicit
	// customization for the field.
	UserHas func(*types.UserOverrides) bool
	// ClearUser deletes the field's customization from the override map.
	ClearUser func(*types.UserOverrides)
	// Resolve writes the effective value for the field, applying the
	// precedence rule against whichever org shape is present.
	Resolve func(cur *types.OrgBookingSettings, leg *types.LegacyOrgSettings, ov *types.UserOverrides, eff *types.EffectiveSettings)
}

// resolveValue is the one precedence rule every field obeys:
//  1. no org policy: the user's explicit choice wins, else the fallback;
//  2. wrapped org policy: the org value wins unless override is permitted
//     and the user has chosen (a locked field's stored override is dead
//     data, never surfaced);
//  3. bare legacy org value: the pre-migration contract allowed
//     unconditional override, so the user's choice wins, else the org value.
func resolveValue[T any](wrapped *types.Setting[T], bare *T, override *T, fallback T) T {
	if wrapped != nil {
		if !wrapped.UserCanOverride || override == nil {
			return wrapped.Value
		}
		return *override
	}
	if override != nil {
		return *override
	}
	if bare != nil {
		return *bare
	}
	return fallback
}

func def[T any](
	key Key,
	fallback func() T,
	orgGet func(*types.OrgBookingSettings) *types.Setting[T],
	legGet func(*types.LegacyOrgSettings) *T,
	userGet func(*types.UserOverrides) *T,
	userClear func(*types.UserOverrides),
	assign func(*types.EffectiveSettings, T),
) Definition {
	return Definition{
		Key: key,
		OrgState: func(o *types.OrgBookingSettings) (bool, bool) {
			s := orgGet(o)
			if s == nil {
				return false, false
			}
			return true, s.UserCanOverride
		},
		UserHas: func(u *types.UserOverrides) bool {
			return userGet(u) != nil
		},
		ClearUser: userClear,
		Resolve: func(cur *types.OrgBookingSettings, leg *types.LegacyOrgSettings, ov *types.UserOverrides, eff *types.EffectiveSettings) {
			var wrapped *types.Setting[T]
			if cur != nil {
				wrapped = orgGet(cur)
			}
			var bare *T
			if leg != nil {
				bare = legGet(leg)
			}
			var override *T
			if ov != nil {
				override = userGet(ov)
			}
			assign(eff, resolveValue(wrapped, bare, override, fallback()))
		},
	}
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intsOrNil(s []int) *[]int {
	if len(s) == 0 {
		return nil
	}
	return &s
}

func durationsOrNil(d types.DurationList) *types.DurationList {
	if len(d) == 0 {
		return nil
	}
	return &d
}

var definitions = []Definition{
	def(KeyTimezone,
		func() string { return DefaultTimezone },
		func(o *types.OrgBookingSettings) *types.Setting[string] { return o.Timezone },
		func(l *types.LegacyOrgSettings) *string { return strOrNil(l.Timezone) },
		func(u *types.UserOverrides) *string { return u.Timezone },
		func(u *types.UserOverrides) { u.Timezone = nil },
		func(e *types.EffectiveSettings, v string) { e.Timezone = v },
	),
	def(KeyAvailableDays,
		DefaultAvailableDays,
		func(o *types.OrgBookingSettings) *types.Setting[[]int] { return o.AvailableDays },
		func(l *types.LegacyOrgSettings) *[]int { return intsOrNil(l.AvailableDays) },
		func(u *types.UserOverrides) *[]int { return intsOrNil(u.AvailableDays) },
		func(u *types.UserOverrides) { u.AvailableDays = nil },
		func(e *types.EffectiveSettings, v []int) { e.AvailableDays = v },
	),
	def(KeyAvailableHoursStart,
		func() string { return DefaultHoursStart },
		func(o *types.OrgBookingSettings) *types.Setting[string] { return o.AvailableHoursStart },
		func(l *types.LegacyOrgSettings) *string { return strOrNil(l.AvailableHoursStart) },
		func(u *types.UserOverrides) *string { return u.AvailableHoursStart },
		func(u *types.UserOverrides) { u.AvailableHoursStart = nil },
		func(e *types.EffectiveSettings, v string) { e.AvailableHoursStart = v },
	),
	def(KeyAvailableHoursEnd,
		func() string { return DefaultHoursEnd },
		func(o *types.OrgBookingSettings) *types.Setting[string] { return o.AvailableHoursEnd },
		func(l *types.LegacyOrgSettings) *string { return strOrNil(l.AvailableHoursEnd) },
		func(u *types.UserOverrides) *string { return u.AvailableHoursEnd },
		func(u *types.UserOverrides) { u.AvailableHoursEnd = nil },
		func(e *types.EffectiveSettings, v string) { e.AvailableHoursEnd = v },
	),
	def(KeyMeetingDurations,
		DefaultMeetingDurations,
		func(o *types.OrgBookingSettings) *types.Setting[types.DurationList] { return o.MeetingDurations },
		func(l *types.LegacyOrgSettings) *types.DurationList { return durationsOrNil(l.MeetingDurations) },
		func(u *types.UserOverrides) *types.DurationList { return durationsOrNil(u.MeetingDurations) },
		func(u *types.UserOverrides) { u.MeetingDurations = nil },
		func(e *types.EffectiveSettings, v types.DurationList) {
			e.MeetingDurations = types.NormalizeDurations(v)
		},
	),
	def(KeyBufferMinutes,
		func() int { return DefaultBufferMinutes },
		func(o *types.OrgBookingSettings) *types.Setting[int] { return o.BufferMinutes },
		func(l *types.LegacyOrgSettings) *int { return l.BufferMinutes },
		func(u *types.UserOverrides) *int { return u.BufferMinutes },
		func(u *types.UserOverrides) { u.BufferMinutes = nil },
		func(e *types.EffectiveSettings, v int) { e.BufferMinutes = v },
	),
	def(KeyMinimumNoticeHours,
		func() int { return DefaultMinimumNoticeHours },
		func(o *types.OrgBookingSettings) *types.Setting[int] { return o.MinimumNoticeHours },
		func(l *types.LegacyOrgSettings) *int { return l.MinimumNoticeHours },
		func(u *types.UserOverrides) *int { return u.MinimumNoticeHours },
		func(u *types.UserOverrides) { u.MinimumNoticeHours = nil },
		func(e *types.EffectiveSettings, v int) { e.MinimumNoticeHours = v },
	),
	def(KeyMaximumAdvanceDays,
		func() int { return DefaultMaximumAdvanceDays },
		func(o *types.OrgBookingSettings) *types.Setting[int] { return o.MaximumAdvanceDays },
		func(l *types.LegacyOrgSettings) *int { return l.MaximumAdvanceDays },
		func(u *types.UserOverrides) *int { return u.MaximumAdvanceDays },
		func(u *types.UserOverrides) { u.MaximumAdvanceDays = nil },
		func(e *types.EffectiveSettings, v int) { e.MaximumAdvanceDays = v },
	),
	def(KeyDailyBookingLimit,
		func() int { return DefaultDailyBookingLimit },
		func(o *types.OrgBookingSettings) *types.Setting[int] { return o.DailyBookingLimit },
		func(l *types.LegacyOrgSettings) *int { return l.DailyBookingLimit },
		func(u *types.UserOverrides) *int { return u.DailyBookingLimit },
		func(u *types.UserOverrides) { u.DailyBookingLimit = nil },
		func(e *types.EffectiveSettings, v int) { e.DailyBookingLimit = v },
	),
	def(KeyWeeklyBookingLimit,
		func() int { return DefaultWeeklyBookingLimit },
		func(o *types.OrgBookingSettings) *types.Setting[int] { return o.WeeklyBookingLimit },
		func(l *types.LegacyOrgSettings) *int { return l.WeeklyBookingLimit },
		func(u *types.UserOverrides) *int { return u.WeeklyBookingLimit },
		func(u *types.UserOverrides) { u.WeeklyBookingLimit = nil },
		func(e *types.EffectiveSettings, v int) { e.WeeklyBookingLimit = v },
	),
	def(KeyCalendarInviteMode,
		func() types.InviteMode { return DefaultCalendarInviteMode },
		func(o *types.OrgBookingSettings) *types.Setting[types.InviteMode] { return o.CalendarInviteMode },
		func(l *types.LegacyOrgSettings) *types.InviteMode { return l.CalendarInviteMode },
		func(u *types.UserOverrides) *types.InviteMode { return u.CalendarInviteMode },
		func(u *types.UserOverrides) { u.CalendarInviteMode = nil },
		func(e *types.EffectiveSettings, v types.InviteMode) { e.CalendarInviteMode = v },
	),
	def(KeySendReminders,
		func() bool { return DefaultSendReminders },
		func(o *types.OrgBookingSettings) *types.Setting[bool] { return o.SendReminders },
		func(l *types.LegacyOrgSettings) *bool { return l.SendReminders },
		func(u *types.UserOverrides) *bool { return u.SendReminders },
		func(u *types.UserOverrides) { u.SendReminders = nil },
		func(e *types.EffectiveSettings, v bool) { e.SendReminders = v },
	),
	def(KeyReminderLeadTimes,
		DefaultReminderLeadTimes,
		func(o *types.OrgBookingSettings) *types.Setting[[]int] { return o.ReminderLeadTimes },
		func(l *types.LegacyOrgSettings) *[]int { return intsOrNil(l.ReminderLeadTimes) },
		func(u *types.UserOverrides) *[]int { return intsOrNil(u.ReminderLeadTimes) },
		func(u *types.UserOverrides) { u.ReminderLeadTimes = nil },
		func(e *types.EffectiveSettings, v []int) { e.ReminderLeadTimes = v },
	),
}

var definitionByKey = func() map[Key]Definition {
	out := make(map[Key]Definition, len(definitions))
	for _, d := range definitions {
		out[d.Key] = d
	}
	return out
}()

// Definitions returns the field table in declaration order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Keys returns the overridable field names in declaration order.
func Keys() []Key {
	out := make([]Key, 0, len(definitions))
	for _, d := range definitions {
		out = append(out, d.Key)
	}
	return out
}

// Lookup returns the definition for key.
func Lookup(key Key) (Definition, bool) {
	d, ok := definitionByKey[key]
	return d, ok
}
