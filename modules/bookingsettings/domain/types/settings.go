package types

import "encoding/json"

// Setting wraps one org-controlled policy value with the flag that decides
// whether a user may override it. The JSON field names are a persisted
// contract shared with existing stored data; do not rename.
type Setting[T any] struct {
	Value           T    `json:"value"`
	UserCanOverride bool `json:"userCanOverride"`
}

// NewSetting is a convenience constructor for wrapped settings.
func NewSetting[T any](value T, userCanOverride bool) *Setting[T] {
	return &Setting[T]{Value: value, UserCanOverride: userCanOverride}
}

type InviteMode string

const (
	InviteModeAll  InviteMode = "all"
	InviteModeHost InviteMode = "host"
	InviteModeNone InviteMode = "none"
)

// OrgBookingSettings is the current-format org settings document. A nil
// field means the org has expressed no policy for it. The trailing fields
// are org-only and never exposed to user override; the legacy intake trio is
// preserved verbatim for orgs that predate the structured intake config.
type OrgBookingSettings struct {
	Timezone            *Setting[string]       `json:"timezone,omitempty"`
	AvailableDays       *Setting[[]int]        `json:"availableDays,omitempty"`
	AvailableHoursStart *Setting[string]       `json:"availableHoursStart,omitempty"`
	AvailableHoursEnd   *Setting[string]       `json:"availableHoursEnd,omitempty"`
	MeetingDurations    *Setting[DurationList] `json:"meetingDurations,omitempty"`
	BufferMinutes       *Setting[int]          `json:"bufferMinutes,omitempty"`
	MinimumNoticeHours  *Setting[int]          `json:"minimumNoticeHours,omitempty"`
	MaximumAdvanceDays  *Setting[int]          `json:"maximumAdvanceDays,omitempty"`
	DailyBookingLimit   *Setting[int]          `json:"dailyBookingLimit,omitempty"`
	WeeklyBookingLimit  *Setting[int]          `json:"weeklyBookingLimit,omitempty"`
	CalendarInviteMode  *Setting[InviteMode]   `json:"calendarInviteMode,omitempty"`
	SendReminders       *Setting[bool]         `json:"sendReminders,omitempty"`
	ReminderLeadTimes   *Setting[[]int]        `json:"reminderLeadTimes,omitempty"`

	BrandColor   string          `json:"brandColor,omitempty"`
	LogoURL      string          `json:"logoUrl,omitempty"`
	IntakeConfig json.RawMessage `json:"intakeConfig,omitempty"`
	Policies     json.RawMessage `json:"policies,omitempty"`

	IntakeQuestions         json.RawMessage `json:"intakeQuestions,omitempty"`
	ConsentText             *string         `json:"consentText,omitempty"`
	RequireRecordingConsent *bool           `json:"requireRecordingConsent,omitempty"`
}

// LegacyOrgSettings is the pre-override flat org shape, recognized by its
// bare-string timezone. Pointer fields distinguish "stored zero" from
// "never stored".
type LegacyOrgSettings struct {
	Timezone            string       `json:"timezone,omitempty"`
	AvailableDays       []int        `json:"availableDays,omitempty"`
	AvailableHoursStart string       `json:"availableHoursStart,omitempty"`
	AvailableHoursEnd   string       `json:"availableHoursEnd,omitempty"`
	MeetingDurations    DurationList `json:"meetingDurations,omitempty"`
	BufferMinutes       *int         `json:"bufferMinutes,omitempty"`
	MinimumNoticeHours  *int         `json:"minimumNoticeHours,omitempty"`
	MaximumAdvanceDays  *int         `json:"maximumAdvanceDays,omitempty"`
	DailyBookingLimit   *int         `json:"dailyBookingLimit,omitempty"`
	WeeklyBookingLimit  *int         `json:"weeklyBookingLimit,omitempty"`
	CalendarInviteMode  *InviteMode  `json:"calendarInviteMode,omitempty"`
	SendReminders       *bool        `json:"sendReminders,omitempty"`
	ReminderLeadTimes   []int        `json:"reminderLeadTimes,omitempty"`

	BrandColor   string          `json:"brandColor,omitempty"`
	LogoURL      string          `json:"logoUrl,omitempty"`
	IntakeConfig json.RawMessage `json:"intakeConfig,omitempty"`
	Policies     json.RawMessage `json:"policies,omitempty"`

	IntakeQuestions         json.RawMessage `json:"intakeQuestions,omitempty"`
	ConsentText             *string         `json:"consentText,omitempty"`
	RequireRecordingConsent *bool           `json:"requireRecordingConsent,omitempty"`
}

// UserOverrides is the sparse per-user document. A nil (or empty, for
// slices) field means "inherit from organization"; a set field is an
// explicit customization. Bio and AvatarURL are always user-owned profile
// fields, never subject to org policy.
type UserOverrides struct {
	Timezone            *string      `json:"timezone,omitempty"`
	AvailableDays       []int        `json:"availableDays,omitempty"`
	AvailableHoursStart *string      `json:"availableHoursStart,omitempty"`
	AvailableHoursEnd   *string      `json:"availableHoursEnd,omitempty"`
	MeetingDurations    DurationList `json:"meetingDurations,omitempty"`
	BufferMinutes       *int         `json:"bufferMinutes,omitempty"`
	MinimumNoticeHours  *int         `json:"minimumNoticeHours,omitempty"`
	MaximumAdvanceDays  *int         `json:"maximumAdvanceDays,omitempty"`
	DailyBookingLimit   *int         `json:"dailyBookingLimit,omitempty"`
	WeeklyBookingLimit  *int         `json:"weeklyBookingLimit,omitempty"`
	CalendarInviteMode  *InviteMode  `json:"calendarInviteMode,omitempty"`
	SendReminders       *bool        `json:"sendReminders,omitempty"`
	ReminderLeadTimes   []int        `json:"reminderLeadTimes,omitempty"`

	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// SettingsFormat discriminates the storage generations. It is computed once
// at decode time from the structural heuristics (no version field exists in
// stored data) and dispatched on afterwards.
type SettingsFormat string

const (
	FormatAbsent  SettingsFormat = "absent"
	FormatLegacy  SettingsFormat = "legacy"
	FormatCurrent SettingsFormat = "current"
)

// OrgSettingsRecord is a decoded org settings document tagged with its
// detected format. Exactly one of Legacy/Current is non-nil unless the
// record is absent.
type OrgSettingsRecord struct {
	Format  SettingsFormat
	Legacy  *LegacyOrgSettings
	Current *OrgBookingSettings
}

// UserOverridesRecord is a decoded user overrides document tagged with its
// detected format. For legacy records Overrides holds the flat values as
// decoded; migration discards everything but the profile fields.
type UserOverridesRecord struct {
	Format    SettingsFormat
	Overrides UserOverrides
}
