package types

import "encoding/json"

// EffectiveSettings is the fully resolved settings object consumed by the
// booking page and the availability engine. It is never persisted; it is
// recomputed from (org settings, user overrides) on every read.
type EffectiveSettings struct {
	Timezone            string       `json:"timezone"`
	AvailableDays       []int        `json:"availableDays"`
	AvailableHoursStart string       `json:"availableHoursStart"`
	AvailableHoursEnd   string       `json:"availableHoursEnd"`
	MeetingDurations    DurationList `json:"meetingDurations"`
	BufferMinutes       int          `json:"bufferMinutes"`
	MinimumNoticeHours  int          `json:"minimumNoticeHours"`
	MaximumAdvanceDays  int          `json:"maximumAdvanceDays"`
	DailyBookingLimit   int          `json:"dailyBookingLimit"`
	WeeklyBookingLimit  int          `json:"weeklyBookingLimit"`
	CalendarInviteMode  InviteMode   `json:"calendarInviteMode"`
	SendReminders       bool         `json:"sendReminders"`
	ReminderLeadTimes   []int        `json:"reminderLeadTimes"`

	IntakeConfig            json.RawMessage `json:"intakeConfig,omitempty"`
	Policies                json.RawMessage `json:"policies,omitempty"`
	IntakeQuestions         json.RawMessage `json:"intakeQuestions,omitempty"`
	ConsentText             string          `json:"consentText,omitempty"`
	RequireRecordingConsent bool            `json:"requireRecordingConsent,omitempty"`

	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
