package services

import (
	"encoding/json"
	"testing"

	"github.com/bookable-app/bookable/modules/bookingsettings/domain/types"
)

func TestMigrateOrgSettings_Legacy(t *testing.T) {
	buffer := 10
	reminders := false
	consent := "recorded for quality"
	rec, err := DecodeOrgSettings(mustJSON(t, types.LegacyOrgSettings{
		Timezone:            "UTC",
		AvailableDays:       []int{1, 2, 3},
		AvailableHoursStart: "08:00",
		AvailableHoursEnd:   "16:00",
		MeetingDurations:    types.DurationList{{Minutes: 30}, {Minutes: 60}},
		BufferMinutes:       &buffer,
		SendReminders:       &reminders,
		BrandColor:          "#336699",
		IntakeConfig:        json.RawMessage(`{"fields":[]}`),
		ConsentText:         &consent,
	}))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rec.Format != types.FormatLegacy {
		t.Fatalf("format=%q", rec.Format)
	}

	migrated := MigrateOrgSettings(rec)
	if migrated.Format != types.FormatCurrent || migrated.Current == nil {
		t.Fatalf("migrated=%+v", migrated)
	}
	cur := migrated.Current

	// Availability identity fields become overridable.
	if cur.Timezone == nil || cur.Timezone.Value != "UTC" || !cur.Timezone.UserCanOverride {
		t.Fatalf("timezone=%+v", cur.Timezone)
	}
	if cur.AvailableDays == nil || !cur.AvailableDays.UserCanOverride {
		t.Fatalf("availableDays=%+v", cur.AvailableDays)
	}
	if cur.AvailableHoursStart == nil || cur.AvailableHoursStart.Value != "08:00" || !cur.AvailableHoursStart.UserCanOverride {
		t.Fatalf("availableHoursStart=%+v", cur.AvailableHoursStart)
	}

	// Policy fields become locked.
	if cur.MeetingDurations == nil || cur.MeetingDurations.UserCanOverride {
		t.Fatalf("meetingDurations=%+v", cur.MeetingDurations)
	}
	if cur.BufferMinutes == nil || cur.BufferMinutes.Value != 10 || cur.BufferMinutes.UserCanOverride {
		t.Fatalf("bufferMinutes=%+v", cur.BufferMinutes)
	}
	if cur.SendReminders == nil || cur.SendReminders.Value || cur.SendReminders.UserCanOverride {
		t.Fatalf("sendReminders=%+v", cur.SendReminders)
	}

	// Never-stored fields stay absent.
	if cur.MinimumNoticeHours != nil || cur.CalendarInviteMode != nil {
		t.Fatalf("unexpected policy: notice=%+v invite=%+v", cur.MinimumNoticeHours, cur.CalendarInviteMode)
	}

	// Pass-through fields survive verbatim.
	if cur.BrandColor != "#336699" || string(cur.IntakeConfig) != `{"fields":[]}` {
		t.Fatalf("brandColor=%q intakeConfig=%s", cur.BrandColor, cur.IntakeConfig)
	}
	if cur.ConsentText == nil || *cur.ConsentText != consent {
		t.Fatalf("consentText=%v", cur.ConsentText)
	}
}

func TestMigrateOrgSettings_StoredZeroIsPreserved(t *testing.T) {
	rec, err := DecodeOrgSettings([]byte(`{"timezone":"UTC","bufferMinutes":0}`))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	cur := MigrateOrgSettings(rec).Current
	if cur.BufferMinutes == nil || cur.BufferMinutes.Value != 0 {
		t.Fatalf("bufferMinutes=%+v", cur.BufferMinutes)
	}
}

func TestMigrateOrgSettings_Idempotent(t *testing.T) {
	rec, err := DecodeOrgSettings([]byte(`{"timezone":"UTC","meetingDurations":[30]}`))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	once := MigrateOrgSettings(rec)
	twice := MigrateOrgSettings(once)
	if twice.Format != types.FormatCurrent || twice.Current != once.Current {
		t.Fatalf("twice=%+v", twice)
	}
}

func TestMigrateOrgSettings_AbsentUnchanged(t *testing.T) {
	rec := types.OrgSettingsRecord{Format: types.FormatAbsent}
	if got := MigrateOrgSettings(rec); got.Format != types.FormatAbsent {
		t.Fatalf("got=%+v", got)
	}
}

func TestMigrateUserOverrides_LossyByDesign(t *testing.T) {
	bio := "coach"
	avatar := "https://cdn.example.com/a.png"
	raw := mustJSON(t, map[string]any{
		"timezone":         "UTC",
		"availableDays":    []int{1, 2},
		"meetingDurations": []int{30, 60},
		"bufferMinutes":    5,
		"bio":              bio,
		"avatarUrl":        avatar,
	})
	rec, err := DecodeUserOverrides(raw)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rec.Format != types.FormatLegacy {
		t.Fatalf("format=%q", rec.Format)
	}

	migrated := MigrateUserOverrides(rec)
	if migrated.Format != types.FormatCurrent {
		t.Fatalf("format=%q", migrated.Format)
	}
	ov := migrated.Overrides
	if ov.Timezone != nil || ov.AvailableDays != nil || ov.MeetingDurations != nil || ov.BufferMinutes != nil {
		t.Fatalf("policy fields survived: %+v", ov)
	}
	if ov.Bio == nil || *ov.Bio != bio || ov.AvatarURL == nil || *ov.AvatarURL != avatar {
		t.Fatalf("profile lost: bio=%v avatar=%v", ov.Bio, ov.AvatarURL)
	}
}

func TestMigrateUserOverrides_CurrentUnchanged(t *testing.T) {
	tz := "UTC"
	rec := types.UserOverridesRecord{Format: types.FormatCurrent, Overrides: types.UserOverrides{Timezone: &tz}}
	got := MigrateUserOverrides(rec)
	if got.Overrides.Timezone == nil || *got.Overrides.Timezone != "UTC" {
		t.Fatalf("got=%+v", got)
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
