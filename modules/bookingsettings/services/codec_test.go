package services

import (
	"testing"

	"github.com/bookable-app/bookable/modules/bookingsettings/domain/types"
)

func TestDecodeOrgSettings_Absent(t *testing.T) {
	for _, raw := range []string{"", "null"} {
		rec, err := DecodeOrgSettings([]byte(raw))
		if err != nil {
			t.Fatalf("raw=%q err=%v", raw, err)
		}
		if rec.Format != types.FormatAbsent {
			t.Fatalf("raw=%q format=%q", raw, rec.Format)
		}
	}
}

func TestDecodeOrgSettings_Legacy(t *testing.T) {
	raw := []byte(`{"timezone":"UTC","availableDays":[1,2],"meetingDurations":[30,60],"bufferMinutes":10}`)
	rec, err := DecodeOrgSettings(raw)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rec.Format != types.FormatLegacy || rec.Legacy == nil || rec.Current != nil {
		t.Fatalf("rec=%+v", rec)
	}
	if rec.Legacy.Timezone != "UTC" {
		t.Fatalf("timezone=%q", rec.Legacy.Timezone)
	}
	if len(rec.Legacy.MeetingDurations) != 2 || rec.Legacy.MeetingDurations[1].Minutes != 60 {
		t.Fatalf("durations=%+v", rec.Legacy.MeetingDurations)
	}
	if rec.Legacy.BufferMinutes == nil || *rec.Legacy.BufferMinutes != 10 {
		t.Fatalf("bufferMinutes=%v", rec.Legacy.BufferMinutes)
	}
}

func TestDecodeOrgSettings_Current(t *testing.T) {
	raw := []byte(`{"timezone":{"value":"UTC","userCanOverride":true},"bufferMinutes":{"value":15,"userCanOverride":false}}`)
	rec, err := DecodeOrgSettings(raw)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rec.Format != types.FormatCurrent || rec.Current == nil || rec.Legacy != nil {
		t.Fatalf("rec=%+v", rec)
	}
	if rec.Current.Timezone == nil || rec.Current.Timezone.Value != "UTC" || !rec.Current.Timezone.UserCanOverride {
		t.Fatalf("timezone=%+v", rec.Current.Timezone)
	}
}

func TestDecodeOrgSettings_EmptyObjectIsCurrent(t *testing.T) {
	rec, err := DecodeOrgSettings([]byte(`{}`))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rec.Format != types.FormatCurrent {
		t.Fatalf("format=%q", rec.Format)
	}
}

func TestDecodeOrgSettings_Invalid(t *testing.T) {
	if _, err := DecodeOrgSettings([]byte(`[1,2]`)); err == nil {
		t.Fatal("expected error")
	}
}

func TestDecodeUserOverrides_Legacy(t *testing.T) {
	raw := []byte(`{"timezone":"UTC","availableDays":[1,2,3],"meetingDurations":[30,60],"bio":"hello"}`)
	rec, err := DecodeUserOverrides(raw)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rec.Format != types.FormatLegacy {
		t.Fatalf("format=%q", rec.Format)
	}
	if rec.Overrides.Bio == nil || *rec.Overrides.Bio != "hello" {
		t.Fatalf("bio=%v", rec.Overrides.Bio)
	}
}

// A sparse current map holding only numeric durations must not be mistaken
// for a legacy document.
func TestDecodeUserOverrides_NumericDurationsAlone(t *testing.T) {
	rec, err := DecodeUserOverrides([]byte(`{"meetingDurations":[30,60]}`))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rec.Format != types.FormatCurrent {
		t.Fatalf("format=%q", rec.Format)
	}
	if len(rec.Overrides.MeetingDurations) != 2 || rec.Overrides.MeetingDurations[0].Minutes != 30 {
		t.Fatalf("durations=%+v", rec.Overrides.MeetingDurations)
	}
}

func TestDecodeUserOverrides_DetailedDurationsAreCurrent(t *testing.T) {
	raw := []byte(`{"timezone":"UTC","availableDays":[1],"meetingDurations":[{"minutes":30}]}`)
	rec, err := DecodeUserOverrides(raw)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rec.Format != types.FormatCurrent {
		t.Fatalf("format=%q", rec.Format)
	}
}

func TestDecodeUserOverrides_MissingTimezoneIsCurrent(t *testing.T) {
	raw := []byte(`{"availableDays":[1],"meetingDurations":[30]}`)
	rec, err := DecodeUserOverrides(raw)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rec.Format != types.FormatCurrent {
		t.Fatalf("format=%q", rec.Format)
	}
}

func TestDecodeUserOverrides_Absent(t *testing.T) {
	rec, err := DecodeUserOverrides(nil)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rec.Format != types.FormatAbsent {
		t.Fatalf("format=%q", rec.Format)
	}
}
