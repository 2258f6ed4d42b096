package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/bookable-app/bookable/modules/bookingsettings/domain/fieldmeta"
	"github.com/bookable-app/bookable/modules/bookingsettings/domain/ports"
	"github.com/bookable-app/bookable/pkg/httperr"
)

type overridesStoreStub struct {
	rows     []ports.UserOverridesRow
	saved    map[string]json.RawMessage
	failFor  map[string]error
	listErr  error
	saveCall int
}

func newOverridesStoreStub() *overridesStoreStub {
	return &overridesStoreStub{saved: make(map[string]json.RawMessage), failFor: make(map[string]error)}
}

func (s *overridesStoreStub) GetUserOverrides(_ context.Context, _ string, userID string) (json.RawMessage, error) {
	for _, row := range s.rows {
		if row.UserID == userID {
			return row.Doc, nil
		}
	}
	return nil, nil
}

func (s *overridesStoreStub) SaveUserOverrides(_ context.Context, _ string, userID string, doc json.RawMessage) error {
	s.saveCall++
	if err := s.failFor[userID]; err != nil {
		return err
	}
	s.saved[userID] = doc
	return nil
}

func (s *overridesStoreStub) ListUserOverrides(_ context.Context, _ string) ([]ports.UserOverridesRow, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.rows, nil
}

func TestPushOrgDefaults_ForceAll(t *testing.T) {
	store := newOverridesStoreStub()
	store.rows = []ports.UserOverridesRow{
		{UserID: "u1", Doc: []byte(`{"bufferMinutes":10}`)},
		{UserID: "u2", Doc: []byte(`{"bufferMinutes":20,"timezone":"UTC"}`)},
		{UserID: "u3", Doc: []byte(`{}`)},
	}
	svc := NewPushService(store)

	res, err := svc.PushOrgDefaults(context.Background(), "acme", PushRequest{
		Fields: []fieldmeta.Key{fieldmeta.KeyBufferMinutes},
		Mode:   PushModeForceAll,
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.UpdatedCount != 2 || res.SkippedCount != 1 || len(res.FailedUserIDs) != 0 {
		t.Fatalf("res=%+v", res)
	}

	// Targeted field is gone; untargeted overrides survive.
	for _, userID := range []string{"u1", "u2"} {
		rec, err := DecodeUserOverrides(store.saved[userID])
		if err != nil {
			t.Fatalf("user=%s err=%v", userID, err)
		}
		if rec.Overrides.BufferMinutes != nil {
			t.Fatalf("user=%s bufferMinutes survived", userID)
		}
	}
	rec, err := DecodeUserOverrides(store.saved["u2"])
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rec.Overrides.Timezone == nil || *rec.Overrides.Timezone != "UTC" {
		t.Fatal("untargeted override lost")
	}
	if _, wrote := store.saved["u3"]; wrote {
		t.Fatal("untouched user was written")
	}
}

func TestPushOrgDefaults_RespectOverridesWritesNothing(t *testing.T) {
	store := newOverridesStoreStub()
	store.rows = []ports.UserOverridesRow{
		{UserID: "u1", Doc: []byte(`{"bufferMinutes":10}`)},
		{UserID: "u2", Doc: []byte(`{}`)},
	}
	svc := NewPushService(store)

	res, err := svc.PushOrgDefaults(context.Background(), "acme", PushRequest{
		Fields: []fieldmeta.Key{fieldmeta.KeyBufferMinutes},
		Mode:   PushModeRespectOverrides,
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.UpdatedCount != 0 || res.SkippedCount != 2 {
		t.Fatalf("res=%+v", res)
	}
	if store.saveCall != 0 {
		t.Fatalf("saveCall=%d", store.saveCall)
	}
}

func TestPushOrgDefaults_PartialFailure(t *testing.T) {
	store := newOverridesStoreStub()
	store.rows = []ports.UserOverridesRow{
		{UserID: "u1", Doc: []byte(`{"bufferMinutes":10}`)},
		{UserID: "u2", Doc: []byte(`{"bufferMinutes":20}`)},
		{UserID: "u3", Doc: []byte(`{"bufferMinutes":30}`)},
	}
	store.failFor["u2"] = errors.New("connection reset")
	svc := NewPushService(store)

	res, err := svc.PushOrgDefaults(context.Background(), "acme", PushRequest{
		Fields: []fieldmeta.Key{fieldmeta.KeyBufferMinutes},
		Mode:   PushModeForceAll,
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.UpdatedCount != 2 {
		t.Fatalf("updated=%d", res.UpdatedCount)
	}
	if len(res.FailedUserIDs) != 1 || res.FailedUserIDs[0] != "u2" {
		t.Fatalf("failed=%v", res.FailedUserIDs)
	}
}

func TestPushOrgDefaults_LegacyUserSkipped(t *testing.T) {
	store := newOverridesStoreStub()
	// Legacy doc: migration discards every policy field before the push
	// looks for targeted overrides, so there is nothing to clear.
	store.rows = []ports.UserOverridesRow{
		{UserID: "u1", Doc: []byte(`{"timezone":"UTC","availableDays":[1],"meetingDurations":[30],"bufferMinutes":10}`)},
	}
	svc := NewPushService(store)

	res, err := svc.PushOrgDefaults(context.Background(), "acme", PushRequest{
		Fields: []fieldmeta.Key{fieldmeta.KeyBufferMinutes},
		Mode:   PushModeForceAll,
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.UpdatedCount != 0 || res.SkippedCount != 1 {
		t.Fatalf("res=%+v", res)
	}
}

func TestPushOrgDefaults_Validation(t *testing.T) {
	svc := NewPushService(newOverridesStoreStub())
	ctx := context.Background()

	_, err := svc.PushOrgDefaults(ctx, "acme", PushRequest{Fields: []fieldmeta.Key{fieldmeta.KeyTimezone}, Mode: "replaceAll"})
	if !httperr.IsBadRequest(err) {
		t.Fatalf("err=%v", err)
	}

	_, err = svc.PushOrgDefaults(ctx, "acme", PushRequest{Mode: PushModeForceAll})
	if !httperr.IsBadRequest(err) {
		t.Fatalf("err=%v", err)
	}

	_, err = svc.PushOrgDefaults(ctx, "acme", PushRequest{Fields: []fieldmeta.Key{"brandColor"}, Mode: PushModeForceAll})
	if !httperr.IsBadRequest(err) {
		t.Fatalf("err=%v", err)
	}
}

func TestPushOrgDefaults_ListFailure(t *testing.T) {
	store := newOverridesStoreStub()
	store.listErr = errors.New("down")
	svc := NewPushService(store)

	_, err := svc.PushOrgDefaults(context.Background(), "acme", PushRequest{
		Fields: []fieldmeta.Key{fieldmeta.KeyTimezone},
		Mode:   PushModeForceAll,
	})
	if err == nil || httperr.IsBadRequest(err) {
		t.Fatalf("err=%v", err)
	}
}
