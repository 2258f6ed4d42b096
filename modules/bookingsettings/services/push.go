package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/bookable-app/bookable/modules/bookingsettings/domain/fieldmeta"
	"github.com/bookable-app/bookable/modules/bookingsettings/domain/ports"
	"github.com/bookable-app/bookable/pkg/httperr"
	"github.com/bookable-app/bookable/pkg/uuidv7"
	"github.com/google/uuid"
)

type PushMode string

const (
	// PushModeRespectOverrides leaves every existing customization standing.
	// Users without a value for a targeted field already inherit the org
	// default at resolve time, so nothing is written at all.
	PushModeRespectOverrides PushMode = "respectOverrides"
	// PushModeForceAll deletes every targeted field from every user's
	// override map regardless of the field's current lock state, so each
	// user reverts to the org default on next resolve.
	PushModeForceAll PushMode = "forceAll"
)

type PushRequest struct {
	Fields []fieldmeta.Key `json:"fields"`
	Mode   PushMode        `json:"mode"`
}

// PushResult reports the per-user outcome of one push. The operation is
// best-effort and at-least-once: a failure partway through leaves earlier
// users updated, and the IDs of users whose write failed are listed so the
// caller can retry them.
type PushResult struct {
	UpdatedCount  int      `json:"updatedCount"`
	SkippedCount  int      `json:"skippedCount"`
	FailedUserIDs []string `json:"failedUserIds,omitempty"`
}

// PushService propagates org defaults down to every user in the tenant.
type PushService struct {
	overrides ports.UserOverridesStore
}

func NewPushService(overrides ports.UserOverridesStore) *PushService {
	return &PushService{overrides: overrides}
}

// PushOrgDefaults applies one push request across all users of the tenant.
// Writes are issued sequentially, one per user; each user's update-or-skip
// decision is made from a single read of that user's override map. There is
// no cross-user atomicity.
func (s *PushService) PushOrgDefaults(ctx context.Context, tenantID string, req PushRequest) (PushResult, error) {
	defs, err := validatePushRequest(req)
	if err != nil {
		return PushResult{}, err
	}

	rows, err := s.overrides.ListUserOverrides(ctx, tenantID)
	if err != nil {
		return PushResult{}, err
	}

	var res PushResult
	for _, row := range rows {
		rec, err := DecodeUserOverrides(row.Doc)
		if err != nil {
			res.FailedUserIDs = append(res.FailedUserIDs, row.UserID)
			continue
		}
		overrides := MigrateUserOverrides(rec).Overrides

		if req.Mode == PushModeRespectOverrides {
			res.SkippedCount++
			continue
		}

		touched := false
		for _, d := range defs {
			if d.UserHas(&overrides) {
				d.ClearUser(&overrides)
				touched = true
			}
		}
		if !touched {
			res.SkippedCount++
			continue
		}

		doc, err := json.Marshal(overrides)
		if err != nil {
			res.FailedUserIDs = append(res.FailedUserIDs, row.UserID)
			continue
		}
		if err := s.overrides.SaveUserOverrides(ctx, tenantID, row.UserID, doc); err != nil {
			res.FailedUserIDs = append(res.FailedUserIDs, row.UserID)
			continue
		}
		res.UpdatedCount++
	}

	log.Printf("bookingsettings: push %s tenant=%s mode=%s fields=%d updated=%d skipped=%d failed=%d",
		pushRequestID(), tenantID, req.Mode, len(defs), res.UpdatedCount, res.SkippedCount, len(res.FailedUserIDs))
	return res, nil
}

// pushRequestID tags one push's log lines. Time-ordered so pushes sort
// chronologically in log search.
func pushRequestID() string {
	id, err := uuidv7.NewString()
	if err != nil {
		return uuid.NewString()
	}
	return id
}

func validatePushRequest(req PushRequest) ([]fieldmeta.Definition, error) {
	if req.Mode != PushModeRespectOverrides && req.Mode != PushModeForceAll {
		return nil, httperr.NewBadRequest(fmt.Sprintf("invalid push mode %q", req.Mode))
	}
	if len(req.Fields) == 0 {
		return nil, httperr.NewBadRequest("at least one field is required")
	}
	defs := make([]fieldmeta.Definition, 0, len(req.Fields))
	seen := make(map[fieldmeta.Key]bool, len(req.Fields))
	for _, key := range req.Fields {
		d, ok := fieldmeta.Lookup(key)
		if !ok {
			return nil, httperr.NewBadRequest(fmt.Sprintf("unknown field %q", key))
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		defs = append(defs, d)
	}
	return defs, nil
}
