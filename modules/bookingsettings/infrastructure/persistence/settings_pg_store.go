// Package persistence implements the booking-settings storage ports on
// Postgres and decorates them with read-time legacy migration.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bookable-app/bookable/modules/bookingsettings/domain/ports"
)

type pgBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// SettingsPGStore keeps one jsonb document per tenant for org settings and
// one per (tenant, user) for overrides. Documents are stored verbatim;
// format detection happens above this layer.
type SettingsPGStore struct {
	pool pgBeginner
}

func NewSettingsPGStore(pool pgBeginner) *SettingsPGStore {
	return &SettingsPGStore{pool: pool}
}

var overridesRowNamespace = uuid.Must(uuid.Parse("8f1c9a52-74d4-4a70-9a32-6c1b5bfa7a11"))

func deterministicOverridesRowID(tenantID string, userID string) string {
	// Stable row id so concurrent upserts for the same user converge.
	name := fmt.Sprintf("bookingsettings.user_overrides:%s:%s", tenantID, userID)
	return uuid.NewSHA1(overridesRowNamespace, []byte(name)).String()
}

func (s *SettingsPGStore) withTenantTx(ctx context.Context, tenantID string, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if _, err := tx.Exec(ctx, `SELECT set_config('app.current_tenant', $1, true);`, tenantID); err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *SettingsPGStore) GetOrgSettings(ctx context.Context, tenantID string) (json.RawMessage, error) {
	var doc json.RawMessage
	err := s.withTenantTx(ctx, tenantID, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
SELECT doc
FROM bookingsettings.org_settings
WHERE tenant_id = $1
`, tenantID).Scan(&doc)
		if errors.Is(err, pgx.ErrNoRows) {
			doc = nil
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *SettingsPGStore) SaveOrgSettings(ctx context.Context, tenantID string, doc json.RawMessage) error {
	return s.withTenantTx(ctx, tenantID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
INSERT INTO bookingsettings.org_settings (tenant_id, doc, updated_at)
VALUES ($1, $2::jsonb, now())
ON CONFLICT (tenant_id)
DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
`, tenantID, doc)
		return err
	})
}

func (s *SettingsPGStore) GetUserOverrides(ctx context.Context, tenantID string, userID string) (json.RawMessage, error) {
	var doc json.RawMessage
	err := s.withTenantTx(ctx, tenantID, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
SELECT doc
FROM bookingsettings.user_overrides
WHERE tenant_id = $1 AND user_id = $2
`, tenantID, userID).Scan(&doc)
		if errors.Is(err, pgx.ErrNoRows) {
			doc = nil
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *SettingsPGStore) SaveUserOverrides(ctx context.Context, tenantID string, userID string, doc json.RawMessage) error {
	return s.withTenantTx(ctx, tenantID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
INSERT INTO bookingsettings.user_overrides (id, tenant_id, user_id, doc, updated_at)
VALUES ($1::uuid, $2, $3, $4::jsonb, now())
ON CONFLICT (tenant_id, user_id)
DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
`, deterministicOverridesRowID(tenantID, userID), tenantID, userID, doc)
		return err
	})
}

func (s *SettingsPGStore) ListUserOverrides(ctx context.Context, tenantID string) ([]ports.UserOverridesRow, error) {
	var out []ports.UserOverridesRow
	err := s.withTenantTx(ctx, tenantID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
SELECT user_id, doc
FROM bookingsettings.user_overrides
WHERE tenant_id = $1
ORDER BY user_id
`, tenantID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var row ports.UserOverridesRow
			if err := rows.Scan(&row.UserID, &row.Doc); err != nil {
				return err
			}
			out = append(out, row)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
