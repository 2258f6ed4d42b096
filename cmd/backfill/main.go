// Command backfill migrates every stored settings document to the current
// format in one pass, instead of waiting for read-time migration to touch
// each record. Safe to re-run: migration is idempotent and current-format
// documents are left untouched.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"github.com/bookable-app/bookable/modules/bookingsettings/domain/types"
	"github.com/bookable-app/bookable/modules/bookingsettings/infrastructure/persistence"
	"github.com/bookable-app/bookable/modules/bookingsettings/services"
)

type tenantsFile struct {
	Version int `yaml:"version"`
	Tenants []struct {
		ID string `yaml:"id"`
	} `yaml:"tenants"`
}

func tenantIDs(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tf tenantsFile
	if err := yaml.Unmarshal(b, &tf); err != nil {
		return nil, err
	}
	if tf.Version != 1 {
		return nil, errors.New("backfill: unsupported tenants file version")
	}
	ids := make([]string, 0, len(tf.Tenants))
	for _, t := range tf.Tenants {
		if t.ID == "" {
			return nil, errors.New("backfill: tenant without id")
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func main() {
	tenantsPath := flag.String("tenants", "config/tenants.yaml", "tenant registry file")
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "postgres dsn")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("backfill: DATABASE_URL or -dsn required")
	}

	ids, err := tenantIDs(*tenantsPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, *dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	pg := persistence.NewSettingsPGStore(pool)

	var orgsMigrated, usersMigrated, failures int
	for _, tenantID := range ids {
		n, err := backfillOrg(ctx, pg, tenantID)
		if err != nil {
			log.Printf("backfill: org settings tenant=%s: %v", tenantID, err)
			failures++
		} else {
			orgsMigrated += n
		}

		n, errs := backfillUsers(ctx, pg, tenantID)
		usersMigrated += n
		failures += errs
	}

	log.Printf("backfill: done tenants=%d orgs_migrated=%d users_migrated=%d failures=%d",
		len(ids), orgsMigrated, usersMigrated, failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func backfillOrg(ctx context.Context, pg *persistence.SettingsPGStore, tenantID string) (int, error) {
	raw, err := pg.GetOrgSettings(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	rec, err := services.DecodeOrgSettings(raw)
	if err != nil {
		return 0, err
	}
	if rec.Format != types.FormatLegacy {
		return 0, nil
	}

	doc, err := json.Marshal(services.MigrateOrgSettings(rec).Current)
	if err != nil {
		return 0, err
	}
	if err := pg.SaveOrgSettings(ctx, tenantID, doc); err != nil {
		return 0, err
	}
	return 1, nil
}

func backfillUsers(ctx context.Context, pg *persistence.SettingsPGStore, tenantID string) (migrated int, failures int) {
	rows, err := pg.ListUserOverrides(ctx, tenantID)
	if err != nil {
		log.Printf("backfill: list user overrides tenant=%s: %v", tenantID, err)
		return 0, 1
	}

	for _, row := range rows {
		rec, err := services.DecodeUserOverrides(row.Doc)
		if err != nil {
			log.Printf("backfill: decode overrides tenant=%s user=%s: %v", tenantID, row.UserID, err)
			failures++
			continue
		}
		if rec.Format != types.FormatLegacy {
			continue
		}

		doc, err := json.Marshal(services.MigrateUserOverrides(rec).Overrides)
		if err != nil {
			log.Printf("backfill: encode overrides tenant=%s user=%s: %v", tenantID, row.UserID, err)
			failures++
			continue
		}
		if err := pg.SaveUserOverrides(ctx, tenantID, row.UserID, doc); err != nil {
			log.Printf("backfill: save overrides tenant=%s user=%s: %v", tenantID, row.UserID, err)
			failures++
			continue
		}
		migrated++
	}
	return migrated, failures
}
