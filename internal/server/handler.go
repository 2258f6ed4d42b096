package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookable-app/bookable/modules/bookingsettings/domain/ports"
	"github.com/bookable-app/bookable/modules/bookingsettings/infrastructure/persistence"
	"github.com/bookable-app/bookable/modules/bookingsettings/services"
)

func NewHandler() (http.Handler, error) {
	return NewHandlerWithOptions(HandlerOptions{})
}

type HandlerOptions struct {
	Tenants    map[string]Tenant
	Store      SettingsStore
	Overrides  ports.UserOverridesStore
	Authorizer authorizer
}

func NewHandlerWithOptions(opts HandlerOptions) (http.Handler, error) {
	tenants := opts.Tenants
	if tenants == nil {
		t, err := loadTenants()
		if err != nil {
			return nil, err
		}
		tenants = t
	}

	auth := opts.Authorizer
	if auth == nil {
		a, err := loadAuthorizer()
		if err != nil {
			return nil, err
		}
		auth = a
	}

	store := opts.Store
	overrides := opts.Overrides
	if store == nil {
		pool, err := pgxpool.New(context.Background(), dbDSNFromEnv())
		if err != nil {
			return nil, err
		}
		pg := persistence.NewSettingsPGStore(pool)
		store = persistence.NewMigratingSettingsStore(pg, pg)
		if overrides == nil {
			overrides = pg
		}
	}
	if overrides == nil {
		// Tests that inject only a SettingsStore still need the raw port for
		// push; fall back to an isolated in-memory document store.
		overrides = newSettingsMemoryStore()
	}

	push := services.NewPushService(overrides)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /settings/api/org", func(w http.ResponseWriter, r *http.Request) {
		handleOrgSettingsGetAPI(w, r, store)
	})
	mux.HandleFunc("PUT /settings/api/org", func(w http.ResponseWriter, r *http.Request) {
		handleOrgSettingsPutAPI(w, r, store)
	})
	mux.HandleFunc("GET /settings/api/org/defaults", func(w http.ResponseWriter, r *http.Request) {
		handleOrgDefaultsAPI(w, r, store)
	})
	mux.HandleFunc("GET /settings/api/org/fields", func(w http.ResponseWriter, r *http.Request) {
		handleOrgFieldsAPI(w, r, store)
	})
	mux.HandleFunc("POST /settings/api/org/push", func(w http.ResponseWriter, r *http.Request) {
		handleOrgPushAPI(w, r, push)
	})

	mux.HandleFunc("GET /settings/api/users/{user_id}/overrides", func(w http.ResponseWriter, r *http.Request) {
		handleUserOverridesGetAPI(w, r, store)
	})
	mux.HandleFunc("PUT /settings/api/users/{user_id}/overrides", func(w http.ResponseWriter, r *http.Request) {
		handleUserOverridesPutAPI(w, r, store)
	})
	mux.HandleFunc("DELETE /settings/api/users/{user_id}/overrides", func(w http.ResponseWriter, r *http.Request) {
		handleUserOverridesDeleteAPI(w, r, store)
	})
	mux.HandleFunc("GET /settings/api/users/{user_id}/effective", func(w http.ResponseWriter, r *http.Request) {
		handleUserEffectiveAPI(w, r, store)
	})

	return withTenancy(tenants, withAuthz(auth, mux)), nil
}
