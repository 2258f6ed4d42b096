package server

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bookable-app/bookable/pkg/authz"
)

func loadAuthorizer() (*authz.Authorizer, error) {
	modelPath := os.Getenv("AUTHZ_MODEL_PATH")
	if modelPath == "" {
		p, err := defaultAuthzPath("config/access/model.conf")
		if err != nil {
			return nil, err
		}
		modelPath = p
	}

	policyPath := os.Getenv("AUTHZ_POLICY_PATH")
	if policyPath == "" {
		p, err := defaultAuthzPath("config/access/policy.csv")
		if err != nil {
			return nil, err
		}
		policyPath = p
	}

	mode, err := authz.ModeFromEnv()
	if err != nil {
		return nil, err
	}

	return authz.NewAuthorizer(modelPath, policyPath, mode)
}

func defaultAuthzPath(path string) (string, error) {
	for range 8 {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		path = filepath.Join("..", path)
	}
	return "", errors.New("server: authz config not found")
}

type authorizer interface {
	Authorize(subject string, domain string, object string, action string) (allowed bool, enforced bool, err error)
}

// roleHeader is set by the auth proxy in front of this service; session and
// magic-link mechanics live there, not here.
const roleHeader = "X-Auth-Role"

// withAuthz enforces role-by-route policy on the settings API. Health
// endpoints bypass it.
func withAuthz(a authorizer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/health" || path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}

		tenant, ok := currentTenant(r.Context())
		if !ok {
			writeAPIError(w, http.StatusInternalServerError, "tenant_missing", "tenant missing")
			return
		}

		subject := authz.SubjectFromRoleSlug(r.Header.Get(roleHeader))
		domain := authz.DomainFromTenantID(tenant.ID)
		object, action := classifyRoute(r.Method, path)

		allowed, enforced, err := a.Authorize(subject, domain, object, action)
		if err != nil {
			writeAPIError(w, http.StatusInternalServerError, "authz_error", "authz error")
			return
		}
		if !allowed {
			log.Printf("server: authz deny subject=%s domain=%s object=%s action=%s enforced=%v", subject, domain, object, action, enforced)
			if enforced {
				writeAPIError(w, http.StatusForbidden, "forbidden", "forbidden")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func classifyRoute(method string, path string) (object string, action string) {
	object = authz.ObjectOrgSettings
	if strings.HasPrefix(path, "/settings/api/users/") {
		object = authz.ObjectUserOverrides
	}

	switch {
	case strings.HasSuffix(path, "/push"):
		action = authz.ActionPush
	case method == http.MethodGet:
		action = authz.ActionRead
	default:
		action = authz.ActionWrite
	}
	return object, action
}
