package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := GetUserID(r.Context())
		role, _ := GetUserRole(r.Context())
		w.Header().Set("X-Seen-User", string(role))
		if userID == 100 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		role       string
		wantStatus int
		wantRole   string
	}{
		{name: "missing user", wantStatus: http.StatusUnauthorized},
		{name: "malformed user", userID: "abc", wantStatus: http.StatusUnauthorized},
		{name: "non-positive user", userID: "0", wantStatus: http.StatusUnauthorized},
		{name: "unknown role", userID: "100", role: "ROOT", wantStatus: http.StatusUnauthorized},
		{name: "default role", userID: "100", wantStatus: http.StatusNoContent, wantRole: "CUSTOMER"},
		{name: "role is case-insensitive", userID: "100", role: "staff", wantStatus: http.StatusNoContent, wantRole: "STAFF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/my", nil)
			if tt.userID != "" {
				req.Header.Set(HeaderUserID, tt.userID)
			}
			if tt.role != "" {
				req.Header.Set(HeaderUserRole, tt.role)
			}
			rec := httptest.NewRecorder()

			Auth(echoUser()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRole, rec.Header().Get("X-Seen-User"))
		})
	}
}

func TestRequireRole(t *testing.T) {
	h := Auth(RequireRole(domain.RoleStaff, domain.RoleAdmin, domain.RoleManager)(echoUser()))

	for role, want := range map[string]int{
		"CUSTOMER": http.StatusForbidden,
		"STAFF":    http.StatusNoContent,
		"ADMIN":    http.StatusNoContent,
		"manager":  http.StatusNoContent,
	} {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/1/status", nil)
		req.Header.Set(HeaderUserID, "100")
		req.Header.Set(HeaderUserRole, role)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, role)
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireRole(domain.RoleAdmin)(echoUser()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
