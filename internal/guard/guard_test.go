package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/VigyanSetu/WS-Frontend/internal/guard"
	"github.com/VigyanSetu/WS-Frontend/internal/models"
	"github.com/VigyanSetu/WS-Frontend/internal/session"
	"github.com/VigyanSetu/WS-Frontend/internal/utils"
)

func user(role string) *models.User {
	return &models.User{ID: "u-1", Name: "Test", Role: role}
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name  string
		state session.State
		roles []string
		want  guard.Kind
		to    string
	}{
		{
			name:  "loading wins regardless of authentication",
			state: session.State{IsLoading: true, IsAuthenticated: true, User: user("admin")},
			roles: []string{"admin"},
			want:  guard.Loading,
		},
		{
			name:  "unauthenticated always redirects to login",
			state: session.State{},
			want:  guard.Redirect,
			to:    guard.LoginPath,
		},
		{
			name:  "authenticated with no role requirement renders",
			state: session.State{IsAuthenticated: true, User: user("user")},
			want:  guard.Allow,
		},
		{
			name:  "missing role redirects home",
			state: session.State{IsAuthenticated: true, User: user("user")},
			roles: []string{"admin"},
			want:  guard.Redirect,
			to:    guard.HomePath,
		},
		{
			name:  "matching role renders",
			state: session.State{IsAuthenticated: true, User: user("organizer")},
			roles: []string{"admin", "organizer"},
			want:  guard.Allow,
		},
		{
			name:  "authenticated but nil user cannot satisfy a role",
			state: session.State{IsAuthenticated: true},
			roles: []string{"admin"},
			want:  guard.Redirect,
			to:    guard.HomePath,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := guard.Evaluate(tc.state, tc.roles)
			if got.Kind != tc.want {
				t.Fatalf("kind = %v, want %v", got.Kind, tc.want)
			}
			if tc.want == guard.Redirect && got.Target != tc.to {
				t.Errorf("target = %q, want %q", got.Target, tc.to)
			}
		})
	}
}

// stubSource implements guard.SessionSource with a fixed state.
type stubSource struct {
	state session.State
}

func (s stubSource) Snapshot() session.State { return s.state }

// callGuarded wraps an inner 200-OK handler in Require and returns the
// recorded response.
func callGuarded(t *testing.T, state session.State, roles ...string) *httptest.ResponseRecorder {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := guard.Require(stubSource{state: state}, roles...)(inner)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequire_LoadingRendersPlaceholder(t *testing.T) {
	rec := callGuarded(t, session.State{IsLoading: true})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("code = %d, want 503", rec.Code)
	}
}

func TestRequire_UnauthenticatedRedirectsToLogin(t *testing.T) {
	rec := callGuarded(t, session.State{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("code = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != guard.LoginPath {
		t.Errorf("redirect = %q, want %q", loc, guard.LoginPath)
	}
}

func TestRequire_UnderPrivilegedRedirectsHome(t *testing.T) {
	state := session.State{IsAuthenticated: true, User: user("user")}
	rec := callGuarded(t, state, "admin")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("code = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != guard.HomePath {
		t.Errorf("redirect = %q, want %q", loc, guard.HomePath)
	}
}

// TestRequire_AllowedInjectsUser verifies the session user reaches the
// protected handler's context.
func TestRequire_AllowedInjectsUser(t *testing.T) {
	state := session.State{IsAuthenticated: true, User: user("admin")}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := utils.GetUserFromContext(r.Context())
		if !ok || got.ID != "u-1" {
			http.Error(w, "user missing from context", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	handler := guard.Require(stubSource{state: state}, "admin")(inner)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("code = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
}
