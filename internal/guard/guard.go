// Package guard gates access to authenticated and role-restricted views.
package guard

import (
	"context"
	"net/http"

	"github.com/VigyanSetu/WS-Frontend/internal/session"
	"github.com/VigyanSetu/WS-Frontend/internal/utils"
)

// Redirect targets.
const (
	LoginPath = "/auth/login"
	HomePath  = "/"
)

type Kind int

const (
	// Loading: session resolution is pending, render a placeholder.
	Loading Kind = iota
	// Redirect: send the visitor to Decision.Target.
	Redirect
	// Allow: render the protected content.
	Allow
)

// Decision is the outcome of evaluating a session against a view's
// required roles.
type Decision struct {
	Kind   Kind
	Target string
}

// Evaluate is a pure function of (session state, required roles). While
// the session is still resolving it always yields Loading, regardless of
// the authentication flag. Unauthenticated visitors are sent to login;
// authenticated visitors missing a required role are sent home.
func Evaluate(state session.State, requiredRoles []string) Decision {
	if state.IsLoading {
		return Decision{Kind: Loading}
	}
	if !state.IsAuthenticated {
		return Decision{Kind: Redirect, Target: LoginPath}
	}
	if len(requiredRoles) == 0 {
		return Decision{Kind: Allow}
	}

	if state.User != nil {
		for _, role := range requiredRoles {
			if state.User.Role == role {
				return Decision{Kind: Allow}
			}
		}
	}
	return Decision{Kind: Redirect, Target: HomePath}
}

// SessionSource provides the current session state without any transport
// or storage dependency.
type SessionSource interface {
	Snapshot() session.State
}

// Require wraps a handler with the guard. Allowed requests carry the
// session user in their context.
func Require(source SessionSource, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := source.Snapshot()

			switch decision := Evaluate(state, roles); decision.Kind {
			case Loading:
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("Loading..."))
			case Redirect:
				http.Redirect(w, r, decision.Target, http.StatusSeeOther)
			case Allow:
				ctx := context.WithValue(r.Context(), utils.ContextUserKey, state.User)
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}
