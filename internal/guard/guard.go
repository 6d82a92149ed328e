// Package guard implements the navigation predicates evaluated before a
// route is entered. Guards never fail: they resolve to an allow or to a
// redirect target, always from one session snapshot taken at check time.
package guard

import (
	"net/url"
	"strings"

	"moviecat/pkg/domain"
)

// Well-known routes guards redirect to.
const (
	LoginRoute   = "/login"
	HomeRoute    = "/home"
	DefaultRoute = "/"
)

// Session is the read-only view of the session cell guards consult.
type Session interface {
	Current() (domain.User, bool)
	IsAuthenticated() bool
	IsAdmin() bool
}

// Redirect is where a denied navigation is sent.
type Redirect struct {
	Path   string
	Params url.Values
}

// URL renders the redirect as path?query.
func (r Redirect) URL() string {
	if len(r.Params) == 0 {
		return r.Path
	}
	return r.Path + "?" + r.Params.Encode()
}

// Decision is the outcome of one guard check.
type Decision struct {
	Allowed  bool
	Redirect *Redirect
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(path string, params url.Values) Decision {
	return Decision{Redirect: &Redirect{Path: path, Params: params}}
}

// Guard checks whether navigation to the attempted path may proceed.
type Guard func(sess Session, attempted string) Decision

// Auth allows authenticated sessions; anonymous navigation is redirected to
// login carrying the attempted path as returnUrl.
func Auth() Guard {
	return func(sess Session, attempted string) Decision {
		if sess.IsAuthenticated() {
			return allow()
		}
		return deny(LoginRoute, url.Values{
			"returnUrl": {attempted},
			"reason":    {"authentication-required"},
		})
	}
}

// Admin allows admin sessions. Authenticated non-admins land on the default
// route with an access-denied indicator, never on login; anonymous users go
// to login with the attempted path preserved.
func Admin() Guard {
	return func(sess Session, attempted string) Decision {
		if sess.IsAuthenticated() && sess.IsAdmin() {
			return allow()
		}
		if sess.IsAuthenticated() {
			return deny(DefaultRoute, url.Values{
				"error":   {"access-denied"},
				"message": {"Administrator privileges are required"},
			})
		}
		return deny(LoginRoute, url.Values{
			"returnUrl": {attempted},
			"reason":    {"admin-access-required"},
		})
	}
}

// Guest allows only anonymous sessions; signed-in users are sent home.
func Guest() Guard {
	return func(sess Session, _ string) Decision {
		if !sess.IsAuthenticated() {
			return allow()
		}
		return deny(HomeRoute, nil)
	}
}

// Role builds a guard from a set of allowed roles, the generalized form of
// Admin: authentication is checked first, role membership second.
func Role(allowed ...domain.UserRole) Guard {
	return func(sess Session, _ string) Decision {
		user, ok := sess.Current()
		if !ok {
			return deny(LoginRoute, nil)
		}
		for _, role := range allowed {
			if user.Role == role {
				return allow()
			}
		}
		names := make([]string, len(allowed))
		for i, role := range allowed {
			names[i] = string(role)
		}
		return deny(DefaultRoute, url.Values{
			"error":    {"insufficient-permissions"},
			"required": {strings.Join(names, ",")},
		})
	}
}

// Chain evaluates guards in order and stops at the first denial, so an auth
// guard placed before a role guard decides first.
func Chain(guards ...Guard) Guard {
	return func(sess Session, attempted string) Decision {
		for _, g := range guards {
			if d := g(sess, attempted); !d.Allowed {
				return d
			}
		}
		return allow()
	}
}
