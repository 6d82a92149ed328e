// Package nav binds paths to guard chains. Resolving a path answers, from
// one session snapshot, whether the navigation proceeds and where it is
// redirected when it does not.
package nav

import (
	"net/url"
	"strings"

	"moviecat/internal/guard"
)

// Route is one table entry. A route either carries a guard chain or is a
// pure alias redirecting somewhere else; public routes carry neither.
type Route struct {
	Pattern  string
	Guard    guard.Guard
	AliasFor string
}

// Resolution is the outcome of resolving one path.
type Resolution struct {
	Pattern  string
	Params   map[string]string
	Decision guard.Decision
}

// Table matches paths against patterns in declaration order. Patterns use
// ":name" segments for path parameters; the fallback target catches
// everything no pattern matches.
type Table struct {
	routes   []Route
	fallback string
}

func NewTable(routes []Route, fallback string) *Table {
	return &Table{routes: routes, fallback: fallback}
}

// Default is the application route table. The root path is an alias for
// login, the auth pages are guest-only, the catalog browse pages are
// public, and everything touching per-user or admin data is guarded.
func Default() *Table {
	return NewTable([]Route{
		{Pattern: "/", AliasFor: guard.LoginRoute},
		{Pattern: "/login", Guard: guard.Guest()},
		{Pattern: "/register", Guard: guard.Guest()},
		{Pattern: "/home"},
		{Pattern: "/movies"},
		{Pattern: "/movies/:id", Guard: guard.Auth()},
		{Pattern: "/recommendations", Guard: guard.Auth()},
		{Pattern: "/management", Guard: guard.Auth()},
		{Pattern: "/admin/management", Guard: guard.Chain(guard.Auth(), guard.Admin())},
		{Pattern: "/profile", Guard: guard.Auth()},
	}, guard.HomeRoute)
}

// Resolve matches the path and evaluates its guard chain against the
// session. Unknown paths resolve to a redirect to the fallback target.
func (t *Table) Resolve(sess guard.Session, path string) Resolution {
	for _, route := range t.routes {
		params, ok := match(route.Pattern, path)
		if !ok {
			continue
		}
		if route.AliasFor != "" {
			return Resolution{
				Pattern:  route.Pattern,
				Params:   params,
				Decision: guard.Decision{Redirect: &guard.Redirect{Path: route.AliasFor}},
			}
		}
		decision := guard.Decision{Allowed: true}
		if route.Guard != nil {
			decision = route.Guard(sess, path)
		}
		return Resolution{Pattern: route.Pattern, Params: params, Decision: decision}
	}
	return Resolution{
		Decision: guard.Decision{Redirect: &guard.Redirect{Path: t.fallback, Params: url.Values{}}},
	}
}

func match(pattern, path string) (map[string]string, bool) {
	if pattern == path {
		return nil, true
	}
	patSegs := strings.Split(strings.Trim(pattern, "/"), "/")
	pathSegs := strings.Split(strings.Trim(path, "/"), "/")
	if len(patSegs) != len(pathSegs) {
		return nil, false
	}
	var params map[string]string
	for i, seg := range patSegs {
		if strings.HasPrefix(seg, ":") {
			if pathSegs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[seg[1:]] = pathSegs[i]
			continue
		}
		if seg != pathSegs[i] {
			return nil, false
		}
	}
	return params, true
}
