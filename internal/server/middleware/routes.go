package middleware

import (
	"path"
	"sort"
	"strings"
)

// RouteClass is the access class of a request path.
type RouteClass int

const (
	// RouteDeny rejects the request outright. It is the class of every path
	// no rule matches.
	RouteDeny RouteClass = iota
	// RoutePublic passes without authentication.
	RoutePublic
	// RouteAdmin requires a valid admin bearer token.
	RouteAdmin
)

func (c RouteClass) String() string {
	switch c {
	case RoutePublic:
		return "public"
	case RouteAdmin:
		return "admin"
	default:
		return "deny"
	}
}

// RouteRule assigns a class to every path at or below Prefix.
type RouteRule struct {
	Prefix string
	Class  RouteClass
}

// DefaultRouteRules is the access table of the site API.
var DefaultRouteRules = []RouteRule{
	{"/api/auth", RoutePublic},
	{"/api/services", RoutePublic},
	{"/api/technologies", RoutePublic},
	{"/api/projects", RoutePublic},
	{"/api/team", RoutePublic},
	{"/api/testimonials", RoutePublic},
	{"/api/company", RoutePublic},
	{"/api/contact", RoutePublic},
	{"/uploads", RoutePublic},
	{"/api/admin", RouteAdmin},
	{"/healthz", RoutePublic},
	{"/readyz", RoutePublic},
	{"/openapi.json", RoutePublic},
}

// RoutePolicy classifies request paths by longest matching prefix. It is
// immutable after construction and safe for concurrent use.
type RoutePolicy struct {
	rules []RouteRule
}

// NewRoutePolicy compiles rules, longest prefix first.
func NewRoutePolicy(rules []RouteRule) *RoutePolicy {
	compiled := make([]RouteRule, 0, len(rules))
	for _, r := range rules {
		p := path.Clean("/" + strings.TrimSpace(r.Prefix))
		compiled = append(compiled, RouteRule{Prefix: p, Class: r.Class})
	}
	sort.SliceStable(compiled, func(i, j int) bool {
		return len(compiled[i].Prefix) > len(compiled[j].Prefix)
	})
	return &RoutePolicy{rules: compiled}
}

// Classify returns the class of urlPath, the escaped path the router matches
// on (url.URL.EscapedPath). Matching is segment aware: /api/team matches
// /api/team and /api/team/x but not /api/teams. A path that is not canonical
// is denied, since the router would not resolve it the way cleaning does.
func (p *RoutePolicy) Classify(urlPath string) RouteClass {
	if !canonicalPath(urlPath) {
		return RouteDeny
	}
	clean := urlPath
	if len(clean) > 1 {
		clean = strings.TrimSuffix(clean, "/")
	}
	for _, r := range p.rules {
		if r.Prefix == "/" || clean == r.Prefix || strings.HasPrefix(clean, r.Prefix+"/") {
			return r.Class
		}
	}
	return RouteDeny
}

// encodedSeparators are escapes that decode to a path separator or a dot.
var encodedSeparators = []string{"%2f", "%5c", "%2e"}

// canonicalPath reports whether p is absolute and free of empty segments,
// dot segments, backslashes and encoded separators. A single trailing slash
// is allowed.
func canonicalPath(p string) bool {
	if p == "/" {
		return true
	}
	if !strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return false
	}
	lower := strings.ToLower(p)
	for _, enc := range encodedSeparators {
		if strings.Contains(lower, enc) {
			return false
		}
	}
	for _, seg := range strings.Split(strings.TrimSuffix(p[1:], "/"), "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}
