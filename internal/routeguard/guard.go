// Package routeguard decides, per navigation, whether a screen may be shown.
//
// Decide is a pure function of its inputs. Table resolves a path against an
// explicit configuration of public routes, open routes and role policies; it
// never infers access from how a path is named.
package routeguard

import domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"

// Decision is the outcome of a navigation check.
type Decision int

const (
	Allow Decision = iota
	RedirectHome
	RedirectLogin
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectHome:
		return "redirect-home"
	case RedirectLogin:
		return "redirect-login"
	default:
		return "unknown"
	}
}

// RoutePolicy restricts a path pattern to a set of roles.
// Pattern segments starting with ':' match any single segment.
type RoutePolicy struct {
	Pattern      string
	AllowedRoles []domainauth.Role
}

// Permits reports whether role is listed in the policy.
func (p RoutePolicy) Permits(role domainauth.Role) bool {
	for _, r := range p.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Decide applies the admission rules in order:
//  1. authenticated on a public (auth form) path: RedirectHome
//  2. anonymous on a non-public path: RedirectLogin
//  3. authenticated with a policy that excludes the role: RedirectHome
//  4. otherwise: Allow
//
// A nil policy admits any authenticated role.
func Decide(status domainauth.Status, pathIsPublic bool, policy *RoutePolicy) Decision {
	if status.IsAuthenticated() && pathIsPublic {
		return RedirectHome
	}
	if !status.IsAuthenticated() && !pathIsPublic {
		return RedirectLogin
	}
	if status.IsAuthenticated() && policy != nil && !policy.Permits(status.Role()) {
		return RedirectHome
	}
	return Allow
}
