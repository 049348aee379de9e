package routeguard

import (
	"strings"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
)

const (
	HomePath  = "/"
	LoginPath = "/login"
)

// Table is the static access configuration for every navigable path.
//   - Public paths are the auth forms: only anonymous users see them.
//   - Open paths are never guarded (e.g. the landing page).
//   - Policies restrict paths to roles. Any other path is authenticated-only.
type Table struct {
	Public   []string
	Open     []string
	Policies []RoutePolicy
}

// DefaultTable returns the route configuration of the event client.
func DefaultTable() Table {
	organizer := []domainauth.Role{domainauth.RoleOrganizer}
	participant := []domainauth.Role{domainauth.RoleParticipant}
	return Table{
		Public: []string{"/login", "/register"},
		Open:   []string{HomePath},
		Policies: []RoutePolicy{
			{Pattern: "/OrganizerDashboard", AllowedRoles: organizer},
			{Pattern: "/Organizer/events", AllowedRoles: organizer},
			{Pattern: "/events/create", AllowedRoles: organizer},
			{Pattern: "/events/delete", AllowedRoles: organizer},
			{Pattern: "/events/:eventId", AllowedRoles: participant},
		},
	}
}

// Evaluate resolves path against the table and applies Decide.
func (t Table) Evaluate(status domainauth.Status, path string) Decision {
	path = normalize(path)
	if t.isOpen(path) {
		return Allow
	}
	return Decide(status, t.IsPublic(path), t.PolicyFor(path))
}

// IsPublic reports whether path is one of the auth forms.
func (t Table) IsPublic(path string) bool {
	path = normalize(path)
	for _, p := range t.Public {
		if strings.EqualFold(normalize(p), path) {
			return true
		}
	}
	return false
}

// PolicyFor returns the policy governing path, or nil.
// Literal patterns win over parameterized ones, so "/events/create"
// is never captured by "/events/:eventId".
func (t Table) PolicyFor(path string) *RoutePolicy {
	path = normalize(path)
	var param *RoutePolicy
	for i := range t.Policies {
		p := &t.Policies[i]
		literal, ok := match(p.Pattern, path)
		if !ok {
			continue
		}
		if literal {
			return p
		}
		if param == nil {
			param = p
		}
	}
	return param
}

func (t Table) isOpen(path string) bool {
	for _, p := range t.Open {
		if strings.EqualFold(normalize(p), path) {
			return true
		}
	}
	return false
}

// Target returns the path a redirect decision points at, or "" for Allow.
func Target(d Decision) string {
	switch d {
	case RedirectHome:
		return HomePath
	case RedirectLogin:
		return LoginPath
	default:
		return ""
	}
}

// match reports whether pattern matches path, and whether it matched literally.
// Literal segments compare case-insensitively.
func match(pattern, path string) (literal, ok bool) {
	ps := segments(normalize(pattern))
	xs := segments(path)
	if len(ps) != len(xs) {
		return false, false
	}
	literal = true
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if xs[i] == "" {
				return false, false
			}
			literal = false
			continue
		}
		if !strings.EqualFold(ps[i], xs[i]) {
			return false, false
		}
	}
	return literal, true
}

func segments(path string) []string {
	if path == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}

// normalize strips query, fragment and trailing slashes and ensures a leading slash.
func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
