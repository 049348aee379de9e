package authroles

import (
	"strings"

	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
)

// WireRoleMapper maps backend role strings onto domain roles.
// Aliases extend the built-in spellings, e.g. when a backend localizes role names.
type WireRoleMapper struct {
	OrganizerAliases   []string
	ParticipantAliases []string
}

func (m WireRoleMapper) Map(raw string) (domainauth.Role, bool) {
	if role, ok := domainauth.ParseRole(raw); ok {
		return role, true
	}
	for _, a := range m.OrganizerAliases {
		if a != "" && strings.EqualFold(a, strings.TrimSpace(raw)) {
			return domainauth.RoleOrganizer, true
		}
	}
	for _, a := range m.ParticipantAliases {
		if a != "" && strings.EqualFold(a, strings.TrimSpace(raw)) {
			return domainauth.RoleParticipant, true
		}
	}
	return "", false
}
