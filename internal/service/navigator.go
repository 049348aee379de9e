package service

import (
	domainauth "github.com/sportsevents/eventdesk/internal/domain/auth"
	"github.com/sportsevents/eventdesk/internal/routeguard"
)

type statusSource interface {
	Status() domainauth.Status
}

// Navigator gates navigation using the live session status and a route table.
type Navigator struct {
	session statusSource
	table   routeguard.Table
}

// NewNavigator constructs a Navigator over table.
func NewNavigator(session statusSource, table routeguard.Table) *Navigator {
	if session == nil {
		panic("session is required")
	}
	return &Navigator{session: session, table: table}
}

// Navigate decides whether path may be shown and returns where to go:
// path itself on Allow, otherwise the redirect target.
func (n *Navigator) Navigate(path string) (routeguard.Decision, string) {
	d := n.table.Evaluate(n.session.Status(), path)
	if d == routeguard.Allow {
		return d, path
	}
	return d, routeguard.Target(d)
}
