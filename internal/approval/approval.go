// Package approval centralizes the routing and visibility rules shared by
// the leave and overtime lifecycles: who sees which requests, who may decide
// a given request, and when a new leave request escalates past the manager
// tier.
package approval

import (
	"github.com/hrportal/workforce/internal"
	"github.com/hrportal/workforce/internal/employee"
)

// Scope describes which rows an actor's listing may cover.
type Scope int

const (
	// ScopeOwn limits listing to rows owned by the actor.
	ScopeOwn Scope = iota
	// ScopeTeam limits listing to rows owned by the actor's direct reports.
	ScopeTeam
	// ScopeAll covers every row.
	ScopeAll
)

// ListScope maps a role to its listing scope. Managers see their direct
// reports' requests (one level, never transitive); admins see everything.
func ListScope(role employee.Role) Scope {
	switch role {
	case employee.RoleEmployee:
		return ScopeOwn
	case employee.RoleManager:
		return ScopeTeam
	case employee.RoleAdmin:
		return ScopeAll
	}
	// Role is a closed type; ParseRole is the only way in. Treat anything
	// else as the least privileged scope.
	return ScopeOwn
}

// CanDecide reports whether the actor holds approval authority over a
// request owned by owner. The error is always the generic permission
// failure so callers cannot leak resource existence.
func CanDecide(actor *employee.Employee, owner *employee.Employee) error {
	switch actor.Role {
	case employee.RoleAdmin:
		return nil
	case employee.RoleManager:
		// Direct reports only, and never the manager's own requests.
		if owner.ID == actor.ID {
			return internal.ErrNotPermitted
		}
		if owner.ManagerID != nil && *owner.ManagerID == actor.ID {
			return nil
		}
		return internal.ErrNotPermitted
	case employee.RoleEmployee:
		return internal.ErrNotPermitted
	}
	return internal.ErrNotPermitted
}

// CanViewQueue reports whether the actor may read an approval queue at all.
func CanViewQueue(actor *employee.Employee) error {
	switch actor.Role {
	case employee.RoleAdmin, employee.RoleManager:
		return nil
	case employee.RoleEmployee:
		return internal.ErrNotPermitted
	}
	return internal.ErrNotPermitted
}

// RequiresAdminEscalation decides, at creation time, whether a leave request
// skips the manager tier. It does when no manager is assigned or the
// assigned manager is inactive.
func RequiresAdminEscalation(activeManager *employee.Employee) bool {
	return activeManager == nil
}

// CanCreateFor reports whether the actor may open a request on behalf of
// owner. Everyone files their own; admins file for anyone; managers file
// for direct reports.
func CanCreateFor(actor *employee.Employee, owner *employee.Employee) error {
	if actor.ID == owner.ID {
		return nil
	}
	switch actor.Role {
	case employee.RoleAdmin:
		return nil
	case employee.RoleManager:
		if owner.ManagerID != nil && *owner.ManagerID == actor.ID {
			return nil
		}
		return internal.ErrNotPermitted
	case employee.RoleEmployee:
		return internal.ErrNotPermitted
	}
	return internal.ErrNotPermitted
}
