package domain

import (
	"errors"
	"fmt"
)

// Role is the canonical name of a profile, e.g. "Admin" or "Operários".
type Role string

func (r Role) String() string { return string(r) }

type RoleInfo struct {
	Name        Role
	Rank        int // 1..10, higher sees more
	Description string
	HomePage    string // PWA landing page
}

var ErrUnknownRole = errors.New("domain: unknown role")

// UnknownRoleError reports a role name absent from the catalog. It matches
// ErrUnknownRole with errors.Is.
type UnknownRoleError struct {
	Role string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("domain: unknown role %q", e.Role)
}

func (e *UnknownRoleError) Is(target error) bool { return target == ErrUnknownRole }
