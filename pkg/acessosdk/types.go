package acessosdk

import "time"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the JSON error envelope returned by every endpoint.
type ErrorResponse struct {
	// Error is a machine readable code (e.g., "invalid_token", "unknown_role")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description,omitempty"`
}

// ============================================================================
// Permission Types
// ============================================================================

// Grant is one permission held at a level ("read", "write" or "admin").
type Grant struct {
	Permission string `json:"permission"`
	Level      string `json:"level"`
}

// PermissionsResponse is the resolved grant set of a role.
type PermissionsResponse struct {
	// Role is the canonical role name after alias resolution
	Role string `json:"role"`

	// Rank orders roles; higher sees more
	Rank int `json:"rank"`

	// HomePage is the PWA landing page of the role
	HomePage string `json:"home_page"`

	// Surface is set when the set was narrowed to one surface
	Surface string `json:"surface,omitempty"`

	Permissions []Grant `json:"permissions"`
}

// Has reports whether the response grants permission at level or above.
// Only concrete permissions are listed, so no wildcard matching is needed.
func (p *PermissionsResponse) Has(permission, level string) bool {
	want := levelRank(level)
	for _, g := range p.Permissions {
		if g.Permission == permission && levelRank(g.Level) >= want {
			return true
		}
	}
	return false
}

func levelRank(level string) int {
	switch level {
	case "admin":
		return 3
	case "write":
		return 2
	case "read", "":
		return 1
	default:
		return 0
	}
}

// ============================================================================
// Menu Types
// ============================================================================

// MenuItem is one node of a filtered navigation tree.
type MenuItem struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	Route       string     `json:"route,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Description string     `json:"description,omitempty"`
	Exact       bool       `json:"exact,omitempty"`
	Children    []MenuItem `json:"children,omitempty"`
}

// MenuResponse is the navigation a role may see on one surface.
type MenuResponse struct {
	Surface string `json:"surface"`

	// Visible is false when nothing of the tree is reachable; Menu is then nil
	Visible bool      `json:"visible"`
	Menu    *MenuItem `json:"menu,omitempty"`

	// FirstRoute is the first reachable route in display order
	FirstRoute string `json:"first_route,omitempty"`

	// ActiveTrail holds the ids leading to the entry matching the active path
	ActiveTrail []string `json:"active_trail,omitempty"`
}

// ============================================================================
// Guard Types
// ============================================================================

// GuardRequest asks whether the caller may open a route.
type GuardRequest struct {
	Route   string `json:"route"`
	Surface string `json:"surface,omitempty"`
}

const (
	DecisionAllow    = "allow"
	DecisionDeny     = "deny"
	DecisionRedirect = "redirect"
)

// GuardResponse is a guard decision. Redirects carry the canonical route.
type GuardResponse struct {
	Kind           string `json:"kind"`
	Route          string `json:"route"`
	CanonicalRoute string `json:"canonical_route,omitempty"`
	MatchedPattern string `json:"matched_pattern,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

// ============================================================================
// Role Types
// ============================================================================

type RoleInfo struct {
	Name        string `json:"name"`
	Rank        int    `json:"rank"`
	Description string `json:"description,omitempty"`
	HomePage    string `json:"home_page"`
}

type ListRolesResponse struct {
	Roles []RoleInfo `json:"roles"`
}

// ============================================================================
// Audit Types
// ============================================================================

// DecisionRecord is an audited deny. Subjects are only ever exposed hashed.
type DecisionRecord struct {
	ID          string    `json:"id"`
	SubjectHash string    `json:"subject_hash"`
	Role        string    `json:"role"`
	Route       string    `json:"route"`
	Kind        string    `json:"kind"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListDecisionsResponse struct {
	Decisions []DecisionRecord `json:"decisions"`

	// NextBefore is the cursor for the next page; empty on the last page
	NextBefore string `json:"next_before,omitempty"`
}

// ListDecisionsOptions filters the audit listing. Subject is a raw token
// subject; the server fingerprints it before lookup.
type ListDecisionsOptions struct {
	Subject string
	Before  string
	Limit   int
}

type DecisionCount struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason,omitempty"`
	Count  int64  `json:"count"`
}

type DecisionSummaryResponse struct {
	Counts []DecisionCount `json:"counts"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the audit store connection status
	Database string `json:"database"`

	// Keys indicates whether token verification keys are loaded
	Keys string `json:"keys"`
}
