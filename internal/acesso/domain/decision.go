package domain

import "time"

type DecisionKind string

const (
	DecisionAllow    DecisionKind = "allow"
	DecisionDeny     DecisionKind = "deny"
	DecisionRedirect DecisionKind = "redirect"
)

// Deny reasons.
const (
	ReasonUnknownRoute      = "unknown_route"
	ReasonMissingPermission = "missing_permission"
	ReasonInsufficientRank  = "insufficient_rank"
	ReasonInvalidRoute      = "invalid_route"
)

// Decision is the outcome of guarding one requested route.
type Decision struct {
	Kind           DecisionKind `json:"kind"`
	Route          string       `json:"route"`
	CanonicalRoute string       `json:"canonical_route,omitempty"`
	MatchedPattern string       `json:"matched_pattern,omitempty"`
	Reason         string       `json:"reason,omitempty"`
}

func Allow(route, pattern string) Decision {
	return Decision{Kind: DecisionAllow, Route: route, MatchedPattern: pattern}
}

func Deny(route, pattern, reason string) Decision {
	return Decision{Kind: DecisionDeny, Route: route, MatchedPattern: pattern, Reason: reason}
}

func Redirect(route, canonical, pattern string) Decision {
	return Decision{Kind: DecisionRedirect, Route: route, CanonicalRoute: canonical, MatchedPattern: pattern}
}

// DecisionRecord is the audited form of a deny. Subjects are stored hashed.
type DecisionRecord struct {
	ID          string
	SubjectHash string
	Role        Role
	Route       string
	Kind        DecisionKind
	Reason      string
	CreatedAt   time.Time
}
