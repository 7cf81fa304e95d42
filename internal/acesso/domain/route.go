package domain

import (
	"errors"
	"fmt"
)

// RouteRule protects a path prefix. Prefixes match on segment boundaries:
// "/dashboard/gruas" covers "/dashboard/gruas/12" but not
// "/dashboard/gruas-antigas". Exact rules cover only the identical path.
type RouteRule struct {
	Pattern  string      `json:"pattern"`
	Exact    bool        `json:"exact,omitempty"`
	Requires Requirement `json:"requires"`
	MinRank  int         `json:"min_rank,omitempty"`
}

// LegacyRedirect maps a deprecated path prefix onto its canonical one.
type LegacyRedirect struct {
	From string `json:"from"`
	To   string `json:"to"`
}

var (
	ErrUnknownRoute    = errors.New("domain: unknown route")
	ErrRedirectLoop    = errors.New("domain: redirect target matches a legacy route")
	ErrInvalidCatalog  = errors.New("domain: invalid catalog")
	ErrUnknownSurface  = errors.New("domain: unknown surface")
	ErrInvalidRoute    = errors.New("domain: invalid route")
	ErrDuplicateRoute  = errors.New("domain: duplicate route pattern")
	ErrDuplicateMenuID = errors.New("domain: duplicate menu id")
)

// UnknownRouteError reports a path no route rule covers. It matches
// ErrUnknownRoute with errors.Is.
type UnknownRouteError struct {
	Route string
}

func (e *UnknownRouteError) Error() string {
	return fmt.Sprintf("domain: unknown route %q", e.Route)
}

func (e *UnknownRouteError) Is(target error) bool { return target == ErrUnknownRoute }
