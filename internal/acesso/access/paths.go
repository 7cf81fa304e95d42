package access

import (
	"net/url"
	"path"
	"strings"
)

// requestPath is a requested route split into its decoded path, the path
// exactly as it was written and the raw query.
type requestPath struct {
	Path    string
	RawPath string
	Query   string
}

// canonicalize splits a requested route. It rejects anything that is not
// an absolute, already-clean path: schemes, hosts, dot segments and doubled
// slashes. A trailing slash is dropped.
func canonicalize(raw string) (requestPath, bool) {
	if raw == "" || raw[0] != '/' {
		return requestPath{}, false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Opaque != "" || u.User != nil {
		return requestPath{}, false
	}
	p := u.Path
	if p == "" || p[0] != '/' {
		return requestPath{}, false
	}
	rawPath := raw
	if i := strings.IndexAny(rawPath, "?#"); i >= 0 {
		rawPath = rawPath[:i]
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	if len(rawPath) > 1 {
		rawPath = strings.TrimSuffix(rawPath, "/")
	}
	if path.Clean(p) != p {
		return requestPath{}, false
	}
	return requestPath{Path: p, RawPath: rawPath, Query: u.RawQuery}, true
}

// rawRest returns the part of rawPath past the segments that decode to
// prefix, keeping its escapes. When prefix ends inside an escaped segment
// (an encoded slash), the decoded rest is escaped again instead.
func rawRest(rawPath, prefix, decodedRest string) string {
	for i := 1; i <= len(rawPath); i++ {
		if i < len(rawPath) && rawPath[i] != '/' {
			continue
		}
		if head, err := url.PathUnescape(rawPath[:i]); err == nil && head == prefix {
			return rawPath[i:]
		}
	}
	return (&url.URL{Path: decodedRest}).EscapedPath()
}

// validPattern reports whether p can be used as a route or legacy prefix.
func validPattern(p string) bool {
	if p == "" || p[0] != '/' {
		return false
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		return false
	}
	return path.Clean(p) == p && !strings.ContainsAny(p, "?# \t")
}

// hasPrefix matches pattern against p on segment boundaries.
func hasPrefix(p, pattern string) bool {
	if pattern == "/" {
		return strings.HasPrefix(p, "/")
	}
	return p == pattern || strings.HasPrefix(p, pattern+"/")
}
