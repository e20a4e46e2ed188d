package client

import (
	"net"
	"net/url"
	"strings"
)

// LocalAPIURL is where a development backend listens.
const LocalAPIURL = "http://localhost:5000/api"

// SameOriginPath is the API path when site and API share an origin.
const SameOriginPath = "/api"

var localHosts = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"0.0.0.0":   true,
	"::1":       true,
	"":          true,
}

// Env holds the inputs to API base resolution.
type Env struct {
	// BuildOverride is fixed at build or deploy time (PORTFOLIO_API_URL).
	BuildOverride string
	// RuntimeOverride is set by the operator and kept in the Session.
	RuntimeOverride string
	// PageHost is the host the site is served from, with or without a port.
	PageHost string
}

// ResolveBaseURL picks the API base: build override, then runtime
// override, then the local backend for development hosts, then /api on
// the same origin.
func ResolveBaseURL(env Env) string {
	if v := strings.TrimSpace(env.BuildOverride); v != "" {
		return strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(env.RuntimeOverride); v != "" {
		return strings.TrimRight(v, "/")
	}
	if IsLocalHost(env.PageHost) {
		return LocalAPIURL
	}
	return SameOriginPath
}

// IsLocalHost reports whether host (optionally with a port) is a
// development host.
func IsLocalHost(host string) bool {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	return localHosts[strings.ToLower(host)]
}

// Absolute joins a same-origin base such as "/api" onto origin. Absolute
// bases are returned unchanged.
func Absolute(base, origin string) string {
	u, err := url.Parse(base)
	if err != nil || u.IsAbs() {
		return base
	}
	o, err := url.Parse(origin)
	if err != nil || o.Scheme == "" {
		return base
	}
	return strings.TrimRight(o.ResolveReference(u).String(), "/")
}
