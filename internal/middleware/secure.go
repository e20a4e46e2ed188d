package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// API and site content security policies. The site embeds uploaded images
// as data URIs.
const (
	APIContentSecurityPolicy  = "default-src 'none'; frame-ancestors 'none'"
	SiteContentSecurityPolicy = "default-src 'self'; img-src 'self' data: https:; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'"
)

// SecureOptions returns secure.Options for security headers. Outside
// development, HTTPS responses (directly or via a TLS-terminating proxy)
// carry HSTS.
func SecureOptions(isDevelopment bool, csp string) secure.Options {
	return secure.Options{
		IsDevelopment:         isDevelopment,
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: csp,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}
}

// NewSecure returns a middleware that adds security headers.
func NewSecure(opts secure.Options) func(next http.Handler) http.Handler {
	s := secure.New(opts)
	return s.Handler
}
