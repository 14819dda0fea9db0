package transport

import "net/http"

// UserAgentTransport stamps a User-Agent header on every outbound request.
// GitHub rejects requests without one.
type UserAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func WithUserAgent(base http.RoundTripper, userAgent string) *UserAgentTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &UserAgentTransport{base: base, userAgent: userAgent}
}

func (t *UserAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Per RoundTripper contract, do not mutate the caller's request
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(clone)
}
