// Package identity derives the coarse identity label reported by every echo
// endpoint.
//
// The label only reflects whether an Authorization header was sent. Nothing
// here parses, verifies, or trusts the header contents; access decisions are
// expected to be made by a policy layer in front of the service.
package identity

import (
	"context"
	"net/http"
)

// HeaderName is the request header inspected by Resolve.
const HeaderName = "Authorization"

// Label is the identity reported back to the caller.
type Label string

const (
	Anonymous         Label = "anonymous"
	AuthenticatedUser Label = "authenticated-user"
)

// String returns the label as reported in response bodies.
func (l Label) String() string { return string(l) }

// IsAnonymous reports whether the label is the anonymous label.
func (l Label) IsAnonymous() bool { return l == Anonymous }

// FromHeader classifies an Authorization header value. Any non-empty value
// counts as authenticated; scheme, format and signature are not checked.
func FromHeader(value string) Label {
	if value != "" {
		return AuthenticatedUser
	}
	return Anonymous
}

// Resolve returns the label for r. A nil request resolves to Anonymous.
func Resolve(r *http.Request) Label {
	if r == nil {
		return Anonymous
	}
	return FromHeader(r.Header.Get(HeaderName))
}

// Claimed returns the caller-supplied user identifier as a label, verbatim.
// It is not compared against the header-derived label.
func Claimed(userID string) Label {
	return Label(userID)
}

type contextKey string

const labelKey contextKey = "identity_label"

// WithLabel stores l in ctx.
func WithLabel(ctx context.Context, l Label) context.Context {
	return context.WithValue(ctx, labelKey, l)
}

// FromContext extracts the label stored by WithLabel.
func FromContext(ctx context.Context) (Label, bool) {
	l, ok := ctx.Value(labelKey).(Label)
	return l, ok
}

// FromRequest returns the label attached to r's context, resolving it from
// the header when no middleware has attached one.
func FromRequest(r *http.Request) Label {
	if r == nil {
		return Anonymous
	}
	if l, ok := FromContext(r.Context()); ok {
		return l
	}
	return Resolve(r)
}
