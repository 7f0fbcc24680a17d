package client

import (
	"errors"
	"fmt"
)

// Auth flow step names, used to tag protocol failures so the user can
// tell which part of the SSO handshake broke.
const (
	StepAuthorize     = "authorize"
	StepLoginPage     = "login page"
	StepCredentials   = "credential submit"
	StepRedirectChain = "redirect chain"
	StepSessionCookie = "session cookie"
	StepCSRFToken     = "csrf token"
)

var (
	// ErrBadCredentials means the identity provider rejected the
	// username/password pair. Callers should re-prompt rather than
	// treat this as a broken flow.
	ErrBadCredentials = errors.New("invalid username or password")

	// ErrNoToken means an API call was attempted before a CSRF token
	// was established.
	ErrNoToken = errors.New("no csrf token, not logged in")
)

// ProtocolError reports an unexpected response at a specific step of the
// CAS handshake: wrong status code, missing redirect, missing token.
type ProtocolError struct {
	Step   string
	Status int
	Reason string
}

func (e *ProtocolError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("auth %s failed: %s (HTTP %d)", e.Step, e.Reason, e.Status)
	}
	return fmt.Sprintf("auth %s failed: %s", e.Step, e.Reason)
}

// StatusError is a non-200 response from a platform API endpoint.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with HTTP %d", e.Status)
}

// MalformedResponseError is a 200 response whose body is not the JSON we
// expected, or is missing a required field. Distinct from StatusError so
// callers can tell a broken payload from a rejected request.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "malformed response: " + e.Reason
}
