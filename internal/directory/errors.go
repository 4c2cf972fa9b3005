package directory

import "fmt"

// AuthError means the backend rejected the caller's credentials or token.
// The message is the backend's own, surfaced verbatim on the login form, or
// it forces a logout when it happens mid-session.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return e.Message
}

// NetworkError is a transport failure or an unexpected backend status.
// Operations that hit one are not retried automatically; the user re-invokes
// them.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: backend returned %d", e.Op, e.StatusCode)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
