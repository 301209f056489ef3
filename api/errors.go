package api

import "fmt"

// Kind buckets backend failures the way the UI reacts to them. There is
// deliberately no retry machinery here: retries are user-initiated.
type Kind int

const (
	// KindTransient covers transport failures, timeouts and 5xx: worth
	// retrying manually once the network recovers.
	KindTransient Kind = iota
	// KindAuth means the bearer token was missing, expired or rejected.
	KindAuth
	// KindNotFound is a 404 on a survey or submission path.
	KindNotFound
	// KindRejected is a 4xx the backend explains: bad payload, closed
	// survey, duplicate response.
	KindRejected
)

// Error is what every client method returns on failure. Code is a short
// machine-readable tag used in logs ("api.create_survey").
type Error struct {
	Code    string
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

// IsTransient reports whether err is a retryable backend failure.
func IsTransient(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Kind == KindTransient
}

// IsAuth reports whether err means the session must re-authenticate.
func IsAuth(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Kind == KindAuth
}

func classify(status int) Kind {
	switch {
	case status == 401 || status == 403:
		return KindAuth
	case status == 404:
		return KindNotFound
	case status >= 400 && status < 500:
		return KindRejected
	}
	return KindTransient
}
