package upstream

import "errors"

type Kind int

const (
	KindNetwork Kind = iota + 1
	KindAuth
	KindServer
	KindInvalidResponse
)

const fallbackMessage = "Failed to perform action"

// Error is a failed upstream call. ErrorField and MessageField carry the
// backend's own error/message fields when the response had a body.
type Error struct {
	Kind         Kind
	Status       int
	ErrorField   string
	MessageField string
	cause        error
}

func (e *Error) Error() string {
	if e.ErrorField != "" {
		return e.ErrorField
	}
	if e.MessageField != "" {
		return e.MessageField
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return fallbackMessage
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf reports the taxonomy bucket of err, or zero for non-upstream
// errors.
func KindOf(err error) Kind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return 0
}

// Message converts any error into the single display string shown to
// staff: backend error field, then backend message field, then the
// transport error text, then a generic fallback.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackMessage
}
