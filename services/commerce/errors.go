package commerce

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// GenericMessage is shown to shoppers for any transport or protocol failure.
const GenericMessage = "We couldn't reach the store right now. Please try again."

var ErrAdminDisabled = errors.New("commerce: admin API credential not configured")

// TransportError is a network, HTTP or GraphQL protocol failure. Messages
// carries the upstream payload, flattened.
type TransportError struct {
	Op       string
	Status   int
	Messages []string
	Err      error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString("commerce: ")
	b.WriteString(e.Op)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if len(e.Messages) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Messages, "; "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *TransportError) Unwrap() error { return e.Err }

// UserError is a domain validation failure reported by the backend
// (userErrors / customerUserErrors). The first message is shown verbatim.
type UserError struct {
	Op       string
	Messages []string
	Codes    []string
}

func (e *UserError) Error() string {
	return "commerce: " + e.Op + ": " + strings.Join(e.Messages, "; ")
}

func (e *UserError) First() string {
	if len(e.Messages) == 0 {
		return ""
	}
	return e.Messages[0]
}

// HasCode reports whether any of the user errors carries code.
func (e *UserError) HasCode(code string) bool {
	for _, c := range e.Codes {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

// UserMessage renders err for a shopper: the first backend user error
// verbatim, a generic message for everything else.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ue *UserError
	if errors.As(err, &ue) && ue.First() != "" {
		return ue.First()
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled."
	}
	return GenericMessage
}

// IsUserError reports whether err carries backend user errors.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}
