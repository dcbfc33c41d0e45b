package actor

import (
	"errors"
	"fmt"
	"strings"

	wire "partnerhub/pkg/models"
)

var (
	// ErrUnavailable means there is no actor to call: the client is nil or
	// the server cannot be reached.
	ErrUnavailable = errors.New("actor not available")

	ErrNotFound             = errors.New("not found")
	ErrAlreadyExists        = errors.New("already exists")
	ErrForbidden            = errors.New("forbidden")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidInput         = errors.New("invalid input")
	ErrRecipientNotApproved = errors.New("recipient not approved")
	ErrNotConfigured        = errors.New("meta API not configured")
	ErrUpstream             = errors.New("meta API request failed")
	ErrRateLimited          = errors.New("rate limited")
)

var codeErrors = map[wire.ErrorCode]error{
	wire.CodeNotFound:             ErrNotFound,
	wire.CodeAlreadyExists:        ErrAlreadyExists,
	wire.CodeForbidden:            ErrForbidden,
	wire.CodeUnauthorized:         ErrUnauthorized,
	wire.CodeInvalidInput:         ErrInvalidInput,
	wire.CodeRecipientNotApproved: ErrRecipientNotApproved,
	wire.CodeNotConfigured:        ErrNotConfigured,
	wire.CodeUpstream:             ErrUpstream,
	wire.CodeRateLimited:          ErrRateLimited,
}

// Error is a non-2xx actor response.
type Error struct {
	Status  int
	Code    wire.ErrorCode
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("actor error: status %d", e.Status)
	}
	return e.Message
}

// Is maps the response code onto the package sentinels. Responses without
// a known code fall back to matching the approval wording in the message.
func (e *Error) Is(target error) bool {
	if sentinel, ok := codeErrors[e.Code]; ok {
		return sentinel == target
	}
	if target == ErrRecipientNotApproved {
		return mentionsApproval(e.Message)
	}
	return false
}

func mentionsApproval(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "whitelisted") || strings.Contains(msg, "approved")
}
