package bot

import (
	"errors"
	"fmt"

	"dafi.es/dafibot/internal/election"
)

// UserError is an error whose Message can be shown to the user as is.
type UserError struct {
	Message string // Spanish text sent back to the chat
	Cause   error  // Original error for logging (optional)
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// UserErrorf creates a user-facing error with a formatted message and no cause.
func UserErrorf(format string, args ...any) *UserError {
	return &UserError{
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapUserError keeps cause for the logs and shows message to the user.
func WrapUserError(message string, cause error) *UserError {
	return &UserError{
		Message: message,
		Cause:   cause,
	}
}

// GetUserMessage extracts the message to show for err. Errors that are not
// a UserError get MsgInternalError.
func GetUserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Message
	}
	return MsgInternalError
}

// GetLogError returns the error to put in the log record.
func GetLogError(err error) error {
	return err
}

// ShouldLog reports whether err is worth logging.
// UserErrors without a cause are user mistakes.
func ShouldLog(err error) bool {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Cause != nil
	}
	return true
}

// nominationError translates a Nominate failure for the requester.
// Configuration problems keep their cause so they get logged.
func nominationError(err error, role election.Role) error {
	switch {
	case errors.Is(err, election.ErrElectionsInactive):
		return UserErrorf(MsgElectionsInactive)
	case errors.Is(err, election.ErrNoMainChat):
		return WrapUserError(MsgRequestNotProcessed, err)
	case errors.Is(err, election.ErrInvalidGroupRef):
		return UserErrorf(MsgFmtNominationUsage, role.Prefix())
	case errors.Is(err, election.ErrGroupNotFound):
		return UserErrorf(MsgGroupNotFound)
	case errors.Is(err, election.ErrUserNotLinked):
		return UserErrorf(MsgAccountNotLinked)
	}
	return WrapUserError(MsgRequestNotProcessed, err)
}
