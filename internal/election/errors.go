package election

import "errors"

var (
	ErrElectionsInactive = errors.New("no active election period")
	ErrAlreadyActive     = errors.New("election period already active")
	ErrAlreadyInactive   = errors.New("election period already inactive")
	ErrNoMainChat        = errors.New("main chat not configured")
	ErrInvalidGroupRef   = errors.New("invalid group reference")
	ErrGroupNotFound     = errors.New("group not found")
	ErrUserNotLinked     = errors.New("user has not linked a telegram account")
	ErrMalformedPayload  = errors.New("malformed callback payload")
	ErrForbidden         = errors.New("missing permission to manage elections")
)
