package leave

import "errors"

var (
	ErrRequestNotFound         = errors.New("leave request not found")
	ErrRequestAlreadyProcessed = errors.New("leave request has already been approved or rejected")
	ErrOverlappingRequest      = errors.New("an overlapping leave request already exists")
	ErrUnauthorized            = errors.New("unauthorized to access this leave request")
)
