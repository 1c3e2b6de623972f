package handler

import "errors"

var (
	errNotSignedIn      = errors.New("not signed in")
	errMissingSessionID = errors.New("sessionId is required")
	errMissingGuid      = errors.New("guid is required")
)
