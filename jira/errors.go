package jira

import "errors"

var (
	// ErrMissingReference is returned when a relational field is resolved but the
	// key or locator it depends on is empty. No request is issued in that case.
	ErrMissingReference = errors.New("missing reference")

	// ErrNoClient is returned when a relational field is resolved on a view that
	// was not produced by a Client.
	ErrNoClient = errors.New("view has no client")
)
