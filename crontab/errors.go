package crontab

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateTitle means a batch of jobs to be written shares a title
	// between two or more of its own entries.
	ErrDuplicateTitle = errors.New("jobs to be written contain duplicate titles")

	// ErrCorruptTable means the destination table carried duplicate titles
	// before parsing collapsed them; reconciliation refuses to guess which
	// entry the caller meant to keep.
	ErrCorruptTable = errors.New("destination crontab contains duplicate titles")

	// ErrTitleConflict means a job's title is already present in the
	// destination table and overwriting was not requested.
	ErrTitleConflict = errors.New("title already exists in the destination crontab")

	// ErrTitleNotFound means no job with the requested title exists.
	ErrTitleNotFound = errors.New("job title does not exist in the crontab")
)

// ParseError reports a timing component that is not part of the cron
// grammar.
type ParseError struct {
	Component string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse timing component: %s", e.Component)
}
