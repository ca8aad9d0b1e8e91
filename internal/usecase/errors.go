package usecase

import (
	"errors"
	"fmt"
)

// Base classes. Handlers switch on these with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

var (
	ErrInvalidInput         = fmt.Errorf("%w: invalid input", ErrValidation)
	ErrCandidateSkillsEmpty = fmt.Errorf("%w: candidate has no skills", ErrValidation)
	ErrJobMalformed         = fmt.Errorf("%w: job is missing title or description", ErrValidation)

	ErrNoActiveJobs           = fmt.Errorf("%w: no active jobs", ErrNotFound)
	ErrCandidateNotFound      = fmt.Errorf("%w: candidate not found", ErrNotFound)
	ErrJobNotFound            = fmt.Errorf("%w: job not found", ErrNotFound)
	ErrRecommendationNotFound = fmt.Errorf("%w: recommendation not found", ErrNotFound)

	ErrGenerationInProgress = fmt.Errorf("%w: recommendation generation already in progress", ErrConflict)
)

func internal(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
