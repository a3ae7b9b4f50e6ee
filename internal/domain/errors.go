package domain

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidCourse   = errors.New("course must be a positive integer")
	ErrCannotLikeSelf  = errors.New("cannot like own profile")

	// ErrNoCandidates means fewer than two profiles exist in total.
	ErrNoCandidates = errors.New("no candidates available")
	// ErrFeedExhausted means the viewer has already evaluated every other profile.
	ErrFeedExhausted = errors.New("all candidates already evaluated")
)
