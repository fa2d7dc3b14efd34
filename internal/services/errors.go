package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the domain services. Handlers map these to HTTP
// status codes; absence and lack of ownership are deliberately the same
// ErrNotFound so non-owners cannot probe for existence.
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrEmailInUse           = errors.New("email already in use")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrRegistrationDisabled = errors.New("registration disabled")
	ErrTagNameTaken         = errors.New("tag name already exists")
	ErrTeamNameTaken        = errors.New("team name already exists")
)

// TagInUseError reports how many prompts still reference a tag whose deletion
// was refused.
type TagInUseError struct {
	UsageCount int64
}

func (e *TagInUseError) Error() string {
	return fmt.Sprintf("tag is still used by %d prompts", e.UsageCount)
}
