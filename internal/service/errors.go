package service

import "errors"

var (
	// ErrInvalidURL indicates the destination is not an acceptable
	// http/https URL.
	ErrInvalidURL = errors.New("invalid destination URL")

	// ErrInvalidAlias indicates the custom alias violates the allowed
	// syntax (1-50 letters, digits, hyphens, underscores).
	ErrInvalidAlias = errors.New("invalid custom alias")

	// ErrReservedAlias indicates the custom alias collides with a
	// service route.
	ErrReservedAlias = errors.New("custom alias is reserved")

	// ErrAliasTaken indicates the requested alias already exists.
	ErrAliasTaken = errors.New("custom alias already taken")

	// ErrLinkInactive indicates the link has been deactivated.
	ErrLinkInactive = errors.New("short link has been deactivated")

	// ErrLinkExpired indicates the link passed its expiry.
	ErrLinkExpired = errors.New("short link has expired")

	// ErrCodeSpaceExhausted indicates code generation kept colliding past
	// the retry cap. Practically unreachable at 62^6 combinations.
	ErrCodeSpaceExhausted = errors.New("unable to allocate a unique short code")
)
