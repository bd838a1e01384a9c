package apperr

import "errors"

// Sentinel errors for the failure categories the API distinguishes.
// Services wrap these with context via fmt.Errorf("...: %w", err) and
// handlers match them with errors.Is to pick a status code.
var (
	// ErrValidation covers malformed or missing request input.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized covers missing, invalid or expired tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound covers records that are absent or not owned by the
	// caller. The two cases are never distinguished.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when registering an email that
	// already has an account.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong
	// password on login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMalformedResponse means the model's output did not follow the
	// expected template.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrEmptyResult means the model's output parsed but contained no
	// usable suggestions.
	ErrEmptyResult = errors.New("empty model result")

	// ErrUpstream means the model call itself failed.
	ErrUpstream = errors.New("upstream model call failed")
)
