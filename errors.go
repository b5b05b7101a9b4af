package accounts

import "github.com/goliatone/go-errors"

const (
	TextCodeAccountExists     = "account_exists"
	TextCodeBadCredentials    = "account_bad_credentials"
	TextCodeAccountNotFound   = "account_not_found"
	TextCodeValidationFailed  = "account_validation_failed"
	TextCodePasswordMismatch  = "account_password_mismatch"
	TextCodeUnableToParseData = "account_unparsable_payload"
)

// ErrAccountExists is returned when a registration collides with an
// account already on file for the same email.
var ErrAccountExists = errors.New("User already exists", errors.CategoryConflict).
	WithTextCode(TextCodeAccountExists).
	WithCode(errors.CodeBadRequest)

// ErrBadCredentials merges "no such email" and "wrong password" into one
// message so the response cannot be used to enumerate accounts.
var ErrBadCredentials = errors.New("Please input the correct email or password", errors.CategoryAuth).
	WithTextCode(TextCodeBadCredentials).
	WithCode(errors.CodeBadRequest)

// ErrAccountNotFound is returned when the session email no longer matches
// a stored account.
var ErrAccountNotFound = errors.New("User not found", errors.CategoryNotFound).
	WithTextCode(TextCodeAccountNotFound).
	WithCode(errors.CodeNotFound)

// ErrMismatchedHashAndPassword is the internal signal for a failed bcrypt
// comparison.
var ErrMismatchedHashAndPassword = errors.New("mismatched password and hash", errors.CategoryAuth).
	WithTextCode(TextCodePasswordMismatch).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects hashing of an empty password.
var ErrNoEmptyString = errors.New("value should not be an empty string", errors.CategoryValidation).
	WithTextCode(TextCodeValidationFailed).
	WithCode(errors.CodeBadRequest)

// ErrUnableToParseData is returned when a request body cannot be decoded.
var ErrUnableToParseData = errors.New("unable to parse data", errors.CategoryBadInput).
	WithTextCode(TextCodeUnableToParseData).
	WithCode(errors.CodeBadRequest)

// NewValidationError wraps a per-field validation message into the rich
// error shape used across the package.
func NewValidationError(message string) *errors.Error {
	return errors.New(message, errors.CategoryValidation).
		WithTextCode(TextCodeValidationFailed).
		WithCode(errors.CodeBadRequest)
}
