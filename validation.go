package accounts

import (
	stderrors "errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	msgEmailNotValid    = "email not valid"
	msgPasswordPattern  = "password must have 8 characters that includes upper case, lower case, digits, and special characters"
	msgRepeatPassword   = "repeat_password not same as password"
	msgUsernameNotValid = "username not valid"
	msgIdentityNumber   = "identity_number not valid"
)

const passwordSpecialSet = "@$!%*?&"

// EmailDomainRule restricts addresses to domains with at least two
// segments and a .com or .net top-level domain.
var EmailDomainRule = validation.By(func(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	at := strings.LastIndex(s, "@")
	if at < 0 {
		return stderrors.New(msgEmailNotValid)
	}

	segments := strings.Split(s[at+1:], ".")
	if len(segments) < 2 {
		return stderrors.New(msgEmailNotValid)
	}

	switch strings.ToLower(segments[len(segments)-1]) {
	case "com", "net":
		return nil
	}
	return stderrors.New(msgEmailNotValid)
})

// PasswordPatternRule enforces the password complexity policy: minimum 8
// characters drawn only from letters, digits, and the special set, with at
// least one lower case letter, one upper case letter, one digit, and one
// special character. Implemented as a rule function because Go's regexp
// has no lookahead support.
var PasswordPatternRule = validation.By(func(value any) error {
	s, _ := value.(string)
	if !passwordMatchesPattern(s) {
		return stderrors.New(msgPasswordPattern)
	}
	return nil
})

func passwordMatchesPattern(s string) bool {
	if len(s) < 8 {
		return false
	}

	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecialSet, r):
			special = true
		default:
			return false
		}
	}

	return lower && upper && digit && special
}

// StringEqualsRule will check that the validated value matches str.
func StringEqualsRule(str, message string) validation.Rule {
	return validation.By(func(value any) error {
		s, _ := value.(string)
		if s != str {
			return stderrors.New(message)
		}
		return nil
	})
}

// firstValidationMessage collapses an ozzo validation result into a single
// rich error carrying the first failing field's message, walking fields in
// their declared order.
func firstValidationMessage(err error, order ...string) error {
	if err == nil {
		return nil
	}

	if verrs, ok := err.(validation.Errors); ok {
		for _, field := range order {
			if ferr, found := verrs[field]; found && ferr != nil {
				return NewValidationError(ferr.Error())
			}
		}
		// a field outside the declared order failed, surface it as-is
		for _, ferr := range verrs {
			if ferr != nil {
				return NewValidationError(ferr.Error())
			}
		}
	}

	return NewValidationError(err.Error())
}
