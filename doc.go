// Package accounts implements a minimal user-account service: registration,
// credential verification, listing, password update, and removal behind an
// HTTP JSON API.
//
// Sessions:
//   - Authenticate issues an HS256 bearer token with a one hour expiry that
//     carries the account's id, email, username, and identity number.
//   - The session gate in middleware/sessionware extracts the token from the
//     Authorization header and decodes its payload without verifying the
//     signature or expiry, attaching the resulting SessionClaims to the
//     request. Callers that need cryptographic verification can use
//     TokenService.Validate instead of Decode.
//
// Persistence:
//   - Account records live in a single bun-managed table. Email is the
//     natural key; uniqueness is enforced by an application-level lookup
//     before insert, not by a storage constraint.
//
// Failures are github.com/goliatone/go-errors values; their Code field maps
// directly to the HTTP status emitted by the handler NewJSONErrorHandler
// builds.
package accounts
