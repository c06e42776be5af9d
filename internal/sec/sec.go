// Package sec provides the authentication primitives for the CC Goodies API.
//
// # Authentication
//
// Every request to a protected route re-authenticates from its Basic Auth
// header; there are no sessions or tokens. Credentials are validated against
// the users collection in the document store.
//
// IMPORTANT: secrets are stored with a reversible base64 encoding for
// compatibility with existing clients and stored records, not a one-way
// hash, and they are compared with a plain equality check. At-rest protection is
// nominal only. TLS must be used in production to protect credentials in
// transit.
//
// # Components
//
//   - [EncodeCredential], [DecodeCredential]: the reversible credential codec
//   - [ParseHeader]: Basic Auth header parsing into (identifier, secret)
//   - [Verify]: credential verification against the user store
//   - [Gate]: Echo middleware guarding a route group
//   - [GetAuthenticatedUser], [SetAuthenticatedUser]: context accessors
//   - [ValidateNewCredential]: the signup credential policy
package sec

const (
	// ErrMissingHeader is returned when the Authorization header is absent
	// or empty.
	ErrMissingHeader Error = "authorization header missing"
	// ErrMalformedScheme is returned when the header does not carry the
	// Basic scheme.
	ErrMalformedScheme Error = "authorization scheme is not Basic"
	// ErrMalformedCredential is returned when the header payload cannot be
	// decoded or lacks the colon delimiter.
	ErrMalformedCredential Error = "malformed credential payload"
	// ErrDecode is returned when a token is not a valid codec encoding.
	ErrDecode Error = "malformed credential encoding"
	// ErrIdentityNotFound is returned when no user matches the identifier.
	ErrIdentityNotFound Error = "user not found"
	// ErrSecretMismatch is returned when the supplied secret does not equal
	// the stored one, or when a signup confirmation does not match.
	ErrSecretMismatch Error = "passwords do not match"
	// ErrInvalidIdentifier is returned when an identifier fails the minimal
	// email check at signup.
	ErrInvalidIdentifier Error = "invalid email"
	// ErrWeakSecret is returned when a new secret is shorter than
	// [MinSecretLength].
	ErrWeakSecret Error = "password must be at least 8 characters long"
)

// Error is an error type returned by the authentication flow.
type Error string

// Error satisfies [error].
func (e Error) Error() string { return string(e) }
