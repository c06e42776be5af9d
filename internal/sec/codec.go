package sec

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// MinSecretLength is the minimum accepted length for a new secret.
const MinSecretLength = 8

// EncodeCredential returns the reversible encoding of a credential string.
// It is used both for the Basic Auth wire payload and for the secret at
// rest. See the package documentation for why this is not a hash.
func EncodeCredential(plaintext string) string {
	return base64.StdEncoding.EncodeToString([]byte(plaintext))
}

// DecodeCredential reverses [EncodeCredential]. For every input x,
// DecodeCredential(EncodeCredential(x)) returns x. Inputs that are not a
// valid encoding fail with [ErrDecode].
func DecodeCredential(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return string(raw), nil
}

// ValidateNewCredential applies the signup credential policy: the identifier
// must contain an "@" (a minimal syntactic check, not full email
// validation), the secret must be at least [MinSecretLength] bytes, and the
// confirmation must match exactly.
func ValidateNewCredential(identifier, secret, confirmation string) error {
	if !strings.Contains(identifier, "@") {
		return ErrInvalidIdentifier
	}
	if len(secret) < MinSecretLength {
		return ErrWeakSecret
	}
	if secret != confirmation {
		return ErrSecretMismatch
	}
	return nil
}
