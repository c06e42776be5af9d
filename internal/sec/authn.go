package sec

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carmelngoyi/ccgoodies/internal/catalog"
	"github.com/carmelngoyi/ccgoodies/internal/store"
)

const basicScheme = "Basic "

// ParseHeader extracts the (identifier, secret) pair from a raw
// Authorization header value. The scheme prefix is matched case-sensitively
// and the decoded payload is split at the first colon only, so secrets may
// themselves contain colons.
func ParseHeader(header string) (identifier, secret string, err error) {
	if header == "" {
		return "", "", ErrMissingHeader
	}
	if !strings.HasPrefix(header, basicScheme) {
		return "", "", ErrMalformedScheme
	}
	payload, err := DecodeCredential(header[len(basicScheme):])
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrMalformedCredential, err)
	}
	identifier, secret, ok := strings.Cut(payload, ":")
	if !ok {
		return "", "", ErrMalformedCredential
	}
	return identifier, secret, nil
}

// Verify resolves the claimed identifier against the users collection and
// compares the supplied secret with the decoded stored one. It returns the
// full identity record on success. The comparison is a plain equality check;
// there is no lockout or rate limiting.
func Verify(ctx context.Context, users store.Store, identifier, secret string) (catalog.User, error) {
	var user catalog.User
	doc, err := users.FindOne(ctx, catalog.Users, store.Filter{"email": identifier})
	if errors.Is(err, store.ErrNotFound) {
		return user, ErrIdentityNotFound
	} else if err != nil {
		return user, fmt.Errorf("failed to look up user: %w", err)
	}
	if err := catalog.FromDocument(doc, &user); err != nil {
		return user, err
	}
	stored, err := DecodeCredential(user.Password)
	if err != nil {
		return user, fmt.Errorf("stored secret for %q is unreadable: %w", identifier, err)
	}
	if stored != secret {
		return catalog.User{}, ErrSecretMismatch
	}
	return user, nil
}

// Gate returns middleware that authenticates every request against users
// before it reaches the handler. Denials are terminal 401 responses; the
// gate keeps the parser and verifier failure classes distinct in its bodies,
// unlike the login endpoint, which deliberately collapses them.
func Gate(users store.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			identifier, secret, err := ParseHeader(header)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"message": "Authorization header missing or invalid",
				})
			}

			user, err := Verify(c.Request().Context(), users, identifier, secret)
			switch {
			case errors.Is(err, ErrIdentityNotFound):
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "User not found"})
			case errors.Is(err, ErrSecretMismatch):
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid password"})
			case err != nil:
				return err
			}

			ctx := SetAuthenticatedUser(c.Request().Context(), user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

type userKey struct{}

// SetAuthenticatedUser attaches the resolved identity record to the context.
// The [Gate] does this automatically; this function is exposed for tests.
func SetAuthenticatedUser(ctx context.Context, user catalog.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetAuthenticatedUser returns the identity record attached by the [Gate].
// It returns a zero-value user if the context has none, which should only
// happen on routes outside a gated group.
func GetAuthenticatedUser(ctx context.Context) catalog.User {
	if user, ok := ctx.Value(userKey{}).(catalog.User); ok {
		return user
	}
	return catalog.User{}
}
