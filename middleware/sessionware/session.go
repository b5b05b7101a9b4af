// Package sessionware provides the request-boundary session gate: it
// extracts the bearer credential from the Authorization header, decodes
// its payload, and attaches the resulting claims to the request before the
// gated handler runs. The header value is accepted raw or with a scheme
// prefix; decoding does not verify the token signature or expiry.
//
// The package mirrors the claims and decoder contracts of the root
// accounts package as local interfaces to avoid import cycles.
package sessionware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// DefaultContextKey is where decoded claims land in the request locals.
const DefaultContextKey = "session"

// ErrAuthorizationRequired is returned when the request carries no
// authorization header at all.
var ErrAuthorizationRequired = errors.New("Header authorization required", errors.CategoryAuth).
	WithTextCode("session_header_required").
	WithCode(errors.CodeUnauthorized)

// ErrAuthorizationInvalid is returned when the header value yields no
// decodable claims payload.
var ErrAuthorizationInvalid = errors.New("Header authorization not valid", errors.CategoryAuth).
	WithTextCode("session_header_invalid").
	WithCode(errors.CodeUnauthorized)

// Claims mirrors the session claims accessors from the accounts package.
type Claims interface {
	GetUserID() string
	GetEmail() string
	GetUsername() string
	GetIdentityNumber() string
}

// TokenDecoder turns a raw token string into claims. Implementations are
// expected to decode only; signature and expiry checks are out of scope
// for the gate.
type TokenDecoder func(tokenString string) (Claims, error)

type Config struct {
	// Filter skips the gate entirely when it returns true.
	Filter         func(*fiber.Ctx) bool
	SuccessHandler fiber.Handler
	ErrorHandler   fiber.ErrorHandler
	ContextKey     string
	HeaderName     string
	AuthScheme     string
	Decoder        TokenDecoder

	// ContextEnricher propagates claims to the request's standard context.
	ContextEnricher func(ctx context.Context, claims Claims) context.Context
}

func New(config ...Config) fiber.Handler {
	cfg := GetDefaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		header := c.Get(cfg.HeaderName)
		if strings.TrimSpace(header) == "" {
			return cfg.ErrorHandler(c, ErrAuthorizationRequired)
		}

		claims, err := cfg.Decoder(extractRawToken(header, cfg.AuthScheme))
		if err != nil || claims == nil {
			return cfg.ErrorHandler(c, ErrAuthorizationInvalid)
		}

		c.Locals(cfg.ContextKey, claims)

		if cfg.ContextEnricher != nil {
			c.SetUserContext(cfg.ContextEnricher(c.UserContext(), claims))
		}

		return cfg.SuccessHandler(c)
	}
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	if cfg.Decoder == nil {
		panic("ACCOUNTS: session middleware configuration: Decoder is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}

	if cfg.HeaderName == "" {
		cfg.HeaderName = fiber.HeaderAuthorization
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

// extractRawToken strips an optional auth scheme prefix; bare header
// values pass through untouched.
func extractRawToken(header, authScheme string) string {
	header = strings.TrimSpace(header)

	l := len(authScheme)
	if l > 0 && len(header) > l+1 && strings.EqualFold(header[:l], authScheme) {
		return strings.TrimSpace(header[l:])
	}

	return header
}

// ClaimsFromCtx returns the claims the gate attached to the request, if any.
func ClaimsFromCtx(c *fiber.Ctx, key string) (Claims, bool) {
	if key == "" {
		key = DefaultContextKey
	}

	claims, ok := c.Locals(key).(Claims)
	return claims, ok
}

func defaultErrorHandler(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = ErrAuthorizationInvalid
	}

	return c.Status(richErr.Code).JSON(fiber.Map{
		"message": richErr.Message,
	})
}
