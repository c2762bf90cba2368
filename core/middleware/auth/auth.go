package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
)

// HeaderName is the request header carrying the API key.
const HeaderName = "X-API-Key"

// QueryName is the query parameter accepted when the header is absent.
const QueryName = "api_key"

// Config configures the API key middleware.
type Config struct {
	// ApiKey is the expected key. An empty key disables the check.
	ApiKey string
	// Next skips the middleware when it returns true.
	Next func(c *fiber.Ctx) bool
}

// New creates the API key middleware on top of fiber's keyauth.
// Rejected requests get a JSON 401.
func New(cfg Config) fiber.Handler {
	if cfg.ApiKey == "" {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	expected := []byte(cfg.ApiKey)
	check := keyauth.New(keyauth.Config{
		Next:      cfg.Next,
		KeyLookup: "header:" + HeaderName,
		Validator: func(_ *fiber.Ctx, key string) (bool, error) {
			if subtle.ConstantTimeCompare([]byte(key), expected) != 1 {
				return false, keyauth.ErrMissingOrMalformedAPIKey
			}
			return true, nil
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or missing API key"})
		},
	})

	return func(c *fiber.Ctx) error {
		// keyauth reads a single source; the query parameter stands in for a missing header.
		if c.Get(HeaderName) == "" {
			if key := c.Query(QueryName); key != "" {
				c.Request().Header.Set(HeaderName, key)
			}
		}
		return check(c)
	}
}
