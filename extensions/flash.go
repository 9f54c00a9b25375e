package extensions

import (
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookiePrefix = "flash-"

// SetFlash stores a message that survives exactly one redirect.
func SetFlash(c *fiber.Ctx, key, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookiePrefix + key,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ConsumeFlash returns the message stored under key and clears it. An absent
// or tampered cookie reads as the empty string.
func ConsumeFlash(c *fiber.Ctx, key string) string {
	name := flashCookiePrefix + key
	value := c.Cookies(name)
	if value == "" {
		return ""
	}
	ExpireCookie(c, name)

	message, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return ""
	}
	return string(message)
}

func ExpireCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
