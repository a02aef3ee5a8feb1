package middleware

import (
	"time"

	"corvus/internal/config"
	"github.com/gofiber/fiber/v2"
)

// SetSessionCookie issues the session cookie. Cross-site clients (the browser
// extension) need SameSite=None, which browsers only accept with Secure;
// local development falls back to Lax.
func SetSessionCookie(c *fiber.Ctx, cfg *config.Config, token string) {
	c.Cookie(sessionCookie(cfg, token, int(cfg.SessionTTL.Seconds()), time.Now().Add(cfg.SessionTTL)))
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c *fiber.Ctx, cfg *config.Config) {
	c.Cookie(sessionCookie(cfg, "", -1, time.Now().Add(-time.Hour)))
}

func sessionCookie(cfg *config.Config, value string, maxAge int, expires time.Time) *fiber.Cookie {
	sameSite := fiber.CookieSameSiteLaxMode
	if cfg.CookieSecure {
		sameSite = fiber.CookieSameSiteNoneMode
	}
	return &fiber.Cookie{
		Name:     config.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: sameSite,
	}
}
