package web

import (
	"time"

	"github.com/Kotlang/eventsGo/extensions"
	"github.com/Kotlang/eventsGo/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionCookie   = "session_token"
	sessionLocalKey = "sessionUser"
	loginPath       = "/auth/login"
)

const requestIdHeader = "X-Request-Id"

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	requestId := c.Get(requestIdHeader)
	if requestId == "" {
		requestId = uuid.NewString()
	}
	c.Set(requestIdHeader, requestId)

	err := c.Next()
	if err != nil {
		// let the error handler settle the status before logging it
		if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
			c.Status(fiber.StatusInternalServerError)
		}
	}

	logger.Info("request",
		zap.String("requestId", requestId),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("latency", time.Since(start)))
	return nil
}

// currentUser resolves the session cookie. Invalid or expired tokens are
// cleared and the request continues anonymously.
func (s *Server) currentUser(c *fiber.Ctx) error {
	token := c.Cookies(sessionCookie)
	if token == "" {
		return c.Next()
	}

	user, err := s.auth.ParseToken(token)
	if err != nil {
		extensions.ExpireCookie(c, sessionCookie)
		return c.Next()
	}
	c.Locals(sessionLocalKey, user)
	return c.Next()
}

func requireUser(c *fiber.Ctx) error {
	if sessionUser(c) == nil {
		return c.Redirect(loginPath)
	}
	return c.Next()
}

func sessionUser(c *fiber.Ctx) *extensions.SessionUser {
	user, _ := c.Locals(sessionLocalKey).(*extensions.SessionUser)
	return user
}

func (s *Server) startSession(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.auth.TTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
