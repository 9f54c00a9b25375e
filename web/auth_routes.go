package web

import (
	"github.com/Kotlang/eventsGo/extensions"
	"github.com/Kotlang/eventsGo/logger"
	"github.com/Kotlang/eventsGo/models"
	"github.com/Kotlang/eventsGo/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	loginErrorFlash  = "login-error"
	signupErrorFlash = "signup-error"
	signupPath       = "/auth/signup"
)

func (s *Server) registerAuthRoutes(router fiber.Router) {
	router.Get("/login", s.loginForm)
	router.Post("/login", s.login)
	router.Get("/signup", s.signupForm)
	router.Post("/signup", s.signup)
	router.Post("/logout", s.logout)
}

func (s *Server) loginForm(c *fiber.Ctx) error {
	if user := sessionUser(c); user != nil {
		return c.Redirect(profilePath(user.UserId.Hex()))
	}
	return c.Render("auth/login", fiber.Map{
		"title": "Log in",
		"error": extensions.ConsumeFlash(c, loginErrorFlash),
	})
}

func (s *Server) login(c *fiber.Ctx) error {
	form := service.LoginForm{}
	if err := c.BodyParser(&form); err != nil {
		extensions.SetFlash(c, loginErrorFlash, "The form could not be read")
		return c.Redirect(loginPath)
	}

	user, err := s.users.Login(c.UserContext(), form)
	if service.KindOf(err) == service.KindValidation {
		extensions.SetFlash(c, loginErrorFlash, errorMessage(err))
		return c.Redirect(loginPath)
	}
	if err != nil {
		return err
	}
	return s.openSession(c, user)
}

func (s *Server) signupForm(c *fiber.Ctx) error {
	return c.Render("auth/signup", fiber.Map{
		"title": "Sign up",
		"error": extensions.ConsumeFlash(c, signupErrorFlash),
	})
}

func (s *Server) signup(c *fiber.Ctx) error {
	form := service.SignupForm{}
	if err := c.BodyParser(&form); err != nil {
		extensions.SetFlash(c, signupErrorFlash, "The form could not be read")
		return c.Redirect(signupPath)
	}

	user, err := s.users.Signup(c.UserContext(), form)
	if service.KindOf(err) == service.KindValidation {
		extensions.SetFlash(c, signupErrorFlash, errorMessage(err))
		return c.Redirect(signupPath)
	}
	if err != nil {
		return err
	}
	return s.openSession(c, user)
}

func (s *Server) logout(c *fiber.Ctx) error {
	extensions.ExpireCookie(c, sessionCookie)
	return c.Redirect(loginPath)
}

func (s *Server) openSession(c *fiber.Ctx, user *models.UserModel) error {
	token, err := s.auth.IssueToken(user)
	if err != nil {
		logger.Error("Failed issuing session token", zap.Error(err))
		return err
	}
	s.startSession(c, token)
	return c.Redirect(profilePath(user.UserId.Hex()))
}
