package web

import (
	"github.com/Kotlang/eventsGo/extensions"
	"github.com/Kotlang/eventsGo/service"
	"github.com/gofiber/fiber/v2"
)

// RoutePolicy carries the per-route authorization switches.
type RoutePolicy struct {
	// OwnerOnly restricts delete, the edit form and update to the event owner.
	OwnerOnly bool
}

type Options struct {
	Views     fiber.Views
	PublicDir string
}

type Server struct {
	events *service.EventService
	users  *service.UserService
	auth   *extensions.AuthClient
	policy RoutePolicy
}

func NewServer(events *service.EventService, users *service.UserService, auth *extensions.AuthClient, policy RoutePolicy) *Server {
	return &Server{
		events: events,
		users:  users,
		auth:   auth,
		policy: policy,
	}
}

// NewApp builds the fiber application with every route mounted.
func NewApp(server *Server, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:                 opts.Views,
		ViewsLayout:           "layouts/main",
		PassLocalsToViews:     true,
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(requestLogger)
	app.Use(server.currentUser)

	if opts.PublicDir != "" {
		app.Static("/public", opts.PublicDir)
	}

	app.Get("/", server.home)
	server.registerAuthRoutes(app.Group("/auth"))
	server.registerUserRoutes(app.Group("/users"))
	server.registerEventRoutes(app.Group("/event"))

	// anything left unmatched, including ids that failed to parse
	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	return app
}

func (s *Server) home(c *fiber.Ctx) error {
	if user := sessionUser(c); user != nil {
		return c.Redirect(profilePath(user.UserId.Hex()))
	}
	return c.Redirect(loginPath)
}
