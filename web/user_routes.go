package web

import (
	"github.com/gofiber/fiber/v2"
)

func profilePath(userId string) string {
	return "/users/" + userId
}

func (s *Server) registerUserRoutes(router fiber.Router) {
	router.Get("/:id", requireUser, s.profile)
}

func (s *Server) profile(c *fiber.Ctx) error {
	profile, err := s.users.GetProfile(c.UserContext(), sessionUser(c), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.Render("users/profile", fiber.Map{
		"title":  profile.User.Name,
		"user":   profile.User,
		"owned":  profile.Owned,
		"joined": profile.Joined,
		"isSelf": profile.IsSelf,
	})
}
