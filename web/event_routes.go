package web

import (
	"github.com/Kotlang/eventsGo/extensions"
	"github.com/Kotlang/eventsGo/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	createErrorFlash = "create-error"
	updateErrorFlash = "update-error"
)

func (s *Server) registerEventRoutes(router fiber.Router) {
	router.Get("/new", requireUser, s.newEventForm)
	router.Post("/", requireUser, s.createEvent)
	router.Get("/:id", requireUser, s.eventDetail)
	router.Get("/:id/json", cors.New(), s.eventJson)
	router.Post("/:id/delete", requireUser, s.deleteEvent)
	router.Post("/:id/join", requireUser, s.joinEvent)
	router.Post("/:id/unjoin", requireUser, s.unjoinEvent)
	router.Get("/:id/update", requireUser, s.editEventForm)
	router.Post("/:id/update", requireUser, s.updateEvent)
}

func (s *Server) newEventForm(c *fiber.Ctx) error {
	return c.Render("event/create", fiber.Map{
		"title": "New event",
		"error": extensions.ConsumeFlash(c, createErrorFlash),
	})
}

func (s *Server) createEvent(c *fiber.Ctx) error {
	form := service.EventForm{}
	if err := c.BodyParser(&form); err != nil {
		extensions.SetFlash(c, createErrorFlash, "The form could not be read")
		return c.Redirect("/event/new")
	}

	event, err := s.events.CreateEvent(c.UserContext(), sessionUser(c), form)
	if service.KindOf(err) == service.KindValidation {
		extensions.SetFlash(c, createErrorFlash, errorMessage(err))
		return c.Redirect("/event/new")
	}
	if err != nil {
		return serviceError(c, err)
	}
	return c.Redirect(profilePath(event.Owner.Hex()))
}

func (s *Server) eventDetail(c *fiber.Ctx) error {
	detail, err := s.events.GetEventDetail(c.UserContext(), sessionUser(c), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.Render("event/detail", fiber.Map{
		"title":            detail.Event.Name,
		"event":            detail.Event,
		"owner":            detail.Owner,
		"attendants":       detail.Attendants,
		"formattedDate":    detail.FormattedDate,
		"buttonPermission": detail.ButtonPermission,
		"joinedEvent":      detail.JoinedEvent,
	})
}

func (s *Server) eventJson(c *fiber.Ctx) error {
	event, err := s.events.GetEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(event)
}

func (s *Server) deleteEvent(c *fiber.Ctx) error {
	user := sessionUser(c)
	if err := s.events.DeleteEvent(c.UserContext(), user, c.Params("id"), s.policy.OwnerOnly); err != nil {
		return serviceError(c, err)
	}
	return c.Redirect(profilePath(user.UserId.Hex()))
}

func (s *Server) joinEvent(c *fiber.Ctx) error {
	user := sessionUser(c)
	if err := s.events.JoinEvent(c.UserContext(), user, c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.Redirect(profilePath(user.UserId.Hex()))
}

func (s *Server) unjoinEvent(c *fiber.Ctx) error {
	user := sessionUser(c)
	if err := s.events.UnjoinEvent(c.UserContext(), user, c.Params("id")); err != nil {
		return serviceError(c, err)
	}
	return c.Redirect(profilePath(user.UserId.Hex()))
}

func (s *Server) editEventForm(c *fiber.Ctx) error {
	edit, err := s.events.GetEventForEdit(c.UserContext(), sessionUser(c), c.Params("id"), s.policy.OwnerOnly)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Render("event/edit", fiber.Map{
		"title":         "Edit " + edit.Event.Name,
		"event":         edit.Event,
		"formattedDate": edit.FormattedDate,
		"error":         extensions.ConsumeFlash(c, updateErrorFlash),
	})
}

func (s *Server) updateEvent(c *fiber.Ctx) error {
	user := sessionUser(c)
	eventId := c.Params("id")
	editPath := "/event/" + eventId + "/update"

	form := service.EventForm{}
	if err := c.BodyParser(&form); err != nil {
		extensions.SetFlash(c, updateErrorFlash, "The form could not be read")
		return c.Redirect(editPath)
	}

	_, err := s.events.UpdateEvent(c.UserContext(), user, eventId, form, s.policy.OwnerOnly)
	if service.KindOf(err) == service.KindValidation {
		extensions.SetFlash(c, updateErrorFlash, errorMessage(err))
		return c.Redirect(editPath)
	}
	if err != nil {
		return serviceError(c, err)
	}
	return c.Redirect(profilePath(user.UserId.Hex()))
}
